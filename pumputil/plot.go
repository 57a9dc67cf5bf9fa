/*
Copyright © 2026 the PumpSim authors.
This file is part of PumpSim.

PumpSim is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

PumpSim is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with PumpSim.  If not, see <http://www.gnu.org/licenses/>.
*/

package pumputil

import (
	"fmt"
	"image/color"
	"io"

	"github.com/spatialmodel/pumpsim"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	figWidth  = 8 * vg.Inch
	figHeight = 6 * vg.Inch
)

var designPointColor = color.RGBA{R: 204, G: 34, B: 34, A: 255}

// panel holds the data for one plot on a figure.
type panel struct {
	title, xLabel, yLabel string
	lines                 []interface{} // arguments to plotutil.AddLines
	designX               float64       // x location of the design point, or 0 for none
}

func (pn panel) plot() (*plot.Plot, error) {
	p, err := plot.New()
	if err != nil {
		return nil, err
	}
	p.Title.Text = pn.title
	p.X.Label.Text = pn.xLabel
	p.Y.Label.Text = pn.yLabel
	p.Add(plotter.NewGrid())
	if err := plotutil.AddLines(p, pn.lines...); err != nil {
		return nil, err
	}
	if pn.designX != 0 {
		xy := make(plotter.XYs, 2)
		xy[0].X, xy[0].Y = pn.designX, p.Y.Min
		xy[1].X, xy[1].Y = pn.designX, p.Y.Max
		l, err := plotter.NewLine(xy)
		if err != nil {
			return nil, err
		}
		l.Color = designPointColor
		l.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(l)
		p.Legend.Add("Design Point", l)
	}
	p.Legend.Top = true
	return p, nil
}

// drawPanels draws the panels on a grid with the given number of rows
// and columns and writes the result to w in PNG format.
func drawPanels(w io.Writer, rows, cols int, panels []panel) error {
	c := vgimg.New(figWidth, figHeight)
	dc := draw.New(c)
	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(4),
		PadX:      4 * vg.Millimeter,
		PadY:      4 * vg.Millimeter,
	}
	for i, pn := range panels {
		p, err := pn.plot()
		if err != nil {
			return fmt.Errorf("pumputil: plotting %s: %v", pn.title, err)
		}
		p.Draw(tiles.At(dc, i%cols, i/cols))
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return fmt.Errorf("pumputil: writing plot: %v", err)
	}
	return nil
}

// xys returns the points (x[i]*xScale, y[i]*yScale) for which keep
// returns true.
func xys(x, y []float64, xScale, yScale float64, keep func(i int) bool) plotter.XYs {
	o := make(plotter.XYs, 0, len(x))
	for i := range x {
		if keep != nil && !keep(i) {
			continue
		}
		o = o[:len(o)+1]
		o[len(o)-1].X = x[i] * xScale
		o[len(o)-1].Y = y[i] * yScale
	}
	return o
}

// PlotCurve plots the head, shaft power, efficiency, and required NPSH
// of a design curve and writes the figure to w in PNG format.
func PlotCurve(w io.Writer, c *pumpsim.Curve) error {
	valid := func(i int) bool { return c.Valid[i] }
	ok := false
	for _, v := range c.Valid {
		ok = ok || v
	}
	if !ok {
		return fmt.Errorf("pumputil: design curve has no valid samples to plot")
	}
	qd := c.DesignFlow * 3600
	const flowLabel = "Flow Rate (m³/h)"
	return drawPanels(w, 2, 2, []panel{
		{title: "Head vs Flow Rate", xLabel: flowLabel, yLabel: "Head (m)", designX: qd,
			lines: []interface{}{"Head", xys(c.Flow, c.Head, 3600, 1, nil)}},
		{title: "Power vs Flow Rate", xLabel: flowLabel, yLabel: "Power (kW)", designX: qd,
			lines: []interface{}{"Power", xys(c.Flow, c.ShaftPower, 3600, 0.001, valid)}},
		{title: "Efficiency vs Flow Rate", xLabel: flowLabel, yLabel: "Efficiency (%)", designX: qd,
			lines: []interface{}{"Efficiency", xys(c.Flow, c.Efficiency, 3600, 100, valid)}},
		{title: "NPSH vs Flow Rate", xLabel: flowLabel, yLabel: "NPSH Required (m)", designX: qd,
			lines: []interface{}{"NPSH Required", xys(c.Flow, c.NPSHRequired, 3600, 1, valid)}},
	})
}

// PlotMap plots the head and power of each speed line of a performance
// map and writes the figure to w in PNG format.
func PlotMap(w io.Writer, m *pumpsim.Map) error {
	var head, power []interface{}
	for _, l := range m.Lines {
		name := fmt.Sprintf("%.0f rpm", radPerSecondToRPM(l.Speed))
		head = append(head, name, xys(l.Flow, l.Head, 3600, 1, nil))
		power = append(power, name, xys(l.Flow, l.Power, 3600, 0.001, nil))
	}
	const flowLabel = "Flow Rate (m³/h)"
	return drawPanels(w, 1, 2, []panel{
		{title: "Head Map", xLabel: flowLabel, yLabel: "Head (m)", lines: head},
		{title: "Power Map", xLabel: flowLabel, yLabel: "Power (kW)", lines: power},
	})
}

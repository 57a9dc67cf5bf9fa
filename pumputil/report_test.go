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
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spatialmodel/pumpsim"
)

func TestWriteReport(t *testing.T) {
	mix := pumpsim.NewMixture(pumpsim.Component{Fluid: "Water", Fraction: 1})
	p := &pumpsim.Point{
		OperatingPoint: pumpsim.OperatingPoint{Temperature: 300, Pressure: 200000, FlowRate: 0.05, Head: 30},
		Geometry:       pumpsim.NewPumpGeometry(0.25, rpmToRadPerSecond(3000)),
		Properties:     pumpsim.FluidProperties{Density: 1000, Viscosity: 1e-3, SpecificHeat: 4180, Conductivity: 0.6},
		Skipped: []pumpsim.SkippedComponent{
			{Component: pumpsim.Component{Fluid: "Oil", Fraction: 0.1}, Err: errors.New("no data")},
		},
		Performance: pumpsim.PerformanceRecord{HydraulicPower: 14716, ShaftPower: 19620, Efficiency: 0.75},
	}
	var b bytes.Buffer
	if err := WriteReport(&b, mix, p); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, want := range []string{
		"Temperature:           300.00 K (26.85 °C)",
		"Pressure:              200.0 kPa",
		"Flow Rate:             0.0500 m³/s (180.0 m³/h)",
		"Density:               1000.00 kg",
		"Rotation Speed:        3000 rpm",
		"Hydraulic Power:       14.72 kW",
		"Shaft Power:           19.62 kW",
		"Power Loss:            4.90 kW",
		"Skipped:     Oil             no data",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report is missing %q:\n%s", want, out)
		}
	}
}

func TestWriteCurveInvalidSamples(t *testing.T) {
	c := &pumpsim.Curve{
		DesignFlow:   0.1,
		DesignHead:   50,
		Flow:         []float64{0.1, 0.2},
		Head:         []float64{20, -10},
		ShaftPower:   []float64{26000, 0},
		Efficiency:   []float64{0.75, 0},
		NPSHRequired: []float64{0.67, 0},
		Valid:        []bool{true, false},
	}
	var b bytes.Buffer
	if err := WriteCurve(&b, c); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	last := strings.Fields(lines[len(lines)-1])
	if len(last) != 5 || last[1] != "-10.00" || last[2] != "-" {
		t.Errorf("invalid sample line = %q", lines[len(lines)-1])
	}

	c.Valid[0] = false
	if err := PlotCurve(new(bytes.Buffer), c); err == nil {
		t.Error("plotting a curve with no valid samples should fail")
	}
}

func TestPlotMap(t *testing.T) {
	m, err := pumpsim.PerformanceMap(rpmToRadPerSecond(1750), 998, 0.75, pumpsim.MapOptions{})
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err := PlotMap(&b, m); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

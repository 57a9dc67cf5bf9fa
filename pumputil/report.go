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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spatialmodel/pumpsim"
	"github.com/spatialmodel/pumpsim/fluidprop"
)

var rule = strings.Repeat("-", 40)

// WriteReport writes a text summary of the performance of a pump at
// an operating point to w. mix is the mixture the point was evaluated for.
func WriteReport(w io.Writer, mix *pumpsim.Mixture, p *pumpsim.Point) error {
	b := bufio.NewWriter(w)
	fmt.Fprintln(b, "CENTRIFUGAL PUMP PERFORMANCE ANALYSIS")
	fmt.Fprintln(b, strings.Repeat("=", 36))

	fmt.Fprintf(b, "\nMIXTURE COMPOSITION:\n%s\n", rule)
	for i, c := range mix.Components() {
		fmt.Fprintf(b, "Component %d: %-15s Mole Fraction: %.4f\n", i+1, c.Fluid, c.Fraction)
	}
	for _, s := range p.Skipped {
		fmt.Fprintf(b, "Skipped:     %-15s %v\n", s.Fluid, s.Err)
	}

	r := p.Performance
	fmt.Fprintf(b, "\nOPERATING CONDITIONS:\n%s\n", rule)
	fmt.Fprintf(b, "Temperature:           %.2f K (%.2f °C)\n", p.Temperature, p.Temperature-273.15)
	fmt.Fprintf(b, "Pressure:              %.1f kPa\n", p.Pressure/1000)
	fmt.Fprintf(b, "Flow Rate:             %.4f m³/s (%.1f m³/h)\n", p.FlowRate, p.FlowRate*3600)
	fmt.Fprintf(b, "Head:                  %.2f m\n", p.Head)

	props := p.Properties
	fmt.Fprintf(b, "\nFLUID PROPERTIES:\n%s\n", rule)
	for _, row := range []struct {
		label, format string
		p             fluidprop.Property
		v             float64
	}{
		{"Density:", "%.2f", fluidprop.Density, props.Density},
		{"Dynamic Viscosity:", "%.4e", fluidprop.Viscosity, props.Viscosity},
		{"Specific Heat:", "%.1f", fluidprop.SpecificHeat, props.SpecificHeat},
		{"Thermal Conductivity:", "%.4f", fluidprop.Conductivity, props.Conductivity},
	} {
		u, err := row.p.Unit(row.v)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "%-22s "+row.format+"\n", row.label, u)
	}

	fmt.Fprintf(b, "\nPUMP PARAMETERS:\n%s\n", rule)
	fmt.Fprintf(b, "Impeller Diameter:     %.3f m\n", p.Geometry.ImpellerDiameter)
	fmt.Fprintf(b, "Rotation Speed:        %.0f rpm\n", radPerSecondToRPM(p.Geometry.Speed))
	fmt.Fprintf(b, "Efficiency:            %.1f%%\n", r.Efficiency*100)

	fmt.Fprintf(b, "\nPERFORMANCE RESULTS:\n%s\n", rule)
	fmt.Fprintf(b, "Flow Coefficient (φ):      %.6f\n", r.FlowCoefficient)
	fmt.Fprintf(b, "Head Coefficient (ψ):      %.6f\n", r.HeadCoefficient)
	fmt.Fprintf(b, "Reynolds Number:           %.0f\n", r.Reynolds)
	fmt.Fprintf(b, "Specific Speed (Ns):       %.2f\n", r.SpecificSpeed)
	fmt.Fprintf(b, "NPSH Required:             %.2f m\n", r.NPSHRequired)

	fmt.Fprintf(b, "\nPOWER ANALYSIS:\n%s\n", rule)
	fmt.Fprintf(b, "Hydraulic Power:       %.2f kW\n", r.HydraulicPower/1000)
	fmt.Fprintf(b, "Shaft Power:           %.2f kW\n", r.ShaftPower/1000)
	fmt.Fprintf(b, "Power Loss:            %.2f kW\n", r.PowerLoss()/1000)

	fmt.Fprintf(b, "\nDIMENSIONLESS ANALYSIS:\n%s\n", rule)
	fmt.Fprintf(b, "Flow Coefficient:      %.6f\n", r.FlowCoefficient)
	fmt.Fprintf(b, "Head Coefficient:      %.6f\n", r.HeadCoefficient)
	fmt.Fprintf(b, "Power Coefficient:     %.6f\n", r.PowerCoefficient)
	return b.Flush()
}

// WriteCurve writes a design curve to w as a table.
func WriteCurve(w io.Writer, c *pumpsim.Curve) error {
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, "PUMP PERFORMANCE CURVE\nDesign point: %.1f m³/h, %.2f m\n\n", c.DesignFlow*3600, c.DesignHead)
	fmt.Fprintf(b, "%12s %10s %12s %14s %12s\n", "Flow (m³/h)", "Head (m)", "Power (kW)", "Efficiency (%)", "NPSHr (m)")
	for i, q := range c.Flow {
		if !c.Valid[i] {
			fmt.Fprintf(b, "%12.2f %10.2f %12s %14s %12s\n", q*3600, c.Head[i], "-", "-", "-")
			continue
		}
		fmt.Fprintf(b, "%12.2f %10.2f %12.3f %14.1f %12.4f\n", q*3600, c.Head[i],
			c.ShaftPower[i]/1000, c.Efficiency[i]*100, c.NPSHRequired[i])
	}
	if fit, err := FitCurve(c); err == nil {
		fmt.Fprintf(b, "\nFitted head law: H = %.2f - %.4g Q² (R² = %.4f, %d samples)\n",
			fit.ShutoffHead, fit.Droop, fit.RSquared, fit.Samples)
	}
	return b.Flush()
}

// WriteMap writes a performance map to w as one table per speed line.
func WriteMap(w io.Writer, m *pumpsim.Map) error {
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, "PUMP PERFORMANCE MAP\nDesign speed: %.0f rpm\n", radPerSecondToRPM(m.DesignSpeed))
	for _, l := range m.Lines {
		fmt.Fprintf(b, "\n%.0f rpm\n%12s %10s %12s\n", radPerSecondToRPM(l.Speed), "Flow (m³/h)", "Head (m)", "Power (kW)")
		for j, q := range l.Flow {
			fmt.Fprintf(b, "%12.2f %10.2f %12.3f\n", q*3600, l.Head[j], l.Power[j]/1000)
		}
	}
	return b.Flush()
}

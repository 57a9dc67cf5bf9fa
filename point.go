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

package pumpsim

import "github.com/spatialmodel/pumpsim/fluidprop"

// Point is the evaluated performance of a pump at one operating point.
type Point struct {
	OperatingPoint
	Geometry PumpGeometry

	// Properties are the blended properties of the mixture.
	Properties FluidProperties

	// Skipped lists mixture components that were left out of the blend.
	Skipped []SkippedComponent

	Performance PerformanceRecord
}

// EvaluatePoint calculates the performance of pump g handling mixture mix
// at operating point op, with pure-fluid properties from src.
// The mixture fractions are normalized in place before the properties
// are blended.
func EvaluatePoint(mix *Mixture, src fluidprop.Source, op OperatingPoint, g PumpGeometry) (*Point, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	mix.NormalizeFractions()
	b, err := mix.Blend(src, op.Temperature, op.Pressure)
	if err != nil {
		return nil, err
	}
	r, err := g.Performance(op.FlowRate, op.Head, b.Density, b.Viscosity)
	if err != nil {
		return nil, err
	}
	return &Point{
		OperatingPoint: op,
		Geometry:       g,
		Properties:     b.FluidProperties,
		Skipped:        b.Skipped,
		Performance:    r,
	}, nil
}

// Curve calculates the design curve of the pump at the point, using the
// point's flow rate and head as the design point.
func (p *Point) Curve(o CurveOptions) (*Curve, error) {
	g := p.Geometry
	return DesignCurve(p.FlowRate, p.Head, p.Properties.Density, p.Properties.Viscosity,
		g.ImpellerDiameter, g.Speed, g.efficiency(), o)
}

// Map calculates the performance map of the pump at the point, using the
// pump speed as the design speed.
func (p *Point) Map(o MapOptions) (*Map, error) {
	return PerformanceMap(p.Geometry.Speed, p.Properties.Density, p.Geometry.efficiency(), o)
}

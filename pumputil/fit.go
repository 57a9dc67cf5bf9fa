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

	"github.com/GaryBoone/GoStats/stats"
	"github.com/spatialmodel/pumpsim"
)

// CurveFit is a least-squares fit of a parabolic head law,
// H = ShutoffHead − Droop Q², to the valid samples of a design curve.
type CurveFit struct {
	ShutoffHead float64 // [m]
	Droop       float64 // [m/(m³/s)²]
	RSquared    float64
	Samples     int
}

// FitCurve fits a parabolic head law to curve c.
func FitCurve(c *pumpsim.Curve) (CurveFit, error) {
	var q2, h []float64
	for i, q := range c.Flow {
		if c.Valid[i] {
			q2 = append(q2, q*q)
			h = append(h, c.Head[i])
		}
	}
	if len(q2) < 2 {
		return CurveFit{}, fmt.Errorf("pumputil: need at least two valid samples to fit the design curve, have %d", len(q2))
	}
	slope, intercept, r2, n, _, _ := stats.LinearRegression(q2, h)
	return CurveFit{ShutoffHead: intercept, Droop: -slope, RSquared: r2, Samples: n}, nil
}

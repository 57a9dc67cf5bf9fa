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
	"testing"

	"github.com/spatialmodel/pumpsim"
)

func TestFitCurve(t *testing.T) {
	c, err := pumpsim.DesignCurve(0.1, 50, 998, 1e-3, 0.3, 183, 0.75, pumpsim.CurveOptions{})
	if err != nil {
		t.Fatal(err)
	}
	fit, err := FitCurve(c)
	if err != nil {
		t.Fatal(err)
	}
	var valid int
	for _, v := range c.Valid {
		if v {
			valid++
		}
	}
	if fit.Samples != valid {
		t.Errorf("fit used %d samples, want %d", fit.Samples, valid)
	}
	if different(fit.ShutoffHead, 60, 1e-9) {
		t.Errorf("shut-off head = %g, want 60", fit.ShutoffHead)
	}
	if different(fit.Droop, 0.8*50/(0.1*0.1), 1e-9) {
		t.Errorf("droop = %g, want 4000", fit.Droop)
	}
	if different(fit.RSquared, 1, 1e-9) {
		t.Errorf("R² = %g, want 1", fit.RSquared)
	}

	for i := range c.Valid {
		c.Valid[i] = i == 0
	}
	if _, err := FitCurve(c); err == nil {
		t.Error("a single valid sample should fail")
	}
}

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

import (
	"errors"
	"fmt"
)

// ErrEmptyMixture is returned when properties are requested for a
// mixture with no components.
var ErrEmptyMixture = errors.New("pumpsim: mixture has no components")

// PropertyLookupError is returned when the properties of a pure fluid
// cannot be found, or when none of the components of a mixture with
// a non-zero mole fraction could be resolved.
type PropertyLookupError struct {
	// Fluid is the fluid that failed, or is empty if the error is for
	// a whole mixture.
	Fluid string

	// Err is the underlying cause.
	Err error
}

func (e *PropertyLookupError) Error() string {
	if e.Fluid == "" {
		return fmt.Sprintf("pumpsim: mixture property calculation failed: %v", e.Err)
	}
	return fmt.Sprintf("pumpsim: property calculation failed for %s: %v", e.Fluid, e.Err)
}

// Unwrap returns the underlying cause.
func (e *PropertyLookupError) Unwrap() error { return e.Err }

// InvalidParameterError is returned when a parameter is outside of
// its physically valid range.
type InvalidParameterError struct {
	Name  string
	Value float64
	Want  string // description of the valid range, e.g. "> 0"
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("pumpsim: invalid %s = %g; must be %s", e.Name, e.Value, e.Want)
}

// checkPositive returns an InvalidParameterError if v is not > 0.
// NaN is not > 0.
func checkPositive(name string, v float64) error {
	if !(v > 0) {
		return &InvalidParameterError{Name: name, Value: v, Want: "> 0"}
	}
	return nil
}

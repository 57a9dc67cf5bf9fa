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

package fluidprop

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/BurntSushi/toml"
)

// GasConstant is the universal gas constant [J/(mol K)].
const GasConstant = 8.314462618

// Phase specifies how a fluid's density and viscosity are calculated.
const (
	// Liquid fluids are incompressible: all properties are tabulated
	// against temperature and do not depend on pressure.
	Liquid = "liquid"

	// Gas fluids follow the ideal gas law for density and Sutherland's
	// law for viscosity. Specific heat and conductivity are tabulated.
	Gas = "gas"
)

// Sutherland holds the coefficients of Sutherland's viscosity law,
// μ = Mu0 (T/T0)^1.5 (T0+S)/(T+S).
type Sutherland struct {
	Mu0 float64 // reference viscosity [Pa s]
	T0  float64 // reference temperature [K]
	S   float64 // Sutherland temperature [K]
}

func (s Sutherland) viscosity(T float64) float64 {
	return s.Mu0 * math.Pow(T/s.T0, 1.5) * (s.T0 + s.S) / (T + s.S)
}

// FluidData holds the data for one fluid in a Table.
type FluidData struct {
	// Name is the identifier used to look up the fluid.
	Name string

	// Phase is either Liquid or Gas.
	Phase string

	// MolarMass is the molar mass [kg/mol]. It is required for gases.
	MolarMass float64

	// MinTemperature and MaxTemperature [K] bound the valid state.
	// If they are zero, the bounds of the Temperature data are used.
	MinTemperature, MaxTemperature float64

	// MinPressure and MaxPressure [Pa] bound the valid state.
	MinPressure, MaxPressure float64

	// Temperature [K] holds the strictly increasing temperatures at which
	// the other properties are tabulated.
	Temperature []float64

	// Density [kg/m³] and Viscosity [Pa s] are tabulated
	// for liquids only.
	Density, Viscosity []float64

	// SpecificHeat [J/(kg K)] and Conductivity [W/(m K)] are tabulated
	// for all fluids.
	SpecificHeat, Conductivity []float64

	// Sutherland holds viscosity coefficients for gases.
	Sutherland Sutherland
}

// Table is a Source backed by tabulated fluid data.
type Table struct {
	fluids map[string]*FluidData
	names  []string
}

// ReadTable reads fluid data in TOML format from r. The file must hold
// an array of tables named Fluid, with fields matching FluidData.
func ReadTable(r io.Reader) (*Table, error) {
	var data struct {
		Fluid []*FluidData
	}
	if _, err := toml.DecodeReader(r, &data); err != nil {
		return nil, fmt.Errorf("fluidprop: decoding fluid data: %v", err)
	}
	return NewTable(data.Fluid...)
}

// NewTable creates a new table from the given fluid data.
func NewTable(fluids ...*FluidData) (*Table, error) {
	t := &Table{fluids: make(map[string]*FluidData)}
	for _, f := range fluids {
		if err := f.check(); err != nil {
			return nil, err
		}
		if _, ok := t.fluids[f.Name]; ok {
			return nil, fmt.Errorf("fluidprop: fluid %q is defined more than once", f.Name)
		}
		t.fluids[f.Name] = f
		t.names = append(t.names, f.Name)
	}
	if len(t.names) == 0 {
		return nil, fmt.Errorf("fluidprop: no fluids defined")
	}
	return t, nil
}

// check makes sure the fluid data are complete and fills in
// default temperature bounds.
func (f *FluidData) check() error {
	if f.Name == "" {
		return fmt.Errorf("fluidprop: fluid is missing a Name")
	}
	n := len(f.Temperature)
	if n < 2 {
		return fmt.Errorf("fluidprop: %s: at least two temperatures are required, have %d", f.Name, n)
	}
	for i := 1; i < n; i++ {
		if !(f.Temperature[i] > f.Temperature[i-1]) {
			return fmt.Errorf("fluidprop: %s: temperatures must be strictly increasing", f.Name)
		}
	}
	columns := map[string][]float64{
		"SpecificHeat": f.SpecificHeat,
		"Conductivity": f.Conductivity,
	}
	switch f.Phase {
	case Liquid:
		columns["Density"] = f.Density
		columns["Viscosity"] = f.Viscosity
	case Gas:
		if !(f.MolarMass > 0) {
			return fmt.Errorf("fluidprop: %s: MolarMass must be > 0 for a gas", f.Name)
		}
		if !(f.Sutherland.Mu0 > 0 && f.Sutherland.T0 > 0) {
			return fmt.Errorf("fluidprop: %s: Sutherland coefficients are required for a gas", f.Name)
		}
	default:
		return fmt.Errorf("fluidprop: %s: Phase must be %q or %q, not %q", f.Name, Liquid, Gas, f.Phase)
	}
	for name, c := range columns {
		if len(c) != n {
			return fmt.Errorf("fluidprop: %s: %s has %d values but there are %d temperatures",
				f.Name, name, len(c), n)
		}
	}
	if f.MinTemperature == 0 {
		f.MinTemperature = f.Temperature[0]
	}
	if f.MaxTemperature == 0 {
		f.MaxTemperature = f.Temperature[n-1]
	}
	if !(f.MaxTemperature > f.MinTemperature) || !(f.MinTemperature > 0) {
		return fmt.Errorf("fluidprop: %s: invalid temperature range [%g, %g]",
			f.Name, f.MinTemperature, f.MaxTemperature)
	}
	if !(f.MaxPressure > f.MinPressure) || f.MinPressure < 0 {
		return fmt.Errorf("fluidprop: %s: invalid pressure range [%g, %g]",
			f.Name, f.MinPressure, f.MaxPressure)
	}
	return nil
}

// Fluids returns the names of the fluids in the table, in the order
// they were defined.
func (t *Table) Fluids() []string {
	o := make([]string, len(t.names))
	copy(o, t.names)
	return o
}

// Fluid returns the data for the named fluid.
func (t *Table) Fluid(name string) (*FluidData, error) {
	f, ok := t.fluids[name]
	if !ok {
		return nil, &UnknownFluidError{Fluid: name}
	}
	return f, nil
}

// Lookup implements Source.
func (t *Table) Lookup(p Property, T, P float64, fluid string) (float64, error) {
	f, err := t.Fluid(fluid)
	if err != nil {
		return math.NaN(), err
	}
	if !(T >= f.MinTemperature && T <= f.MaxTemperature) {
		return math.NaN(), &OutOfRangeError{Fluid: fluid, Variable: "temperature",
			Value: T, Min: f.MinTemperature, Max: f.MaxTemperature}
	}
	if !(P >= f.MinPressure && P <= f.MaxPressure) {
		return math.NaN(), &OutOfRangeError{Fluid: fluid, Variable: "pressure",
			Value: P, Min: f.MinPressure, Max: f.MaxPressure}
	}
	switch p {
	case Density:
		if f.Phase == Gas {
			return P * f.MolarMass / (GasConstant * T), nil
		}
		return interpolate(T, f.Temperature, f.Density), nil
	case Viscosity:
		if f.Phase == Gas {
			return f.Sutherland.viscosity(T), nil
		}
		return interpolate(T, f.Temperature, f.Viscosity), nil
	case SpecificHeat:
		return interpolate(T, f.Temperature, f.SpecificHeat), nil
	case Conductivity:
		return interpolate(T, f.Temperature, f.Conductivity), nil
	default:
		return math.NaN(), ErrUnknownProperty
	}
}

// interpolate linearly interpolates y(x) from the tabulated values,
// extrapolating from the end segments when x is outside of xs.
func interpolate(x float64, xs, ys []float64) float64 {
	i := sort.SearchFloat64s(xs, x)
	if i < len(xs) && xs[i] == x {
		return ys[i]
	}
	if i == 0 {
		i = 1
	} else if i == len(xs) {
		i = len(xs) - 1
	}
	x0, x1 := xs[i-1], xs[i]
	y0, y1 := ys[i-1], ys[i]
	return y0 + (x-x0)*(y1-y0)/(x1-x0)
}

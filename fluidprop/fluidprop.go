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

// Package fluidprop provides thermophysical properties of pure fluids.
// The pump model treats a property source as a black box: anything that
// can return density, viscosity, specific heat, and thermal conductivity
// for a named fluid at a given temperature and pressure can be used.
package fluidprop

import (
	"errors"
	"fmt"

	"github.com/ctessum/unit"
)

// Property identifies a thermophysical property. The values are the
// one-letter codes used by common property libraries.
type Property string

const (
	// Density is the mass density [kg/m³].
	Density Property = "D"

	// Viscosity is the dynamic viscosity [Pa s].
	Viscosity Property = "V"

	// SpecificHeat is the isobaric specific heat capacity [J/(kg K)].
	SpecificHeat Property = "C"

	// Conductivity is the thermal conductivity [W/(m K)].
	Conductivity Property = "L"
)

// Properties lists every property a Source must be able to provide,
// in the order the mixture evaluator requests them.
var Properties = []Property{Density, Viscosity, SpecificHeat, Conductivity}

// String returns the name of the property.
func (p Property) String() string {
	switch p {
	case Density:
		return "density"
	case Viscosity:
		return "viscosity"
	case SpecificHeat:
		return "specific heat"
	case Conductivity:
		return "thermal conductivity"
	default:
		return fmt.Sprintf("Property(%q)", string(p))
	}
}

// Dimensions returns the SI dimensions of property p.
func (p Property) Dimensions() (unit.Dimensions, error) {
	switch p {
	case Density:
		return unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -3}, nil
	case Viscosity:
		return unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -1}, nil
	case SpecificHeat:
		return unit.Dimensions{unit.LengthDim: 2, unit.TimeDim: -2, unit.TemperatureDim: -1}, nil
	case Conductivity:
		return unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 1, unit.TimeDim: -3, unit.TemperatureDim: -1}, nil
	default:
		return nil, ErrUnknownProperty
	}
}

// Source is a provider of pure-fluid properties. Lookup returns the value
// of property p for the named fluid at temperature T [K] and pressure P [Pa],
// in SI units. It returns an error if the fluid is not supported or the
// state is outside of the source's valid range.
type Source interface {
	Lookup(p Property, T, P float64, fluid string) (float64, error)
}

// SourceFunc adapts an ordinary function to the Source interface.
type SourceFunc func(p Property, T, P float64, fluid string) (float64, error)

// Lookup calls f(p, T, P, fluid).
func (f SourceFunc) Lookup(p Property, T, P float64, fluid string) (float64, error) {
	return f(p, T, P, fluid)
}

// ErrUnknownProperty is returned when a property code is not recognized.
var ErrUnknownProperty = errors.New("fluidprop: unknown property")

// UnknownFluidError is returned when a source has no data for a fluid.
type UnknownFluidError struct {
	Fluid string
}

func (e *UnknownFluidError) Error() string {
	return fmt.Sprintf("fluidprop: unknown fluid %q", e.Fluid)
}

// OutOfRangeError is returned when a requested state is outside of the
// envelope for which a fluid's data are valid.
type OutOfRangeError struct {
	Fluid    string
	Variable string // "temperature" or "pressure"
	Value    float64
	Min, Max float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("fluidprop: %s %g is outside of the valid range [%g, %g] for %s",
		e.Variable, e.Value, e.Min, e.Max, e.Fluid)
}

// Unit returns v, in SI units, with the dimensions of property p.
func (p Property) Unit(v float64) (*unit.Unit, error) {
	dims, err := p.Dimensions()
	if err != nil {
		return nil, err
	}
	return unit.New(v, dims), nil
}

// Quantity looks up property p and returns it along with its dimensions.
func Quantity(src Source, p Property, T, P float64, fluid string) (*unit.Unit, error) {
	if _, err := p.Dimensions(); err != nil {
		return nil, err
	}
	v, err := src.Lookup(p, T, P, fluid)
	if err != nil {
		return nil, err
	}
	return p.Unit(v)
}

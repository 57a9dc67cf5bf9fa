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

	"github.com/spatialmodel/pumpsim/fluidprop"
	"gonum.org/v1/gonum/floats"
)

// Component is one constituent of a Mixture.
type Component struct {
	// Fluid is an identifier understood by the property source.
	Fluid string

	// Fraction is the mole fraction of the fluid in the mixture.
	Fraction float64
}

// FluidProperties holds the thermophysical properties of a fluid
// or mixture.
type FluidProperties struct {
	Density      float64 // [kg/m³]
	Viscosity    float64 // [Pa s]
	SpecificHeat float64 // [J/(kg K)]
	Conductivity float64 // [W/(m K)]
}

// Mixture is an ordered list of components. The zero value is an
// empty mixture ready to use. A Mixture is not safe for concurrent
// modification.
type Mixture struct {
	components []Component
}

// NewMixture returns a mixture holding the given components.
func NewMixture(components ...Component) *Mixture {
	m := new(Mixture)
	for _, c := range components {
		m.AddComponent(c.Fluid, c.Fraction)
	}
	return m
}

// AddComponent appends a component to the mixture. The fraction is not
// checked: it may be zero or negative until the fractions are normalized.
// Adding a fluid that is already present adds a separate entry.
func (m *Mixture) AddComponent(fluid string, fraction float64) {
	m.components = append(m.components, Component{Fluid: fluid, Fraction: fraction})
}

// NormalizeFractions scales the mole fractions so they sum to one.
// If the fractions sum to zero or less, they are left unchanged.
func (m *Mixture) NormalizeFractions() {
	x := make([]float64, len(m.components))
	for i, c := range m.components {
		x[i] = c.Fraction
	}
	total := floats.Sum(x)
	if !(total > 0) {
		return
	}
	for i := range m.components {
		m.components[i].Fraction /= total
	}
}

// Clear removes all components from the mixture.
func (m *Mixture) Clear() {
	m.components = nil
}

// Len returns the number of components in the mixture.
func (m *Mixture) Len() int { return len(m.components) }

// Components returns a copy of the components in the mixture.
func (m *Mixture) Components() []Component {
	o := make([]Component, len(m.components))
	copy(o, m.components)
	return o
}

// SkippedComponent is a mixture component whose properties could not
// be found.
type SkippedComponent struct {
	Component
	Err error
}

// Blend holds blended mixture properties and the components that were
// left out of the blend.
type Blend struct {
	FluidProperties

	// Skipped lists the components whose properties could not be found.
	// Their fractions are not redistributed among the other components.
	Skipped []SkippedComponent
}

// Properties returns the properties of the mixture at temperature T [K]
// and pressure P [Pa]. See Blend for how the components are combined.
func (m *Mixture) Properties(src fluidprop.Source, T, P float64) (FluidProperties, error) {
	b, err := m.Blend(src, T, P)
	if err != nil {
		return FluidProperties{}, err
	}
	return b.FluidProperties, nil
}

// Blend calculates the properties of the mixture at temperature T [K]
// and pressure P [Pa].
//
// A single-component mixture returns the properties of the pure fluid
// unchanged, and any lookup failure is returned as a *PropertyLookupError.
//
// For two or more components, each property is the mole-fraction-weighted
// sum of the pure-fluid properties. There are no excess-property or
// phase-split corrections. A component whose properties cannot be found
// is skipped: it contributes nothing, and the remaining fractions are not
// renormalized, so the result is biased low. The skipped components are
// listed in the result. If the resolved components have a total mole
// fraction of zero, which includes the case where every lookup failed,
// a *PropertyLookupError is returned.
func (m *Mixture) Blend(src fluidprop.Source, T, P float64) (*Blend, error) {
	switch len(m.components) {
	case 0:
		return nil, ErrEmptyMixture
	case 1:
		c := m.components[0]
		props, err := pureProperties(src, c.Fluid, T, P)
		if err != nil {
			return nil, &PropertyLookupError{Fluid: c.Fluid, Err: err}
		}
		return &Blend{FluidProperties: props}, nil
	}

	b := new(Blend)
	var resolved float64
	var causes []error
	for _, c := range m.components {
		props, err := pureProperties(src, c.Fluid, T, P)
		if err != nil {
			b.Skipped = append(b.Skipped, SkippedComponent{Component: c, Err: err})
			causes = append(causes, fmt.Errorf("%s: %w", c.Fluid, err))
			continue
		}
		resolved += c.Fraction
		b.Density += c.Fraction * props.Density
		b.Viscosity += c.Fraction * props.Viscosity
		b.SpecificHeat += c.Fraction * props.SpecificHeat
		b.Conductivity += c.Fraction * props.Conductivity
	}
	if resolved == 0 {
		if len(causes) == 0 {
			causes = append(causes, errors.New("resolved components have a total mole fraction of zero"))
		}
		return nil, &PropertyLookupError{Err: errors.Join(causes...)}
	}
	return b, nil
}

// pureProperties looks up all properties of a pure fluid. It fails if
// any one of the lookups fails.
func pureProperties(src fluidprop.Source, fluid string, T, P float64) (FluidProperties, error) {
	var o FluidProperties
	for _, p := range fluidprop.Properties {
		v, err := src.Lookup(p, T, P, fluid)
		if err != nil {
			return FluidProperties{}, fmt.Errorf("looking up %v: %w", p, err)
		}
		switch p {
		case fluidprop.Density:
			o.Density = v
		case fluidprop.Viscosity:
			o.Viscosity = v
		case fluidprop.SpecificHeat:
			o.SpecificHeat = v
		case fluidprop.Conductivity:
			o.Conductivity = v
		}
	}
	return o, nil
}

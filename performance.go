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

import "math"

// PerformanceRecord holds the calculated performance of a pump at
// one operating point.
type PerformanceRecord struct {
	FlowCoefficient  float64 // φ = Q / (N D³) [-]
	HeadCoefficient  float64 // ψ = g H / (N² D²) [-]
	Reynolds         float64 // Re = ρ N D² / μ [-]
	SpecificSpeed    float64 // Ns = N √Q / (g H)^¾ [-]
	NPSHRequired     float64 // required net positive suction head [m]
	HydraulicPower   float64 // ρ g Q H [W]
	ShaftPower       float64 // hydraulic power / efficiency [W]
	PowerCoefficient float64 // shaft power / (ρ N³ D⁵) [-]
	Efficiency       float64 // hydraulic efficiency [-]
}

// PowerLoss returns the difference between the shaft and hydraulic
// power [W].
func (r PerformanceRecord) PowerLoss() float64 {
	return r.ShaftPower - r.HydraulicPower
}

// Performance calculates the performance of a pump with impeller
// diameter d [m] turning at angular speed n [rad/s] with hydraulic
// efficiency eta, delivering flow rate q [m³/s] against head h [m]
// of a fluid with density rho [kg/m³] and dynamic viscosity mu [Pa s].
//
// The required net positive suction head uses the simplified correlation
// NPSHr = 0.2 (N √Q / 1000)².
//
// An *InvalidParameterError is returned if n, d, mu, h, eta, or rho is not
// greater than zero, or if q is negative.
func Performance(q, h, rho, mu, d, n, eta float64) (PerformanceRecord, error) {
	for _, v := range []struct {
		name string
		v    float64
	}{
		{"speed", n}, {"impeller diameter", d}, {"viscosity", mu},
		{"head", h}, {"efficiency", eta}, {"density", rho},
	} {
		if err := checkPositive(v.name, v.v); err != nil {
			return PerformanceRecord{}, err
		}
	}
	if !(q >= 0) {
		return PerformanceRecord{}, &InvalidParameterError{Name: "flow rate", Value: q, Want: ">= 0"}
	}

	gh := Gravity * h
	sqrtQ := math.Sqrt(q)
	r := PerformanceRecord{
		FlowCoefficient: q / (n * d * d * d),
		HeadCoefficient: gh / (n * n * d * d),
		Reynolds:        rho * n * d * d / mu,
		SpecificSpeed:   n * sqrtQ / math.Pow(gh, 0.75),
		NPSHRequired:    0.2 * math.Pow(n*sqrtQ/1000, 2),
		HydraulicPower:  rho * Gravity * q * h,
		Efficiency:      eta,
	}
	r.ShaftPower = r.HydraulicPower / eta
	r.PowerCoefficient = r.ShaftPower / (rho * n * n * n * math.Pow(d, 5))
	return r, nil
}

// PumpGeometry describes a pump.
type PumpGeometry struct {
	// ImpellerDiameter is the impeller diameter [m].
	ImpellerDiameter float64

	// Speed is the angular speed [rad/s].
	Speed float64

	// Efficiency is the hydraulic efficiency, in (0, 1].
	// If it is zero, DefaultEfficiency is used.
	Efficiency float64
}

// NewPumpGeometry returns a pump with impeller diameter d [m] turning at
// angular speed n [rad/s] with the default efficiency.
func NewPumpGeometry(d, n float64) PumpGeometry {
	return PumpGeometry{ImpellerDiameter: d, Speed: n, Efficiency: DefaultEfficiency}
}

func (g PumpGeometry) efficiency() float64 {
	if g.Efficiency == 0 {
		return DefaultEfficiency
	}
	return g.Efficiency
}

// Validate returns an *InvalidParameterError if the geometry is not
// physically valid.
func (g PumpGeometry) Validate() error {
	if err := checkPositive("impeller diameter", g.ImpellerDiameter); err != nil {
		return err
	}
	if err := checkPositive("speed", g.Speed); err != nil {
		return err
	}
	if eta := g.efficiency(); !(eta > 0 && eta <= 1) {
		return &InvalidParameterError{Name: "efficiency", Value: eta, Want: "in (0, 1]"}
	}
	return nil
}

// Performance calculates the performance of the pump delivering flow
// rate q [m³/s] against head h [m] of a fluid with density rho [kg/m³]
// and viscosity mu [Pa s].
func (g PumpGeometry) Performance(q, h, rho, mu float64) (PerformanceRecord, error) {
	return Performance(q, h, rho, mu, g.ImpellerDiameter, g.Speed, g.efficiency())
}

// OperatingPoint specifies the conditions a pump operates at.
type OperatingPoint struct {
	Temperature float64 // [K]
	Pressure    float64 // [Pa]
	FlowRate    float64 // [m³/s]
	Head        float64 // [m]
}

// Validate returns an *InvalidParameterError if any value is not
// greater than zero.
func (o OperatingPoint) Validate() error {
	for _, v := range []struct {
		name string
		v    float64
	}{
		{"temperature", o.Temperature}, {"pressure", o.Pressure},
		{"flow rate", o.FlowRate}, {"head", o.Head},
	} {
		if err := checkPositive(v.name, v.v); err != nil {
			return err
		}
	}
	return nil
}

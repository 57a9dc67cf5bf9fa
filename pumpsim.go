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

// Package pumpsim estimates the steady-state performance of a centrifugal
// pump handling a fluid mixture.
//
// A Mixture blends pure-fluid properties from a fluidprop.Source into
// effective mixture properties, Performance converts an operating point
// into dimensionless coefficients, power, and required suction head,
// and DesignCurve and PerformanceMap sweep the model over flow rate
// and rotational speed to build characteristic curves and maps.
//
// All quantities are in SI units: temperature [K], pressure [Pa],
// flow rate [m³/s], head [m], diameter [m], angular speed [rad/s],
// and power [W].
package pumpsim

// Version gives the version number.
const Version = "1.0.0"

// Gravity is the acceleration of gravity [m/s²].
const Gravity = 9.81

// DefaultEfficiency is the hydraulic efficiency used when none is
// specified.
const DefaultEfficiency = 0.75

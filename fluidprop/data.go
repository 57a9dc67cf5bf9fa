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
	"strings"
	"sync"
)

var (
	defaultTable     *Table
	defaultTableOnce sync.Once
)

// DefaultTable returns a table holding the built-in fluid data.
// Liquid data are for atmospheric pressure; gas data use the ideal gas law
// and are not valid near saturation, so their pressure ranges are limited
// accordingly.
func DefaultTable() *Table {
	defaultTableOnce.Do(func() {
		t, err := ReadTable(strings.NewReader(defaultData))
		if err != nil {
			panic(err)
		}
		defaultTable = t
	})
	return defaultTable
}

const defaultData = `
[[Fluid]]
Name = "Water"
Phase = "liquid"
MolarMass = 0.018015
MinPressure = 5.0e3
MaxPressure = 1.0e7
Temperature  = [273.16, 293.15, 313.15, 333.15, 353.15, 373.15]
Density      = [999.8, 998.2, 992.2, 983.2, 971.8, 958.4]
Viscosity    = [1.792e-3, 1.002e-3, 0.653e-3, 0.467e-3, 0.355e-3, 0.282e-3]
SpecificHeat = [4217.0, 4182.0, 4179.0, 4185.0, 4197.0, 4216.0]
Conductivity = [0.561, 0.598, 0.631, 0.654, 0.670, 0.679]

[[Fluid]]
Name = "Ethanol"
Phase = "liquid"
MolarMass = 0.046068
MinPressure = 1.0e4
MaxPressure = 1.0e7
Temperature  = [273.15, 298.15, 323.15, 348.15]
Density      = [806.3, 785.3, 763.1, 739.2]
Viscosity    = [1.773e-3, 1.074e-3, 0.694e-3, 0.476e-3]
SpecificHeat = [2300.0, 2440.0, 2650.0, 2860.0]
Conductivity = [0.176, 0.167, 0.160, 0.153]

[[Fluid]]
Name = "Methanol"
Phase = "liquid"
MolarMass = 0.032042
MinPressure = 2.0e4
MaxPressure = 1.0e7
Temperature  = [273.15, 298.15, 323.15, 333.15]
Density      = [809.6, 786.6, 763.3, 753.6]
Viscosity    = [0.793e-3, 0.544e-3, 0.396e-3, 0.351e-3]
SpecificHeat = [2400.0, 2530.0, 2660.0, 2720.0]
Conductivity = [0.207, 0.200, 0.193, 0.190]

[[Fluid]]
Name = "Toluene"
Phase = "liquid"
MolarMass = 0.092138
MinPressure = 1.0e4
MaxPressure = 1.0e7
Temperature  = [273.15, 298.15, 323.15, 353.15, 373.15]
Density      = [885.0, 862.3, 839.2, 810.8, 790.8]
Viscosity    = [0.768e-3, 0.554e-3, 0.420e-3, 0.316e-3, 0.268e-3]
SpecificHeat = [1620.0, 1706.0, 1790.0, 1890.0, 1960.0]
Conductivity = [0.142, 0.134, 0.127, 0.118, 0.112]

[[Fluid]]
Name = "Nitrogen"
Phase = "gas"
MolarMass = 0.0280134
MinTemperature = 200.0
MaxTemperature = 600.0
MinPressure = 1.0e3
MaxPressure = 1.0e7
Temperature  = [273.15, 373.15]
SpecificHeat = [1040.0, 1042.0]
Conductivity = [0.0240, 0.0310]
Sutherland = {Mu0 = 1.663e-5, T0 = 273.15, S = 107.0}

[[Fluid]]
Name = "Oxygen"
Phase = "gas"
MolarMass = 0.0319988
MinTemperature = 200.0
MaxTemperature = 600.0
MinPressure = 1.0e3
MaxPressure = 1.0e7
Temperature  = [273.15, 373.15]
SpecificHeat = [917.0, 934.0]
Conductivity = [0.0245, 0.0318]
Sutherland = {Mu0 = 1.919e-5, T0 = 273.15, S = 139.0}

[[Fluid]]
Name = "CarbonDioxide"
Phase = "gas"
MolarMass = 0.0440095
MinTemperature = 230.0
MaxTemperature = 600.0
MinPressure = 1.0e3
MaxPressure = 5.0e6
Temperature  = [273.15, 373.15]
SpecificHeat = [819.0, 918.0]
Conductivity = [0.0146, 0.0223]
Sutherland = {Mu0 = 1.370e-5, T0 = 273.15, S = 240.0}

[[Fluid]]
Name = "Ammonia"
Phase = "gas"
MolarMass = 0.017031
MinTemperature = 260.0
MaxTemperature = 600.0
MinPressure = 1.0e3
MaxPressure = 8.0e5
Temperature  = [273.15, 373.15]
SpecificHeat = [2060.0, 2240.0]
Conductivity = [0.0218, 0.0330]
Sutherland = {Mu0 = 0.918e-5, T0 = 273.15, S = 370.0}

[[Fluid]]
Name = "Propane"
Phase = "gas"
MolarMass = 0.044097
MinTemperature = 240.0
MaxTemperature = 600.0
MinPressure = 1.0e3
MaxPressure = 8.0e5
Temperature  = [273.15, 373.15]
SpecificHeat = [1550.0, 1950.0]
Conductivity = [0.0151, 0.0260]
Sutherland = {Mu0 = 0.750e-5, T0 = 273.15, S = 278.0}

[[Fluid]]
Name = "Butane"
Phase = "gas"
MolarMass = 0.058122
MinTemperature = 280.0
MaxTemperature = 600.0
MinPressure = 1.0e3
MaxPressure = 2.0e5
Temperature  = [273.15, 373.15]
SpecificHeat = [1580.0, 1990.0]
Conductivity = [0.0136, 0.0234]
Sutherland = {Mu0 = 0.684e-5, T0 = 273.15, S = 330.0}
`

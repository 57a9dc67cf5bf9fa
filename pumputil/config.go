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
	"math"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Knetic/govaluate"
	"github.com/lnashier/viper"
	"github.com/spatialmodel/pumpsim"
	"github.com/spatialmodel/pumpsim/fluidprop"
	"github.com/spf13/cast"
)

// fluidAliases translates fluid labels that users commonly type into the
// identifiers used by the property source. Labels that are not listed
// are passed through unchanged.
var fluidAliases = map[string]string{
	"CO2": "CarbonDioxide",
	"H2O": "Water",
	"N2":  "Nitrogen",
	"O2":  "Oxygen",
	"NH3": "Ammonia",
}

// fluidName returns the property source identifier for label.
func fluidName(label string) string {
	if name, ok := fluidAliases[label]; ok {
		return name
	}
	return label
}

// ParseComponents creates a mixture from a list of components in the
// format "Fluid:fraction". If the fraction is omitted it is set to one.
// Entries may hold several comma-separated components, as they do when
// they are set from an environment variable. The fractions are not
// normalized.
func ParseComponents(components []string) (*pumpsim.Mixture, error) {
	var split []string
	for _, c := range components {
		split = append(split, strings.Split(os.ExpandEnv(c), ",")...)
	}
	m := new(pumpsim.Mixture)
	for _, c := range split {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		fluid, fraction := c, 1.0
		if i := strings.LastIndex(c, ":"); i >= 0 {
			fluid = strings.TrimSpace(c[:i])
			var err error
			fraction, err = cast.ToFloat64E(strings.TrimSpace(c[i+1:]))
			if err != nil {
				return nil, fmt.Errorf("pumputil: invalid mole fraction in component %q: %v", c, err)
			}
		}
		if fluid == "" {
			return nil, fmt.Errorf("pumputil: component %q is missing a fluid name", c)
		}
		m.AddComponent(fluidName(fluid), fraction)
	}
	if m.Len() == 0 {
		return nil, fmt.Errorf("pumputil: please specify at least one component in the Components configuration variable")
	}
	return m, nil
}

// rpmToRadPerSecond converts a rotational speed from revolutions per
// minute to radians per second.
func rpmToRadPerSecond(rpm float64) float64 { return rpm * 2 * math.Pi / 60 }

// radPerSecondToRPM converts a rotational speed from radians per second
// to revolutions per minute.
func radPerSecondToRPM(n float64) float64 { return n * 60 / (2 * math.Pi) }

type propertySourceKey struct {
	fluidData string
	modTime   time.Time
	cacheSize int
}

type propertySource struct {
	src   fluidprop.Source
	table *fluidprop.Table
}

// propertySources holds the sources that have already been created, so
// that repeated commands share one cache.
var (
	propertySources   = make(map[propertySourceKey]propertySource)
	propertySourcesMu sync.Mutex
)

// PropertySource returns the fluid property table specified by the
// fluidData file, or the built-in table if fluidData is empty.
// If cacheSize > 0, lookups from the table are cached. Sources are
// reused by later calls with the same arguments, unless the fluidData
// file has been modified in the meantime.
func PropertySource(fluidData string, cacheSize int) (fluidprop.Source, *fluidprop.Table, error) {
	key := propertySourceKey{fluidData: os.ExpandEnv(fluidData), cacheSize: cacheSize}
	if key.fluidData != "" {
		fi, err := os.Stat(key.fluidData)
		if err != nil {
			return nil, nil, fmt.Errorf("pumputil: opening FluidData: %v", err)
		}
		key.modTime = fi.ModTime()
	}
	propertySourcesMu.Lock()
	defer propertySourcesMu.Unlock()
	if ps, ok := propertySources[key]; ok {
		return ps.src, ps.table, nil
	}
	table := fluidprop.DefaultTable()
	if key.fluidData != "" {
		f, err := os.Open(key.fluidData)
		if err != nil {
			return nil, nil, fmt.Errorf("pumputil: opening FluidData: %v", err)
		}
		defer f.Close()
		table, err = fluidprop.ReadTable(f)
		if err != nil {
			return nil, nil, fmt.Errorf("pumputil: reading FluidData %s: %v", fluidData, err)
		}
	}
	ps := propertySource{src: table, table: table}
	if cacheSize > 0 {
		ps.src = fluidprop.NewCache(table, cacheSize)
	}
	propertySources[key] = ps
	return ps.src, ps.table, nil
}

// headLawFunctions are the functions available to head law expressions.
var headLawFunctions = map[string]govaluate.ExpressionFunction{
	"sqrt": func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("pumputil: got %d arguments for function 'sqrt', but needs 1", len(args))
		}
		return math.Sqrt(args[0].(float64)), nil
	},
	"pow": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("pumputil: got %d arguments for function 'pow', but needs 2", len(args))
		}
		return math.Pow(args[0].(float64), args[1].(float64)), nil
	},
}

// headLaw compiles a head law expression that may only use the given
// variables, and checks that it evaluates to a number.
func headLaw(expr string, vars ...string) (*govaluate.EvaluableExpression, error) {
	e, err := govaluate.NewEvaluableExpressionWithFunctions(expr, headLawFunctions)
	if err != nil {
		return nil, fmt.Errorf("pumputil: parsing head law %q: %v", expr, err)
	}
	allowed := make(map[string]bool)
	test := make(map[string]interface{})
	for _, v := range vars {
		allowed[v] = true
		test[v] = 1.0
	}
	for _, v := range e.Vars() {
		if !allowed[v] {
			return nil, fmt.Errorf("pumputil: head law %q uses unknown variable %q; valid variables are %s",
				expr, v, strings.Join(vars, ", "))
		}
	}
	r, err := e.Evaluate(test)
	if err != nil {
		return nil, fmt.Errorf("pumputil: evaluating head law %q: %v", expr, err)
	}
	if _, ok := r.(float64); !ok {
		return nil, fmt.Errorf("pumputil: head law %q does not evaluate to a number", expr)
	}
	return e, nil
}

// evaluateHead evaluates a compiled head law, returning NaN if the
// evaluation fails.
func evaluateHead(e *govaluate.EvaluableExpression, vars map[string]interface{}) float64 {
	r, err := e.Evaluate(vars)
	if err != nil {
		return math.NaN()
	}
	h, ok := r.(float64)
	if !ok {
		return math.NaN()
	}
	return h
}

// CurveHeadLaw compiles expr into a design curve head law. The expression
// can use the variables Q (flow rate [m³/s]), Qd (design flow rate), and
// Hd (design head [m]), for example "Hd * (1.2 - 0.8 * (Q/Qd)**2)".
// An empty expression returns nil, which selects the default law.
func CurveHeadLaw(expr string) (pumpsim.CurveHeadLaw, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	e, err := headLaw(expr, "Q", "Qd", "Hd")
	if err != nil {
		return nil, err
	}
	return func(q, qDesign, hDesign float64) float64 {
		return evaluateHead(e, map[string]interface{}{"Q": q, "Qd": qDesign, "Hd": hDesign})
	}, nil
}

// MapHeadLaw compiles expr into a performance map head law. The expression
// can use the variables N (speed [rad/s]), Nd (design speed), and Q
// (flow rate [m³/s]), for example "100 * (N/Nd)**2 * (1.2 - 0.8 * (Q/0.1)**2)".
// An empty expression returns nil, which selects the default law.
func MapHeadLaw(expr string) (pumpsim.MapHeadLaw, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	e, err := headLaw(expr, "N", "Nd", "Q")
	if err != nil {
		return nil, err
	}
	return func(n, nDesign, q float64) float64 {
		return evaluateHead(e, map[string]interface{}{"N": n, "Nd": nDesign, "Q": q})
	}, nil
}

// operatingPoint reads the operating point and pump geometry from cfg.
func operatingPoint(cfg *viper.Viper) (pumpsim.OperatingPoint, pumpsim.PumpGeometry, error) {
	op := pumpsim.OperatingPoint{
		Temperature: cfg.GetFloat64("Temperature"),
		Pressure:    cfg.GetFloat64("Pressure"),
		FlowRate:    cfg.GetFloat64("FlowRate"),
		Head:        cfg.GetFloat64("Head"),
	}
	g := pumpsim.PumpGeometry{
		ImpellerDiameter: cfg.GetFloat64("Pump.ImpellerDiameter"),
		Speed:            rpmToRadPerSecond(cfg.GetFloat64("Pump.Speed")),
		Efficiency:       cfg.GetFloat64("Pump.Efficiency"),
	}
	if err := op.Validate(); err != nil {
		return op, g, err
	}
	if err := g.Validate(); err != nil {
		return op, g, err
	}
	return op, g, nil
}

// curveOptions reads the design curve options from cfg.
func curveOptions(cfg *viper.Viper) (pumpsim.CurveOptions, error) {
	law, err := CurveHeadLaw(cfg.GetString("Curve.HeadLaw"))
	if err != nil {
		return pumpsim.CurveOptions{}, err
	}
	return pumpsim.CurveOptions{
		Points:   cfg.GetInt("Curve.Points"),
		HeadLaw:  law,
		Parallel: cfg.GetBool("Parallel"),
	}, nil
}

// mapOptions reads the performance map options from cfg.
func mapOptions(cfg *viper.Viper) (pumpsim.MapOptions, error) {
	law, err := MapHeadLaw(cfg.GetString("Map.HeadLaw"))
	if err != nil {
		return pumpsim.MapOptions{}, err
	}
	return pumpsim.MapOptions{
		SpeedLines:    cfg.GetInt("Map.SpeedLines"),
		FlowMin:       cfg.GetFloat64("Map.FlowMin"),
		FlowMax:       cfg.GetFloat64("Map.FlowMax"),
		FlowPoints:    cfg.GetInt("Map.FlowPoints"),
		ReferenceHead: cfg.GetFloat64("Map.ReferenceHead"),
		ReferenceFlow: cfg.GetFloat64("Map.ReferenceFlow"),
		HeadLaw:       law,
		Parallel:      cfg.GetBool("Parallel"),
	}, nil
}

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
	"io"
	"os"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/pumpsim"
	"github.com/spatialmodel/pumpsim/fluidprop"
)

// EvaluatePoint builds the mixture, property source, operating point, and
// pump specified by cfg, and evaluates the performance of the pump at the
// operating point. Mixture components whose properties could not be found
// are logged as warnings.
func EvaluatePoint(cfg *viper.Viper) (*pumpsim.Mixture, *pumpsim.Point, error) {
	mix, err := ParseComponents(cfg.GetStringSlice("Components"))
	if err != nil {
		return nil, nil, err
	}
	src, _, err := PropertySource(cfg.GetString("FluidData"), cfg.GetInt("CacheSize"))
	if err != nil {
		return nil, nil, err
	}
	op, g, err := operatingPoint(cfg)
	if err != nil {
		return nil, nil, err
	}
	Log.WithFields(logrus.Fields{
		"components":  mix.Len(),
		"temperature": op.Temperature,
		"pressure":    op.Pressure,
	}).Debug("pumpsim evaluating operating point")
	p, err := pumpsim.EvaluatePoint(mix, src, op, g)
	if err != nil {
		return nil, nil, err
	}
	for _, s := range p.Skipped {
		Log.WithFields(logrus.Fields{
			"fluid":    s.Fluid,
			"fraction": s.Fraction,
			"error":    s.Err,
		}).Warn("pumpsim skipped mixture component")
	}
	if c, ok := src.(*fluidprop.Cache); ok {
		Log.WithFields(logrus.Fields{"lookups": c.Lookups()}).Debug("pumpsim property cache")
	}
	return mix, p, nil
}

// WriteFluids writes the fluids in table t and their valid ranges to w.
func WriteFluids(w io.Writer, t *fluidprop.Table) error {
	fmt.Fprintf(w, "%-16s %-7s %-20s %s\n", "Fluid", "Phase", "Temperature (K)", "Pressure (kPa)")
	for _, name := range t.Fluids() {
		f, err := t.Fluid(name)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-16s %-7s %-20s %.0f to %.0f\n", f.Name, f.Phase,
			fmt.Sprintf("%.2f to %.2f", f.MinTemperature, f.MaxTemperature),
			f.MinPressure/1000, f.MaxPressure/1000); err != nil {
			return err
		}
	}
	return nil
}

// writePlot calls plot with the file at path, if path is not empty.
func writePlot(path string, plot func(io.Writer) error) error {
	if path == "" {
		return nil
	}
	path = os.ExpandEnv(path)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pumputil: creating PlotFile: %v", err)
	}
	if err := plot(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("pumputil: closing PlotFile: %v", err)
	}
	Log.WithFields(logrus.Fields{"file": path}).Info("pumpsim wrote plot")
	return nil
}

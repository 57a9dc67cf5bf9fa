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
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// CurveHeadLaw returns the head [m] a pump develops at flow rate q [m³/s],
// given its design flow rate qDesign and design head hDesign.
type CurveHeadLaw func(q, qDesign, hDesign float64) float64

// ParabolicHeadLaw is a parabolic droop curve, H = Hd (1.2 − 0.8 (Q/Qd)²).
// The shut-off head is 1.2 Hd and the head at the design flow rate is 0.4 Hd.
func ParabolicHeadLaw(q, qDesign, hDesign float64) float64 {
	r := q / qDesign
	return hDesign * (1.2 - 0.8*r*r)
}

// CurveOptions specify how a design curve is sampled. Zero values are
// replaced by the defaults given for each field.
type CurveOptions struct {
	// Points is the number of flow rate samples. The default is 50.
	Points int

	// MinFlowFraction and MaxFlowFraction give the sampled flow rate
	// range as fractions of the design flow rate. The defaults are
	// 0.1 and 1.5.
	MinFlowFraction, MaxFlowFraction float64

	// HeadLaw synthesizes the head at each sample. The default is
	// ParabolicHeadLaw.
	HeadLaw CurveHeadLaw

	// Parallel specifies whether to calculate the samples concurrently.
	Parallel bool
}

func (o CurveOptions) withDefaults() (CurveOptions, error) {
	if o.Points == 0 {
		o.Points = 50
	}
	if o.MinFlowFraction == 0 {
		o.MinFlowFraction = 0.1
	}
	if o.MaxFlowFraction == 0 {
		o.MaxFlowFraction = 1.5
	}
	if o.HeadLaw == nil {
		o.HeadLaw = ParabolicHeadLaw
	}
	if o.Points < 2 {
		return o, &InvalidParameterError{Name: "curve points", Value: float64(o.Points), Want: ">= 2"}
	}
	if err := checkPositive("minimum flow fraction", o.MinFlowFraction); err != nil {
		return o, err
	}
	if !(o.MaxFlowFraction > o.MinFlowFraction) {
		return o, &InvalidParameterError{Name: "maximum flow fraction", Value: o.MaxFlowFraction,
			Want: "> minimum flow fraction"}
	}
	return o, nil
}

// Curve holds a pump characteristic curve. All of the slices are indexed
// by sample and have the same length.
type Curve struct {
	DesignFlow, DesignHead float64

	Flow         []float64 // [m³/s]
	Head         []float64 // [m]
	ShaftPower   []float64 // [W]
	Efficiency   []float64 // [-]
	NPSHRequired []float64 // [m]

	// Valid is false for samples where the synthesized head is not
	// positive, i.e. the pump is past run-out. The performance of
	// those samples is not calculated and is left at zero.
	Valid []bool

	Records []PerformanceRecord
}

// DesignCurve calculates the characteristic curve of a pump with
// design flow rate qDesign [m³/s] and design head hDesign [m]. The other
// arguments are as for Performance. The head at each sampled flow rate
// is synthesized with o.HeadLaw and the performance is calculated
// with Performance.
//
// The design point is evaluated first, so invalid fluid or pump parameters
// cause an error rather than a curve full of invalid samples.
func DesignCurve(qDesign, hDesign, rho, mu, d, n, eta float64, o CurveOptions) (*Curve, error) {
	o, err := o.withDefaults()
	if err != nil {
		return nil, err
	}
	if err := checkPositive("design flow rate", qDesign); err != nil {
		return nil, err
	}
	if _, err := Performance(qDesign, hDesign, rho, mu, d, n, eta); err != nil {
		return nil, err
	}

	c := &Curve{
		DesignFlow:   qDesign,
		DesignHead:   hDesign,
		Flow:         floats.Span(make([]float64, o.Points), o.MinFlowFraction*qDesign, o.MaxFlowFraction*qDesign),
		Head:         make([]float64, o.Points),
		ShaftPower:   make([]float64, o.Points),
		Efficiency:   make([]float64, o.Points),
		NPSHRequired: make([]float64, o.Points),
		Valid:        make([]bool, o.Points),
		Records:      make([]PerformanceRecord, o.Points),
	}
	err = forEachSample(o.Points, o.Parallel, func(i int) error {
		q := c.Flow[i]
		h := o.HeadLaw(q, qDesign, hDesign)
		c.Head[i] = h
		if !(h > 0) {
			return nil
		}
		r, err := Performance(q, h, rho, mu, d, n, eta)
		if err != nil {
			return err
		}
		c.Valid[i] = true
		c.Records[i] = r
		c.ShaftPower[i] = r.ShaftPower
		c.Efficiency[i] = r.Efficiency
		c.NPSHRequired[i] = r.NPSHRequired
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// MapHeadLaw returns the head [m] a pump develops at angular speed n
// [rad/s] and flow rate q [m³/s], given its design speed nDesign.
type MapHeadLaw func(n, nDesign, q float64) float64

// ReferenceHeadLaw returns a head law that scales a parabolic droop curve
// through (refFlow, 0.4·refHead) with the square of the speed ratio:
// H = refHead (N/Nd)² (1.2 − 0.8 (Q/refFlow)²).
func ReferenceHeadLaw(refHead, refFlow float64) MapHeadLaw {
	return func(n, nDesign, q float64) float64 {
		s := n / nDesign
		r := q / refFlow
		return refHead * s * s * (1.2 - 0.8*r*r)
	}
}

// MapOptions specify how a performance map is sampled. Zero values are
// replaced by the defaults given for each field.
type MapOptions struct {
	// SpeedLines is the number of speeds to sample. The default is 5.
	SpeedLines int

	// MinSpeedFraction and MaxSpeedFraction give the sampled speed range
	// as fractions of the design speed. The defaults are 0.7 and 1.3.
	MinSpeedFraction, MaxSpeedFraction float64

	// FlowMin and FlowMax give the sampled flow rate range [m³/s].
	// The defaults are 0.01 and 0.2. The range does not depend on the
	// design flow rate.
	FlowMin, FlowMax float64

	// FlowPoints is the number of flow rate samples on each speed line.
	// The default is 30.
	FlowPoints int

	// ReferenceHead [m] and ReferenceFlow [m³/s] anchor the default head
	// law. The defaults are 100 and 0.1, which do not depend
	// on the design point.
	ReferenceHead, ReferenceFlow float64

	// HeadLaw synthesizes the head at each sample. The default is
	// ReferenceHeadLaw(ReferenceHead, ReferenceFlow).
	HeadLaw MapHeadLaw

	// Parallel specifies whether to calculate the samples concurrently.
	Parallel bool
}

func (o MapOptions) withDefaults() (MapOptions, error) {
	if o.SpeedLines == 0 {
		o.SpeedLines = 5
	}
	if o.MinSpeedFraction == 0 {
		o.MinSpeedFraction = 0.7
	}
	if o.MaxSpeedFraction == 0 {
		o.MaxSpeedFraction = 1.3
	}
	if o.FlowMin == 0 {
		o.FlowMin = 0.01
	}
	if o.FlowMax == 0 {
		o.FlowMax = 0.2
	}
	if o.FlowPoints == 0 {
		o.FlowPoints = 30
	}
	if o.ReferenceHead == 0 {
		o.ReferenceHead = 100
	}
	if o.ReferenceFlow == 0 {
		o.ReferenceFlow = 0.1
	}
	if o.SpeedLines < 2 {
		return o, &InvalidParameterError{Name: "speed lines", Value: float64(o.SpeedLines), Want: ">= 2"}
	}
	if o.FlowPoints < 2 {
		return o, &InvalidParameterError{Name: "flow points", Value: float64(o.FlowPoints), Want: ">= 2"}
	}
	if err := checkPositive("minimum speed fraction", o.MinSpeedFraction); err != nil {
		return o, err
	}
	if !(o.MaxSpeedFraction > o.MinSpeedFraction) {
		return o, &InvalidParameterError{Name: "maximum speed fraction", Value: o.MaxSpeedFraction,
			Want: "> minimum speed fraction"}
	}
	if err := checkPositive("minimum flow rate", o.FlowMin); err != nil {
		return o, err
	}
	if !(o.FlowMax > o.FlowMin) {
		return o, &InvalidParameterError{Name: "maximum flow rate", Value: o.FlowMax,
			Want: "> minimum flow rate"}
	}
	if err := checkPositive("reference flow rate", o.ReferenceFlow); err != nil {
		return o, err
	}
	if o.HeadLaw == nil {
		o.HeadLaw = ReferenceHeadLaw(o.ReferenceHead, o.ReferenceFlow)
	}
	return o, nil
}

// SpeedLine holds the head and power of a pump at one speed across a range
// of flow rates. The slices are indexed by sample.
type SpeedLine struct {
	Speed float64   // [rad/s]
	Flow  []float64 // [m³/s]
	Head  []float64 // [m]
	Power []float64 // shaft power [W]
}

// Map is a pump performance map: a family of speed lines.
type Map struct {
	DesignSpeed float64
	Lines       []SpeedLine
}

// PerformanceMap calculates the performance map of a pump with design
// angular speed nDesign [rad/s] and efficiency eta pumping a fluid with
// density rho [kg/m³].
//
// The shaft power at each sample is ρ g Q H / η, calculated directly
// rather than with Performance. Past run-out the synthesized head, and
// therefore the power, is negative; those samples are kept as calculated.
func PerformanceMap(nDesign, rho, eta float64, o MapOptions) (*Map, error) {
	o, err := o.withDefaults()
	if err != nil {
		return nil, err
	}
	for _, v := range []struct {
		name string
		v    float64
	}{
		{"design speed", nDesign}, {"density", rho}, {"efficiency", eta},
	} {
		if err := checkPositive(v.name, v.v); err != nil {
			return nil, err
		}
	}

	speeds := floats.Span(make([]float64, o.SpeedLines), o.MinSpeedFraction*nDesign, o.MaxSpeedFraction*nDesign)
	flows := floats.Span(make([]float64, o.FlowPoints), o.FlowMin, o.FlowMax)
	m := &Map{
		DesignSpeed: nDesign,
		Lines:       make([]SpeedLine, o.SpeedLines),
	}
	for i, n := range speeds {
		m.Lines[i] = SpeedLine{
			Speed: n,
			Flow:  append([]float64(nil), flows...),
			Head:  make([]float64, o.FlowPoints),
			Power: make([]float64, o.FlowPoints),
		}
	}
	err = forEachSample(o.SpeedLines*o.FlowPoints, o.Parallel, func(k int) error {
		line := &m.Lines[k/o.FlowPoints]
		j := k % o.FlowPoints
		q := line.Flow[j]
		h := o.HeadLaw(line.Speed, nDesign, q)
		line.Head[j] = h
		line.Power[j] = rho * Gravity * q * h / eta
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// forEachSample calls f for each sample index in [0, n). If parallel is
// true, the samples are divided among concurrent workers. f must only
// write to storage belonging to its own index. The returned error is that
// of the lowest failing index, so the result does not depend on
// scheduling.
func forEachSample(n int, parallel bool, f func(i int) error) error {
	errs := make([]error, n)
	if !parallel {
		for i := 0; i < n; i++ {
			if errs[i] = f(i); errs[i] != nil {
				return errs[i]
			}
		}
		return nil
	}
	nprocs := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			for i := pp; i < n; i += nprocs {
				errs[i] = f(i)
			}
			wg.Done()
		}(pp)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}


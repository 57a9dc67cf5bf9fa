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
	"math"
	"testing"

	"github.com/kr/pretty"
)

const (
	testRho = 998.2
	testMu  = 1.002e-3
	testD   = 0.3
	testN   = 1750 * 2 * math.Pi / 60
	testEta = 0.75
)

func TestParabolicHeadLaw(t *testing.T) {
	if h := ParabolicHeadLaw(0.1, 0.1, 50); different(h, 0.4*50, testTolerance) {
		t.Errorf("head at design flow = %g, want 20", h)
	}
	if h := ParabolicHeadLaw(0, 0.1, 50); different(h, 60, testTolerance) {
		t.Errorf("shut-off head = %g, want 60", h)
	}
}

func TestReferenceHeadLaw(t *testing.T) {
	law := ReferenceHeadLaw(100, 0.1)
	if h := law(testN, testN, 0.1); different(h, 40, testTolerance) {
		t.Errorf("head at design speed = %g, want 40", h)
	}
	if h := law(2*testN, testN, 0); different(h, 480, testTolerance) {
		t.Errorf("shut-off head at twice the speed = %g, want 480", h)
	}
}

func TestDesignCurve(t *testing.T) {
	c, err := DesignCurve(0.1, 50, testRho, testMu, testD, testN, testEta, CurveOptions{})
	if err != nil {
		t.Fatal(err)
	}
	for name, s := range map[string]int{
		"flow": len(c.Flow), "head": len(c.Head), "power": len(c.ShaftPower),
		"efficiency": len(c.Efficiency), "NPSHr": len(c.NPSHRequired),
		"valid": len(c.Valid), "records": len(c.Records),
	} {
		if s != 50 {
			t.Errorf("%s has %d samples, want 50", name, s)
		}
	}
	if different(c.Flow[0], 0.01, testTolerance) || different(c.Flow[49], 0.15, testTolerance) {
		t.Errorf("flow range = [%g, %g], want [0.01, 0.15]", c.Flow[0], c.Flow[49])
	}
	for i := 1; i < len(c.Flow); i++ {
		if !(c.Flow[i] > c.Flow[i-1]) {
			t.Fatalf("flow is not increasing at sample %d", i)
		}
	}
	for i, q := range c.Flow {
		if !c.Valid[i] {
			if c.Head[i] > 0 {
				t.Errorf("sample %d (q=%g, h=%g) should be valid", i, q, c.Head[i])
			}
			continue
		}
		want, err := Performance(q, c.Head[i], testRho, testMu, testD, testN, testEta)
		if err != nil {
			t.Fatal(err)
		}
		if diff := pretty.Diff(c.Records[i], want); len(diff) != 0 {
			t.Errorf("sample %d: %v", i, diff)
		}
		if c.ShaftPower[i] != want.ShaftPower || c.Efficiency[i] != testEta {
			t.Errorf("sample %d: series do not match record", i)
		}
	}
}

func TestDesignCurveAtDesignFlow(t *testing.T) {
	c, err := DesignCurve(0.1, 50, testRho, testMu, testD, testN, testEta,
		CurveOptions{Points: 3, MinFlowFraction: 0.5, MaxFlowFraction: 1.5})
	if err != nil {
		t.Fatal(err)
	}
	if different(c.Flow[1], 0.1, testTolerance) {
		t.Fatalf("middle sample flow = %g, want 0.1", c.Flow[1])
	}
	if different(c.Head[1], 0.4*50, testTolerance) {
		t.Errorf("head at design flow = %g, want 20", c.Head[1])
	}
}

func TestDesignCurveRunOut(t *testing.T) {
	// The parabolic law reaches zero head at √1.5 = 1.22 times the
	// design flow rate.
	c, err := DesignCurve(0.1, 50, testRho, testMu, testD, testN, testEta,
		CurveOptions{Points: 11, MinFlowFraction: 1.0, MaxFlowFraction: 2.0})
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Flow) != 11 {
		t.Fatalf("have %d samples", len(c.Flow))
	}
	for i, q := range c.Flow {
		runOut := q/0.1 > math.Sqrt(1.5)
		if c.Valid[i] == runOut {
			t.Errorf("sample %d (q/qd=%g): valid = %v", i, q/0.1, c.Valid[i])
		}
		if runOut && (c.ShaftPower[i] != 0 || c.Head[i] >= 0) {
			t.Errorf("sample %d: power = %g, head = %g", i, c.ShaftPower[i], c.Head[i])
		}
	}
}

func TestDesignCurveInvalid(t *testing.T) {
	tests := []struct {
		name               string
		qd, hd, mu, d, eta float64
		o                  CurveOptions
	}{
		{name: "points", qd: 0.1, hd: 50, mu: testMu, d: testD, eta: testEta, o: CurveOptions{Points: 1}},
		{name: "flow range", qd: 0.1, hd: 50, mu: testMu, d: testD, eta: testEta,
			o: CurveOptions{MinFlowFraction: 1.5, MaxFlowFraction: 0.5}},
		{name: "design flow", qd: 0, hd: 50, mu: testMu, d: testD, eta: testEta},
		{name: "design head", qd: 0.1, hd: 0, mu: testMu, d: testD, eta: testEta},
		{name: "viscosity", qd: 0.1, hd: 50, mu: 0, d: testD, eta: testEta},
		{name: "diameter", qd: 0.1, hd: 50, mu: testMu, d: 0, eta: testEta},
		{name: "efficiency", qd: 0.1, hd: 50, mu: testMu, d: testD, eta: 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := DesignCurve(test.qd, test.hd, testRho, test.mu, test.d, testN, test.eta, test.o)
			var ipe *InvalidParameterError
			if !errors.As(err, &ipe) {
				t.Errorf("err = %v, want *InvalidParameterError", err)
			}
		})
	}
}

func TestDesignCurveCustomHeadLaw(t *testing.T) {
	flat := func(q, qd, hd float64) float64 { return hd }
	c, err := DesignCurve(0.1, 50, testRho, testMu, testD, testN, testEta,
		CurveOptions{Points: 5, HeadLaw: flat})
	if err != nil {
		t.Fatal(err)
	}
	for i, h := range c.Head {
		if h != 50 {
			t.Errorf("head %d = %g, want 50", i, h)
		}
	}
}

func TestPerformanceMap(t *testing.T) {
	m, err := PerformanceMap(testN, testRho, testEta, MapOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Lines) != 5 {
		t.Fatalf("have %d speed lines, want 5", len(m.Lines))
	}
	if different(m.Lines[0].Speed, 0.7*testN, testTolerance) ||
		different(m.Lines[4].Speed, 1.3*testN, testTolerance) ||
		different(m.Lines[2].Speed, testN, testTolerance) {
		t.Errorf("speeds = %g, %g, %g", m.Lines[0].Speed, m.Lines[2].Speed, m.Lines[4].Speed)
	}
	for i, l := range m.Lines {
		if i > 0 && !(l.Speed > m.Lines[i-1].Speed) {
			t.Errorf("speed is not increasing at line %d", i)
		}
		if len(l.Flow) != 30 || len(l.Head) != 30 || len(l.Power) != 30 {
			t.Fatalf("line %d has %d, %d, %d samples, want 30", i, len(l.Flow), len(l.Head), len(l.Power))
		}
		if different(l.Flow[0], 0.01, testTolerance) || different(l.Flow[29], 0.2, testTolerance) {
			t.Errorf("line %d flow range = [%g, %g]", i, l.Flow[0], l.Flow[29])
		}
		for j := range l.Flow {
			if j > 0 && !(l.Flow[j] > l.Flow[j-1]) {
				t.Errorf("line %d: flow is not increasing at sample %d", i, j)
			}
			want := testRho * Gravity * l.Flow[j] * l.Head[j] / testEta
			if different(l.Power[j], want, testTolerance) {
				t.Errorf("line %d sample %d: power = %g, want %g", i, j, l.Power[j], want)
			}
		}
	}
	// Heads past run-out are kept as calculated.
	if h := m.Lines[0].Head[29]; !(h < 0) {
		t.Errorf("head at 0.2 m³/s = %g, want < 0", h)
	}
}

func TestPerformanceMapAtReference(t *testing.T) {
	m, err := PerformanceMap(testN, testRho, testEta,
		MapOptions{SpeedLines: 3, FlowMin: 0.05, FlowMax: 0.15, FlowPoints: 3})
	if err != nil {
		t.Fatal(err)
	}
	l := m.Lines[1]
	if different(l.Flow[1], 0.1, testTolerance) {
		t.Fatalf("middle flow = %g, want 0.1", l.Flow[1])
	}
	if different(l.Head[1], 40, testTolerance) {
		t.Errorf("head at design speed and 0.1 m³/s = %g, want 40", l.Head[1])
	}
}

func TestPerformanceMapReferenceOptions(t *testing.T) {
	m, err := PerformanceMap(testN, testRho, testEta,
		MapOptions{SpeedLines: 3, FlowMin: 0.025, FlowMax: 0.075, FlowPoints: 3,
			ReferenceHead: 50, ReferenceFlow: 0.05})
	if err != nil {
		t.Fatal(err)
	}
	if h := m.Lines[1].Head[1]; different(h, 20, testTolerance) {
		t.Errorf("head = %g, want 20", h)
	}
}

func TestPerformanceMapInvalid(t *testing.T) {
	tests := []struct {
		name        string
		n, rho, eta float64
		o           MapOptions
	}{
		{name: "speed lines", n: testN, rho: testRho, eta: testEta, o: MapOptions{SpeedLines: 1}},
		{name: "flow points", n: testN, rho: testRho, eta: testEta, o: MapOptions{FlowPoints: -3}},
		{name: "flow range", n: testN, rho: testRho, eta: testEta, o: MapOptions{FlowMin: 0.3}},
		{name: "speed range", n: testN, rho: testRho, eta: testEta,
			o: MapOptions{MinSpeedFraction: 1.2, MaxSpeedFraction: 1.1}},
		{name: "reference flow", n: testN, rho: testRho, eta: testEta, o: MapOptions{ReferenceFlow: -1}},
		{name: "design speed", n: 0, rho: testRho, eta: testEta},
		{name: "density", n: testN, rho: 0, eta: testEta},
		{name: "efficiency", n: testN, rho: testRho, eta: 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := PerformanceMap(test.n, test.rho, test.eta, test.o)
			var ipe *InvalidParameterError
			if !errors.As(err, &ipe) {
				t.Errorf("err = %v, want *InvalidParameterError", err)
			}
		})
	}
}

func TestSweepParallel(t *testing.T) {
	seqCurve, err := DesignCurve(0.1, 50, testRho, testMu, testD, testN, testEta,
		CurveOptions{MaxFlowFraction: 2})
	if err != nil {
		t.Fatal(err)
	}
	parCurve, err := DesignCurve(0.1, 50, testRho, testMu, testD, testN, testEta,
		CurveOptions{MaxFlowFraction: 2, Parallel: true})
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(seqCurve, parCurve); len(diff) != 0 {
		t.Errorf("curve: %v", diff)
	}

	seqMap, err := PerformanceMap(testN, testRho, testEta, MapOptions{})
	if err != nil {
		t.Fatal(err)
	}
	parMap, err := PerformanceMap(testN, testRho, testEta, MapOptions{Parallel: true})
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(seqMap, parMap); len(diff) != 0 {
		t.Errorf("map: %v", diff)
	}
}

func TestForEachSampleError(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		err := forEachSample(100, parallel, func(i int) error {
			if i == 17 || i == 60 {
				return &InvalidParameterError{Name: "sample", Value: float64(i), Want: "ok"}
			}
			return nil
		})
		var ipe *InvalidParameterError
		if !errors.As(err, &ipe) || ipe.Value != 17 {
			t.Errorf("parallel=%v: err = %v, want the error for sample 17", parallel, err)
		}
	}
}

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
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestCache(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	stub := SourceFunc(func(p Property, T, P float64, fluid string) (float64, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		if fluid == "Bad" {
			return 0, &UnknownFluidError{Fluid: fluid}
		}
		return T + P, nil
	})
	c := NewCache(stub, 10)

	for i := 0; i < 3; i++ {
		v, err := c.Lookup(Density, 300, 100, "Water")
		if err != nil {
			t.Fatal(err)
		}
		if v != 400 {
			t.Errorf("have %g, want 400", v)
		}
	}
	if calls != 1 || c.Lookups() != 1 {
		t.Errorf("calls = %d, lookups = %d; want 1", calls, c.Lookups())
	}

	if _, err := c.Lookup(Viscosity, 300, 100, "Water"); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("a different property should be a different entry: calls = %d", calls)
	}

	for i := 0; i < 2; i++ {
		_, err := c.Lookup(Density, 300, 100, "Bad")
		var ufe *UnknownFluidError
		if !errors.As(err, &ufe) {
			t.Fatalf("have %v, want UnknownFluidError", err)
		}
	}
	if calls != 3 {
		t.Errorf("failed lookups should be cached: calls = %d", calls)
	}
}

// TestCacheConcurrent should also be run with the -race flag.
func TestCacheConcurrent(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	tbl := DefaultTable()
	counted := SourceFunc(func(p Property, T, P float64, fluid string) (float64, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return tbl.Lookup(p, T, P, fluid)
	})
	c := NewCache(counted, 100)
	fluids := []string{"Water", "Ethanol", "Unobtainium"}
	var wg sync.WaitGroup
	errs := make([]error, 60)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fluid := fluids[i%len(fluids)]
			v, err := c.Lookup(Density, 293.15, 101325, fluid)
			want, wantErr := tbl.Lookup(Density, 293.15, 101325, fluid)
			if (err == nil) != (wantErr == nil) {
				errs[i] = fmt.Errorf("%s: have error %v, want %v", fluid, err, wantErr)
			} else if err == nil && v != want {
				errs[i] = fmt.Errorf("%s: have %g, want %g", fluid, v, want)
			}
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			t.Error(err)
		}
	}
	if calls != len(fluids) || c.Lookups() != len(fluids) {
		t.Errorf("calls = %d, lookups = %d; want %d", calls, c.Lookups(), len(fluids))
	}
}

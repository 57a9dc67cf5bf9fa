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
	"context"
	"fmt"
	"sync"

	"github.com/ctessum/requestcache"
)

// Cache is a Source that remembers the results of another Source.
// Failed lookups are remembered as well, so the underlying source
// must be deterministic. A Cache is safe for concurrent use; lookups
// are handled one at a time.
type Cache struct {
	src   Source
	cache *requestcache.Cache

	// mu serializes requests: requestcache requests must not share
	// a result with a concurrent duplicate.
	mu sync.Mutex
}

type lookupRequest struct {
	p     Property
	T, P  float64
	fluid string
}

// lookupResult carries the error inside of the payload so that failed
// lookups are kept in memory too.
type lookupResult struct {
	v   float64
	err error
}

// NewCache returns a cache of the results of src holding up to
// maxEntries lookups.
func NewCache(src Source, maxEntries int) *Cache {
	c := &Cache{src: src}
	c.cache = requestcache.NewCache(c.process, 1, requestcache.Memory(maxEntries))
	return c
}

func (c *Cache) process(_ context.Context, request interface{}) (interface{}, error) {
	r := request.(lookupRequest)
	v, err := c.src.Lookup(r.p, r.T, r.P, r.fluid)
	return lookupResult{v: v, err: err}, nil
}

// Lookup implements Source.
func (c *Cache) Lookup(p Property, T, P float64, fluid string) (float64, error) {
	key := fmt.Sprintf("%s_%s_%g_%g", fluid, string(p), T, P)
	c.mu.Lock()
	req := c.cache.NewRequest(context.Background(), lookupRequest{p: p, T: T, P: P, fluid: fluid}, key)
	result, err := req.Result()
	c.mu.Unlock()
	if err != nil {
		return 0, err
	}
	r := result.(lookupResult)
	return r.v, r.err
}

// Lookups returns the number of lookups that have been passed on to the
// underlying source.
func (c *Cache) Lookups() int {
	r := c.cache.Requests()
	return r[len(r)-1]
}

// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tetmesh

import (
	"math"
	"sync/atomic"
)

const unclaimed = math.MaxInt32

// claimTable resolves overlapping work within a round. Every candidate claims
// the tetrahedra it would touch with its rank; a tetrahedron ends up owned by
// the lowest rank, so the winners do not depend on the order of the claims.
type claimTable struct {
	owner []atomic.Int32
}

// prepare makes room for n tetrahedra. All entries must be unclaimed.
func (c *claimTable) prepare(n int) {
	if n <= len(c.owner) {
		return
	}
	c.owner = make([]atomic.Int32, max(n, 2*len(c.owner)))
	for i := range c.owner {
		c.owner[i].Store(unclaimed)
	}
}

func (c *claimTable) claim(t, rank int32) {
	o := &c.owner[t]
	for {
		cur := o.Load()
		if cur <= rank || o.CompareAndSwap(cur, rank) {
			return
		}
	}
}

func (c *claimTable) holds(t, rank int32) bool {
	return c.owner[t].Load() == rank
}

func (c *claimTable) release(t int32) {
	c.owner[t].Store(unclaimed)
}

// claimAll claims every tetrahedron in sets[i] with rank ranks[i] and returns
// the indices of the candidates that hold all of their claims, in order. The
// table is left unclaimed.
func (c *claimTable) claimAll(workers int, sets [][]int32, ranks []int32) ([]int, error) {
	err := forEach(workers, len(sets), func(i int) error {
		for _, t := range sets[i] {
			c.claim(t, ranks[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	won := make([]bool, len(sets))
	err = forEach(workers, len(sets), func(i int) error {
		won[i] = true
		for _, t := range sets[i] {
			if !c.holds(t, ranks[i]) {
				won[i] = false
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = forEach(workers, len(sets), func(i int) error {
		for _, t := range sets[i] {
			c.release(t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var winners []int
	for i, ok := range won {
		if ok {
			winners = append(winners, i)
		}
	}
	return winners, nil
}

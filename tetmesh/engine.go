// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tetmesh

import (
	"runtime"
	"slices"
	"time"

	"github.com/2dChan/delaunay3d/spatial"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// DefaultMaxRounds bounds the insertion rounds and the flip rounds of a
// single repair when Config.MaxRounds is not set.
const DefaultMaxRounds = 1 << 20

// Config controls Build.
type Config struct {
	// Workers is the number of goroutines per parallel step. Zero means
	// GOMAXPROCS.
	Workers int
	// MaxRounds is the round limit, see DefaultMaxRounds.
	MaxRounds int
	// SpatialSort inserts the points in Morton order instead of input order.
	SpatialSort bool
}

// Stats describes a Build run.
type Stats struct {
	Rounds   int
	Inserted int
	// Splits counts the points inserted by splitting the tetrahedra around
	// them; the others replaced their whole conflict region.
	Splits  int
	Flips23 int
	Flips32 int
	Flips44 int
	// Unflippable counts the vertices whose violated link faces admitted no
	// flip and which were re-inserted with a star flip.
	Unflippable int
	Duplicates  int
	Elapsed     time.Duration
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.MaxRounds <= 0 {
		c.MaxRounds = DefaultMaxRounds
	}
	return c
}

// Build computes the Delaunay tetrahedralization of points. Exact duplicates
// are merged into their lowest index and reported in the returned map. The
// result is identical for every worker count.
func Build(points []r3.Vector, cfg Config) (*Mesh, map[int]int, Stats, error) {
	start := time.Now()
	cfg = cfg.withDefaults()
	var st Stats

	if err := validate(points); err != nil {
		return nil, nil, st, err
	}
	var order []int
	if cfg.SpatialSort {
		order = spatial.Sort(points)
	} else {
		order = make([]int, len(points))
		for i := range order {
			order[i] = i
		}
	}
	distinct, duplicates := dedupe(points, order)
	st.Duplicates = len(duplicates)
	if len(distinct) < 4 {
		return nil, nil, st, errors.Wrapf(ErrTooFewPoints, "got %d distinct points", len(distinct))
	}

	m := newMesh(points)
	v, err := m.chooseSeed(distinct)
	if err != nil {
		return nil, nil, st, err
	}
	first, err := m.seed(v)
	if err != nil {
		return nil, nil, st, err
	}
	st.Inserted = 4

	in := &inserter{m: m, cfg: cfg}
	for _, p := range distinct {
		if !slices.Contains(v[:], p) {
			in.points = append(in.points, p)
			in.hints = append(in.hints, first)
			in.exact = append(in.exact, false)
		}
	}
	for len(in.points) > 0 {
		if st.Rounds >= cfg.MaxRounds {
			return nil, nil, st, internalf("%d points left after %d rounds", len(in.points), st.Rounds)
		}
		n, fresh, err := in.round(&st)
		if err != nil {
			return nil, nil, st, err
		}
		st.Rounds++
		st.Inserted += n
		if err := m.repair(fresh, cfg, &st); err != nil {
			return nil, nil, st, err
		}
	}

	if err := m.Check(); err != nil {
		return nil, nil, st, err
	}
	if err := m.CheckDelaunay(); err != nil {
		return nil, nil, st, err
	}
	st.Elapsed = time.Since(start)
	return m, duplicates, st, nil
}

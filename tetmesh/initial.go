// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tetmesh

import (
	"math"

	"github.com/2dChan/delaunay3d/predicates"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

func validate(points []r3.Vector) error {
	if len(points) < 4 {
		return errors.Wrapf(ErrTooFewPoints, "got %d points", len(points))
	}
	for i, p := range points {
		for _, c := range [3]float64{p.X, p.Y, p.Z} {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return errors.Wrapf(ErrNonFinite, "point %d is %v", i, p)
			}
		}
	}
	return nil
}

// dedupe drops exact duplicates from order. A duplicate is merged into the
// lowest input index with the same coordinates; the returned map sends every
// dropped index to the index it was merged into.
func dedupe(points []r3.Vector, order []int) ([]int32, map[int]int) {
	first := make(map[r3.Vector]int, len(points))
	duplicates := make(map[int]int)
	for i, p := range points {
		if j, ok := first[p]; ok {
			duplicates[i] = j
			continue
		}
		first[p] = i
	}

	distinct := make([]int32, 0, len(points)-len(duplicates))
	for _, i := range order {
		if _, ok := duplicates[i]; !ok {
			distinct = append(distinct, int32(i))
		}
	}
	return distinct, duplicates
}

// chooseSeed picks four points spanning a tetrahedron of large volume. The
// choices are made in floating point and confirmed with exact predicates.
func (m *Mesh) chooseSeed(order []int32) ([4]int32, error) {
	pts := m.Points
	p0 := order[0]
	a := pts[p0]

	p1, best := order[1], -1.0
	for _, i := range order[1:] {
		if d := pts[i].Sub(a).Norm2(); d > best {
			p1, best = i, d
		}
	}
	ab := pts[p1].Sub(a)

	p2, best := int32(-1), -1.0
	for _, i := range order {
		if i == p0 || i == p1 {
			continue
		}
		if d := ab.Cross(pts[i].Sub(a)).Norm2(); d > best {
			p2, best = i, d
		}
	}
	if p2 < 0 || predicates.Collinear(a, pts[p1], pts[p2]) {
		p2 = -1
		for _, i := range order {
			if i != p0 && i != p1 && !predicates.Collinear(a, pts[p1], pts[i]) {
				p2 = i
				break
			}
		}
	}
	if p2 < 0 {
		return [4]int32{}, errors.Wrap(ErrCoplanar, "all points are collinear")
	}

	p3, best := int32(-1), -1.0
	for _, i := range order {
		if i == p0 || i == p1 || i == p2 {
			continue
		}
		if d := math.Abs(predicates.OrientVolume(a, pts[p1], pts[p2], pts[i])); d > best {
			p3, best = i, d
		}
	}
	if p3 < 0 || predicates.Orient3D(a, pts[p1], pts[p2], pts[p3]) == predicates.Zero {
		p3 = -1
		for _, i := range order {
			if predicates.Orient3D(a, pts[p1], pts[p2], pts[i]) != predicates.Zero {
				p3 = i
				break
			}
		}
	}
	if p3 < 0 {
		return [4]int32{}, errors.WithStack(ErrCoplanar)
	}
	return [4]int32{p0, p1, p2, p3}, nil
}

// seed creates the first tetrahedron and closes it with four ghosts, one per
// face. It returns the handle of the finite tetrahedron.
func (m *Mesh) seed(v [4]int32) (int32, error) {
	if m.orient(v) == predicates.Negative {
		v[0], v[1] = v[1], v[0]
	}
	fresh := [][4]int32{v}
	for i := range 4 {
		g := v
		g[i] = Infinite
		// The point at infinity lies on the side opposite to v[i], which
		// flips the orientation.
		a, b := (i+1)%4, (i+2)%4
		g[a], g[b] = g[b], g[a]
		fresh = append(fresh, g)
	}
	first := m.grow(len(fresh))
	if err := m.rebuild(nil, fresh, first); err != nil {
		return 0, err
	}
	return first, nil
}

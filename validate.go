// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunay3d

import (
	"math"

	"github.com/2dChan/delaunay3d/predicates"
	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"
	"github.com/pkg/errors"
)

// HullVolume returns the volume of the convex hull of the vertices.
func (dt *Triangulation) HullVolume() float64 {
	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(dt.Vertices, true, true, dt.eps)

	var ref r3.Vector
	for _, p := range dt.Vertices {
		ref = ref.Add(p)
	}
	ref = ref.Mul(1 / float64(len(dt.Vertices)))

	var vol float64
	for i := 0; i+2 < len(ch.Indices); i += 3 {
		a, b, c := dt.Vertices[ch.Indices[i]], dt.Vertices[ch.Indices[i+1]], dt.Vertices[ch.Indices[i+2]]
		vol += predicates.OrientVolume(ref, a, b, c) / 6
	}
	return math.Abs(vol)
}

// Validate checks the triangulation against its defining properties: every
// index is valid, every tetrahedron is positively oriented, every vertex but
// the merged duplicates is used, no vertex lies strictly inside a
// circumsphere, and the tetrahedra cover the convex hull.
// The circumsphere test is exhaustive and meant for tests and debugging.
func (dt *Triangulation) Validate() error {
	n := len(dt.Vertices)
	used := make([]bool, n)
	for i, t := range dt.Tetrahedra {
		for j, v := range t {
			if v < 0 || v >= n {
				return errors.Errorf("delaunay3d: tetrahedron %d has vertex %d out of range [0 %d)", i, v, n)
			}
			for _, w := range t[j+1:] {
				if v == w {
					return errors.Errorf("delaunay3d: tetrahedron %d repeats vertex %d", i, v)
				}
			}
			used[v] = true
		}
		a, b, c, d := dt.TetrahedronVertices(i)
		if s := predicates.Orient3D(a, b, c, d); s != predicates.Positive {
			return errors.Errorf("delaunay3d: tetrahedron %d has orientation %v", i, s)
		}
	}

	for v := range dt.Vertices {
		if _, ok := dt.Duplicates[v]; !used[v] && !ok {
			return errors.Errorf("delaunay3d: vertex %d is not used by any tetrahedron", v)
		}
	}

	for i := range dt.Tetrahedra {
		a, b, c, d := dt.TetrahedronVertices(i)
		for v, e := range dt.Vertices {
			if _, ok := dt.Duplicates[v]; ok {
				continue
			}
			if predicates.InSphere(a, b, c, d, e) == predicates.Positive {
				return errors.Errorf("delaunay3d: vertex %d lies inside the circumsphere of tetrahedron %d", v, i)
			}
		}
	}

	vol, hull := dt.Volume(), dt.HullVolume()
	if math.Abs(vol-hull) > volumeTolerance*max(hull, 1) {
		return errors.Errorf("delaunay3d: tetrahedra cover volume %v, convex hull has %v", vol, hull)
	}
	return nil
}

const volumeTolerance = 1e-9

// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tetmesh

import (
	"github.com/2dChan/delaunay3d/predicates"
)

// Check verifies the structural invariants of the mesh: distinct vertices,
// positive orientation, and symmetric adjacency over matching faces. Every
// violation is reported as an error wrapping ErrInternal. The vertices of all
// tetrahedra are checked before any link is followed.
func (m *Mesh) Check() error {
	for i := range m.Tets {
		tt := &m.Tets[i]
		if tt.State == Dead {
			continue
		}
		ghosts := 0
		for a, v := range tt.V {
			if v == Infinite {
				ghosts++
			} else if v < 0 || int(v) >= len(m.Points) {
				return internalf("tetrahedron %d: vertex %d out of range", i, v)
			}
			for _, w := range tt.V[a+1:] {
				if v == w {
					return internalf("tetrahedron %d: repeated vertex %d", i, v)
				}
			}
		}
		if ghosts > 1 {
			return internalf("tetrahedron %d: %d infinite vertices", i, ghosts)
		}
	}

	for i := range m.Tets {
		t := int32(i)
		tt := &m.Tets[t]
		if tt.State == Dead {
			continue
		}

		for f, l := range tt.Adj {
			if l == NoLink {
				return internalf("tetrahedron %d: face %d has no neighbor", t, f)
			}
			u := l.Tet()
			if u < 0 || int(u) >= len(m.Tets) || m.Tets[u].State == Dead {
				return internalf("tetrahedron %d: face %d links to dead tetrahedron %d", t, f, u)
			}
			if m.Tets[u].Adj[l.Face()] != makeLink(t, f) {
				return internalf("tetrahedron %d: face %d link is not symmetric", t, f)
			}
			if keyOf(tt.V, f) != keyOf(m.Tets[u].V, l.Face()) {
				return internalf("tetrahedron %d: face %d does not match neighbor %d", t, f, u)
			}
		}

		k := tt.GhostSlot()
		if k < 0 {
			if s := m.orient(tt.V); s != predicates.Positive {
				return internalf("tetrahedron %d: orientation is %v", t, s)
			}
			continue
		}
		inner := m.apex(t, k)
		if inner == Infinite {
			return internalf("tetrahedron %d: ghost faces a ghost", t)
		}
		if s := m.orientAs(tt.V, inner); s != predicates.Negative {
			return internalf("tetrahedron %d: ghost orientation is %v", t, s.Neg())
		}
	}
	return nil
}

// Violations returns the number of faces whose apex lies inside the
// circumsphere of the tetrahedron on the other side. It is zero for a
// Delaunay mesh.
func (m *Mesh) Violations() int {
	n := 0
	for i := range m.Tets {
		if m.Tets[i].State == Dead {
			continue
		}
		for f := range 4 {
			if m.violates(int32(i), f) {
				n++
			}
		}
	}
	return n
}

// CheckDelaunay reports an error wrapping ErrInternal when a face of the mesh
// is not locally Delaunay.
func (m *Mesh) CheckDelaunay() error {
	if n := m.Violations(); n > 0 {
		return internalf("%d faces violate the Delaunay property", n)
	}
	return nil
}

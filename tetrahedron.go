// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunay3d

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Tetrahedron is a view structure for accessing a tetrahedron in a
// Triangulation.
type Tetrahedron struct {
	idx int
	dt  *Triangulation
}

// Tetrahedron returns the view of the tetrahedron at index i.
// It returns an error if the index is out of range.
func (dt *Triangulation) Tetrahedron(i int) (Tetrahedron, error) {
	if i < 0 || i >= len(dt.Tetrahedra) {
		return Tetrahedron{}, errors.Errorf("Tetrahedron: index %d out of range [0 %d)", i, len(dt.Tetrahedra))
	}
	return Tetrahedron{idx: i, dt: dt}, nil
}

// Index returns the index of the tetrahedron in the Triangulation's Tetrahedra.
func (t Tetrahedron) Index() int {
	return t.idx
}

// VertexIndices returns the indices of the vertices in the Triangulation's
// Vertices, in positive orientation.
func (t Tetrahedron) VertexIndices() [4]int {
	return t.dt.Tetrahedra[t.idx]
}

// Vertex returns the vertex at the specified index.
// It returns an error if the index is out of range.
func (t Tetrahedron) Vertex(i int) (r3.Vector, error) {
	if i < 0 || i >= 4 {
		return r3.Vector{}, errors.Errorf("Vertex: index %d out of range [0 4)", i)
	}
	return t.dt.Vertices[t.dt.Tetrahedra[t.idx][i]], nil
}

// Neighbor returns the tetrahedron across the face opposite vertex i and
// whether it exists. A face on the convex hull has no neighbor.
// It returns an error if the index is out of range.
func (t Tetrahedron) Neighbor(i int) (Tetrahedron, bool, error) {
	if i < 0 || i >= 4 {
		return Tetrahedron{}, false, errors.Errorf("Neighbor: index %d out of range [0 4)", i)
	}
	n := t.dt.Neighbors[t.idx][i]
	if n < 0 {
		return Tetrahedron{}, false, nil
	}
	return Tetrahedron{idx: n, dt: t.dt}, true, nil
}

// Circumcenter returns the center of the sphere through the four vertices.
func (t Tetrahedron) Circumcenter() r3.Vector {
	a, b, c, d := t.dt.TetrahedronVertices(t.idx)
	ba, ca, da := b.Sub(a), c.Sub(a), d.Sub(a)
	num := ca.Cross(da).Mul(ba.Norm2()).
		Add(da.Cross(ba).Mul(ca.Norm2())).
		Add(ba.Cross(ca).Mul(da.Norm2()))
	return a.Add(num.Mul(1 / (2 * ba.Dot(ca.Cross(da)))))
}

// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tetmesh

// Compact returns the live finite tetrahedra in handle order with their
// neighbors. Neighbor i of a tetrahedron shares the face opposite vertex i and
// is -1 on the convex hull.
func (m *Mesh) Compact() (tetrahedra, neighbors [][4]int) {
	index := make([]int, len(m.Tets))
	n := 0
	for i := range m.Tets {
		tt := &m.Tets[i]
		if tt.State == Dead || tt.IsGhost() {
			index[i] = -1
			continue
		}
		index[i] = n
		n++
	}

	tetrahedra = make([][4]int, 0, n)
	neighbors = make([][4]int, 0, n)
	for i := range m.Tets {
		if index[i] < 0 {
			continue
		}
		tt := &m.Tets[i]
		var v, adj [4]int
		for f := range 4 {
			v[f] = int(tt.V[f])
			adj[f] = index[tt.Adj[f].Tet()]
		}
		tetrahedra = append(tetrahedra, v)
		neighbors = append(neighbors, adj)
	}
	return tetrahedra, neighbors
}

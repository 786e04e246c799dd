// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tetmesh

import (
	"slices"

	"github.com/2dChan/delaunay3d/predicates"
)

// split returns the star split of p inside the finite tetrahedron t that
// contains it. The support of p is the smallest face of t whose relative
// interior holds p: t itself (1-4), a triangle (2-6) or an edge (n-2n). Every
// tetrahedron around the support is replaced by the tetrahedra obtained by
// substituting p for one support vertex at a time. ok is false when t or a
// tetrahedron around the support is a ghost, that is when p is not strictly
// inside the convex hull, and when p is outside t. It only reads the mesh.
func (m *Mesh) split(p, t int32) (old []int32, fresh [][4]int32, ok bool, err error) {
	tt := &m.Tets[t]
	if tt.IsGhost() {
		return nil, nil, false, nil
	}

	support := make([]int32, 0, 4)
	for i := range 4 {
		v := tt.V
		v[i] = p
		switch m.orient(v) {
		case predicates.Positive:
			support = append(support, tt.V[i])
		case predicates.Negative:
			return nil, nil, false, nil
		}
	}
	if len(support) < 2 {
		return nil, nil, false, internalf("point %d coincides with a vertex of tetrahedron %d", p, t)
	}

	// The tetrahedra around the support are connected through the faces
	// that contain the whole support.
	old = []int32{t}
	seen := map[int32]bool{t: true}
	for i := 0; i < len(old); i++ {
		u := &m.Tets[old[i]]
		if u.IsGhost() {
			return nil, nil, false, nil
		}
		for f, l := range u.Adj {
			if slices.Contains(support, u.V[f]) {
				continue
			}
			if n := l.Tet(); !seen[n] {
				seen[n] = true
				old = append(old, n)
			}
		}
	}

	fresh = make([][4]int32, 0, len(old)*len(support))
	for _, u := range old {
		uu := &m.Tets[u]
		for _, s := range support {
			v := uu.V
			v[uu.Slot(s)] = p
			fresh = append(fresh, v)
		}
	}
	return old, fresh, true, nil
}

// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tetmesh

import "github.com/2dChan/delaunay3d/predicates"

// maxWalk bounds a visibility walk before locate falls back to a scan.
const maxWalk = 1 << 16

// locate returns a live tetrahedron in conflict with p, walking from start. In
// a Delaunay mesh the walk ends either in a finite tetrahedron whose closed
// region contains p or in the ghost beyond the hull face that p sees.
func (m *Mesh) locate(p int32, start int32) (int32, error) {
	t := m.live(start)
	if k := m.Tets[t].GhostSlot(); k >= 0 {
		if m.conflict(t, p) {
			return t, nil
		}
		t = m.Tets[t].Adj[k].Tet()
	}

	for step := range maxWalk {
		tt := &m.Tets[t]
		next := int32(-1)
		for j := range 4 {
			f := (j + step) % 4
			v := tt.V
			v[f] = p
			if m.orient(v) == predicates.Negative {
				next = tt.Adj[f].Tet()
				break
			}
		}
		if next < 0 {
			return t, nil
		}
		if m.Tets[next].IsGhost() {
			return next, nil
		}
		t = next
	}

	for i := range m.Tets {
		if m.Tets[i].State != Dead && m.conflict(int32(i), p) {
			return int32(i), nil
		}
	}
	return 0, internalf("point %d conflicts with no tetrahedron", p)
}

// conflictMap records, for a batch of points, the live tetrahedron each one
// was located in and the points grouped by that tetrahedron.
type conflictMap struct {
	located []int32
	// tets lists the tetrahedra with at least one conflicting point, in the
	// order their first point appears.
	tets   []int32
	points map[int32][]int
}

// conflicts locates the points in parallel. A point whose hint is exact and
// still live keeps it; the others walk from their hint. Group members are
// positions in points, in increasing order.
func (m *Mesh) conflicts(workers int, points, hints []int32, exact []bool) (*conflictMap, error) {
	cm := &conflictMap{
		located: make([]int32, len(points)),
		points:  make(map[int32][]int),
	}
	err := forEach(workers, len(points), func(i int) error {
		if exact[i] && m.Tets[hints[i]].State != Dead {
			cm.located[i] = hints[i]
			return nil
		}
		t, err := m.locate(points[i], hints[i])
		cm.located[i] = t
		return err
	})
	if err != nil {
		return nil, err
	}
	for i, t := range cm.located {
		if _, ok := cm.points[t]; !ok {
			cm.tets = append(cm.tets, t)
		}
		cm.points[t] = append(cm.points[t], i)
	}
	return cm, nil
}

// cavity is the conflict region of a point: the connected set of live
// tetrahedra in conflict with it.
type cavity struct {
	point int32
	tets  []int32
	// boundary holds the faces of tets whose neighbor is outside the region.
	boundary []Link
}

// ring returns the tetrahedra adjacent to the region from outside. A
// tetrahedron may appear more than once.
func (m *Mesh) ring(c *cavity) []int32 {
	ring := make([]int32, len(c.boundary))
	for i, l := range c.boundary {
		ring[i] = m.Tets[l.Tet()].Adj[l.Face()].Tet()
	}
	return ring
}

// conflictRegion grows the conflict region of p from start, a tetrahedron in
// conflict with p. It only reads the mesh.
func (m *Mesh) conflictRegion(p int32, start int32) *cavity {
	return m.region(p, start, func(t int32) bool {
		return m.conflict(t, p)
	})
}

// vertexRegion returns the tetrahedra incident to the mesh vertex p together
// with the connected tetrahedra still in conflict with it, grown from start,
// a tetrahedron incident to p. Its star re-inserts p.
func (m *Mesh) vertexRegion(p int32, start int32) *cavity {
	return m.region(p, start, func(t int32) bool {
		return m.Tets[t].Slot(p) >= 0 || m.conflict(t, p)
	})
}

func (m *Mesh) region(p int32, start int32, in func(t int32) bool) *cavity {
	c := &cavity{point: p, tets: []int32{start}}
	inside := map[int32]bool{start: true}
	for i := 0; i < len(c.tets); i++ {
		t := c.tets[i]
		for f, l := range m.Tets[t].Adj {
			n := l.Tet()
			ok, seen := inside[n]
			if !seen {
				ok = in(n)
				inside[n] = ok
				if ok {
					c.tets = append(c.tets, n)
				}
			}
			if !ok {
				c.boundary = append(c.boundary, makeLink(t, f))
			}
		}
	}
	return c
}

// star returns the tetrahedra that replace the region: every boundary face
// coned to the point. The region is star-shaped from the point, so replacing
// the vertex opposite a boundary face by the point keeps the orientation.
func (m *Mesh) star(c *cavity) [][4]int32 {
	fresh := make([][4]int32, len(c.boundary))
	for i, l := range c.boundary {
		v := m.Tets[l.Tet()].V
		v[l.Face()] = c.point
		fresh[i] = v
	}
	return fresh
}

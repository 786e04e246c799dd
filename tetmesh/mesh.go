// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package tetmesh builds 3D Delaunay tetrahedralizations. The mesh is an arena
// of tetrahedra addressed by integer handles. Every face has exactly two
// incident tetrahedra: the convex hull is closed by ghost tetrahedra that share
// the point at infinity.
package tetmesh

import (
	"slices"

	"github.com/2dChan/delaunay3d/predicates"
	"github.com/golang/geo/r3"
)

// Infinite is the vertex id of the point at infinity.
const Infinite int32 = -1

// State is the lifecycle state of a tetrahedron.
type State uint8

const (
	// Dead tetrahedra were replaced; Next leads towards a live successor.
	Dead State = iota
	// Pending tetrahedra must have their faces checked by the flip engine.
	Pending
	// Stable tetrahedra passed the last check.
	Stable
)

// Link addresses face f of tetrahedron t, packed as t<<2 | f.
type Link int32

// NoLink marks a face whose neighbor is not known yet.
const NoLink Link = -1

func makeLink(t int32, f int) Link {
	return Link(t<<2 | int32(f))
}

// Tet returns the tetrahedron handle of the link.
func (l Link) Tet() int32 {
	return int32(l) >> 2
}

// Face returns the face index of the link.
func (l Link) Face() int {
	return int(l & 3)
}

// Tet is a tetrahedron. Face i is opposite V[i] and Adj[i] is the face of the
// neighbor sharing it.
//
// Every live tetrahedron is positively oriented: Orient3D(V) is Positive, where
// for a ghost the point at infinity is replaced by any point strictly on the
// outer side of its finite face.
type Tet struct {
	V     [4]int32
	Adj   [4]Link
	State State
	Next  int32
}

// IsGhost reports whether the tetrahedron has the point at infinity as a vertex.
func (t *Tet) IsGhost() bool {
	return t.GhostSlot() >= 0
}

// GhostSlot returns the slot of the point at infinity, or -1.
func (t *Tet) GhostSlot() int {
	return slices.Index(t.V[:], Infinite)
}

// Slot returns the slot of vertex v, or -1.
func (t *Tet) Slot(v int32) int {
	return slices.Index(t.V[:], v)
}

// faceKey identifies a face by its sorted vertex ids.
type faceKey [3]int32

func keyOf(v [4]int32, f int) faceKey {
	var k faceKey
	n := 0
	for i, x := range v {
		if i != f {
			k[n] = x
			n++
		}
	}
	if k[0] > k[1] {
		k[0], k[1] = k[1], k[0]
	}
	if k[1] > k[2] {
		k[1], k[2] = k[2], k[1]
	}
	if k[0] > k[1] {
		k[0], k[1] = k[1], k[0]
	}
	return k
}

// Mesh is the shared triangulation state.
type Mesh struct {
	Points []r3.Vector
	Tets   []Tet
	// stamp[p] is the insertion round of point p; the seed points have 0.
	stamp []int32
}

func newMesh(points []r3.Vector) *Mesh {
	return &Mesh{
		Points: points,
		Tets:   make([]Tet, 0, 8*len(points)),
		stamp:  make([]int32, len(points)),
	}
}

// newest returns the slot of the most recently inserted finite vertex of t.
// The faces opposite it are the ones a repair has to check.
func (m *Mesh) newest(t int32) int {
	tt := &m.Tets[t]
	best := -1
	for i, v := range tt.V {
		if v == Infinite {
			continue
		}
		if best < 0 || m.stamp[v] > m.stamp[tt.V[best]] {
			best = i
		}
	}
	return best
}

// grow appends n dead tetrahedra and returns the handle of the first one.
func (m *Mesh) grow(n int) int32 {
	first := int32(len(m.Tets))
	m.Tets = slices.Grow(m.Tets, n)
	for range n {
		m.Tets = append(m.Tets, Tet{Adj: [4]Link{NoLink, NoLink, NoLink, NoLink}, Next: -1})
	}
	return first
}

// live follows Next from a dead tetrahedron to a live one.
func (m *Mesh) live(t int32) int32 {
	for m.Tets[t].State == Dead {
		t = m.Tets[t].Next
	}
	return t
}

// Live returns the handles of all live tetrahedra in handle order.
func (m *Mesh) Live() []int32 {
	var live []int32
	for i := range m.Tets {
		if m.Tets[i].State != Dead {
			live = append(live, int32(i))
		}
	}
	return live
}

// apex returns the vertex of the neighbor across face f of t.
func (m *Mesh) apex(t int32, f int) int32 {
	l := m.Tets[t].Adj[f]
	return m.Tets[l.Tet()].V[l.Face()]
}

func (m *Mesh) orient(v [4]int32) predicates.Sign {
	p := m.Points
	return predicates.Orient3D(p[v[0]], p[v[1]], p[v[2]], p[v[3]])
}

// orientAs returns the orientation of v with the point at infinity replaced by
// ref. v must have a finite vertex in every other slot.
func (m *Mesh) orientAs(v [4]int32, ref int32) predicates.Sign {
	if k := slices.Index(v[:], Infinite); k >= 0 {
		v[k] = ref
	}
	return m.orient(v)
}

// conflict reports whether p violates the Delaunay property of tetrahedron t:
// for a finite tetrahedron p lies inside its circumsphere, for a ghost p lies
// beyond its finite face or on its plane inside the circumcircle. Ties are
// broken by the symbolic perturbation of the predicates with vertex ids as
// perturbation ids.
func (m *Mesh) conflict(t int32, p int32) bool {
	tt := &m.Tets[t]
	pts := m.Points
	k := tt.GhostSlot()
	if k < 0 {
		v := tt.V
		s := predicates.InSphereSoS(
			[5]r3.Vector{pts[v[0]], pts[v[1]], pts[v[2]], pts[v[3]], pts[p]},
			[5]int{int(v[0]), int(v[1]), int(v[2]), int(v[3]), int(p)},
		)
		return s == predicates.Positive
	}

	switch m.orientAs(tt.V, p) {
	case predicates.Positive:
		return true
	case predicates.Negative:
		return false
	}
	var tri [3]int32
	n := 0
	for i, v := range tt.V {
		if i != k {
			tri[n] = v
			n++
		}
	}
	s := predicates.InCircleSoS(
		[4]r3.Vector{pts[tri[0]], pts[tri[1]], pts[tri[2]], pts[p]},
		[4]int{int(tri[0]), int(tri[1]), int(tri[2]), int(p)},
	)
	return s == predicates.Positive
}

// orientNew fixes the vertex order of a tetrahedron about to be created so it
// is positively oriented. A ghost is judged by ref, a finite point known to lie
// strictly on the inner side of its finite face.
func (m *Mesh) orientNew(v [4]int32, ref int32) ([4]int32, error) {
	var s predicates.Sign
	if slices.Contains(v[:], Infinite) {
		s = m.orientAs(v, ref).Neg()
	} else {
		s = m.orient(v)
	}
	switch s {
	case predicates.Zero:
		return v, internalf("flat tetrahedron %v", v)
	case predicates.Negative:
		v[0], v[1] = v[1], v[0]
	}
	return v, nil
}

// rebuild replaces the tetrahedra old by fresh, written to consecutive slots
// starting at first. The faces of fresh are glued to each other and to the
// boundary of old; every face must find its partner. old and its neighbors must
// not be touched concurrently.
func (m *Mesh) rebuild(old []int32, fresh [][4]int32, first int32) error {
	inOld := make(map[int32]bool, len(old))
	for _, t := range old {
		inOld[t] = true
	}
	outside := make(map[faceKey]Link, 2*len(old))
	for _, t := range old {
		tt := &m.Tets[t]
		for f, l := range tt.Adj {
			if !inOld[l.Tet()] {
				outside[keyOf(tt.V, f)] = l
			}
		}
	}

	inner := make(map[faceKey]Link, 2*len(fresh))
	for i, v := range fresh {
		s := first + int32(i)
		m.Tets[s] = Tet{V: v, Adj: [4]Link{NoLink, NoLink, NoLink, NoLink}, State: Pending, Next: -1}
		for f := range 4 {
			key := keyOf(v, f)
			if l, ok := outside[key]; ok {
				m.Tets[s].Adj[f] = l
				m.Tets[l.Tet()].Adj[l.Face()] = makeLink(s, f)
				delete(outside, key)
				continue
			}
			if l, ok := inner[key]; ok {
				m.Tets[s].Adj[f] = l
				m.Tets[l.Tet()].Adj[l.Face()] = makeLink(s, f)
				delete(inner, key)
				continue
			}
			inner[key] = makeLink(s, f)
		}
	}
	if len(inner) != 0 || len(outside) != 0 {
		return internalf("%d unmatched new faces and %d unmatched boundary faces", len(inner), len(outside))
	}

	for _, t := range old {
		m.Tets[t].State = Dead
		m.Tets[t].Next = first
	}
	return nil
}

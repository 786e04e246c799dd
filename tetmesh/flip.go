// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tetmesh

import (
	"github.com/2dChan/delaunay3d/predicates"
)

type flipKind uint8

const (
	flipNone flipKind = iota
	flip23
	flip32
	flip44
	// flipStar re-inserts a vertex by replacing its star and the tetrahedra
	// still in conflict with it by a new star.
	flipStar
)

func (k flipKind) String() string {
	switch k {
	case flip23:
		return "2-3"
	case flip32:
		return "3-2"
	case flip44:
		return "4-4"
	case flipStar:
		return "star"
	}
	return "none"
}

// flip is a classified local rewrite: old tetrahedra are replaced by fresh
// ones covering the same region.
type flip struct {
	kind  flipKind
	old   []int32
	fresh [][4]int32
}

// outcome is the result of checking the faces of a pending tetrahedron.
type outcome uint8

const (
	clean outcome = iota
	stuck
	flippable
)

// violates reports whether the apex across face f of t lies inside the
// circumsphere of t.
func (m *Mesh) violates(t int32, f int) bool {
	q := m.apex(t, f)
	if q == Infinite {
		return false
	}
	return m.conflict(t, q)
}

// classify selects the flip that removes face f of t. Let p be the vertex of
// t opposite f, q the apex across f and abc the shared face. The signs of
// Orient3D(p, q, x, y) over the edges xy of abc tell where the segment pq
// pierces the plane of abc: through the triangle (2-3), through an edge (4-4)
// or beside exactly one edge (3-2). Configurations that touch the point at
// infinity are not flipped. It only reads the mesh.
func (m *Mesh) classify(t int32, f int) (flip, bool) {
	tt := &m.Tets[t]
	p, u, q := tt.V[f], tt.Adj[f].Tet(), m.apex(t, f)
	if p == Infinite || q == Infinite || tt.IsGhost() || m.Tets[u].IsGhost() {
		return flip{}, false
	}

	var face [3]int32
	n := 0
	for i, v := range tt.V {
		if i != f {
			face[n] = v
			n++
		}
	}
	a, b, c := face[0], face[1], face[2]
	if m.orient([4]int32{a, b, c, p}) == predicates.Negative {
		a, b = b, a
	}

	edges := [3][3]int32{{a, b, c}, {b, c, a}, {c, a, b}}
	var neg, zero, pos, at int
	for i, e := range edges {
		switch m.orient([4]int32{p, q, e[0], e[1]}) {
		case predicates.Negative:
			neg++
		case predicates.Zero:
			zero++
			at = i
		case predicates.Positive:
			pos++
			at = i
		}
	}

	var fl flip
	switch {
	case neg == 3:
		fl = flip{kind: flip23, old: []int32{t, u}}
		for _, e := range edges {
			fl.fresh = append(fl.fresh, [4]int32{e[0], e[1], p, q})
		}
	case neg == 2 && pos == 1:
		x, y, z := edges[at][0], edges[at][1], edges[at][2]
		l := tt.Adj[tt.Slot(z)]
		w := l.Tet()
		if m.Tets[w].V[l.Face()] != q {
			return flip{}, false
		}
		uu := &m.Tets[u]
		if uu.Adj[uu.Slot(z)].Tet() != w {
			return flip{}, false
		}
		fl = flip{
			kind:  flip32,
			old:   []int32{t, u, w},
			fresh: [][4]int32{{x, z, p, q}, {y, z, p, q}},
		}
	case neg == 2 && zero == 1:
		x, y, z := edges[at][0], edges[at][1], edges[at][2]
		lt := tt.Adj[tt.Slot(z)]
		t2 := lt.Tet()
		r := m.Tets[t2].V[lt.Face()]
		uu := &m.Tets[u]
		lu := uu.Adj[uu.Slot(z)]
		u2 := lu.Tet()
		if m.Tets[u2].V[lu.Face()] != r {
			return flip{}, false
		}
		tt2 := &m.Tets[t2]
		if tt2.Adj[tt2.Slot(p)].Tet() != u2 {
			return flip{}, false
		}
		fl = flip{
			kind:  flip44,
			old:   []int32{t, u, t2, u2},
			fresh: [][4]int32{{p, q, x, z}, {p, q, y, z}, {p, q, x, r}, {p, q, y, r}},
		}
		// z lies off the plane pqxy, on the inner side of the new hull
		// faces when r is the point at infinity.
		for i, v := range fl.fresh {
			o, err := m.orientNew(v, z)
			if err != nil {
				return flip{}, false
			}
			fl.fresh[i] = o
		}
		return fl, true
	default:
		return flip{}, false
	}

	for i, v := range fl.fresh {
		o, err := m.orientNew(v, Infinite)
		if err != nil {
			return flip{}, false
		}
		fl.fresh[i] = o
	}
	return fl, true
}

// flipRing returns the old tetrahedra of fl followed by all of their neighbors.
// These are the tetrahedra whose records applying fl writes.
func (m *Mesh) flipRing(fl *flip) []int32 {
	ring := make([]int32, 0, 5*len(fl.old))
	ring = append(ring, fl.old...)
	for _, t := range fl.old {
		for _, l := range m.Tets[t].Adj {
			ring = append(ring, l.Tet())
		}
	}
	return ring
}

// commit writes batches of replacements. Batch i replaces old[i] by fresh[i];
// the batches must touch disjoint tetrahedra and their neighborhoods, and are
// applied in parallel. It returns the handle of the first new tetrahedron of
// every batch.
func (m *Mesh) commit(workers int, old [][]int32, fresh [][][4]int32) ([]int32, error) {
	firsts := make([]int32, len(old))
	total := 0
	for i := range fresh {
		firsts[i] = int32(total)
		total += len(fresh[i])
	}
	base := m.grow(total)
	for i := range firsts {
		firsts[i] += base
	}
	err := forEach(workers, len(old), func(i int) error {
		return m.rebuild(old[i], fresh[i], firsts[i])
	})
	if err != nil {
		return nil, err
	}
	return firsts, nil
}

// repair runs rounds of Lawson flips until no tetrahedron is pending. Each
// pending tetrahedron is checked across the face opposite its newest vertex
// only: after a point is split into a Delaunay mesh, only the faces of its
// link can be non-Delaunay. Each round detects the violated faces in
// parallel, lets the non-overlapping flips with the lowest handles win, and
// commits them. New tetrahedra, the live losers and the tetrahedra whose
// violated face cannot be flipped yet are pending in the next round. When a
// round has nothing to flip, each vertex stuck that way is re-inserted with a
// star flip; these are counted in st.Unflippable.
func (m *Mesh) repair(pending []int32, cfg Config, st *Stats) error {
	var claims claimTable
	for round := 0; len(pending) > 0; round++ {
		if round >= cfg.MaxRounds {
			return internalf("flips did not converge in %d rounds", cfg.MaxRounds)
		}

		flips := make([]flip, len(pending))
		outcomes := make([]outcome, len(pending))
		err := forEach(cfg.Workers, len(pending), func(i int) error {
			t := pending[i]
			if m.Tets[t].State == Dead {
				return nil
			}
			f := m.newest(t)
			if !m.violates(t, f) {
				return nil
			}
			outcomes[i] = stuck
			if fl, ok := m.classify(t, f); ok {
				flips[i], outcomes[i] = fl, flippable
			}
			return nil
		})
		if err != nil {
			return err
		}

		var cand, stalled []int
		for i, o := range outcomes {
			t := pending[i]
			switch o {
			case clean:
				if m.Tets[t].State != Dead {
					m.Tets[t].State = Stable
				}
			case stuck:
				stalled = append(stalled, i)
			case flippable:
				cand = append(cand, i)
			}
		}
		if len(cand) == 0 {
			err := forEach(cfg.Workers, len(stalled), func(j int) error {
				i := stalled[j]
				t := pending[i]
				c := m.vertexRegion(m.Tets[t].V[m.newest(t)], t)
				flips[i] = flip{kind: flipStar, old: c.tets, fresh: m.star(c)}
				return nil
			})
			if err != nil {
				return err
			}
			cand, stalled = stalled, nil
		}

		sets := make([][]int32, len(cand))
		ranks := make([]int32, len(cand))
		for j, i := range cand {
			sets[j] = m.flipRing(&flips[i])
			ranks[j] = pending[i]
		}
		claims.prepare(len(m.Tets))
		winners, err := claims.claimAll(cfg.Workers, sets, ranks)
		if err != nil {
			return err
		}

		old := make([][]int32, len(winners))
		fresh := make([][][4]int32, len(winners))
		for j, w := range winners {
			fl := &flips[cand[w]]
			old[j], fresh[j] = fl.old, fl.fresh
			switch fl.kind {
			case flip23:
				st.Flips23++
			case flip32:
				st.Flips32++
			case flip44:
				st.Flips44++
			case flipStar:
				st.Unflippable++
			}
		}
		firsts, err := m.commit(cfg.Workers, old, fresh)
		if err != nil {
			return err
		}

		next := make([]int32, 0, len(pending))
		for j, first := range firsts {
			for k := range fresh[j] {
				next = append(next, first+int32(k))
			}
		}
		for _, i := range append(cand, stalled...) {
			if m.Tets[pending[i]].State != Dead {
				next = append(next, pending[i])
			}
		}
		pending = next
	}
	return nil
}

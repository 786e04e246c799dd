// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tetmesh

// inserter holds the points that are not in the mesh yet, in insertion order,
// together with the tetrahedron each one was last located in.
type inserter struct {
	m      *Mesh
	cfg    Config
	points []int32
	hints  []int32
	// exact marks hints that are locations rather than walk starts.
	exact  []bool
	rounds int32
	claims claimTable
}

// priority scatters point ids over [0, 2^30) so that the claims of spatially
// close candidates do not win in sorted order. It is a bijection for ids below
// 2^30.
func priority(p int32) int32 {
	return int32(uint32(p) * 0x9e3779b1 & (1<<30 - 1))
}

// round inserts a batch of points and returns the handles of the new
// tetrahedra. Every located tetrahedron nominates its earliest point; each
// nominee claims its conflict region and the tetrahedra around it. The
// nominee with the lowest priority always wins, so every round makes
// progress. A winner strictly inside the hull splits the tetrahedra around
// its location and leaves the rest of its conflict region to the flip engine;
// a winner on or outside the hull replaces its whole conflict region with its
// star.
func (in *inserter) round(st *Stats) (inserted int, fresh []int32, err error) {
	m := in.m
	in.rounds++
	cm, err := m.conflicts(in.cfg.Workers, in.points, in.hints, in.exact)
	if err != nil {
		return 0, nil, err
	}
	located := cm.located
	cand := make([]int, len(cm.tets))
	for j, t := range cm.tets {
		cand[j] = cm.points[t][0]
	}

	cavities := make([]*cavity, len(cand))
	sets := make([][]int32, len(cand))
	ranks := make([]int32, len(cand))
	err = forEach(in.cfg.Workers, len(cand), func(j int) error {
		i := cand[j]
		c := m.conflictRegion(in.points[i], located[i])
		cavities[j] = c
		sets[j] = append(append([]int32(nil), c.tets...), m.ring(c)...)
		ranks[j] = priority(in.points[i])
		return nil
	})
	if err != nil {
		return 0, nil, err
	}

	in.claims.prepare(len(m.Tets))
	winners, err := in.claims.claimAll(in.cfg.Workers, sets, ranks)
	if err != nil {
		return 0, nil, err
	}

	old := make([][]int32, len(winners))
	stars := make([][][4]int32, len(winners))
	splits := make([]bool, len(winners))
	err = forEach(in.cfg.Workers, len(winners), func(k int) error {
		j := winners[k]
		i := cand[j]
		o, f, ok, err := m.split(in.points[i], located[i])
		if err != nil {
			return err
		}
		if ok {
			old[k], stars[k], splits[k] = o, f, true
			return nil
		}
		old[k], stars[k] = cavities[j].tets, m.star(cavities[j])
		return nil
	})
	if err != nil {
		return 0, nil, err
	}

	done := make(map[int]bool, len(winners))
	for k, j := range winners {
		p := in.points[cand[j]]
		m.stamp[p] = in.rounds
		done[cand[j]] = true
		if splits[k] {
			st.Splits++
		}
	}
	firsts, err := m.commit(in.cfg.Workers, old, stars)
	if err != nil {
		return 0, nil, err
	}
	for k, first := range firsts {
		for s := range stars[k] {
			fresh = append(fresh, first+int32(s))
		}
	}

	n := 0
	for i, p := range in.points {
		if done[i] {
			continue
		}
		in.points[n], in.hints[n], in.exact[n] = p, located[i], true
		n++
	}
	in.points, in.hints, in.exact = in.points[:n], in.hints[:n], in.exact[:n]
	return len(winners), fresh, nil
}

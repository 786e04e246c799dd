// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tetmesh

import (
	"testing"

	"github.com/2dChan/delaunay3d/utils"
	"github.com/golang/geo/r3"
)

func TestPriority(t *testing.T) {
	const n = 1 << 16
	seen := make(map[int32]int32, n)
	for p := range int32(n) {
		r := priority(p)
		if r < 0 || r >= 1<<30 {
			t.Fatalf("priority(%d) = %d, want in [0 %d)", p, r, 1<<30)
		}
		if q, ok := seen[r]; ok {
			t.Fatalf("priority(%d) = priority(%d) = %d", p, q, r)
		}
		seen[r] = p
	}

	// Consecutive ids must not keep their order.
	ordered := true
	for p := range int32(16) {
		if priority(p) > priority(p+1) {
			ordered = false
		}
	}
	if ordered {
		t.Errorf("priority is increasing on [0 16]")
	}
}

func TestConflicts_Hints(t *testing.T) {
	m, _ := mustBuild(t, utils.GenerateRandomPoints(100, 9), Config{Workers: 1})
	p := addPoint(m, r3.Vector{X: 0.5, Y: 0.5, Z: 0.5})
	live := m.Live()
	start := live[len(live)-1]

	cm, err := m.conflicts(2, []int32{p, p}, []int32{start, start}, []bool{true, false})
	if err != nil {
		t.Fatalf("m.conflicts(...) error = %+v, want nil", err)
	}
	if got := cm.located[0]; got != start {
		t.Errorf("located with an exact hint = %d, want %d", got, start)
	}
	if got := cm.located[1]; !m.conflict(got, p) {
		t.Errorf("located by a walk = %d, which is not in conflict with %d", got, p)
	}
}

func TestBuild_Rounds(t *testing.T) {
	points := utils.GenerateRandomPoints(2000, 10)
	_, st := mustBuild(t, points, Config{Workers: 4, SpatialSort: true})
	// Every round inserts at least one point; a sorted input must still
	// insert many points per round.
	if st.Rounds*2 > len(points) {
		t.Errorf("st.Rounds = %d for %d points, want at most %d", st.Rounds, len(points), len(points)/2)
	}
}

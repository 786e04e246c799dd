// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tetmesh

import (
	"testing"

	"github.com/2dChan/delaunay3d/utils"
	"github.com/pkg/errors"
)

// swapSlots exchanges two slots of t together with their links, which flips
// its orientation and keeps the adjacency consistent.
func swapSlots(m *Mesh, t int32, i, j int) {
	tt := &m.Tets[t]
	tt.V[i], tt.V[j] = tt.V[j], tt.V[i]
	tt.Adj[i], tt.Adj[j] = tt.Adj[j], tt.Adj[i]
	for _, f := range []int{i, j} {
		l := tt.Adj[f]
		m.Tets[l.Tet()].Adj[l.Face()] = makeLink(t, f)
	}
}

func firstTet(m *Mesh, ghost bool) int32 {
	for _, h := range m.Live() {
		if m.Tets[h].IsGhost() == ghost {
			return h
		}
	}
	return -1
}

func TestMesh_Check_Broken(t *testing.T) {
	tests := []struct {
		name    string
		ghost   bool
		corrupt func(m *Mesh, h int32)
	}{
		{"vertex out of range", false, func(m *Mesh, h int32) {
			m.Tets[h].V[0] = int32(len(m.Points))
		}},
		{"repeated vertex", false, func(m *Mesh, h int32) {
			m.Tets[h].V[1] = m.Tets[h].V[0]
		}},
		{"missing link", false, func(m *Mesh, h int32) {
			m.Tets[h].Adj[2] = NoLink
		}},
		{"asymmetric link", false, func(m *Mesh, h int32) {
			adj := &m.Tets[h].Adj
			adj[0], adj[1] = adj[1], adj[0]
		}},
		{"link to dead tetrahedron", false, func(m *Mesh, h int32) {
			m.Tets[m.Tets[h].Adj[0].Tet()].State = Dead
		}},
		{"mismatched face key", false, func(m *Mesh, h int32) {
			tt := &m.Tets[h]
			for v := range int32(len(m.Points)) {
				if tt.Slot(v) < 0 {
					tt.V[0] = v
					return
				}
			}
		}},
		{"negative orientation", false, func(m *Mesh, h int32) {
			swapSlots(m, h, 0, 1)
		}},
		{"ghost facing ghost", true, func(m *Mesh, h int32) {
			l := m.Tets[h].Adj[m.Tets[h].GhostSlot()]
			m.Tets[l.Tet()].V[l.Face()] = Infinite
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := mustBuild(t, utils.GenerateRandomPoints(50, 3), Config{Workers: 1})
			if err := m.Check(); err != nil {
				t.Fatalf("m.Check() before corruption error = %+v, want nil", err)
			}
			h := firstTet(m, tt.ghost)
			if h < 0 {
				t.Fatalf("no tetrahedron with ghost = %v", tt.ghost)
			}
			tt.corrupt(m, h)

			err := m.Check()
			if !errors.Is(err, ErrInternal) {
				t.Errorf("m.Check() error = %v, want %v", err, ErrInternal)
			}
			if IsInputError(err) {
				t.Errorf("IsInputError(%v) = true, want false", err)
			}
		})
	}
}

func TestMesh_CheckDelaunay(t *testing.T) {
	m, _ := mustBuild(t, bipyramid(2, -2.1), Config{Workers: 1})
	if err := m.CheckDelaunay(); err != nil {
		t.Fatalf("m.CheckDelaunay() error = %+v, want nil", err)
	}

	forceFlip(t, m, findFlip(t, m, flip23))
	err := m.CheckDelaunay()
	if !errors.Is(err, ErrInternal) {
		t.Errorf("m.CheckDelaunay() after 2-3 error = %v, want %v", err, ErrInternal)
	}
	if IsInputError(err) {
		t.Errorf("IsInputError(%v) = true, want false", err)
	}
}

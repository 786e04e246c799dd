// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package predicates

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
)

var (
	origin = r3.Vector{X: 0, Y: 0, Z: 0}
	ex     = r3.Vector{X: 1, Y: 0, Z: 0}
	ey     = r3.Vector{X: 0, Y: 1, Z: 0}
	ez     = r3.Vector{X: 0, Y: 0, Z: 1}
)

// Orient3D

func TestOrient3D(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d r3.Vector
		want       Sign
	}{
		{"unit positive", origin, ex, ey, ez, Positive},
		{"unit swapped", ex, origin, ey, ez, Negative},
		{"below plane", origin, ex, ey, r3.Vector{X: 0.2, Y: 0.2, Z: -3}, Negative},
		{"coplanar", origin, ex, ey, r3.Vector{X: 5, Y: -7, Z: 0}, Zero},
		{
			"coplanar dyadic combination",
			r3.Vector{X: 1, Y: 2, Z: 3},
			r3.Vector{X: 4, Y: -1, Z: 2},
			r3.Vector{X: -2, Y: 5, Z: 7},
			// a + 0.5(b-a) + 0.25(c-a)
			r3.Vector{X: 1.75, Y: 1.25, Z: 3.5},
			Zero,
		},
		{"smallest denormal height", origin, ex, ey, r3.Vector{X: 0.3, Y: 0.3, Z: math.SmallestNonzeroFloat64}, Positive},
		{"duplicate vertex", origin, ex, ex, ez, Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Orient3D(tt.a, tt.b, tt.c, tt.d); got != tt.want {
				t.Errorf("Orient3D(%v, %v, %v, %v) = %v, want %v", tt.a, tt.b, tt.c, tt.d, got, tt.want)
			}
		})
	}
}

func TestOrient3D_Antisymmetric(t *testing.T) {
	//nolint:gosec
	random := rand.New(rand.NewSource(7))
	next := func() r3.Vector {
		return r3.Vector{X: random.Float64(), Y: random.Float64(), Z: random.Float64()}
	}
	for i := range 1000 {
		a, b, c, d := next(), next(), next(), next()
		o := Orient3D(a, b, c, d)
		if got := Orient3D(b, a, c, d); got != o.Neg() {
			t.Fatalf("case %d: Orient3D(b, a, c, d) = %v, want %v", i, got, o.Neg())
		}
		if got := Orient3D(b, c, a, d); got != o {
			t.Fatalf("case %d: Orient3D(b, c, a, d) = %v, want %v", i, got, o)
		}
	}
}

func TestOrient3D_MatchesExact(t *testing.T) {
	// Nearly coplanar points one ulp off the plane z = 0.5 defeat the filter.
	base := r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}
	for i := range 64 {
		d := r3.Vector{X: 0.5 + float64(i)*0x1p-50, Y: 0.5, Z: math.Nextafter(0.5, 1)}
		a := base
		b := r3.Vector{X: 1, Y: 0.5, Z: 0.5}
		c := r3.Vector{X: 0.5, Y: 1, Z: 0.5}
		want := orient3DExact(precise(a), precise(b), precise(c), precise(d))
		if got := Orient3D(a, b, c, d); got != want {
			t.Errorf("Orient3D(...) case %d = %v, want %v", i, got, want)
		}
	}
}

// InSphere

func TestInSphere(t *testing.T) {
	tests := []struct {
		name string
		e    r3.Vector
		want Sign
	}{
		{"centroid", r3.Vector{X: 0.25, Y: 0.25, Z: 0.25}, Positive},
		{"far", r3.Vector{X: 2, Y: 2, Z: 2}, Negative},
		{"opposite corner", r3.Vector{X: 1, Y: 1, Z: 1}, Zero},
		{"face corner", r3.Vector{X: 1, Y: 1, Z: 0}, Zero},
		{"just outside", r3.Vector{X: 1, Y: 1, Z: math.Nextafter(1, 2)}, Negative},
		{"just inside", r3.Vector{X: 1, Y: 1, Z: math.Nextafter(1, 0)}, Positive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InSphere(origin, ex, ey, ez, tt.e); got != tt.want {
				t.Errorf("InSphere(unit, %v) = %v, want %v", tt.e, got, tt.want)
			}
		})
	}
}

func TestInSphere_NegativeOrientation(t *testing.T) {
	e := r3.Vector{X: 0.25, Y: 0.25, Z: 0.25}
	if got := InSphere(ex, origin, ey, ez, e); got != Negative {
		t.Errorf("InSphere(swapped unit, %v) = %v, want %v", e, got, Negative)
	}
}

func TestInSphereSoS(t *testing.T) {
	corner := r3.Vector{X: 1, Y: 1, Z: 1}
	tests := []struct {
		name string
		e    r3.Vector
		ids  [5]int
		want Sign
	}{
		{"strict inside ignores ids", r3.Vector{X: 0.25, Y: 0.25, Z: 0.25}, [5]int{0, 1, 2, 3, 4}, Positive},
		{"strict outside ignores ids", r3.Vector{X: 3, Y: 0, Z: 0}, [5]int{4, 3, 2, 1, 0}, Negative},
		{"tie, query lifted most", corner, [5]int{0, 1, 2, 3, 4}, Negative},
		// d is lifted most: the sign is Orient3D(a, b, c, e).
		{"tie, vertex lifted most", corner, [5]int{1, 2, 3, 4, 0}, Positive},
		// a is lifted most: Orient3D(e, b, c, d) = -1.
		{"tie, origin lifted most", corner, [5]int{9, 2, 3, 4, 0}, Negative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InSphereSoS([5]r3.Vector{origin, ex, ey, ez, tt.e}, tt.ids)
			if got != tt.want {
				t.Errorf("InSphereSoS(unit, %v, %v) = %v, want %v", tt.e, tt.ids, got, tt.want)
			}
		})
	}
}

func TestInSphereSoS_NeverZero(t *testing.T) {
	// All eight corners of a cube are cospherical.
	var corners []r3.Vector
	for i := range 8 {
		corners = append(corners, r3.Vector{X: float64(i & 1), Y: float64(i >> 1 & 1), Z: float64(i >> 2 & 1)})
	}
	a, b, c, d := corners[0], corners[1], corners[2], corners[4]
	if Orient3D(a, b, c, d) != Positive {
		t.Fatalf("Orient3D(corner tetrahedron) != Positive")
	}
	for i, e := range corners[5:] {
		got := InSphereSoS([5]r3.Vector{a, b, c, d, e}, [5]int{0, 1, 2, 4, 5 + i})
		if got == Zero {
			t.Errorf("InSphereSoS(corner tetrahedron, %v) = Zero, want non-zero", e)
		}
	}
}

func TestInCircleSoS(t *testing.T) {
	tests := []struct {
		name string
		e    r3.Vector
		ids  [4]int
		want Sign
	}{
		{"inside", r3.Vector{X: 0.2, Y: 0.2, Z: 0}, [4]int{0, 1, 2, 3}, Positive},
		{"outside", r3.Vector{X: 2, Y: 2, Z: 0}, [4]int{0, 1, 2, 3}, Negative},
		{"on circle, query lifted most", r3.Vector{X: 1, Y: 1, Z: 0}, [4]int{0, 1, 2, 3}, Negative},
		{"on circle, vertex lifted most", r3.Vector{X: 1, Y: 1, Z: 0}, [4]int{1, 2, 3, 0}, Positive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InCircleSoS([4]r3.Vector{origin, ex, ey, tt.e}, tt.ids)
			if got != tt.want {
				t.Errorf("InCircleSoS(unit triangle, %v, %v) = %v, want %v", tt.e, tt.ids, got, tt.want)
			}
		})
	}
}

func TestInCircleSoS_TiltedPlane(t *testing.T) {
	// Triangle and query on the plane x + y + z = 1.
	a := r3.Vector{X: 1, Y: 0, Z: 0}
	b := r3.Vector{X: 0, Y: 1, Z: 0}
	c := r3.Vector{X: 0, Y: 0, Z: 1}
	centroid := r3.Vector{X: 0.25, Y: 0.5, Z: 0.25}
	if got := InCircleSoS([4]r3.Vector{a, b, c, centroid}, [4]int{0, 1, 2, 3}); got != Positive {
		t.Errorf("InCircleSoS(tilted, inside) = %v, want %v", got, Positive)
	}
	far := r3.Vector{X: 4, Y: -2, Z: -1}
	if got := InCircleSoS([4]r3.Vector{a, b, c, far}, [4]int{0, 1, 2, 3}); got != Negative {
		t.Errorf("InCircleSoS(tilted, outside) = %v, want %v", got, Negative)
	}
}

func TestCollinear(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c r3.Vector
		want    bool
	}{
		{"axis", origin, ex, r3.Vector{X: 7, Y: 0, Z: 0}, true},
		{"diagonal", origin, r3.Vector{X: 1, Y: 1, Z: 1}, r3.Vector{X: -0.5, Y: -0.5, Z: -0.5}, true},
		{"triangle", origin, ex, ey, false},
		{"tiny offset", origin, ex, r3.Vector{X: 2, Y: math.SmallestNonzeroFloat64, Z: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Collinear(tt.a, tt.b, tt.c); got != tt.want {
				t.Errorf("Collinear(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.c, got, tt.want)
			}
		})
	}
}

func TestByIDDesc(t *testing.T) {
	got := byIDDesc([]int{3, 9, 1, 4})
	want := []int{1, 3, 0, 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("byIDDesc(...) mismatch (-want +got):\n%s", diff)
	}
}

// Benchmarks

func BenchmarkOrient3D(b *testing.B) {
	for _, name := range []string{"generic", "degenerate"} {
		b.Run(name, func(b *testing.B) {
			d := ez
			if name == "degenerate" {
				d = r3.Vector{X: 0.3, Y: 0.4, Z: 0}
			}
			b.ReportAllocs()
			for b.Loop() {
				Orient3D(origin, ex, ey, d)
			}
		})
	}
}

func BenchmarkInSphere(b *testing.B) {
	for _, e := range []r3.Vector{{X: 0.25, Y: 0.25, Z: 0.25}, {X: 1, Y: 1, Z: 1}} {
		b.Run(fmt.Sprint(e), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				InSphere(origin, ex, ey, ez, e)
			}
		})
	}
}

// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package predicates

import (
	"slices"

	"github.com/golang/geo/r3"
)

// The perturbed tests below break cospherical and cocircular ties by lifting
// every point by an infinitesimal weight ordered by its id: a point with a
// larger id is lifted more. Orientation itself is never perturbed. All callers
// must use the same ids for the same points, which makes the resulting
// triangulation independent of evaluation order.

// byIDDesc returns the positions 0..len(ids)-1 ordered by decreasing id.
func byIDDesc(ids []int) []int {
	order := make([]int, len(ids))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(i, j int) int {
		return ids[j] - ids[i]
	})
	return order
}

// InSphereSoS is InSphere with ties broken symbolically. pts[0..3] are the
// tetrahedron and pts[4] the query point; ids holds their perturbation ids,
// which must be pairwise distinct. Like InSphere, the result is negated for a
// negatively oriented tetrahedron, and it is never Zero for a non-degenerate
// one.
func InSphereSoS(pts [5]r3.Vector, ids [5]int) Sign {
	if s := InSphere(pts[0], pts[1], pts[2], pts[3], pts[4]); s != Zero {
		return s
	}

	for _, k := range byIDDesc(ids[:]) {
		if k == 4 {
			return Orient3D(pts[0], pts[1], pts[2], pts[3]).Neg()
		}
		// Lifting vertex k moves the sphere over e by the barycentric
		// coordinate of e with respect to k.
		w := [4]r3.Vector{pts[0], pts[1], pts[2], pts[3]}
		w[k] = pts[4]
		if o := Orient3D(w[0], w[1], w[2], w[3]); o != Zero {
			return o
		}
	}
	return Zero
}

// InCircleSoS tests the query pts[3] against the circle through pts[0..2].
// The four points must be coplanar and the first three not collinear. It
// returns Positive when the query lies inside the circle, with ties broken
// by the same lifting as InSphereSoS.
func InCircleSoS(pts [4]r3.Vector, ids [4]int) Sign {
	p := [4]r3.PreciseVector{precise(pts[0]), precise(pts[1]), precise(pts[2]), precise(pts[3])}
	if s := inCircleExact(p[0], p[1], p[2], p[3]); s != Zero {
		return s
	}

	for _, k := range byIDDesc(ids[:]) {
		if k == 3 {
			return Negative
		}
		w := [3]r3.PreciseVector{p[0], p[1], p[2]}
		w[k] = p[3]
		if o := sameSide(p[0], p[1], p[2], w[0], w[1], w[2]); o != Zero {
			return o
		}
	}
	return Zero
}

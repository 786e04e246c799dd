// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package predicates implements the orientation and in-sphere tests used by the
// 3D Delaunay engine. Every test first evaluates a floating-point filter and
// falls back to exact arithmetic on r3.PreciseVector when the filter cannot
// certify the sign.
package predicates

import (
	"math"
	"strconv"

	"github.com/golang/geo/r3"
)

// Sign is the tri-state result of a predicate.
type Sign int

const (
	Negative Sign = -1
	Zero     Sign = 0
	Positive Sign = 1
)

// Neg returns the opposite sign.
func (s Sign) Neg() Sign {
	return -s
}

const epsilon = 1.0 / (1 << 53)

// Error bound coefficients of the filters. They are deliberately looser than
// the tight bounds of Shewchuk's predicates.
var (
	orientErrBound   = (16 + 128*epsilon) * epsilon
	inSphereErrBound = (64 + 512*epsilon) * epsilon
)

func signOf(x float64) Sign {
	switch {
	case x > 0:
		return Positive
	case x < 0:
		return Negative
	}
	return Zero
}

// Orient3D returns the sign of det[b-a, c-a, d-a], which is Positive when d
// lies on the side of the plane abc that (b-a)x(c-a) points to.
func Orient3D(a, b, c, d r3.Vector) Sign {
	det, perm := orient3DFloat(a, b, c, d)
	if det > orientErrBound*perm || -det > orientErrBound*perm {
		return signOf(det)
	}
	return orient3DExact(precise(a), precise(b), precise(c), precise(d))
}

// OrientVolume returns six times the signed volume of the tetrahedron abcd in
// floating point. It is meant for measurements, not for decisions.
func OrientVolume(a, b, c, d r3.Vector) float64 {
	det, _ := orient3DFloat(a, b, c, d)
	return det
}

func orient3DFloat(a, b, c, d r3.Vector) (det, perm float64) {
	bax, bay, baz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	cax, cay, caz := c.X-a.X, c.Y-a.Y, c.Z-a.Z
	dax, day, daz := d.X-a.X, d.Y-a.Y, d.Z-a.Z

	m1 := cay*daz - caz*day
	m2 := caz*dax - cax*daz
	m3 := cax*day - cay*dax
	det = bax*m1 + bay*m2 + baz*m3

	p1 := math.Abs(cay*daz) + math.Abs(caz*day)
	p2 := math.Abs(caz*dax) + math.Abs(cax*daz)
	p3 := math.Abs(cax*day) + math.Abs(cay*dax)
	perm = math.Abs(bax)*p1 + math.Abs(bay)*p2 + math.Abs(baz)*p3
	return det, perm
}

// InSphere returns Positive when e lies strictly inside the sphere through a,
// b, c and d, Negative when it lies strictly outside and Zero when the five
// points are cospherical. The tetrahedron abcd must be positively oriented
// (Orient3D(a, b, c, d) == Positive); otherwise the result is negated.
func InSphere(a, b, c, d, e r3.Vector) Sign {
	det, perm := inSphereFloat(a, b, c, d, e)
	if det > inSphereErrBound*perm || -det > inSphereErrBound*perm {
		return signOf(det)
	}
	return inSphereExact(precise(a), precise(b), precise(c), precise(d), precise(e))
}

func triple(x, y, z r3.Vector) (float64, float64) {
	m1 := y.Y*z.Z - y.Z*z.Y
	m2 := y.Z*z.X - y.X*z.Z
	m3 := y.X*z.Y - y.Y*z.X
	det := x.X*m1 + x.Y*m2 + x.Z*m3

	p1 := math.Abs(y.Y*z.Z) + math.Abs(y.Z*z.Y)
	p2 := math.Abs(y.Z*z.X) + math.Abs(y.X*z.Z)
	p3 := math.Abs(y.X*z.Y) + math.Abs(y.Y*z.X)
	return det, math.Abs(x.X)*p1 + math.Abs(x.Y)*p2 + math.Abs(x.Z)*p3
}

func inSphereFloat(a, b, c, d, e r3.Vector) (det, perm float64) {
	ae, be, ce, de := a.Sub(e), b.Sub(e), c.Sub(e), d.Sub(e)
	al, bl, cl, dl := ae.Norm2(), be.Norm2(), ce.Norm2(), de.Norm2()

	tbcd, pbcd := triple(be, ce, de)
	tacd, pacd := triple(ae, ce, de)
	tabd, pabd := triple(ae, be, de)
	tabc, pabc := triple(ae, be, ce)

	det = al*tbcd - bl*tacd + cl*tabd - dl*tabc
	perm = al*pbcd + bl*pacd + cl*pabd + dl*pabc
	return det, perm
}

// Collinear reports whether a, b and c lie on a common line, exactly.
func Collinear(a, b, c r3.Vector) bool {
	pa := precise(a)
	n := precise(b).Sub(pa).Cross(precise(c).Sub(pa))
	return n.X.Sign() == 0 && n.Y.Sign() == 0 && n.Z.Sign() == 0
}

func (s Sign) String() string {
	switch s {
	case Negative:
		return "Negative"
	case Zero:
		return "Zero"
	case Positive:
		return "Positive"
	}
	return "Sign(" + strconv.Itoa(int(s)) + ")"
}

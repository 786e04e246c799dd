// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package predicates

import (
	"math/big"

	"github.com/golang/geo/r3"
)

// With the maximum precision sums and products of finite float64 values are
// never rounded.
const prec = big.MaxPrec

func precise(v r3.Vector) r3.PreciseVector {
	return r3.PreciseVectorFromVector(v)
}

func precMul(a, b *big.Float) *big.Float {
	return new(big.Float).SetPrec(prec).Mul(a, b)
}

func precAdd(a, b *big.Float) *big.Float {
	return new(big.Float).SetPrec(prec).Add(a, b)
}

func precSub(a, b *big.Float) *big.Float {
	return new(big.Float).SetPrec(prec).Sub(a, b)
}

func preciseTriple(x, y, z r3.PreciseVector) *big.Float {
	return x.Dot(y.Cross(z))
}

func orient3DExact(a, b, c, d r3.PreciseVector) Sign {
	return Sign(preciseTriple(b.Sub(a), c.Sub(a), d.Sub(a)).Sign())
}

func inSphereExact(a, b, c, d, e r3.PreciseVector) Sign {
	ae, be, ce, de := a.Sub(e), b.Sub(e), c.Sub(e), d.Sub(e)

	t1 := precMul(ae.Norm2(), preciseTriple(be, ce, de))
	t2 := precMul(be.Norm2(), preciseTriple(ae, ce, de))
	t3 := precMul(ce.Norm2(), preciseTriple(ae, be, de))
	t4 := precMul(de.Norm2(), preciseTriple(ae, be, ce))

	det := precSub(precAdd(precSub(t1, t2), t3), t4)
	return Sign(det.Sign())
}

// inCircleExact returns the in-circle sign of e against the circle through a,
// b and c. All four points must be coplanar and a, b, c not collinear. The
// circle is the intersection of the plane with the sphere through a, b, c and
// a point lifted off the plane along the normal, so the in-sphere determinant
// decides it.
func inCircleExact(a, b, c, e r3.PreciseVector) Sign {
	n := b.Sub(a).Cross(c.Sub(a))
	return inSphereExact(a, b, c, a.Add(n), e)
}

// sameSide returns the sign of the dot product between the normals of the
// triangles xyz and uvw, exactly.
func sameSide(x, y, z, u, v, w r3.PreciseVector) Sign {
	n1 := y.Sub(x).Cross(z.Sub(x))
	n2 := v.Sub(u).Cross(w.Sub(u))
	return Sign(n1.Dot(n2).Sign())
}

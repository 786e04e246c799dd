// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package spatial orders points along a Morton (Z-order) curve so that points
// close in the order are close in space.
package spatial

import (
	"cmp"
	"math"
	"slices"

	"github.com/golang/geo/r3"
)

const (
	bitsPerAxis = 21
	maxCoord    = 1<<bitsPerAxis - 1
)

// spread inserts two zero bits between each of the low 21 bits of v.
func spread(v uint64) uint64 {
	v &= maxCoord
	v = (v | v<<32) & 0x1f00000000ffff
	v = (v | v<<16) & 0x1f0000ff0000ff
	v = (v | v<<8) & 0x100f00f00f00f00f
	v = (v | v<<4) & 0x10c30c30c30c30c3
	v = (v | v<<2) & 0x1249249249249249
	return v
}

// MortonKey interleaves three 21-bit grid coordinates, x in the lowest bit.
func MortonKey(x, y, z uint32) uint64 {
	return spread(uint64(x)) | spread(uint64(y))<<1 | spread(uint64(z))<<2
}

// Bounds returns the axis-aligned bounding box of points.
func Bounds(points []r3.Vector) (lo, hi r3.Vector) {
	if len(points) == 0 {
		return r3.Vector{}, r3.Vector{}
	}
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		lo = r3.Vector{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
		hi = r3.Vector{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
	}
	return lo, hi
}

// quantizer maps coordinates of the bounding box onto the 21-bit grid. The
// scale is shared by all axes so the curve is not stretched.
type quantizer struct {
	lo    r3.Vector
	scale float64
}

func newQuantizer(points []r3.Vector) quantizer {
	lo, hi := Bounds(points)
	extent := max(hi.X-lo.X, hi.Y-lo.Y, hi.Z-lo.Z)
	q := quantizer{lo: lo}
	if extent > 0 && !math.IsInf(extent, 0) {
		q.scale = maxCoord / extent
	}
	return q
}

func (q quantizer) cell(v float64) uint32 {
	c := math.Floor(v * q.scale)
	switch {
	case !(c > 0):
		return 0
	case c > maxCoord:
		return maxCoord
	}
	return uint32(c)
}

func (q quantizer) key(p r3.Vector) uint64 {
	d := p.Sub(q.lo)
	return MortonKey(q.cell(d.X), q.cell(d.Y), q.cell(d.Z))
}

// Sort returns a permutation of the indices of points ordered by Morton key.
// Points with equal keys keep their index order, so the result is a total
// order and every index appears exactly once.
func Sort(points []r3.Vector) []int {
	q := newQuantizer(points)
	keys := make([]uint64, len(points))
	order := make([]int, len(points))
	for i, p := range points {
		keys[i] = q.key(p)
		order[i] = i
	}
	slices.SortFunc(order, func(i, j int) int {
		if c := cmp.Compare(keys[i], keys[j]); c != 0 {
			return c
		}
		return cmp.Compare(i, j)
	})
	return order
}

// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides point generators for tests, benchmarks and examples.

package utils

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// GenerateRandomPoints generates cnt points uniformly distributed in the unit cube.
// The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, seed int64) []r3.Vector {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]r3.Vector, cnt)

	for i := range cnt {
		points[i] = r3.Vector{X: random.Float64(), Y: random.Float64(), Z: random.Float64()}
	}

	return points
}

// GenerateSpherePoints generates cnt points on the unit sphere.
// The seed parameter ensures reproducibility.
func GenerateSpherePoints(cnt int, seed int64) []r3.Vector {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]r3.Vector, cnt)

	for i := range cnt {
		points[i] = s2.PointFromLatLng(s2.LatLng{
			Lat: s1.Angle((random.Float64() - 0.5) * math.Pi),
			Lng: s1.Angle((random.Float64()*2 - 1) * math.Pi),
		}).Vector
	}

	return points
}

// GenerateGridPoints generates the n*n*n points of the integer lattice [0, n)^3,
// x varying fastest. Lattices are maximally degenerate: many points are
// coplanar and cospherical.
func GenerateGridPoints(n int) []r3.Vector {
	points := make([]r3.Vector, 0, n*n*n)
	for z := range n {
		for y := range n {
			for x := range n {
				points = append(points, r3.Vector{X: float64(x), Y: float64(y), Z: float64(z)})
			}
		}
	}
	return points
}

// CubeCorners returns the eight corners of the unit cube, counter-clockwise on
// the bottom face followed by the top face.
func CubeCorners() []r3.Vector {
	return []r3.Vector{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 0, Z: 1},
		{X: 1, Y: 1, Z: 1},
		{X: 0, Y: 1, Z: 1},
	}
}

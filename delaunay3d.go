// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package delaunay3d computes Delaunay tetrahedralizations of point sets in
// three dimensions.
package delaunay3d

import (
	"github.com/2dChan/delaunay3d/predicates"
	"github.com/2dChan/delaunay3d/tetmesh"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Errors returned by the entry points. All but ErrInternal are input errors,
// see IsInputError.
var (
	ErrInvalidShape = tetmesh.ErrInvalidShape
	ErrTooFewPoints = tetmesh.ErrTooFewPoints
	ErrNonFinite    = tetmesh.ErrNonFinite
	ErrCoplanar     = tetmesh.ErrCoplanar
	ErrInternal     = tetmesh.ErrInternal
)

// IsInputError reports whether err was caused by invalid input rather than by
// an internal failure.
func IsInputError(err error) bool {
	return tetmesh.IsInputError(err)
}

// Stats describes the work done by a triangulation run.
type Stats = tetmesh.Stats

type Triangulation struct {
	Vertices []r3.Vector
	// Tetrahedra are positively oriented.
	Tetrahedra [][4]int
	// Neighbors[i][j] is the tetrahedron sharing the face of Tetrahedra[i]
	// opposite its j-th vertex, or -1 on the convex hull.
	Neighbors [][4]int
	// NOTE: Sorted by tetrahedron index per vertex.
	IncidentTetrahedronIndices []int
	IncidentTetrahedronOffsets []int
	// Duplicates maps the index of every dropped duplicate point to the
	// index of the point it was merged into.
	Duplicates map[int]int
	Stats      Stats

	eps float64
}

func (dt *Triangulation) NumTetrahedra() int {
	return len(dt.Tetrahedra)
}

func (dt *Triangulation) IncidentTetrahedra(vIdx int) []int {
	if vIdx < 0 || vIdx+1 >= len(dt.IncidentTetrahedronOffsets) {
		panic("IncidentTetrahedra: vIdx out of range")
	}
	start := dt.IncidentTetrahedronOffsets[vIdx]
	end := dt.IncidentTetrahedronOffsets[vIdx+1]
	return dt.IncidentTetrahedronIndices[start:end]
}

func (dt *Triangulation) TetrahedronVertices(tIdx int) (r3.Vector, r3.Vector, r3.Vector, r3.Vector) {
	if tIdx < 0 || tIdx >= len(dt.Tetrahedra) {
		panic("TetrahedronVertices: tIdx out of range")
	}
	t := dt.Tetrahedra[tIdx]
	return dt.Vertices[t[0]], dt.Vertices[t[1]], dt.Vertices[t[2]], dt.Vertices[t[3]]
}

// Volume returns the total volume of the tetrahedra.
func (dt *Triangulation) Volume() float64 {
	var vol float64
	for i := range dt.Tetrahedra {
		a, b, c, d := dt.TetrahedronVertices(i)
		vol += predicates.OrientVolume(a, b, c, d) / 6
	}
	return vol
}

// ComputeDelaunay returns the Delaunay tetrahedralization of points. Exact
// duplicates are merged into their lowest index. Cospherical ties are broken
// by a symbolic perturbation that depends on point indices, so the result is
// the same for every worker count.
func ComputeDelaunay(points []r3.Vector, setters ...TriangulationOption) (*Triangulation, error) {
	opts := defaultOptions()
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	m, duplicates, st, err := tetmesh.Build(points, tetmesh.Config{
		Workers:     opts.Workers,
		MaxRounds:   opts.MaxRounds,
		SpatialSort: opts.SpatialSort,
	})
	if err != nil {
		return nil, err
	}

	tets, neighbors := m.Compact()
	dt := &Triangulation{
		Vertices:                   points,
		Tetrahedra:                 tets,
		Neighbors:                  neighbors,
		IncidentTetrahedronIndices: make([]int, 4*len(tets)),
		IncidentTetrahedronOffsets: make([]int, len(points)+1),
		Duplicates:                 duplicates,
		Stats:                      st,
		eps:                        opts.Eps,
	}

	for _, t := range tets {
		for _, v := range t {
			dt.IncidentTetrahedronOffsets[v+1]++
		}
	}
	for i := range len(points) {
		dt.IncidentTetrahedronOffsets[i+1] += dt.IncidentTetrahedronOffsets[i]
	}
	nxt := make([]int, len(points))
	copy(nxt, dt.IncidentTetrahedronOffsets[:len(points)])
	for i, t := range tets {
		for _, v := range t {
			dt.IncidentTetrahedronIndices[nxt[v]] = i
			nxt[v]++
		}
	}

	return dt, nil
}

// ComputeDelaunayFromList is ComputeDelaunay for points given as rows of
// three coordinates.
func ComputeDelaunayFromList(rows [][]float64, setters ...TriangulationOption) (*Triangulation, error) {
	points := make([]r3.Vector, len(rows))
	for i, row := range rows {
		if len(row) != 3 {
			return nil, errors.Wrapf(ErrInvalidShape, "row %d has %d values", i, len(row))
		}
		points[i] = r3.Vector{X: row[0], Y: row[1], Z: row[2]}
	}
	return ComputeDelaunay(points, setters...)
}

// ComputeDelaunayFromFlat is ComputeDelaunay for points packed as x, y, z
// triples in one buffer.
func ComputeDelaunayFromFlat(coords []float64, setters ...TriangulationOption) (*Triangulation, error) {
	if len(coords)%3 != 0 {
		return nil, errors.Wrapf(ErrInvalidShape, "buffer length %d is not a multiple of 3", len(coords))
	}
	points := make([]r3.Vector, len(coords)/3)
	for i := range points {
		points[i] = r3.Vector{X: coords[3*i], Y: coords[3*i+1], Z: coords[3*i+2]}
	}
	return ComputeDelaunay(points, setters...)
}

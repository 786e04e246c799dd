// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunay3d

import (
	"runtime"

	"github.com/pkg/errors"
)

const (
	defaultEps = 1e-12
)

// TriangulationOptions holds the settings of a triangulation run.
type TriangulationOptions struct {
	// Eps is the tolerance of the convex hull computed by HullVolume.
	Eps float64
	// Workers is the number of goroutines used by each parallel step.
	Workers int
	// MaxRounds limits the number of insertion rounds and the flip rounds
	// of each repair. Zero means tetmesh.DefaultMaxRounds.
	MaxRounds int
	// SpatialSort inserts points in Morton order.
	SpatialSort bool
}

type TriangulationOption func(*TriangulationOptions) error

func defaultOptions() TriangulationOptions {
	return TriangulationOptions{
		Eps:         defaultEps,
		Workers:     runtime.GOMAXPROCS(0),
		SpatialSort: true,
	}
}

func WithEps(eps float64) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if eps <= 0 || eps >= 1 {
			return errors.Errorf("delaunay3d: eps must be in (0, 1), got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

func WithWorkers(n int) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if n < 1 {
			return errors.Errorf("delaunay3d: workers must be positive, got %d", n)
		}
		o.Workers = n
		return nil
	}
}

func WithMaxRounds(n int) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if n < 0 {
			return errors.Errorf("delaunay3d: max rounds must be non-negative, got %d", n)
		}
		o.MaxRounds = n
		return nil
	}
}

func WithSpatialSort(enabled bool) TriangulationOption {
	return func(o *TriangulationOptions) error {
		o.SpatialSort = enabled
		return nil
	}
}

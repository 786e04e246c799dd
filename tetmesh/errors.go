// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tetmesh

import "github.com/pkg/errors"

// Input errors. They are reported before any triangulation work starts.
var (
	ErrInvalidShape = errors.New("tetmesh: points must be of shape (n, 3)")
	ErrTooFewPoints = errors.New("tetmesh: insufficient points for triangulation (minimum 4 required)")
	ErrNonFinite    = errors.New("tetmesh: point coordinates must be finite")
	ErrCoplanar     = errors.New("tetmesh: points are coplanar, the convex hull has no volume")
)

// ErrInternal is wrapped by every invariant violation of the engine. It means
// the engine is broken, never that the input is bad.
var ErrInternal = errors.New("tetmesh: internal invariant violated")

// IsInputError reports whether err was caused by invalid input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidShape) ||
		errors.Is(err, ErrTooFewPoints) ||
		errors.Is(err, ErrNonFinite) ||
		errors.Is(err, ErrCoplanar)
}

func internalf(format string, args ...any) error {
	return errors.Wrapf(ErrInternal, format, args...)
}

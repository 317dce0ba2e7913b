package neighbors

import "errors"

var (
	// ErrInvalidRadius is returned when the search radius is below 1.
	ErrInvalidRadius = errors.New("neighbors: radius must be >= 1")

	// ErrUnknownMetric is returned for a metric outside Chebyshev and Euclidean.
	ErrUnknownMetric = errors.New("neighbors: unknown metric")

	// ErrNilIndex is returned when no index is supplied.
	ErrNilIndex = errors.New("neighbors: nil index")
)

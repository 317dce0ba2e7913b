package neighbors

import (
	"fmt"
	"strings"

	"maskmeta/internal/models"
)

// Metric selects the lattice distance used to decide neighborhood.
type Metric int

const (
	// Chebyshev accepts every offset with max(|dx|,|dy|,|dz|) <= radius.
	Chebyshev Metric = iota
	// Euclidean accepts every offset with dx²+dy²+dz² <= radius².
	Euclidean
)

func (m Metric) String() string {
	switch m {
	case Chebyshev:
		return "chebyshev"
	case Euclidean:
		return "euclidean"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// Valid reports whether m is a known metric.
func (m Metric) Valid() bool {
	return m == Chebyshev || m == Euclidean
}

// ParseMetric converts a metric name into a Metric.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "chebyshev", "box", "":
		return Chebyshev, nil
	case "euclidean", "sphere":
		return Euclidean, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
}

// within reports whether the offset lies inside the radius under m.
func (m Metric) within(dx, dy, dz, radius int) bool {
	if m == Euclidean {
		return dx*dx+dy*dy+dz*dz <= radius*radius
	}
	return abs(dx) <= radius && abs(dy) <= radius && abs(dz) <= radius
}

// reach returns the squared Euclidean distance bounding the neighborhood.
func (m Metric) reach(radius int) float64 {
	if m == Euclidean {
		return float64(radius * radius)
	}
	return float64(3 * radius * radius)
}

// Offset is a displacement on the lattice.
type Offset struct {
	DX, DY, DZ int
}

// Offsets returns every non-zero displacement within radius under metric,
// ordered by dz, then dy, then dx. For Chebyshev the result holds
// (2r+1)³-1 entries.
func Offsets(radius int, metric Metric) []Offset {
	return boxOffsets(radius, radius, radius, radius, metric)
}

// latticeOffsets clamps the search box to the lattice extent. Displacements
// at or beyond an axis length can never land in bounds, so a radius larger
// than the volume costs no more than a radius equal to it.
func latticeOffsets(dims models.Dims, radius int, metric Metric) []Offset {
	return boxOffsets(
		minInt(radius, dims.X-1),
		minInt(radius, dims.Y-1),
		minInt(radius, dims.Z-1),
		radius, metric)
}

func boxOffsets(rx, ry, rz, radius int, metric Metric) []Offset {
	offs := make([]Offset, 0, (2*rx+1)*(2*ry+1)*(2*rz+1))
	for dz := -rz; dz <= rz; dz++ {
		for dy := -ry; dy <= ry; dy++ {
			for dx := -rx; dx <= rx; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				if !metric.within(dx, dy, dz, radius) {
					continue
				}
				offs = append(offs, Offset{DX: dx, DY: dy, DZ: dz})
			}
		}
	}
	return offs
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

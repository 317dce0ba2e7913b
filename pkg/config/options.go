package config

import (
	"errors"
	"strconv"
	"strings"

	"maskmeta/pkg/meta"
	"maskmeta/pkg/neighbors"
)

// ErrOddPairs is returned when an option list ends with a name lacking a value.
var ErrOddPairs = errors.New("config: option list must hold name/value pairs")

// ParseOptions builds options from an alternating name/value list such as
// "radius", "2", "buildAdjacency", "true". Names are matched without regard
// to case. Parsing stops at the first unrecognized name or bad value; no
// partially applied options are returned in that case.
func ParseOptions(pairs ...string) (meta.Options, error) {
	opts := meta.DefaultOptions()
	if err := ApplyOptions(&opts, pairs...); err != nil {
		return meta.Options{}, err
	}
	return opts, nil
}

// ApplyOptions overrides fields of opts from an alternating name/value list.
// opts is left untouched when an error is returned.
func ApplyOptions(opts *meta.Options, pairs ...string) error {
	if len(pairs)%2 != 0 {
		return ErrOddPairs
	}
	next := *opts
	for i := 0; i < len(pairs); i += 2 {
		if err := applyOption(&next, pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*opts = next
	return nil
}

// SplitAssignments turns "name=value" strings into a name/value list.
func SplitAssignments(assignments []string) ([]string, error) {
	pairs := make([]string, 0, 2*len(assignments))
	for _, a := range assignments {
		name, value, ok := strings.Cut(a, "=")
		if !ok {
			return nil, meta.InvalidOption(a, "")
		}
		pairs = append(pairs, strings.TrimSpace(name), strings.TrimSpace(value))
	}
	return pairs, nil
}

func applyOption(o *meta.Options, name, value string) error {
	switch canonical(name) {
	case meta.OptRadius:
		r, err := strconv.Atoi(value)
		if err != nil || r < 1 {
			return meta.InvalidOption(meta.OptRadius, value)
		}
		o.Radius = r
	case meta.OptBuildAdjacency:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return meta.InvalidOption(meta.OptBuildAdjacency, value)
		}
		o.BuildAdjacency = b
	case meta.OptAccelerate:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return meta.InvalidOption(meta.OptAccelerate, value)
		}
		o.Accelerate = b
	case meta.OptMetric:
		m, err := neighbors.ParseMetric(value)
		if err != nil {
			return meta.InvalidOption(meta.OptMetric, value)
		}
		o.Metric = m
	case meta.OptWorkers:
		w, err := strconv.Atoi(value)
		if err != nil || w < 0 {
			return meta.InvalidOption(meta.OptWorkers, value)
		}
		o.Workers = w
	case meta.OptStrategy:
		if _, ok := neighbors.ByName(strings.ToLower(value), 0); !ok {
			return meta.InvalidOption(meta.OptStrategy, value)
		}
		o.Strategy = value
		o.Finder = nil
	default:
		return meta.UnknownOption(name)
	}
	return nil
}

// canonical maps a name onto its recognized spelling, or returns it unchanged.
func canonical(name string) string {
	for _, k := range meta.KnownOptions {
		if strings.EqualFold(k, name) {
			return k
		}
	}
	return name
}

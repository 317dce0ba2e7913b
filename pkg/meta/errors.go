package meta

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOption is returned for an option name outside the recognized set.
	ErrUnknownOption = errors.New("meta: unrecognized option")

	// ErrInvalidOption is returned for a recognized option with an unusable value.
	ErrInvalidOption = errors.New("meta: invalid option value")

	// ErrValueLength is returned when a vector does not have one entry per column.
	ErrValueLength = errors.New("meta: value count does not match column count")

	// ErrVolumeLength is returned when a volume does not match the mask dimensions.
	ErrVolumeLength = errors.New("meta: volume size does not match mask dimensions")
)

// OptionError reports a configuration problem with a single option. It wraps
// ErrUnknownOption or ErrInvalidOption.
type OptionError struct {
	Name  string
	Value string
	Err   error
}

func (e *OptionError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%v: %q", e.Err, e.Name)
	}
	return fmt.Sprintf("%v: %q = %q", e.Err, e.Name, e.Value)
}

func (e *OptionError) Unwrap() error {
	return e.Err
}

// UnknownOption returns the error for an unrecognized option name.
func UnknownOption(name string) error {
	return &OptionError{Name: name, Err: ErrUnknownOption}
}

// InvalidOption returns the error for a recognized option with a bad value.
func InvalidOption(name, value string) error {
	return &OptionError{Name: name, Value: value, Err: ErrInvalidOption}
}

// WarningKind classifies an advisory raised during a build.
type WarningKind int

const (
	// DegenerateInput is raised when adjacency is requested with radius > 1.
	// The adjacency matrix is not built.
	DegenerateInput WarningKind = iota + 1

	// AccelerationUnavailable is raised when acceleration is requested but no
	// accelerated strategy can run. The reference strategy is used.
	AccelerationUnavailable
)

func (k WarningKind) String() string {
	switch k {
	case DegenerateInput:
		return "degenerate-input"
	case AccelerationUnavailable:
		return "acceleration-unavailable"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning is a non-fatal advisory kept on the result.
type Warning struct {
	Kind    WarningKind
	Message string
}

func (w Warning) String() string {
	return w.Kind.String() + ": " + w.Message
}

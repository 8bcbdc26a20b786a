package models

import "github.com/pkg/errors"

var (
	// ErrInvalidConfig is returned for out-of-range machine or run settings
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidCapacity is returned when the level cap cannot be derived
	// (zero, negative or non-finite multiplier or base cap)
	ErrInvalidCapacity = errors.New("invalid capacity")

	// ErrAllocationTooSmall is returned when nothing is allocated to fill a level bar
	ErrAllocationTooSmall = errors.New("no allocation to gain a level")

	ErrInvalidDuration = errors.New("duration must be positive and finite")
)

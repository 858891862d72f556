package balancer

import "errors"

var (
	// ErrInvalidWeight is returned when an item is constructed with a non-positive weight.
	ErrInvalidWeight = errors.New("item weight must be a positive integer")
	// ErrInvalidContainerCount is returned when fewer than one container is requested.
	ErrInvalidContainerCount = errors.New("container count must be at least 1")
)

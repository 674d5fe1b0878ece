package gfx

import "github.com/pkg/errors"

var (
	// ErrInvalidFormat is returned when a format query is made against FormatUnknown or a value
	// outside the registry
	ErrInvalidFormat error = errors.New("invalid format")
	// ErrInvalidUsageCombination is returned from Validate methods when a resource's usage, flags and
	// format do not make sense together
	ErrInvalidUsageCombination error = errors.New("invalid usage combination")
	// ErrNonContiguousBinding is returned when binding numbers of one descriptor class within a set
	// have gaps
	ErrNonContiguousBinding error = errors.New("non-contiguous binding")
	// ErrCapacityExceeded is returned when a declared layout needs more slots or bytes than the device
	// reports
	ErrCapacityExceeded error = errors.New("capacity exceeded")
	// ErrBinaryLayoutMismatch is returned when a uniform block's declared size disagrees with its
	// offset table
	ErrBinaryLayoutMismatch error = errors.New("binary layout mismatch")
)

package utils

import "github.com/pkg/errors"

// PowerOfTwoError is returned from CheckPow2 when the tested value is not a power of two
var PowerOfTwoError error = errors.New("value must be a power of two")

// AlignmentError is returned from CheckAligned when the tested value is not a multiple of the alignment
var AlignmentError error = errors.New("value is not aligned")

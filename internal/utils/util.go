package utils

import (
	cerrors "github.com/cockroachdb/errors"
)

type Number interface {
	~int | ~uint | ~uint32
}

func CheckPow2[T Number](number T, name string) error {
	if number == 0 || number&(number-1) != 0 {
		return cerrors.Wrapf(PowerOfTwoError, "%s is %d", name, number)
	}
	return nil
}

// CheckAligned verifies that value is a multiple of alignment. alignment must be a power of two.
func CheckAligned[T Number](value T, alignment T, name string) error {
	if value&(alignment-1) != 0 {
		return cerrors.Wrapf(AlignmentError, "%s is %d, which is not a multiple of %d", name, value, alignment)
	}
	return nil
}

func AlignUp(value int, alignment uint) int {
	return (value + int(alignment) - 1) & int(^(alignment - 1))
}

// DivideRoundingUp returns the number of whole blocks of the provided size needed to cover value
func DivideRoundingUp(value int, blockSize int) int {
	return (value + blockSize - 1) / blockSize
}

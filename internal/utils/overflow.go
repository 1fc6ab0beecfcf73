package utils

import (
	"fmt"
	"math"
)

// CheckAdd adds two non-negative int values, failing if the sum would
// overflow int.
func CheckAdd(a, b int) (int, error) {
	if a > math.MaxInt-b {
		return 0, fmt.Errorf("addition overflow: %d + %d exceeds int max", a, b)
	}
	return a + b, nil
}

// CheckMul multiplies two non-negative int values, failing if the product
// would overflow int. Used for the capacity-doubling growth step.
func CheckMul(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil // No overflow when either is zero
	}
	if a > math.MaxInt/b {
		return 0, fmt.Errorf("multiplication overflow: %d * %d exceeds int max", a, b)
	}
	return a * b, nil
}

// ToInt converts an int64 position to int, failing if the value does not
// fit. Only relevant on 32-bit platforms, where an in-memory buffer cannot
// address beyond int anyway.
func ToInt(v int64) (int, error) {
	if v > math.MaxInt {
		return 0, fmt.Errorf("position %d exceeds int max", v)
	}
	return int(v), nil
}

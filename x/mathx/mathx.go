package mathx

import "golang.org/x/exp/constraints"

func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// AddSat returns a+b, saturating at hi instead of wrapping.
func AddSat[T constraints.Unsigned](a, b, hi T) T {
	if a >= hi || b >= hi-a {
		return hi
	}
	return a + b
}

// SubSat returns a-b, saturating at zero instead of wrapping.
func SubSat[T constraints.Unsigned](a, b T) T {
	if b >= a {
		return 0
	}
	return a - b
}

// RoundDiv returns floor((a + b/2)/b), classic rounding for positives.
// b == 0 yields 0.
func RoundDiv[T constraints.Unsigned](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b/2) / b
}

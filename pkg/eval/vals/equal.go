package vals

import "math"

// StrictEquals implements the IsStrictlyEqual operation (===).
func StrictEquals(x, y Value) bool {
	if xn, ok := x.(Number); ok {
		yn, ok := y.(Number)
		// NaN is not equal to itself, and +0 and -0 are equal.
		return ok && float64(xn) == float64(yn)
	}
	return sameNonNumber(x, y)
}

// SameValue implements the SameValue operation used by Object.is. NaN is equal
// to itself, and +0 and -0 are distinct.
func SameValue(x, y Value) bool {
	if xn, ok := x.(Number); ok {
		yn, ok := y.(Number)
		if !ok {
			return false
		}
		a, b := float64(xn), float64(yn)
		if math.IsNaN(a) && math.IsNaN(b) {
			return true
		}
		return a == b && math.Signbit(a) == math.Signbit(b)
	}
	return sameNonNumber(x, y)
}

// SameValueZero is like SameValue but treats +0 and -0 as equal.
func SameValueZero(x, y Value) bool {
	if xn, ok := x.(Number); ok {
		yn, ok := y.(Number)
		if !ok {
			return false
		}
		a, b := float64(xn), float64(yn)
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	}
	return sameNonNumber(x, y)
}

func sameNonNumber(x, y Value) bool {
	switch x := x.(type) {
	case Undefined, Null:
		return Kind(x) == Kind(y)
	case Bool:
		y, ok := y.(Bool)
		return ok && x == y
	case String:
		y, ok := y.(String)
		return ok && x == y
	case *Symbol:
		y, ok := y.(*Symbol)
		return ok && x == y
	case Object:
		y, ok := y.(Object)
		return ok && x == y
	}
	return false
}

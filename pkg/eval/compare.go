package eval

import (
	"math"

	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
)

// LessResult is the result of IsLessThan: true, false, or undefined when
// either operand converts to NaN.
type LessResult uint8

// Values of LessResult.
const (
	NotLess LessResult = iota
	Less
	// Unordered is the undefined result.
	Unordered
)

// IsLessThan implements the Abstract Relational Comparison x < y. The
// operands are converted to primitives in source order, which is x first when
// leftFirst is true and y first otherwise.
func IsLessThan(r Realm, x, y vals.Value, leftFirst bool) (LessResult, error) {
	var px, py vals.Value
	var err error
	if leftFirst {
		if px, err = ToPrimitive(r, x, HintNumber); err != nil {
			return NotLess, err
		}
		if py, err = ToPrimitive(r, y, HintNumber); err != nil {
			return NotLess, err
		}
	} else {
		if py, err = ToPrimitive(r, y, HintNumber); err != nil {
			return NotLess, err
		}
		if px, err = ToPrimitive(r, x, HintNumber); err != nil {
			return NotLess, err
		}
	}
	if sx, ok := px.(vals.String); ok {
		if sy, ok := py.(vals.String); ok {
			return lessResultOf(vals.CompareStrings(string(sx), string(sy)) < 0), nil
		}
	}
	nx, err := ToNumeric(r, px)
	if err != nil {
		return NotLess, err
	}
	ny, err := ToNumeric(r, py)
	if err != nil {
		return NotLess, err
	}
	if math.IsNaN(nx) || math.IsNaN(ny) {
		return Unordered, nil
	}
	return lessResultOf(nx < ny), nil
}

func lessResultOf(b bool) LessResult {
	if b {
		return Less
	}
	return NotLess
}

// IsLooselyEqual implements the Abstract Equality Comparison x == y.
func IsLooselyEqual(r Realm, x, y vals.Value) (bool, error) {
	if vals.Kind(x) == vals.Kind(y) {
		return vals.StrictEquals(x, y), nil
	}
	if vals.IsNullish(x) && vals.IsNullish(y) {
		return true, nil
	}
	switch xv := x.(type) {
	case vals.Number:
		if sy, ok := y.(vals.String); ok {
			return float64(xv) == vals.StringToNumber(string(sy)), nil
		}
	case vals.String:
		if _, ok := y.(vals.Number); ok {
			return IsLooselyEqual(r, vals.Number(vals.StringToNumber(string(xv))), y)
		}
	case vals.Bool:
		return IsLooselyEqual(r, boolToNumber(xv), y)
	}
	if yb, ok := y.(vals.Bool); ok {
		return IsLooselyEqual(r, x, boolToNumber(yb))
	}
	_, xObj := x.(vals.Object)
	_, yObj := y.(vals.Object)
	switch {
	case !xObj && yObj && isStringNumberOrSymbol(x):
		py, err := ToPrimitive(r, y, HintDefault)
		if err != nil {
			return false, err
		}
		return IsLooselyEqual(r, x, py)
	case xObj && !yObj && isStringNumberOrSymbol(y):
		px, err := ToPrimitive(r, x, HintDefault)
		if err != nil {
			return false, err
		}
		return IsLooselyEqual(r, px, y)
	}
	return false, nil
}

func boolToNumber(b vals.Bool) vals.Number {
	if b {
		return 1
	}
	return 0
}

func isStringNumberOrSymbol(v vals.Value) bool {
	switch v.(type) {
	case vals.String, vals.Number, *vals.Symbol:
		return true
	}
	return false
}

// InstanceofOperator implements v instanceof target.
func InstanceofOperator(r Realm, v, target vals.Value) (bool, error) {
	if vals.IsPrimitive(target) {
		return false, ThrowError(r, errs.TypeError,
			errs.RightHandSideNotObject("instanceof", vals.Repr(target)))
	}
	handler, err := GetMethod(r, target, vals.SymbolHasInstance)
	if err != nil {
		return false, err
	}
	if handler != nil {
		result, err := handler.Call(target, []vals.Value{v})
		if err != nil {
			return false, err
		}
		return ToBoolean(result), nil
	}
	if !vals.IsCallable(target) {
		return false, ThrowError(r, errs.TypeError, errs.RightHandSideNotCallable)
	}
	return OrdinaryHasInstance(r, target, v)
}

// OrdinaryHasInstance walks the prototype chain of v looking for the
// prototype property of c.
func OrdinaryHasInstance(r Realm, c, v vals.Value) (bool, error) {
	cObj, ok := c.(vals.Callable)
	if !ok {
		return false, nil
	}
	obj, ok := v.(vals.Object)
	if !ok {
		return false, nil
	}
	p, err := cObj.Get(vals.String("prototype"), cObj)
	if err != nil {
		return false, err
	}
	proto, ok := p.(vals.Object)
	if !ok {
		return false, ThrowError(r, errs.TypeError, errs.PrototypeNotObject)
	}
	for {
		obj, err = obj.GetPrototypeOf()
		if err != nil {
			return false, err
		}
		if obj == nil {
			return false, nil
		}
		if obj == proto {
			return true, nil
		}
	}
}

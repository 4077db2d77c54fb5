package eval

import (
	"math"

	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
)

// Type conversions. The conversions that can run user code take the realm,
// and return any abrupt completion from that code unchanged.

// Hint is the preferred type passed to ToPrimitive.
type Hint string

// Hints of ToPrimitive.
const (
	HintDefault Hint = "default"
	HintNumber  Hint = "number"
	HintString  Hint = "string"
)

// ToPrimitive converts a value to a primitive. Objects are converted with their
// @@toPrimitive method if they have one, and with OrdinaryToPrimitive
// otherwise.
func ToPrimitive(r Realm, v vals.Value, hint Hint) (vals.Value, error) {
	obj, ok := v.(vals.Object)
	if !ok {
		return v, nil
	}
	exotic, err := GetMethod(r, obj, vals.SymbolToPrimitive)
	if err != nil {
		return nil, err
	}
	if exotic != nil {
		result, err := exotic.Call(obj, []vals.Value{vals.String(hint)})
		if err != nil {
			return nil, err
		}
		if !vals.IsPrimitive(result) {
			return nil, ThrowError(r, errs.TypeError, errs.CannotConvertToPrimitive)
		}
		return result, nil
	}
	if hint == HintDefault {
		hint = HintNumber
	}
	return OrdinaryToPrimitive(r, obj, hint)
}

// OrdinaryToPrimitive tries the valueOf and toString methods of an object in
// the order given by the hint.
func OrdinaryToPrimitive(r Realm, obj vals.Object, hint Hint) (vals.Value, error) {
	methodNames := [2]vals.String{"valueOf", "toString"}
	if hint == HintString {
		methodNames[0], methodNames[1] = methodNames[1], methodNames[0]
	}
	for _, name := range methodNames {
		method, err := obj.Get(name, obj)
		if err != nil {
			return nil, err
		}
		if f, ok := method.(vals.Callable); ok {
			result, err := f.Call(obj, nil)
			if err != nil {
				return nil, err
			}
			if vals.IsPrimitive(result) {
				return result, nil
			}
		}
	}
	return nil, ThrowError(r, errs.TypeError, errs.CannotConvertToPrimitive)
}

// ToBoolean converts a value to a boolean. It never fails.
func ToBoolean(v vals.Value) bool {
	switch v := v.(type) {
	case vals.Undefined, vals.Null:
		return false
	case vals.Bool:
		return bool(v)
	case vals.Number:
		return !(v == 0 || math.IsNaN(float64(v)))
	case vals.String:
		return v != ""
	default:
		// Symbols and objects.
		return true
	}
}

// ToNumber converts a value to a number.
func ToNumber(r Realm, v vals.Value) (float64, error) {
	switch v := v.(type) {
	case vals.Undefined:
		return math.NaN(), nil
	case vals.Null:
		return 0, nil
	case vals.Bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case vals.Number:
		return float64(v), nil
	case vals.String:
		return vals.StringToNumber(string(v)), nil
	case *vals.Symbol:
		return 0, ThrowError(r, errs.TypeError, errs.CannotConvertSymbolToNumber)
	}
	prim, err := ToPrimitive(r, v, HintNumber)
	if err != nil {
		return 0, err
	}
	return ToNumber(r, prim)
}

// ToNumeric converts a value to a numeric value. There are no BigInts, so it
// is the same as ToNumber.
func ToNumeric(r Realm, v vals.Value) (float64, error) {
	return ToNumber(r, v)
}

// ToString converts a value to a string.
func ToString(r Realm, v vals.Value) (string, error) {
	switch v := v.(type) {
	case vals.Undefined:
		return "undefined", nil
	case vals.Null:
		return "null", nil
	case vals.Bool:
		if v {
			return "true", nil
		}
		return "false", nil
	case vals.Number:
		return vals.NumberToString(float64(v)), nil
	case vals.String:
		return string(v), nil
	case *vals.Symbol:
		return "", ThrowError(r, errs.TypeError, errs.CannotConvertSymbolToString)
	}
	prim, err := ToPrimitive(r, v, HintString)
	if err != nil {
		return "", err
	}
	return ToString(r, prim)
}

// ToInt32 converts a value to a signed 32-bit integer.
func ToInt32(r Realm, v vals.Value) (int32, error) {
	f, err := ToNumber(r, v)
	if err != nil {
		return 0, err
	}
	return vals.ToInt32(f), nil
}

// ToUint32 converts a value to an unsigned 32-bit integer.
func ToUint32(r Realm, v vals.Value) (uint32, error) {
	f, err := ToNumber(r, v)
	if err != nil {
		return 0, err
	}
	return vals.ToUint32(f), nil
}

// ToPropertyKey converts a value to a property key.
func ToPropertyKey(r Realm, v vals.Value) (vals.PropertyKey, error) {
	key, err := ToPrimitive(r, v, HintString)
	if err != nil {
		return nil, err
	}
	if sym, ok := key.(*vals.Symbol); ok {
		return sym, nil
	}
	s, err := ToString(r, key)
	if err != nil {
		return nil, err
	}
	return vals.String(s), nil
}

// ToObject converts a value to an object. Primitives are wrapped by the realm;
// undefined and null cannot be converted.
func ToObject(r Realm, v vals.Value) (vals.Object, error) {
	switch v := v.(type) {
	case vals.Object:
		return v, nil
	case vals.Undefined, vals.Null:
		return nil, ThrowError(r, errs.TypeError, errs.CannotConvertToObject)
	default:
		return r.WrapPrimitive(v)
	}
}

// RequireObjectCoercible fails with a TypeError with the given message when v
// is undefined or null.
func RequireObjectCoercible(r Realm, v vals.Value, msg string) error {
	if vals.IsNullish(v) {
		return ThrowError(r, errs.TypeError, msg)
	}
	return nil
}

// GetV gets a property of a value, which may be a primitive. The value itself
// is the receiver.
func GetV(r Realm, v vals.Value, key vals.PropertyKey) (vals.Value, error) {
	obj, err := ToObject(r, v)
	if err != nil {
		return nil, err
	}
	return obj.Get(key, v)
}

// GetMethod gets a method of a value. It returns nil if the property is
// undefined or null, and fails with a TypeError if it is not callable.
func GetMethod(r Realm, v vals.Value, key vals.PropertyKey) (vals.Callable, error) {
	f, err := GetV(r, v, key)
	if err != nil {
		return nil, err
	}
	if vals.IsNullish(f) {
		return nil, nil
	}
	callable, ok := f.(vals.Callable)
	if !ok {
		return nil, ThrowError(r, errs.TypeError, errs.NotAFunction(vals.Repr(f)))
	}
	return callable, nil
}

// Call calls a value, failing with a TypeError if it is not callable.
func Call(r Realm, f, this vals.Value, args []vals.Value) (vals.Value, error) {
	callable, ok := f.(vals.Callable)
	if !ok {
		return nil, ThrowError(r, errs.TypeError, errs.NotAFunction(vals.Repr(f)))
	}
	return callable.Call(this, args)
}

// CreateDataProperty defines an enumerable, writable and configurable data
// property, and fails with a TypeError if it cannot be defined.
func CreateDataProperty(r Realm, obj vals.Object, key vals.PropertyKey, v vals.Value) error {
	ok, err := obj.DefineOwnProperty(key, vals.DataDescriptor(v, true, true, true))
	if err != nil {
		return err
	}
	if !ok {
		return ThrowError(r, errs.TypeError,
			"cannot define property '"+vals.KeyString(key)+"'")
	}
	return nil
}

// DefinePropertyOrThrow defines a property, and fails with a TypeError if it
// cannot be defined.
func DefinePropertyOrThrow(r Realm, obj vals.Object, key vals.PropertyKey, desc vals.PropertyDescriptor) error {
	ok, err := obj.DefineOwnProperty(key, desc)
	if err != nil {
		return err
	}
	if !ok {
		return ThrowError(r, errs.TypeError,
			"cannot redefine property '"+vals.KeyString(key)+"'")
	}
	return nil
}

// SetOrThrow sets a property with the object as the receiver, and fails with a
// TypeError if it cannot be set.
func SetOrThrow(r Realm, obj vals.Object, key vals.PropertyKey, v vals.Value) error {
	ok, err := obj.Set(key, v, obj)
	if err != nil {
		return err
	}
	if !ok {
		return ThrowError(r, errs.TypeError, errs.CannotSetProperty(vals.KeyString(key), "object"))
	}
	return nil
}

// CopyDataProperties copies the own enumerable properties of source to target,
// skipping the excluded keys. Undefined and null sources copy nothing.
func CopyDataProperties(r Realm, target vals.Object, source vals.Value, excluded []vals.PropertyKey) error {
	if vals.IsNullish(source) {
		return nil
	}
	from, err := ToObject(r, source)
	if err != nil {
		return err
	}
	keys, err := from.OwnPropertyKeys()
	if err != nil {
		return err
	}
next:
	for _, key := range keys {
		for _, ex := range excluded {
			if vals.SameValue(key, ex) {
				continue next
			}
		}
		desc, err := from.GetOwnProperty(key)
		if err != nil {
			return err
		}
		if desc == nil || !desc.Enumerable {
			continue
		}
		v, err := from.Get(key, from)
		if err != nil {
			return err
		}
		if err := CreateDataProperty(r, target, key, v); err != nil {
			return err
		}
	}
	return nil
}

// Freeze makes all own properties of an object non-configurable and, for data
// properties, non-writable, and makes the object non-extensible.
func Freeze(r Realm, obj vals.Object) error {
	ok, err := obj.PreventExtensions()
	if err != nil {
		return err
	}
	if !ok {
		return ThrowError(r, errs.TypeError, "cannot prevent extensions")
	}
	keys, err := obj.OwnPropertyKeys()
	if err != nil {
		return err
	}
	for _, key := range keys {
		current, err := obj.GetOwnProperty(key)
		if err != nil {
			return err
		}
		if current == nil {
			continue
		}
		desc := vals.PropertyDescriptor{Has: vals.HasConfigurable}
		if !current.IsAccessor() {
			desc.Has |= vals.HasWritable
		}
		if err := DefinePropertyOrThrow(r, obj, key, desc); err != nil {
			return err
		}
	}
	return nil
}

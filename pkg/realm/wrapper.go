package realm

import (
	"unicode/utf16"

	"src.esval.dev/pkg/eval"
	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
)

// Wrapper is a primitive wrapper object, created by ToObject for booleans,
// numbers, strings and symbols. A string wrapper also has the code units of
// its string as read-only index properties.
type Wrapper struct {
	Object
	value vals.Value
	// units is set for string wrappers.
	units []uint16
}

// WrapPrimitive implements eval.Realm.
func (r *Realm) WrapPrimitive(v vals.Value) (vals.Object, error) {
	w := &Wrapper{value: v}
	switch v := v.(type) {
	case vals.Bool:
		w.init(r, w, r.BooleanPrototype, "Boolean")
	case vals.Number:
		w.init(r, w, r.NumberPrototype, "Number")
	case vals.String:
		w.init(r, w, r.StringPrototype, "String")
		w.units = utf16.Encode([]rune(string(v)))
		w.defineOrdinary(lengthKey, vals.DataDescriptor(vals.Number(len(w.units)), false, false, false))
	case *vals.Symbol:
		w.init(r, w, r.SymbolPrototype, "Symbol")
	default:
		return nil, eval.ThrowError(r, errs.TypeError, errs.CannotConvertToObject)
	}
	return w, nil
}

// PrimitiveValue returns the wrapped value.
func (w *Wrapper) PrimitiveValue() vals.Value { return w.value }

// stringIndex returns the code unit index a key refers to, if it is one.
func (w *Wrapper) stringIndex(key vals.PropertyKey) (int, bool) {
	if w.units == nil {
		return 0, false
	}
	i, ok := vals.ArrayIndex(key)
	if !ok || int(i) >= len(w.units) {
		return 0, false
	}
	return int(i), true
}

func (w *Wrapper) unitString(i int) vals.String {
	return vals.String(utf16.Decode(w.units[i : i+1]))
}

func (w *Wrapper) GetOwnProperty(key vals.PropertyKey) (*vals.PropertyDescriptor, error) {
	if i, ok := w.stringIndex(key); ok {
		desc := vals.DataDescriptor(w.unitString(i), false, true, false)
		return &desc, nil
	}
	return w.Object.GetOwnProperty(key)
}

func (w *Wrapper) DefineOwnProperty(key vals.PropertyKey, desc vals.PropertyDescriptor) (bool, error) {
	if i, ok := w.stringIndex(key); ok {
		// The index properties are read-only and non-configurable, so only a
		// definition that changes nothing succeeds.
		current := vals.DataDescriptor(w.unitString(i), false, true, false)
		return isCompatible(&current, desc), nil
	}
	return w.Object.DefineOwnProperty(key, desc)
}

func isCompatible(current *vals.PropertyDescriptor, d vals.PropertyDescriptor) bool {
	switch {
	case d.Has&vals.HasConfigurable != 0 && d.Configurable != current.Configurable,
		d.Has&vals.HasEnumerable != 0 && d.Enumerable != current.Enumerable,
		d.Has&vals.HasWritable != 0 && d.Writable != current.Writable,
		d.Has&vals.HasValue != 0 && !vals.SameValue(d.Value, current.Value),
		d.IsAccessor():
		return false
	}
	return true
}

func (w *Wrapper) OwnPropertyKeys() ([]vals.PropertyKey, error) {
	keys := make([]vals.PropertyKey, 0, len(w.units)+len(w.keys))
	for i := range w.units {
		keys = append(keys, vals.IndexKey(i))
	}
	return append(keys, orderKeys(w.keys)...), nil
}

func (w *Wrapper) Repr() string {
	return "[" + w.class + ": " + vals.Repr(w.value) + "]"
}

// thisPrimitive returns the primitive value of this for the methods of a
// wrapper prototype: this itself if it has the right type, or the value of a
// wrapper of the right type.
func thisPrimitive[T vals.Value](r *Realm, this vals.Value, method string) (T, error) {
	if v, ok := this.(T); ok {
		return v, nil
	}
	if w, ok := this.(*Wrapper); ok {
		if v, ok := w.value.(T); ok {
			return v, nil
		}
	}
	var zero T
	return zero, eval.ThrowError(r, errs.TypeError, method+" requires that 'this' be a "+vals.Kind(zero))
}

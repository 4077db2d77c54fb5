package realm

import (
	"strings"

	"src.esval.dev/pkg/eval"
	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
)

var lengthKey = vals.String("length")

// Array is an array exotic object. Its length is an own data property that is
// kept greater than every array index, and shrinking it deletes the elements
// beyond the new length.
type Array struct {
	Object
}

// NewArray implements eval.Realm.
func (r *Realm) NewArray() vals.Object {
	return r.NewArrayOf(nil)
}

// NewArrayOf returns a new array with the given elements.
func (r *Realm) NewArrayOf(elems []vals.Value) *Array {
	a := &Array{}
	a.init(r, a, r.ArrayPrototype, "Array")
	a.props[lengthKey] = &vals.PropertyDescriptor{
		Value: vals.Number(0), Writable: true,
		Has: vals.HasValue | vals.HasWritable | vals.HasEnumerable | vals.HasConfigurable}
	a.keys = append(a.keys, lengthKey)
	for i, elem := range elems {
		a.defineOrdinary(vals.IndexKey(i), vals.DataDescriptor(elem, true, true, true))
	}
	a.props[lengthKey].Value = vals.Number(len(elems))
	return a
}

// Len returns the length of the array.
func (a *Array) Len() uint32 {
	return uint32(a.props[lengthKey].Value.(vals.Number))
}

// Elements returns the values of the elements of the array; holes are
// undefined. It is meant for the host and is not charged to any budget.
func (a *Array) Elements() ([]vals.Value, error) {
	n := a.Len()
	var elems []vals.Value
	for i := uint32(0); i < n; i++ {
		v, err := a.Get(vals.IndexKey(int(i)), a)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return elems, nil
}

func (a *Array) DefineOwnProperty(key vals.PropertyKey, desc vals.PropertyDescriptor) (bool, error) {
	if key == vals.PropertyKey(lengthKey) {
		return a.setLength(desc)
	}
	index, ok := vals.ArrayIndex(key)
	if !ok {
		return a.defineOrdinary(key, desc)
	}
	lengthDesc := a.props[lengthKey]
	oldLen := a.Len()
	if index >= oldLen && !lengthDesc.Writable {
		return false, nil
	}
	if ok, err := a.defineOrdinary(key, desc); !ok || err != nil {
		return ok, err
	}
	if index >= oldLen {
		lengthDesc.Value = vals.Number(float64(index) + 1)
	}
	return true, nil
}

func (a *Array) setLength(desc vals.PropertyDescriptor) (bool, error) {
	if desc.Has&vals.HasValue == 0 {
		return a.defineOrdinary(lengthKey, desc)
	}
	newLen, err := eval.ToUint32(a.realm, desc.Value)
	if err != nil {
		return false, err
	}
	numberLen, err := eval.ToNumber(a.realm, desc.Value)
	if err != nil {
		return false, err
	}
	if float64(newLen) != numberLen {
		return false, eval.ThrowError(a.realm, errs.RangeError, "invalid array length")
	}
	desc.Value = vals.Number(newLen)
	lengthDesc := a.props[lengthKey]
	oldLen := a.Len()
	if newLen >= oldLen {
		return a.defineOrdinary(lengthKey, desc)
	}
	if !lengthDesc.Writable {
		return false, nil
	}
	makeReadOnly := desc.Has&vals.HasWritable != 0 && !desc.Writable
	desc.Writable = true
	if ok, err := a.defineOrdinary(lengthKey, desc); !ok || err != nil {
		return ok, err
	}
	// Delete elements from the end; a non-configurable element stops the
	// truncation just above itself.
	for _, key := range a.indexKeysFrom(newLen) {
		index, _ := vals.ArrayIndex(key)
		if a.props[key].Configurable {
			a.removeOwn(key)
			continue
		}
		lengthDesc.Value = vals.Number(float64(index) + 1)
		if makeReadOnly {
			lengthDesc.Writable = false
		}
		return false, nil
	}
	if makeReadOnly {
		lengthDesc.Writable = false
	}
	return true, nil
}

// indexKeysFrom returns the own index keys not below min, in descending
// order.
func (a *Array) indexKeysFrom(min uint32) []vals.PropertyKey {
	keys := orderKeys(a.keys)
	var result []vals.PropertyKey
	for i := len(keys) - 1; i >= 0; i-- {
		if index, ok := vals.ArrayIndex(keys[i]); ok && index >= min {
			result = append(result, keys[i])
		}
	}
	return result
}

func (a *Array) Repr() string {
	var parts []string
	addHoles := func(n uint32) {
		switch {
		case n == 1:
			parts = append(parts, "<1 empty item>")
		case n > 1:
			parts = append(parts, "<"+vals.NumberToString(float64(n))+" empty items>")
		}
	}
	next := uint32(0)
	for _, key := range orderKeys(a.keys) {
		index, ok := vals.ArrayIndex(key)
		if !ok {
			continue
		}
		addHoles(index - next)
		next = index + 1
		if desc := a.props[key]; desc.IsData() {
			parts = append(parts, reprNested(desc.Value))
		} else {
			parts = append(parts, "[Getter/Setter]")
		}
	}
	addHoles(a.Len() - next)
	return "[" + strings.Join(parts, ", ") + "]"
}

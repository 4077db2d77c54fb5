package realm

import (
	"unicode/utf8"

	"src.esval.dev/pkg/eval"
	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
)

// iterator is a built-in iterator object, such as an array iterator. Its next
// method is on its prototype.
type iterator struct {
	Object
	// step returns the next value, or false when the iteration is over.
	step func() (vals.Value, bool, error)
	done bool
}

func (r *Realm) newIterator(proto *Object, class string, step func() (vals.Value, bool, error)) *iterator {
	it := &iterator{step: step}
	it.init(r, it, proto, class)
	return it
}

func (r *Realm) iteratorNext(method string) NativeFunc {
	return func(this vals.Value, _ []vals.Value, _ vals.Object) (vals.Value, error) {
		it, ok := this.(*iterator)
		if !ok {
			return nil, eval.ThrowError(r, errs.TypeError, method+" called on an incompatible receiver")
		}
		if it.done {
			return r.iterResult(vals.Undefined{}, true), nil
		}
		v, ok, err := it.step()
		if err != nil {
			return nil, err
		}
		if !ok {
			it.done = true
			return r.iterResult(vals.Undefined{}, true), nil
		}
		return r.iterResult(v, false), nil
	}
}

// iterResult creates an iterator result object.
func (r *Realm) iterResult(v vals.Value, done bool) vals.Object {
	obj := r.NewObjectWithProto(r.ObjectPrototype)
	obj.defineOrdinary(vals.String("value"), vals.DataDescriptor(v, true, true, true))
	obj.defineOrdinary(vals.String("done"), vals.DataDescriptor(vals.Bool(done), true, true, true))
	return obj
}

// newArrayIterator iterates over the values of an array-like object. The
// length is read again at each step, so elements appended during the
// iteration are visited.
func (r *Realm) newArrayIterator(obj vals.Object) *iterator {
	index := 0
	return r.newIterator(r.ArrayIteratorPrototype, "Array Iterator", func() (vals.Value, bool, error) {
		lenValue, err := obj.Get(lengthKey, obj)
		if err != nil {
			return nil, false, err
		}
		n, err := eval.ToNumber(r, lenValue)
		if err != nil {
			return nil, false, err
		}
		if float64(index) >= vals.ToIntegerOrInfinity(n) {
			return nil, false, nil
		}
		v, err := obj.Get(vals.IndexKey(index), obj)
		if err != nil {
			return nil, false, err
		}
		index++
		return v, true, nil
	})
}

// newStringIterator iterates over the code points of a string.
func (r *Realm) newStringIterator(s string) *iterator {
	return r.newIterator(r.StringIteratorPrototype, "String Iterator", func() (vals.Value, bool, error) {
		if s == "" {
			return nil, false, nil
		}
		_, size := utf8.DecodeRuneInString(s)
		v := vals.String(s[:size])
		s = s[size:]
		return v, true, nil
	})
}

func (r *Realm) initIterators() {
	r.IteratorPrototype = r.NewObjectWithProto(r.ObjectPrototype)
	r.IteratorPrototype.defineBuiltin(vals.SymbolIterator,
		r.NewFunction("[Symbol.iterator]", 0, func(this vals.Value, _ []vals.Value, _ vals.Object) (vals.Value, error) {
			return this, nil
		}))

	r.ArrayIteratorPrototype = r.NewObjectWithProto(r.IteratorPrototype)
	r.ArrayIteratorPrototype.defineBuiltin(vals.String("next"),
		r.NewFunction("next", 0, r.iteratorNext("Array Iterator.prototype.next")))

	r.StringIteratorPrototype = r.NewObjectWithProto(r.IteratorPrototype)
	r.StringIteratorPrototype.defineBuiltin(vals.String("next"),
		r.NewFunction("next", 0, r.iteratorNext("String Iterator.prototype.next")))
}

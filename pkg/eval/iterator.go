package eval

import (
	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
)

// IteratorRecord is an iterator together with its next method. Done is set
// once the iterator is exhausted or has failed; a record that is Done is
// never stepped again.
type IteratorRecord struct {
	Iterator   vals.Object
	NextMethod vals.Value
	Done       bool
}

// GetIterator gets an iterator from an iterable value through its @@iterator
// method.
func GetIterator(r Realm, v vals.Value) (*IteratorRecord, error) {
	method, err := GetMethod(r, v, vals.SymbolIterator)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, ThrowError(r, errs.TypeError, errs.NotIterable(vals.Repr(v)))
	}
	iter, err := method.Call(v, nil)
	if err != nil {
		return nil, err
	}
	iterObj, ok := iter.(vals.Object)
	if !ok {
		return nil, ThrowError(r, errs.TypeError, errs.IteratorNotObject)
	}
	next, err := iterObj.Get(vals.String("next"), iterObj)
	if err != nil {
		return nil, err
	}
	return &IteratorRecord{Iterator: iterObj, NextMethod: next}, nil
}

// IteratorNext calls the next method and returns the result object.
func IteratorNext(r Realm, rec *IteratorRecord) (vals.Object, error) {
	result, err := Call(r, rec.NextMethod, rec.Iterator, nil)
	if err != nil {
		return nil, err
	}
	obj, ok := result.(vals.Object)
	if !ok {
		return nil, ThrowError(r, errs.TypeError, errs.IteratorResultNotObject)
	}
	return obj, nil
}

// IteratorComplete returns the done property of an iterator result.
func IteratorComplete(r Realm, result vals.Object) (bool, error) {
	done, err := result.Get(vals.String("done"), result)
	if err != nil {
		return false, err
	}
	return ToBoolean(done), nil
}

// IteratorValue returns the value property of an iterator result.
func IteratorValue(r Realm, result vals.Object) (vals.Value, error) {
	return result.Get(vals.String("value"), result)
}

// IteratorStep advances the iterator, returning the result object, or nil if
// the iterator is done.
func IteratorStep(r Realm, rec *IteratorRecord) (vals.Object, error) {
	result, err := IteratorNext(r, rec)
	if err != nil {
		return nil, err
	}
	done, err := IteratorComplete(r, result)
	if err != nil {
		return nil, err
	}
	if done {
		return nil, nil
	}
	return result, nil
}

// StepValue advances the iterator and returns the next value. When the
// iterator is exhausted it returns undefined and true. A record that is
// already Done is not stepped. Any failure while calling next, or reading
// done or value, sets Done before it is returned, so that the iterator is
// neither stepped nor closed afterwards.
func (rec *IteratorRecord) StepValue(r Realm) (vals.Value, bool, error) {
	if rec.Done {
		return vals.Undefined{}, true, nil
	}
	result, err := IteratorStep(r, rec)
	if err != nil {
		rec.Done = true
		return nil, false, err
	}
	if result == nil {
		rec.Done = true
		return vals.Undefined{}, true, nil
	}
	v, err := IteratorValue(r, result)
	if err != nil {
		rec.Done = true
		return nil, false, err
	}
	return v, false, nil
}

// IteratorClose calls the return method of the iterator, if it has one. The
// argument is the completion that caused the close, nil for a normal one; a
// throw completion takes precedence over any failure of the return method.
// Interrupt and Fatal completions are returned without running the return
// method.
func IteratorClose(r Realm, rec *IteratorRecord, completion error) error {
	if IsHostAbrupt(completion) {
		return completion
	}
	_, thrown := Thrown(completion)
	ret, err := GetMethod(r, rec.Iterator, vals.String("return"))
	if err != nil {
		if thrown {
			return completion
		}
		return err
	}
	if ret == nil {
		return completion
	}
	inner, err := ret.Call(rec.Iterator, nil)
	if thrown {
		return completion
	}
	if err != nil {
		return err
	}
	if _, ok := inner.(vals.Object); !ok {
		return ThrowError(r, errs.TypeError, errs.IteratorResultNotObject)
	}
	return completion
}

// IterateToList collects the remaining values of an iterator.
func IterateToList(r Realm, rec *IteratorRecord) ([]vals.Value, error) {
	var values []vals.Value
	for {
		v, done, err := rec.StepValue(r)
		if err != nil {
			return nil, err
		}
		if done {
			return values, nil
		}
		values = append(values, v)
	}
}

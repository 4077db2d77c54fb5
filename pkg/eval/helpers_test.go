package eval_test

import (
	"testing"

	"src.esval.dev/pkg/eval"
	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/evaltest"
	"src.esval.dev/pkg/eval/vals"
	"src.esval.dev/pkg/realm"
)

// setupTrace defines the following globals:
//
//   - trace, an array.
//   - log(v), which appends v to trace and returns it.
//   - boom(), which throws Error("boom").
//   - iter(...values), which returns an iterable over values. Its iterator
//     appends "next" to trace on every call of next, and "return" when it is
//     closed.
//   - naturals(), which returns an endless iterable of 0, 1, 2, ...
func setupTrace(r *realm.Realm) {
	trace := r.NewArrayOf(nil)
	record := func(v vals.Value) error {
		_, err := trace.Set(vals.IndexKey(int(trace.Len())), v, trace)
		return err
	}
	r.DefineGlobal("trace", trace)
	r.DefineGlobal("log", r.NewFunction("log", 1,
		func(_ vals.Value, args []vals.Value, _ vals.Object) (vals.Value, error) {
			var v vals.Value = vals.Undefined{}
			if len(args) > 0 {
				v = args[0]
			}
			return v, record(v)
		}))
	r.DefineGlobal("boom", r.NewFunction("boom", 0,
		func(vals.Value, []vals.Value, vals.Object) (vals.Value, error) {
			return nil, eval.ThrowError(r, errs.Error, "boom")
		}))
	r.DefineGlobal("iter", r.NewFunction("iter", 0,
		func(_ vals.Value, args []vals.Value, _ vals.Object) (vals.Value, error) {
			i := 0
			return newIterable(r, func() (vals.Value, bool, error) {
				if err := record(vals.String("next")); err != nil {
					return nil, false, err
				}
				if i >= len(args) {
					return nil, false, nil
				}
				i++
				return args[i-1], true, nil
			}, func() error { return record(vals.String("return")) }), nil
		}))
	r.DefineGlobal("naturals", r.NewFunction("naturals", 0,
		func(vals.Value, []vals.Value, vals.Object) (vals.Value, error) {
			n := 0
			return newIterable(r, func() (vals.Value, bool, error) {
				n++
				return vals.Number(n - 1), true, nil
			}, nil), nil
		}))
}

// newIterable returns an object whose @@iterator method returns an iterator
// driven by next. If ret is not nil, the iterator has a return method that
// calls it.
func newIterable(r *realm.Realm, next func() (vals.Value, bool, error), ret func() error) vals.Object {
	it := r.NewObjectWithProto(r.ObjectPrototype)
	define(it, "next", r.NewFunction("next", 0,
		func(vals.Value, []vals.Value, vals.Object) (vals.Value, error) {
			v, ok, err := next()
			if err != nil {
				return nil, err
			}
			if !ok {
				v = vals.Undefined{}
			}
			result := r.NewObject()
			define(result, "value", v)
			define(result, "done", vals.Bool(!ok))
			return result, nil
		}))
	if ret != nil {
		define(it, "return", r.NewFunction("return", 0,
			func(vals.Value, []vals.Value, vals.Object) (vals.Value, error) {
				return r.NewObject(), ret()
			}))
	}
	iterable := r.NewObjectWithProto(r.ObjectPrototype)
	iterable.DefineOwnProperty(vals.SymbolIterator, vals.DataDescriptor(
		r.NewFunction("[Symbol.iterator]", 0,
			func(vals.Value, []vals.Value, vals.Object) (vals.Value, error) {
				return it, nil
			}), true, false, true))
	return iterable
}

func define(obj vals.Object, key string, v vals.Value) {
	obj.DefineOwnProperty(vals.String(key), vals.DataDescriptor(v, true, true, true))
}

// traceIs returns a verification function that checks the content of the
// trace array defined by setupTrace.
func traceIs(want ...any) func(*testing.T, *realm.Realm) {
	return func(t *testing.T, r *realm.Realm) {
		t.Helper()
		trace, err := r.Global().Get(vals.String("trace"), r.Global())
		if err != nil {
			t.Fatalf("get trace: %v", err)
		}
		if m := evaltest.ArrayOf(want...); !evaltest.Match(trace, m) {
			t.Errorf("got trace %s, want %s", vals.Repr(trace), m)
		}
	}
}

var boomError = errs.Native{Kind: errs.Error, Message: "boom"}

package eval_test

import (
	"math"
	"testing"

	"src.esval.dev/pkg/eval"
	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
	"src.esval.dev/pkg/realm"
	"src.esval.dev/pkg/tt"
)

var (
	Args = tt.Args
	nan  = math.NaN()
	inf  = math.Inf(1)
)

// throws matches an error that is a thrown native error of the given kind.
type throws errs.Kind

func (k throws) Match(ret tt.RetValue) bool {
	err, ok := ret.(error)
	if !ok {
		return false
	}
	v, ok := eval.Thrown(err)
	if !ok {
		return false
	}
	e, ok := v.(*realm.Error)
	return ok && e.Kind() == errs.Kind(k)
}

// same matches a value identical to the wrapped one.
type same struct{ v any }

func (s same) Match(ret tt.RetValue) bool { return ret == s.v }

// withMethods returns an object whose valueOf and toString return the given
// values. A nil value leaves the method out.
func withMethods(r *realm.Realm, valueOf, toString vals.Value) vals.Object {
	obj := r.NewObject()
	for name, v := range map[string]vals.Value{"valueOf": valueOf, "toString": toString} {
		if v == nil {
			continue
		}
		ret := v
		obj.Set(vals.String(name), r.NewFunction(name, 0,
			func(vals.Value, []vals.Value, vals.Object) (vals.Value, error) {
				return ret, nil
			}), obj)
	}
	return obj
}

func TestToBoolean(t *testing.T) {
	r := realm.New(realm.Options{})
	tt.Test(t, tt.Fn("ToBoolean", eval.ToBoolean), tt.Table{
		Args(vals.Undefined{}).Rets(false),
		Args(vals.Null{}).Rets(false),
		Args(vals.Number(0)).Rets(false),
		Args(vals.Number(math.Copysign(0, -1))).Rets(false),
		Args(vals.Number(nan)).Rets(false),
		Args(vals.Number(-1)).Rets(true),
		Args(vals.String("")).Rets(false),
		Args(vals.String("0")).Rets(true),
		Args(vals.SymbolIterator).Rets(true),
		Args(r.NewObject()).Rets(true),
	})
}

func TestToNumber(t *testing.T) {
	r := realm.New(realm.Options{})
	toNumber := func(v vals.Value) (float64, error) { return eval.ToNumber(r, v) }
	tt.Test(t, tt.Fn("ToNumber", toNumber), tt.Table{
		Args(vals.Undefined{}).Rets(nan, nil),
		Args(vals.Null{}).Rets(0.0, nil),
		Args(vals.Bool(true)).Rets(1.0, nil),
		Args(vals.String(" 0x10 ")).Rets(16.0, nil),
		Args(vals.String("1_000")).Rets(nan, nil),
		Args(vals.String("-Infinity")).Rets(-inf, nil),
		Args(r.NewArrayOf(nil)).Rets(0.0, nil),
		Args(r.NewArrayOf([]vals.Value{vals.Number(7)})).Rets(7.0, nil),
		Args(r.NewArrayOf([]vals.Value{vals.Number(1), vals.Number(2)})).Rets(nan, nil),
		Args(withMethods(r, vals.Number(5), vals.String("9"))).Rets(5.0, nil),
		Args(withMethods(r, r.NewObject(), vals.String("9"))).Rets(9.0, nil),
		Args(withMethods(r, r.NewObject(), r.NewObject())).Rets(tt.Any, throws(errs.TypeError)),
		Args(vals.SymbolIterator).Rets(tt.Any, throws(errs.TypeError)),
	})
}

func TestToString(t *testing.T) {
	r := realm.New(realm.Options{})
	toString := func(v vals.Value) (string, error) { return eval.ToString(r, v) }
	tt.Test(t, tt.Fn("ToString", toString), tt.Table{
		Args(vals.Undefined{}).Rets("undefined", nil),
		Args(vals.Null{}).Rets("null", nil),
		Args(vals.Bool(false)).Rets("false", nil),
		Args(vals.Number(math.Copysign(0, -1))).Rets("0", nil),
		Args(vals.Number(1e21)).Rets("1e+21", nil),
		Args(r.NewArrayOf([]vals.Value{vals.Number(1), vals.Null{}, vals.String("x")})).Rets("1,,x", nil),
		Args(r.NewObject()).Rets("[object Object]", nil),
		Args(withMethods(r, vals.Number(5), vals.String("nine"))).Rets("nine", nil),
		Args(withMethods(r, vals.Number(5), r.NewObject())).Rets("5", nil),
		Args(vals.SymbolIterator).Rets(tt.Any, throws(errs.TypeError)),
	})
}

func TestToInt32AndToUint32(t *testing.T) {
	r := realm.New(realm.Options{})
	toInt32 := func(v vals.Value) (int32, error) { return eval.ToInt32(r, v) }
	toUint32 := func(v vals.Value) (uint32, error) { return eval.ToUint32(r, v) }
	tt.Test(t, tt.Fn("ToInt32", toInt32), tt.Table{
		Args(vals.Number(4294967296)).Rets(int32(0), nil),
		Args(vals.Number(2147483648)).Rets(int32(-2147483648), nil),
		Args(vals.Number(-1.9)).Rets(int32(-1), nil),
		Args(vals.String("12abc")).Rets(int32(0), nil),
		Args(vals.Number(inf)).Rets(int32(0), nil),
	})
	tt.Test(t, tt.Fn("ToUint32", toUint32), tt.Table{
		Args(vals.Number(-1)).Rets(uint32(4294967295), nil),
		Args(vals.Number(4294967297)).Rets(uint32(1), nil),
		Args(vals.Number(nan)).Rets(uint32(0), nil),
	})
}

func TestToPropertyKey(t *testing.T) {
	r := realm.New(realm.Options{})
	toPropertyKey := func(v vals.Value) (vals.PropertyKey, error) { return eval.ToPropertyKey(r, v) }
	tt.Test(t, tt.Fn("ToPropertyKey", toPropertyKey), tt.Table{
		Args(vals.Number(1.5)).Rets(vals.String("1.5"), nil),
		Args(vals.Null{}).Rets(vals.String("null"), nil),
		Args(vals.SymbolIterator).Rets(vals.SymbolIterator, nil),
		Args(withMethods(r, vals.Number(1), vals.String("k"))).Rets(vals.String("k"), nil),
	})
}

func TestToObject(t *testing.T) {
	r := realm.New(realm.Options{})
	obj := r.NewObject()
	toObject := func(v vals.Value) (vals.Object, error) { return eval.ToObject(r, v) }
	tt.Test(t, tt.Fn("ToObject", toObject), tt.Table{
		Args(obj).Rets(same{obj}, nil),
		Args(vals.Undefined{}).Rets(nil, throws(errs.TypeError)),
		Args(vals.Null{}).Rets(nil, throws(errs.TypeError)),
	})

	wrapped, err := eval.ToObject(r, vals.String("ab"))
	if err != nil {
		t.Fatalf("ToObject(\"ab\") -> error %v", err)
	}
	length, err := wrapped.Get(vals.String("length"), wrapped)
	if err != nil || length != vals.Number(2) {
		t.Errorf("length of wrapped \"ab\" = %v, %v; want 2", length, err)
	}
}

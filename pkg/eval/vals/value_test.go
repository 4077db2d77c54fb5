package vals

import (
	"math"
	"testing"

	"src.esval.dev/pkg/tt"
)

// testObject implements Object by embedding a nil Object; only identity and
// type assertions are exercised.
type testObject struct {
	Object
}

type testFunction struct {
	testObject
}

func (*testFunction) Call(Value, []Value) (Value, error) { return Undefined{}, nil }

func TestKindAndTypeOf(t *testing.T) {
	obj := &testObject{}
	fn := &testFunction{}
	tests := []struct {
		v      Value
		kind   string
		typeOf string
	}{
		{Undefined{}, "undefined", "undefined"},
		{Null{}, "null", "object"},
		{Bool(true), "boolean", "boolean"},
		{Number(1), "number", "number"},
		{String("x"), "string", "string"},
		{NewSymbol("s"), "symbol", "symbol"},
		{obj, "object", "object"},
		{fn, "object", "function"},
	}
	for _, test := range tests {
		if got := Kind(test.v); got != test.kind {
			t.Errorf("Kind(%s) = %q, want %q", Repr(test.v), got, test.kind)
		}
		if got := TypeOf(test.v); got != test.typeOf {
			t.Errorf("TypeOf(%s) = %q, want %q", Repr(test.v), got, test.typeOf)
		}
	}
}

func TestRepr(t *testing.T) {
	tt.Test(t, tt.Fn("Repr", Repr), tt.Table{
		Args(Undefined{}).Rets("undefined"),
		Args(Null{}).Rets("null"),
		Args(Bool(false)).Rets("false"),
		Args(Number(-0.5)).Rets("-0.5"),
		Args(String("a\"b")).Rets(`"a\"b"`),
		Args(NewSymbol("foo")).Rets("Symbol(foo)"),
		Args(&testObject{}).Rets("[object]"),
	})
}

func TestEquality(t *testing.T) {
	obj1, obj2 := &testObject{}, &testObject{}
	sym := NewSymbol("s")
	negZero := Number(math.Copysign(0, -1))
	nan := Number(math.NaN())
	tests := []struct {
		x, y                              Value
		strict, sameValue, sameValueZero bool
	}{
		{Undefined{}, Undefined{}, true, true, true},
		{Undefined{}, Null{}, false, false, false},
		{Number(1), Number(1), true, true, true},
		{Number(1), String("1"), false, false, false},
		{nan, nan, false, true, true},
		{Number(0), negZero, true, false, true},
		{String("a"), String("a"), true, true, true},
		{sym, sym, true, true, true},
		{sym, NewSymbol("s"), false, false, false},
		{obj1, obj1, true, true, true},
		{obj1, obj2, false, false, false},
		{Bool(true), Number(1), false, false, false},
	}
	for _, test := range tests {
		if got := StrictEquals(test.x, test.y); got != test.strict {
			t.Errorf("StrictEquals(%s, %s) = %v", Repr(test.x), Repr(test.y), got)
		}
		if got := SameValue(test.x, test.y); got != test.sameValue {
			t.Errorf("SameValue(%s, %s) = %v", Repr(test.x), Repr(test.y), got)
		}
		if got := SameValueZero(test.x, test.y); got != test.sameValueZero {
			t.Errorf("SameValueZero(%s, %s) = %v", Repr(test.x), Repr(test.y), got)
		}
	}
}

func TestDescriptors(t *testing.T) {
	d := DataDescriptor(Number(1), true, false, true)
	if !d.IsData() || d.IsAccessor() {
		t.Errorf("data descriptor classified wrongly: %+v", d)
	}
	a := AccessorDescriptor(nil, Undefined{}, true, true)
	if a.IsData() || !a.IsAccessor() || a.Has&HasGet != 0 {
		t.Errorf("accessor descriptor classified wrongly: %+v", a)
	}
}

package realm_test

import (
	"math"
	"testing"

	"src.esval.dev/pkg/ast"
	. "src.esval.dev/pkg/ast/astbuild"
	"src.esval.dev/pkg/eval/errs"
	. "src.esval.dev/pkg/eval/evaltest"
	"src.esval.dev/pkg/eval/vals"
	"src.esval.dev/pkg/realm"
)

// invoke builds obj.name(args...).
func invoke(obj ast.Expr, name string, args ...ast.Expr) *ast.CallExpr {
	return Call(Dot(obj, name), args...)
}

func objectMethod(name string, args ...ast.Expr) *ast.CallExpr {
	return invoke(Id("Object"), name, args...)
}

func descriptor(props ...*ast.Property) *ast.ObjectLiteral {
	members := make([]ast.ObjectMember, len(props))
	for i, p := range props {
		members[i] = p
	}
	return Object(members...)
}

func TestGlobals(t *testing.T) {
	Test(t,
		That(Bin(ast.OpStrictEq, Id("globalThis"), This())).Evaluates(true),
		That(Id("undefined")).Evaluates(vals.Undefined{}),
		That(Id("NaN")).Evaluates(math.NaN()),
		That(Id("Infinity")).Evaluates(math.Inf(1)),
		// The value properties are read-only.
		That(Seq(Set(Id("Infinity"), Num(1)), Id("Infinity"))).Evaluates(math.Inf(1)),
		That(Set(Id("undefined"), Num(1))).Strict().Throws(ErrorOfKind(errs.TypeError)),
		That(Delete(Id("NaN"))).Evaluates(false),
		// Built-in globals are not enumerable.
		That(objectMethod("keys", Id("globalThis"))).Evaluates(ArrayOf()),
		That(Seq(Set(Id("x"), Num(1)), objectMethod("keys", Id("globalThis")))).Evaluates(ArrayOf("x")),
	)
}

func TestObjectBuiltins(t *testing.T) {
	Test(t,
		That(Call(Id("Object"))).Evaluates(ObjectWith()),
		That(New(Id("Object"), Null())).Evaluates(ObjectWith()),
		That(Typeof(Call(Id("Object"), Num(1)))).Evaluates("object"),
		That(Bin(ast.OpInstanceof, Call(Id("Object"), Str("s")), Id("String"))).Evaluates(true),

		That(objectMethod("keys", Object(Prop("b", Num(1)), PropNum(1, Num(2)), Prop("a", Num(3))))).
			Evaluates(ArrayOf("1", "b", "a")),
		That(objectMethod("keys", Str("ab"))).Evaluates(ArrayOf("0", "1")),
		That(objectMethod("keys", Null())).Throws(ErrorOfKind(errs.TypeError)),

		That(Bin(ast.OpStrictEq, objectMethod("getPrototypeOf", Object()), Dot(Id("Object"), "prototype"))).
			Evaluates(true),
		That(objectMethod("getPrototypeOf", Dot(Id("Object"), "prototype"))).Evaluates(vals.Null{}),
		That(Bin(ast.OpStrictEq, objectMethod("getPrototypeOf", Num(1)), Dot(Id("Number"), "prototype"))).
			Evaluates(true),

		That(objectMethod("getPrototypeOf", objectMethod("create", Null()))).Evaluates(vals.Null{}),
		That(Dot(objectMethod("create", Object(Prop("inherited", Num(1)))), "inherited")).Evaluates(1),
		That(objectMethod("create", Num(1))).Throws(ErrorOfKind(errs.TypeError)),

		That(Seq(
			Set(Id("o"), Object()),
			objectMethod("setPrototypeOf", Id("o"), Object(Prop("p", Num(2)))),
			Dot(Id("o"), "p"))).Evaluates(2),
		That(objectMethod("setPrototypeOf", Object(), Num(1))).Throws(ErrorOfKind(errs.TypeError)),
		// Cycles are rejected.
		That(Seq(
			Set(Id("a"), Object()),
			Set(Id("b"), objectMethod("create", Id("a"))),
			objectMethod("setPrototypeOf", Id("a"), Id("b")))).Throws(ErrorOfKind(errs.TypeError)),

		That(Dot(Object(), "toString")).Evaluates(FunctionNamed("toString")),
		That(invoke(Object(), "hasOwnProperty", Str("x"))).Evaluates(false),
		That(invoke(Object(Prop("x", Undefined())), "hasOwnProperty", Str("x"))).Evaluates(true),
		That(invoke(Str("ab"), "hasOwnProperty", Num(1))).Evaluates(true),
	)
}

func TestObjectDefineProperty(t *testing.T) {
	Test(t,
		That(Seq(
			Set(Id("o"), Object()),
			objectMethod("defineProperty", Id("o"), Str("x"), descriptor(Prop("value", Num(1)))),
			Set(Dot(Id("o"), "x"), Num(2)),
			Array(Dot(Id("o"), "x"), objectMethod("keys", Id("o"))))).
			Evaluates(ArrayOf(1, ArrayOf())),
		That(Seq(
			Set(Dot(Id("globalThis"), "o"), Object()),
			objectMethod("defineProperty", Id("o"), Str("x"), descriptor(Prop("value", Num(1)))),
			Set(Dot(Id("o"), "x"), Num(2)))).
			Strict().Throws(ErrorOfKind(errs.TypeError)),
		That(Seq(
			Set(Dot(Id("globalThis"), "o"), Object()),
			objectMethod("defineProperty", Id("o"), Str("x"), descriptor(
				Prop("get", Arrow(nil, Num(42))), Prop("enumerable", Bool(true)))),
			Dot(Id("o"), "x"))).
			Evaluates(42),
		// Redefining a non-configurable property throws.
		That(Seq(
			Set(Id("o"), Object()),
			objectMethod("defineProperty", Id("o"), Str("x"), descriptor(Prop("value", Num(1)))),
			objectMethod("defineProperty", Id("o"), Str("x"), descriptor(Prop("value", Num(2)))))).
			Throws(ErrorOfKind(errs.TypeError)),
		That(objectMethod("defineProperty", Object(), Str("x"), Num(1))).Throws(ErrorOfKind(errs.TypeError)),
		That(objectMethod("defineProperty", Num(1), Str("x"), Object())).Throws(ErrorOfKind(errs.TypeError)),
		That(objectMethod("defineProperty", Object(), Str("x"),
			descriptor(Prop("get", Num(1))))).Throws(ErrorOfKind(errs.TypeError)),
		That(objectMethod("defineProperty", Object(), Str("x"),
			descriptor(Prop("get", Arrow(nil, Num(1))), Prop("value", Num(1))))).Throws(ErrorOfKind(errs.TypeError)),
	)
}

func TestObjectFreeze(t *testing.T) {
	Test(t,
		That(objectMethod("isFrozen", objectMethod("freeze", Object(Prop("a", Num(1)))))).Evaluates(true),
		That(objectMethod("isFrozen", Object(Prop("a", Num(1))))).Evaluates(false),
		That(objectMethod("isFrozen", Num(1))).Evaluates(true),
		That(objectMethod("freeze", Num(1))).Evaluates(1),
		That(Seq(
			Set(Id("o"), objectMethod("freeze", Object(Prop("a", Num(1))))),
			Set(Dot(Id("o"), "a"), Num(2)),
			Set(Dot(Id("o"), "b"), Num(2)),
			Id("o"))).Evaluates(ObjectWith("a", 1)),
		That(Seq(
			Set(Dot(Id("globalThis"), "o"), objectMethod("freeze", Object(Prop("a", Num(1))))),
			Set(Dot(Id("o"), "a"), Num(2)))).Strict().Throws(ErrorOfKind(errs.TypeError)),
		That(Seq(
			Set(Id("a"), objectMethod("freeze", Array(Num(1)))),
			invoke(Id("a"), "push", Num(2)))).Throws(ErrorOfKind(errs.TypeError)),
	)
}

func TestObjectPrototypeToString(t *testing.T) {
	toString := func(this ast.Expr) ast.Expr {
		return invoke(Dot(Dot(Id("Object"), "prototype"), "toString"), "call", this)
	}
	Test(t,
		That(toString(Undefined())).Evaluates("[object Undefined]"),
		That(toString(Null())).Evaluates("[object Null]"),
		That(toString(Array())).Evaluates("[object Array]"),
		That(toString(Arrow(nil, Num(1)))).Evaluates("[object Function]"),
		That(toString(New(Id("TypeError")))).Evaluates("[object Error]"),
		That(toString(Num(1))).Evaluates("[object Number]"),
		That(toString(Str(""))).Evaluates("[object String]"),
		That(toString(New(Id("Number"), Num(1)))).Evaluates("[object Number]"),
		That(Bin(ast.OpAdd, Str(""), Object())).Evaluates("[object Object]"),
	)
}

func TestFunctionPrototype(t *testing.T) {
	sum := Arrow(Params("a", "b"), Bin(ast.OpAdd, Id("a"), Id("b")))
	Test(t,
		That(invoke(sum, "call", Null(), Num(1), Num(2))).Evaluates(3),
		That(invoke(sum, "apply", Null(), Array(Num(1), Num(2)))).Evaluates(3),
		That(invoke(sum, "apply", Null(), Object(Prop("length", Num(2)), PropNum(0, Str("a")), PropNum(1, Str("b"))))).
			Evaluates("ab"),
		That(invoke(Arrow(nil, Num(0)), "apply", Null(), Undefined())).Evaluates(0),
		That(invoke(sum, "apply", Null(), Num(1))).Throws(ErrorOfKind(errs.TypeError)),
		That(invoke(Dot(Id("Object"), "keys"), "toString")).Evaluates("function keys() { [native code] }"),
		That(invoke(Dot(Arrow(nil, Num(0)), "call"), "call", Num(1))).Throws(ErrorOfKind(errs.TypeError)),
		// Function.prototype is not callable.
		That(Call(objectMethod("getPrototypeOf", Arrow(nil, Num(0))))).Throws(ErrorOfKind(errs.TypeError)),
	)
}

func TestArrayBuiltins(t *testing.T) {
	Test(t,
		That(Call(Id("Array"), Num(1), Num(2))).Evaluates(ArrayOf(1, 2)),
		That(New(Id("Array"), Num(3))).Evaluates(ArrayOf(Absent, Absent, Absent)),
		That(Call(Id("Array"), Str("3"))).Evaluates(ArrayOf("3")),
		That(New(Id("Array"), Num(-1))).Throws(ErrorOfKind(errs.RangeError)),
		That(invoke(Id("Array"), "of", Num(3))).Evaluates(ArrayOf(3)),
		That(invoke(Id("Array"), "isArray", Array())).Evaluates(true),
		That(invoke(Id("Array"), "isArray", Object(Prop("length", Num(0))))).Evaluates(false),

		That(invoke(Array(Num(1), Null(), Str("a"), Undefined()), "join")).Evaluates("1,,a,"),
		That(invoke(Array(Num(1), Num(2)), "join", Str("-"))).Evaluates("1-2"),
		That(Bin(ast.OpAdd, Array(Num(1), Array(Num(2), Num(3))), Str(""))).Evaluates("1,2,3"),
		That(invoke(Object(Prop("length", Num(2)), PropNum(0, Str("x"))), "join")).
			Throws(ErrorOfKind(errs.TypeError)),
		That(invoke(Dot(Dot(Id("Array"), "prototype"), "join"), "call",
			Object(Prop("length", Num(2)), PropNum(0, Str("x"))))).Evaluates("x,"),

		That(Seq(
			Set(Id("a"), Array(Num(1))),
			Array(invoke(Id("a"), "push", Num(2), Num(3)), Id("a")))).
			Evaluates(ArrayOf(3, ArrayOf(1, 2, 3))),
		That(invoke(Array(Num(1), Num(2)), "map", Arrow(Params("x", "i"), Bin(ast.OpMul, Id("x"), Id("i"))))).
			Evaluates(ArrayOf(0, 2)),
		That(invoke(Array(Num(1), nil, Num(3)), "map", Arrow(Params("x"), Id("x")))).
			Evaluates(ArrayOf(1, Absent, 3)),
		That(invoke(Array(), "map", Num(1))).Throws(ErrorOfKind(errs.TypeError)),
		That(invoke(Array(Num(1)), "map", Arrow(nil, This()), Str("t"))).Evaluates(ArrayOf(Anything)),

		That(Array(Spread(invoke(Array(Num(1), Num(2)), "values")))).Evaluates(ArrayOf(1, 2)),
		That(Bin(ast.OpStrictEq,
			Index(Dot(Id("Array"), "prototype"), Dot(Id("Symbol"), "iterator")),
			Dot(Dot(Id("Array"), "prototype"), "values"))).Evaluates(true),
	)
}

func TestNativeLoopsAreBudgeted(t *testing.T) {
	apply := func(length float64) ast.Expr {
		return invoke(Arrow(nil, Num(0)), "apply", Null(), Object(Prop("length", Num(length))))
	}
	Test(t,
		That(apply(60000)).WithMaxSteps(50).Interrupts(realm.ErrStepLimit),
		That(apply(3)).WithMaxSteps(50).Evaluates(0),
		That(apply(1e8)).Throws(ErrorOfKind(errs.RangeError)),
		That(invoke(New(Id("Array"), Num(1e9)), "join")).WithMaxSteps(1000).Interrupts(realm.ErrStepLimit),
		That(invoke(New(Id("Array"), Num(1e9)), "map", Arrow(nil, Num(0)))).
			WithMaxSteps(1000).Interrupts(realm.ErrStepLimit),
		That(invoke(New(Id("Array"), Num(4294967295)), "join")).Throws(ErrorOfKind(errs.RangeError)),
	)
}

func TestArrayLength(t *testing.T) {
	Test(t,
		That(Seq(Set(Id("a"), Array(Num(1), Num(2), Num(3))), Set(Dot(Id("a"), "length"), Num(1)), Id("a"))).
			Evaluates(ArrayOf(1)),
		That(Seq(Set(Id("a"), Array()), Set(Index(Id("a"), Num(4)), Num(1)), Dot(Id("a"), "length"))).
			Evaluates(5),
		That(Set(Dot(Array(), "length"), Num(1.5))).Throws(ErrorOfKind(errs.RangeError)),
		That(Set(Dot(Array(), "length"), Str("2"))).Evaluates("2"),
		That(Seq(Set(Id("a"), Array()), Set(Dot(Id("a"), "length"), Str("2")), Dot(Id("a"), "length"))).
			Evaluates(2),
		That(Delete(Dot(Array(), "length"))).Evaluates(false),
	)
}

func TestErrors(t *testing.T) {
	Test(t,
		That(New(Id("TypeError"), Str("bad"))).Evaluates(errs.Native{Kind: errs.TypeError, Message: "bad"}),
		That(Call(Id("RangeError"), Str("bad"))).Evaluates(errs.Native{Kind: errs.RangeError, Message: "bad"}),
		That(Dot(New(Id("Error")), "message")).Evaluates(""),
		That(invoke(New(Id("SyntaxError"), Str("x")), "toString")).Evaluates("SyntaxError: x"),
		That(invoke(New(Id("Error")), "toString")).Evaluates("Error"),
		That(Bin(ast.OpAdd, New(Id("EvalError"), Num(1)), Str(""))).Evaluates("EvalError: 1"),
		That(Bin(ast.OpInstanceof, New(Id("URIError")), Id("Error"))).Evaluates(true),
		That(Bin(ast.OpInstanceof, New(Id("ReferenceError")), Id("TypeError"))).Evaluates(false),
		That(invoke(Dot(Dot(Id("Error"), "prototype"), "toString"), "call",
			Object(Prop("name", Str("N")), Prop("message", Str("m"))))).Evaluates("N: m"),
		That(invoke(Dot(Dot(Id("Error"), "prototype"), "toString"), "call",
			Object(Prop("name", Str("")), Prop("message", Str("m"))))).Evaluates("m"),
		That(invoke(Dot(Dot(Id("Error"), "prototype"), "toString"), "call", Num(1))).
			Throws(ErrorOfKind(errs.TypeError)),
		// Errors thrown by the evaluator come from the same constructors.
		That(Dot(Null(), "x")).Throws(ErrorOfKind(errs.TypeError)),
	)
}

func TestPrimitiveConstructors(t *testing.T) {
	Test(t,
		That(Call(Id("String"), Num(12))).Evaluates("12"),
		That(Call(Id("String"))).Evaluates(""),
		That(Call(Id("String"), Call(Id("Symbol"), Str("d")))).Evaluates("Symbol(d)"),
		That(Bin(ast.OpAdd, Str(""), Call(Id("Symbol")))).Throws(ErrorOfKind(errs.TypeError)),
		That(Typeof(New(Id("String"), Str("ab")))).Evaluates("object"),
		That(Dot(New(Id("String"), Str("ab")), "length")).Evaluates(2),
		That(Index(New(Id("String"), Str("ab")), Num(1))).Evaluates("b"),
		That(objectMethod("keys", New(Id("String"), Str("ab")))).Evaluates(ArrayOf("0", "1")),
		That(invoke(New(Id("String"), Str("ab")), "valueOf")).Evaluates("ab"),
		That(invoke(Dot(Dot(Id("String"), "prototype"), "valueOf"), "call", Num(1))).
			Throws(ErrorOfKind(errs.TypeError)),
		That(Array(Spread(Str("a\U0001F600b")))).Evaluates(ArrayOf("a", "\U0001F600", "b")),
		That(Dot(Str("\U0001F600"), "length")).Evaluates(2),

		That(Call(Id("Number"), Str(" 12 "))).Evaluates(12),
		That(Call(Id("Number"))).Evaluates(0),
		That(Call(Id("Number"), Str("x"))).Evaluates(math.NaN()),
		That(invoke(Num(255), "toString", Num(16))).Evaluates("ff"),
		That(invoke(Num(-255), "toString", Num(2))).Evaluates("-11111111"),
		That(invoke(Num(1), "toString", Num(1))).Throws(ErrorOfKind(errs.RangeError)),
		That(invoke(New(Id("Number"), Num(3)), "valueOf")).Evaluates(3),
		That(Bin(ast.OpAdd, New(Id("Number"), Num(3)), Num(1))).Evaluates(4),

		That(Call(Id("Boolean"), Str(""))).Evaluates(false),
		That(Call(Id("Boolean"), Object())).Evaluates(true),
		That(invoke(Bool(true), "toString")).Evaluates("true"),
		// A wrapper object is truthy even when it wraps false.
		That(Logical(ast.OpAnd, New(Id("Boolean"), Bool(false)), Num(1))).Evaluates(1),
	)
}

func TestSymbols(t *testing.T) {
	Test(t,
		That(Typeof(Call(Id("Symbol")))).Evaluates("symbol"),
		That(Bin(ast.OpStrictEq, Call(Id("Symbol"), Str("a")), Call(Id("Symbol"), Str("a")))).Evaluates(false),
		That(invoke(Call(Id("Symbol"), Str("a")), "toString")).Evaluates("Symbol(a)"),
		That(Dot(Id("Symbol"), "iterator")).Evaluates(vals.SymbolIterator),
		That(New(Id("Symbol"))).Throws(ErrorOfKind(errs.TypeError)),
		That(Typeof(Call(Id("Object"), Call(Id("Symbol"))))).Evaluates("object"),
		That(Seq(
			Set(Id("s"), Call(Id("Symbol"), Str("k"))),
			Set(Id("o"), Object(PropComputed(Id("s"), Num(1)))),
			Array(Index(Id("o"), Id("s")), objectMethod("keys", Id("o"))))).
			Evaluates(ArrayOf(1, ArrayOf())),
	)
}

func TestIteratorPrototype(t *testing.T) {
	iterOf := func(e ast.Expr) ast.Expr {
		return Call(Index(e, Dot(Id("Symbol"), "iterator")))
	}
	Test(t,
		That(Seq(Set(Id("it"), iterOf(Array(Num(1)))),
			Array(invoke(Id("it"), "next"), invoke(Id("it"), "next"), invoke(Id("it"), "next")))).
			Evaluates(ArrayOf(
				ObjectWith("value", 1, "done", false),
				ObjectWith("value", vals.Undefined{}, "done", true),
				ObjectWith("value", vals.Undefined{}, "done", true))),
		That(Seq(Set(Id("it"), iterOf(Str("ab"))), Bin(ast.OpStrictEq, iterOf(Id("it")), Id("it")))).
			Evaluates(true),
		That(invoke(Dot(iterOf(Array()), "next"), "call", Object())).Throws(ErrorOfKind(errs.TypeError)),
		// Elements appended during iteration are visited.
		That(Seq(
			Set(Id("a"), Array(Num(1))),
			Set(Id("it"), iterOf(Id("a"))),
			invoke(Id("it"), "next"),
			invoke(Id("a"), "push", Num(2)),
			Dot(invoke(Id("it"), "next"), "value"))).Evaluates(2),
	)
}

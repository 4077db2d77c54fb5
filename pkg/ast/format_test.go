package ast_test

import (
	"math"
	"testing"

	. "src.esval.dev/pkg/ast"
	. "src.esval.dev/pkg/ast/astbuild"
)

var formatTests = []struct {
	n    Node
	want string
}{
	// Precedence and associativity.
	{Bin(OpAdd, Num(1), Bin(OpMul, Num(2), Num(3))), "1 + 2 * 3"},
	{Bin(OpMul, Bin(OpAdd, Num(1), Num(2)), Num(3)), "(1 + 2) * 3"},
	{Bin(OpSub, Num(1), Bin(OpSub, Num(2), Num(3))), "1 - (2 - 3)"},
	{Bin(OpSub, Bin(OpSub, Num(1), Num(2)), Num(3)), "1 - 2 - 3"},
	{Bin(OpExp, Num(2), Bin(OpExp, Num(3), Num(2))), "2 ** 3 ** 2"},
	{Bin(OpExp, Bin(OpExp, Num(2), Num(3)), Num(2)), "(2 ** 3) ** 2"},
	{Bin(OpExp, Unary(OpNeg, Num(2)), Num(2)), "(-2) ** 2"},
	{Logical(OpNullish, Logical(OpOr, Id("a"), Id("b")), Id("c")), "(a || b) ?? c"},
	{Logical(OpOr, Id("a"), Logical(OpAnd, Id("b"), Id("c"))), "a || b && c"},
	{Cond(Id("a"), Set(Id("b"), Num(1)), Num(2)), "a ? b = 1 : 2"},
	{Call(Id("f"), Seq(Num(1), Num(2))), "f((1, 2))"},

	// Unary and update operators.
	{Unary(OpNeg, Unary(OpNeg, Id("x"))), "- -x"},
	{Typeof(Id("x")), "typeof x"},
	{Unary(OpNot, Id("x")), "!x"},
	{PostInc(Id("x")), "x++"},
	{PreDec(Dot(Id("o"), "p")), "--o.p"},

	// Literals.
	{Str(`a"b`), `"a\"b"`},
	{Num(math.Inf(1)), "Infinity"},
	{Num(1.5), "1.5"},
	{Null(), "null"},
	{Bool(true), "true"},
	{Array(Num(1), Hole, Num(3)), "[1, , 3]"},
	{Array(Spread(Id("a"))), "[...a]"},
	{Object(), "{}"},
	{Object(Prop("a", Num(1)), Shorthand("b")), "{ a: 1, b }"},
	{Object(PropComputed(Id("k"), Num(1))), "{ [k]: 1 }"},
	{Object(Getter("x", Fn("", nil, Num(1)))), "{ get x() { return 1; } }"},
	{Template([]string{"a", "b"}, Id("x")), "`a${x}b`"},
	{Tagged(Id("tag"), Template([]string{"a"})), "tag`a`"},

	// Members, calls and new.
	{Dot(Num(1), "toString"), "(1).toString"},
	{Dot(Num(1.5), "x"), "1.5.x"},
	{Index(Id("a"), Str("b")), `a["b"]`},
	{Call(Dot(Id("a"), "b"), Num(1), Spread(Id("c"))), "a.b(1, ...c)"},
	{Chain(OptCall(OptDot(Id("a"), "b"))), "a?.b?.()"},
	{New(Call(Id("f"))), "new (f())()"},
	{NewNoArgs(Id("F")), "new F"},
	{NewTarget(), "new.target"},

	// Functions.
	{Fn("f", Params("a", "b"), Id("a")), "function f(a, b) { return a; }"},
	{BlockFn("g"), "function g() { ... }"},
	{Arrow(Params("x"), Object(Prop("a", Id("x")))), "(x) => ({ a: x })"},
	{Arrow(nil, Seq(Num(1), Num(2))), "() => (1, 2)"},

	// Patterns.
	{Set(ObjPat(PatShorthand("a"), PatProp("b", Default(Id("c"), Num(1))), Rest(Id("d"))), Id("o")),
		"{ a, b: c = 1, ...d } = o"},
	{Set(ArrPat(Id("a"), nil, Rest(Id("b"))), Id("xs")), "[a, , ...b] = xs"},
	{Assign(OpNullishAssign, Id("a"), Num(1)), "a ??= 1"},
}

func TestFormat(t *testing.T) {
	for _, test := range formatTests {
		if got := Format(test.n); got != test.want {
			t.Errorf("got %q, want %q", got, test.want)
		}
	}
}

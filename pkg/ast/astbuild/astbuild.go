// Package astbuild provides terse constructors for AST nodes. It is used by
// tests, which build expressions directly instead of parsing source text.
//
// All nodes built by this package have no position information.
package astbuild

import (
	"src.esval.dev/pkg/ast"
	"src.esval.dev/pkg/diag"
)

func at[N ast.Node](n N) N {
	ast.SetRange(n, diag.NoRanging)
	return n
}

// Literals and primaries.

func Null() *ast.NullLiteral          { return at(&ast.NullLiteral{}) }
func Bool(b bool) *ast.BooleanLiteral { return at(&ast.BooleanLiteral{Value: b}) }
func Num(f float64) *ast.NumberLiteral {
	return at(&ast.NumberLiteral{Value: f})
}
func Str(s string) *ast.StringLiteral { return at(&ast.StringLiteral{Value: s}) }
func Id(name string) *ast.Identifier  { return at(&ast.Identifier{Name: name}) }
func This() *ast.ThisExpr             { return at(&ast.ThisExpr{}) }

// Undefined is the identifier undefined.
func Undefined() *ast.Identifier { return Id("undefined") }

// NewTarget is the new.target meta property.
func NewTarget() *ast.MetaProperty {
	return at(&ast.MetaProperty{Meta: "new", Property: "target"})
}

// Array builds an array literal. A nil argument is a hole.
func Array(elems ...ast.Expr) *ast.ArrayLiteral {
	return at(&ast.ArrayLiteral{Elements: elems})
}

// Hole is a typed nil that reads better than nil in Array calls.
var Hole ast.Expr

func Spread(e ast.Expr) *ast.SpreadElement { return at(&ast.SpreadElement{Argument: e}) }

// Object builds an object literal.
func Object(members ...ast.ObjectMember) *ast.ObjectLiteral {
	return at(&ast.ObjectLiteral{Properties: members})
}

// Prop is a property with a static name.
func Prop(key string, v ast.Expr) *ast.Property {
	return at(&ast.Property{Key: Id(key), Value: v})
}

// PropNum is a property whose name is a numeric literal.
func PropNum(key float64, v ast.Expr) *ast.Property {
	return at(&ast.Property{Key: Num(key), Value: v})
}

// PropComputed is a property with a computed name.
func PropComputed(key, v ast.Expr) *ast.Property {
	return at(&ast.Property{Key: key, Value: v, Computed: true})
}

// Shorthand is a shorthand property, such as {x}.
func Shorthand(name string) *ast.Property {
	return at(&ast.Property{Key: Id(name), Value: Id(name), Shorthand: true})
}

// Method is a method definition, such as {m() {...}}.
func Method(key string, fn *ast.FunctionExpr) *ast.Property {
	return at(&ast.Property{Key: Id(key), Value: fn, Method: true})
}

// Getter and Setter are accessor definitions.
func Getter(key string, fn *ast.FunctionExpr) *ast.Property {
	return at(&ast.Property{Key: Id(key), Value: fn, Kind: ast.PropertyGet})
}

func Setter(key string, fn *ast.FunctionExpr) *ast.Property {
	return at(&ast.Property{Key: Id(key), Value: fn, Kind: ast.PropertySet})
}

// Template builds an untagged template literal from its quasis, which must be
// one more than the expressions.
func Template(quasis []string, exprs ...ast.Expr) *ast.TemplateLiteral {
	elems := make([]*ast.TemplateElement, len(quasis))
	for i, q := range quasis {
		cooked := q
		elems[i] = at(&ast.TemplateElement{Cooked: &cooked, Raw: q})
	}
	return at(&ast.TemplateLiteral{Quasis: elems, Exprs: exprs})
}

// Tagged builds a tagged template.
func Tagged(tag ast.Expr, quasi *ast.TemplateLiteral) *ast.TaggedTemplateExpr {
	return at(&ast.TaggedTemplateExpr{Tag: tag, Quasi: quasi})
}

// Functions.

// Fn builds a function expression with a concise body. The name may be empty.
func Fn(name string, params []ast.Pattern, body ast.Expr) *ast.FunctionExpr {
	fn := &ast.FunctionExpr{Params: params, Body: body}
	if name != "" {
		fn.ID = Id(name)
	}
	return at(fn)
}

// Arrow builds an arrow function with a concise body.
func Arrow(params []ast.Pattern, body ast.Expr) *ast.FunctionExpr {
	return at(&ast.FunctionExpr{Params: params, Body: body, Arrow: true})
}

// BlockFn builds a function expression whose body is an opaque block.
func BlockFn(name string, params ...ast.Pattern) *ast.FunctionExpr {
	fn := Fn(name, params, nil)
	fn.Body = at(&ast.BlockStatement{})
	return fn
}

// Params is shorthand for a list of identifier parameters.
func Params(names ...string) []ast.Pattern {
	ps := make([]ast.Pattern, len(names))
	for i, name := range names {
		ps[i] = Id(name)
	}
	return ps
}

// Operators.

func Unary(op ast.UnaryOp, e ast.Expr) *ast.UnaryExpr {
	return at(&ast.UnaryExpr{Op: op, Argument: e})
}

func Typeof(e ast.Expr) *ast.UnaryExpr { return Unary(ast.OpTypeof, e) }
func Delete(e ast.Expr) *ast.UnaryExpr { return Unary(ast.OpDelete, e) }

func PreInc(e ast.Expr) *ast.UpdateExpr {
	return at(&ast.UpdateExpr{Op: ast.OpInc, Prefix: true, Argument: e})
}

func PostInc(e ast.Expr) *ast.UpdateExpr {
	return at(&ast.UpdateExpr{Op: ast.OpInc, Argument: e})
}

func PreDec(e ast.Expr) *ast.UpdateExpr {
	return at(&ast.UpdateExpr{Op: ast.OpDec, Prefix: true, Argument: e})
}

func PostDec(e ast.Expr) *ast.UpdateExpr {
	return at(&ast.UpdateExpr{Op: ast.OpDec, Argument: e})
}

func Bin(op ast.BinaryOp, l, r ast.Expr) *ast.BinaryExpr {
	return at(&ast.BinaryExpr{Op: op, Left: l, Right: r})
}

func Logical(op ast.LogicalOp, l, r ast.Expr) *ast.LogicalExpr {
	return at(&ast.LogicalExpr{Op: op, Left: l, Right: r})
}

func Cond(test, cons, alt ast.Expr) *ast.ConditionalExpr {
	return at(&ast.ConditionalExpr{Test: test, Consequent: cons, Alternate: alt})
}

func Assign(op ast.AssignOp, left ast.Node, right ast.Expr) *ast.AssignmentExpr {
	return at(&ast.AssignmentExpr{Op: op, Left: left, Right: right})
}

// Set is a plain assignment.
func Set(left ast.Node, right ast.Expr) *ast.AssignmentExpr {
	return Assign(ast.OpAssign, left, right)
}

func Seq(es ...ast.Expr) *ast.SequenceExpr { return at(&ast.SequenceExpr{Exprs: es}) }

// Member, call and new.

// Dot builds obj.name.
func Dot(obj ast.Expr, name string) *ast.MemberExpr {
	return at(&ast.MemberExpr{Object: obj, Property: Id(name)})
}

// Index builds obj[key].
func Index(obj, key ast.Expr) *ast.MemberExpr {
	return at(&ast.MemberExpr{Object: obj, Property: key, Computed: true})
}

// OptDot builds obj?.name. It must be wrapped in a Chain.
func OptDot(obj ast.Expr, name string) *ast.MemberExpr {
	m := Dot(obj, name)
	m.Optional = true
	return m
}

func Call(callee ast.Expr, args ...ast.Expr) *ast.CallExpr {
	return at(&ast.CallExpr{Callee: callee, Arguments: args})
}

// OptCall builds callee?.(args). It must be wrapped in a Chain.
func OptCall(callee ast.Expr, args ...ast.Expr) *ast.CallExpr {
	c := Call(callee, args...)
	c.Optional = true
	return c
}

func New(callee ast.Expr, args ...ast.Expr) *ast.NewExpr {
	return at(&ast.NewExpr{Callee: callee, Arguments: args})
}

// NewNoArgs builds new callee, without an argument clause.
func NewNoArgs(callee ast.Expr) *ast.NewExpr {
	return at(&ast.NewExpr{Callee: callee, NoArguments: true})
}

func Chain(e ast.Expr) *ast.ChainExpr { return at(&ast.ChainExpr{Expression: e}) }

func Yield(e ast.Expr) *ast.YieldExpr { return at(&ast.YieldExpr{Argument: e}) }
func Await(e ast.Expr) *ast.AwaitExpr { return at(&ast.AwaitExpr{Argument: e}) }

// Patterns.

// ArrPat builds an array pattern. A nil argument is a hole.
func ArrPat(elems ...ast.Pattern) *ast.ArrayPattern {
	return at(&ast.ArrayPattern{Elements: elems})
}

// ObjPat builds an object pattern from PatProp and Rest elements.
func ObjPat(props ...ast.Pattern) *ast.ObjectPattern {
	return at(&ast.ObjectPattern{Properties: props})
}

// PatProp builds a pattern property with a static key.
func PatProp(key string, value ast.Pattern) *ast.PatternProperty {
	return at(&ast.PatternProperty{Key: Id(key), Value: value})
}

// PatShorthand builds the pattern property {name}.
func PatShorthand(name string) *ast.PatternProperty {
	return at(&ast.PatternProperty{Key: Id(name), Value: Id(name), Shorthand: true})
}

// PatComputed builds a pattern property with a computed key.
func PatComputed(key ast.Expr, value ast.Pattern) *ast.PatternProperty {
	return at(&ast.PatternProperty{Key: key, Value: value, Computed: true})
}

func Default(p ast.Pattern, e ast.Expr) *ast.AssignmentPattern {
	return at(&ast.AssignmentPattern{Left: p, Right: e})
}

func Rest(p ast.Pattern) *ast.RestElement { return at(&ast.RestElement{Argument: p}) }

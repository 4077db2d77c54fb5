package ast

import (
	"math"
	"strconv"
	"strings"
)

// Format returns ECMAScript source text for a node. Parentheses are added
// where precedence requires them, so the text parses back to the same tree.
// Function bodies that are blocks are shown as "{ ... }".
func Format(n Node) string {
	var sb strings.Builder
	f := formatter{&sb}
	f.node(n)
	return sb.String()
}

// Operator precedence levels, from loosest to tightest.
const (
	precSequence = iota
	precAssign
	precConditional
	precNullish
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precExponent
	precUnary
	precUpdate
	precLeftHandSide
	precPrimary
)

var binaryPrec = map[BinaryOp]int{
	OpExp: precExponent,
	OpMul: precMultiplicative, OpDiv: precMultiplicative, OpMod: precMultiplicative,
	OpAdd: precAdditive, OpSub: precAdditive,
	OpShl: precShift, OpShr: precShift, OpUShr: precShift,
	OpLt: precRelational, OpGt: precRelational, OpLe: precRelational, OpGe: precRelational,
	OpInstanceof: precRelational, OpIn: precRelational,
	OpEq: precEquality, OpNe: precEquality, OpStrictEq: precEquality, OpStrictNe: precEquality,
	OpBitAnd: precBitAnd, OpBitXor: precBitXor, OpBitOr: precBitOr,
}

var logicalPrec = map[LogicalOp]int{
	OpAnd: precAnd, OpOr: precOr, OpNullish: precNullish,
}

func precedence(e Expr) int {
	switch e := e.(type) {
	case *SequenceExpr:
		return precSequence
	case *AssignmentExpr, *YieldExpr:
		return precAssign
	case *FunctionExpr:
		if e.Arrow {
			return precAssign
		}
	case *ConditionalExpr:
		return precConditional
	case *LogicalExpr:
		return logicalPrec[e.Op]
	case *BinaryExpr:
		return binaryPrec[e.Op]
	case *UnaryExpr, *AwaitExpr:
		return precUnary
	case *UpdateExpr:
		return precUpdate
	case *MemberExpr, *CallExpr, *NewExpr, *ChainExpr, *TaggedTemplateExpr:
		return precLeftHandSide
	}
	return precPrimary
}

type formatter struct{ sb *strings.Builder }

func (f formatter) write(ss ...string) {
	for _, s := range ss {
		f.sb.WriteString(s)
	}
}

// expr writes e, parenthesized if it binds looser than min.
func (f formatter) expr(e Expr, min int) {
	if precedence(e) < min {
		f.write("(")
		f.node(e)
		f.write(")")
		return
	}
	f.node(e)
}

func (f formatter) list(es []Expr) {
	for i, e := range es {
		if i > 0 {
			f.write(", ")
		}
		if e != nil {
			f.expr(e, precAssign)
		}
	}
}

func (f formatter) node(n Node) {
	switch n := n.(type) {
	case nil:
	case *NullLiteral:
		f.write("null")
	case *BooleanLiteral:
		f.write(strconv.FormatBool(n.Value))
	case *NumberLiteral:
		f.write(formatNumber(n.Value))
	case *StringLiteral:
		f.write(strconv.Quote(n.Value))
	case *TemplateLiteral:
		f.template(n)
	case *TaggedTemplateExpr:
		f.expr(n.Tag, precLeftHandSide)
		f.template(n.Quasi)
	case *Identifier:
		f.write(n.Name)
	case *ThisExpr:
		f.write("this")
	case *MetaProperty:
		f.write(n.Meta, ".", n.Property)
	case *ArrayLiteral:
		f.write("[")
		f.list(n.Elements)
		if len(n.Elements) > 0 && n.Elements[len(n.Elements)-1] == nil {
			f.write(",")
		}
		f.write("]")
	case *SpreadElement:
		f.write("...")
		f.expr(n.Argument, precAssign)
	case *ObjectLiteral:
		f.object(n)
	case *FunctionExpr:
		f.function(n)
	case *UnaryExpr:
		f.write(string(n.Op))
		if len(n.Op) > 1 || startsWithSign(n.Argument) {
			f.write(" ")
		}
		f.expr(n.Argument, precUnary)
	case *UpdateExpr:
		if n.Prefix {
			f.write(string(n.Op))
			f.expr(n.Argument, precUnary)
		} else {
			f.expr(n.Argument, precLeftHandSide)
			f.write(string(n.Op))
		}
	case *BinaryExpr:
		p := binaryPrec[n.Op]
		left, right := p, p+1
		if n.Op == OpExp {
			// Right-associative, and a unary operand must be parenthesized.
			left, right = precUpdate, p
		}
		f.expr(n.Left, left)
		f.write(" ", string(n.Op), " ")
		f.expr(n.Right, right)
	case *LogicalExpr:
		p := logicalPrec[n.Op]
		left, right := p, p+1
		if n.Op == OpNullish {
			// ?? cannot be mixed with && or || without parentheses.
			left, right = precBitOr, precBitOr
		}
		f.expr(n.Left, left)
		f.write(" ", string(n.Op), " ")
		f.expr(n.Right, right)
	case *ConditionalExpr:
		f.expr(n.Test, precNullish)
		f.write(" ? ")
		f.expr(n.Consequent, precAssign)
		f.write(" : ")
		f.expr(n.Alternate, precAssign)
	case *AssignmentExpr:
		if e, ok := n.Left.(Expr); ok {
			f.expr(e, precLeftHandSide)
		} else {
			f.node(n.Left)
		}
		f.write(" ", string(n.Op), " ")
		f.expr(n.Right, precAssign)
	case *SequenceExpr:
		for i, e := range n.Exprs {
			if i > 0 {
				f.write(", ")
			}
			f.expr(e, precAssign)
		}
	case *MemberExpr:
		f.member(n)
	case *CallExpr:
		f.expr(n.Callee, precLeftHandSide)
		if n.Optional {
			f.write("?.")
		}
		f.write("(")
		f.list(n.Arguments)
		f.write(")")
	case *NewExpr:
		f.write("new ")
		if _, ok := n.Callee.(*CallExpr); ok {
			f.write("(")
			f.node(n.Callee)
			f.write(")")
		} else {
			f.expr(n.Callee, precLeftHandSide)
		}
		if !n.NoArguments {
			f.write("(")
			f.list(n.Arguments)
			f.write(")")
		}
	case *ChainExpr:
		f.node(n.Expression)
	case *YieldExpr:
		f.write("yield")
		if n.Delegate {
			f.write("*")
		}
		if n.Argument != nil {
			f.write(" ")
			f.expr(n.Argument, precAssign)
		}
	case *AwaitExpr:
		f.write("await ")
		f.expr(n.Argument, precUnary)
	case *ArrayPattern:
		f.write("[")
		for i, e := range n.Elements {
			if i > 0 {
				f.write(", ")
			}
			f.node(e)
		}
		if len(n.Elements) > 0 && n.Elements[len(n.Elements)-1] == nil {
			f.write(",")
		}
		f.write("]")
	case *ObjectPattern:
		f.write("{")
		for i, p := range n.Properties {
			if i > 0 {
				f.write(",")
			}
			f.write(" ")
			f.node(p)
		}
		if len(n.Properties) > 0 {
			f.write(" ")
		}
		f.write("}")
	case *PatternProperty:
		if n.Shorthand {
			f.node(n.Value)
			return
		}
		f.key(n.Key, n.Computed)
		f.write(": ")
		f.node(n.Value)
	case *AssignmentPattern:
		f.node(n.Left)
		f.write(" = ")
		f.expr(n.Right, precAssign)
	case *RestElement:
		f.write("...")
		f.node(n.Argument)
	case *ExpressionStatement:
		if _, ok := n.Expression.(*ObjectLiteral); ok {
			f.write("(")
			f.node(n.Expression)
			f.write(")")
		} else {
			f.node(n.Expression)
		}
		f.write(";")
	case *OpaqueStatement:
		f.write("/* ", n.Type, " */")
	case *BlockStatement:
		f.write("{ ... }")
	case *Script:
		for i, stmt := range n.Body {
			if i > 0 {
				f.write("\n")
			}
			f.node(stmt)
		}
	case *Property:
		f.property(n)
	case *TemplateElement:
		f.write(n.Raw)
	}
}

func startsWithSign(e Expr) bool {
	switch e := e.(type) {
	case *UnaryExpr:
		return e.Op == OpPos || e.Op == OpNeg
	case *UpdateExpr:
		return e.Prefix
	case *NumberLiteral:
		return e.Value < 0 || math.Signbit(e.Value)
	}
	return false
}

func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (f formatter) template(t *TemplateLiteral) {
	f.write("`")
	for i, q := range t.Quasis {
		f.write(q.Raw)
		if i < len(t.Exprs) {
			f.write("${")
			f.node(t.Exprs[i])
			f.write("}")
		}
	}
	f.write("`")
}

func (f formatter) member(m *MemberExpr) {
	if num, ok := m.Object.(*NumberLiteral); ok && !m.Computed && !m.Optional &&
		!strings.ContainsAny(formatNumber(num.Value), ".eN") {
		// 1.toString would be read as a number followed by an identifier.
		f.write("(", formatNumber(num.Value), ")")
	} else {
		f.expr(m.Object, precLeftHandSide)
	}
	switch {
	case m.Computed && m.Optional:
		f.write("?.[")
	case m.Computed:
		f.write("[")
	case m.Optional:
		f.write("?.")
	default:
		f.write(".")
	}
	f.node(m.Property)
	if m.Computed {
		f.write("]")
	}
}

func (f formatter) key(k Expr, computed bool) {
	if computed {
		f.write("[")
		f.expr(k, precAssign)
		f.write("]")
		return
	}
	f.node(k)
}

func (f formatter) object(o *ObjectLiteral) {
	f.write("{")
	for i, m := range o.Properties {
		if i > 0 {
			f.write(",")
		}
		f.write(" ")
		f.node(m)
	}
	if len(o.Properties) > 0 {
		f.write(" ")
	}
	f.write("}")
}

func (f formatter) property(p *Property) {
	fn, isFn := p.Value.(*FunctionExpr)
	switch {
	case p.Shorthand:
		f.node(p.Value)
	case p.Kind != PropertyInit && isFn:
		if p.Kind == PropertyGet {
			f.write("get ")
		} else {
			f.write("set ")
		}
		f.key(p.Key, p.Computed)
		f.params(fn.Params)
		f.write(" ")
		f.body(fn)
	case p.Method && isFn:
		f.key(p.Key, p.Computed)
		f.params(fn.Params)
		f.write(" ")
		f.body(fn)
	default:
		f.key(p.Key, p.Computed)
		f.write(": ")
		f.expr(p.Value, precAssign)
	}
}

func (f formatter) params(ps []Pattern) {
	f.write("(")
	for i, p := range ps {
		if i > 0 {
			f.write(", ")
		}
		f.node(p)
	}
	f.write(")")
}

func (f formatter) body(fn *FunctionExpr) {
	if e, ok := fn.Body.(Expr); ok {
		if fn.Arrow {
			if _, ok := e.(*ObjectLiteral); ok {
				f.write("(")
				f.node(e)
				f.write(")")
				return
			}
			f.expr(e, precAssign)
			return
		}
		f.write("{ return ")
		f.node(e)
		f.write("; }")
		return
	}
	f.write("{ ... }")
}

func (f formatter) function(fn *FunctionExpr) {
	if fn.Async {
		f.write("async ")
	}
	if fn.Arrow {
		f.params(fn.Params)
		f.write(" => ")
		f.body(fn)
		return
	}
	f.write("function")
	if fn.Generator {
		f.write("*")
	}
	if fn.ID != nil {
		f.write(" ", fn.ID.Name)
	}
	f.params(fn.Params)
	f.write(" ")
	f.body(fn)
}

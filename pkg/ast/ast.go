// Package ast defines the abstract syntax tree of ECMAScript expressions and
// binding patterns consumed by the evaluator.
//
// The set of node types is closed: every node embeds the unexported node type,
// so code outside this package cannot add node kinds, and a type switch over
// the types in this file is exhaustive. Nodes are read-only once built. They
// are produced by the estree decoder or, in tests, by the astbuild package.
package ast

import "src.esval.dev/pkg/diag"

// Node is a node of the AST.
type Node interface {
	diag.Ranger
	isNode()
}

// Expr is a node that can be evaluated.
type Expr interface {
	Node
	isExpr()
}

// Pattern is a node that can be the target of a binding initialization or a
// destructuring assignment.
type Pattern interface {
	Node
	isPattern()
}

type node struct{ diag.Ranging }

func (node) isNode() {}

type expr struct{ node }

func (expr) isExpr() {}

// SetRange sets the source range of a node. It is used by decoders.
func SetRange(n Node, r diag.Ranging) {
	if n, ok := n.(interface{ setRange(diag.Ranging) }); ok {
		n.setRange(r)
	}
}

func (n *node) setRange(r diag.Ranging) { n.Ranging = r }

// Literals.

// NullLiteral = 'null'
type NullLiteral struct{ expr }

// BooleanLiteral = 'true' | 'false'
type BooleanLiteral struct {
	expr
	Value bool
}

// NumberLiteral is a numeric literal, already converted to its value.
type NumberLiteral struct {
	expr
	Value float64
}

// StringLiteral is a string literal, with escapes already processed.
type StringLiteral struct {
	expr
	Value string
}

// TemplateLiteral = '`' TemplateElement { '${' Expr '}' TemplateElement } '`'
//
// There is always exactly one more quasi than there are expressions.
type TemplateLiteral struct {
	expr
	Quasis []*TemplateElement
	Exprs  []Expr
}

// TemplateElement is a piece of literal text in a template. Cooked is nil when
// the raw text contains an escape sequence that is invalid outside of tagged
// templates.
type TemplateElement struct {
	node
	Cooked *string
	Raw    string
}

// TaggedTemplateExpr = Expr TemplateLiteral
type TaggedTemplateExpr struct {
	expr
	Tag   Expr
	Quasi *TemplateLiteral
}

// Primary expressions.

// Identifier is an identifier reference. It is also a binding target.
type Identifier struct {
	expr
	Name string
}

func (*Identifier) isPattern() {}

// ThisExpr = 'this'
type ThisExpr struct{ expr }

// MetaProperty = 'new' '.' 'target'
type MetaProperty struct {
	expr
	Meta     string
	Property string
}

// ArrayLiteral = '[' { Expr | SpreadElement | <hole> } ']'
//
// A nil element is a hole (elision).
type ArrayLiteral struct {
	expr
	Elements []Expr
}

// SpreadElement = '...' Expr
//
// It may only appear as an element of an ArrayLiteral, an argument of a call
// or new expression, or a member of an ObjectLiteral.
type SpreadElement struct {
	expr
	Argument Expr
}

func (*SpreadElement) isObjectMember() {}

// ObjectLiteral = '{' { Property | SpreadElement } '}'
type ObjectLiteral struct {
	expr
	Properties []ObjectMember
}

// ObjectMember is either a *Property or a *SpreadElement.
type ObjectMember interface {
	Node
	isObjectMember()
}

// PropertyKind distinguishes plain properties from accessors.
type PropertyKind uint8

// Kinds of properties in object literals.
const (
	PropertyInit PropertyKind = iota
	PropertyGet
	PropertySet
)

// Property is a member of an ObjectLiteral. When Computed is false, Key is an
// *Identifier, *StringLiteral or *NumberLiteral whose text is the property
// name.
type Property struct {
	node
	Key       Expr
	Value     Expr
	Kind      PropertyKind
	Computed  bool
	Method    bool
	Shorthand bool
}

func (*Property) isObjectMember() {}

// FunctionExpr is a function or arrow function expression. Body is an Expr
// for arrow functions with a concise body, and a *BlockStatement otherwise.
type FunctionExpr struct {
	expr
	ID        *Identifier
	Params    []Pattern
	Body      Node
	Arrow     bool
	Async     bool
	Generator bool
	Strict    bool
}

// BlockStatement is a function body. Statements are not evaluated by this
// module; they are kept opaque.
type BlockStatement struct {
	node
	Body []Node
}

// ExpressionStatement wraps an expression at the top level of a script.
type ExpressionStatement struct {
	node
	Expression Expr
	// Directive is set for directive prologue entries such as "use strict".
	Directive string
}

// OpaqueStatement is any statement other than an expression statement.
type OpaqueStatement struct {
	node
	Type string
}

// Script is the top-level node of a decoded program.
type Script struct {
	node
	Body   []Node
	Strict bool
}

// Operators.

// UnaryOp is a unary operator.
type UnaryOp string

// Unary operators.
const (
	OpDelete UnaryOp = "delete"
	OpVoid   UnaryOp = "void"
	OpTypeof UnaryOp = "typeof"
	OpPos    UnaryOp = "+"
	OpNeg    UnaryOp = "-"
	OpBitNot UnaryOp = "~"
	OpNot    UnaryOp = "!"
)

// UnaryExpr = UnaryOp Expr
type UnaryExpr struct {
	expr
	Op       UnaryOp
	Argument Expr
}

// UpdateOp is "++" or "--".
type UpdateOp string

// Update operators.
const (
	OpInc UpdateOp = "++"
	OpDec UpdateOp = "--"
)

// UpdateExpr = UpdateOp Expr | Expr UpdateOp
type UpdateExpr struct {
	expr
	Op       UpdateOp
	Prefix   bool
	Argument Expr
}

// BinaryOp is a binary operator other than the logical ones.
type BinaryOp string

// Binary operators.
const (
	OpExp        BinaryOp = "**"
	OpMul        BinaryOp = "*"
	OpDiv        BinaryOp = "/"
	OpMod        BinaryOp = "%"
	OpAdd        BinaryOp = "+"
	OpSub        BinaryOp = "-"
	OpShl        BinaryOp = "<<"
	OpShr        BinaryOp = ">>"
	OpUShr       BinaryOp = ">>>"
	OpLt         BinaryOp = "<"
	OpGt         BinaryOp = ">"
	OpLe         BinaryOp = "<="
	OpGe         BinaryOp = ">="
	OpInstanceof BinaryOp = "instanceof"
	OpIn         BinaryOp = "in"
	OpEq         BinaryOp = "=="
	OpNe         BinaryOp = "!="
	OpStrictEq   BinaryOp = "==="
	OpStrictNe   BinaryOp = "!=="
	OpBitAnd     BinaryOp = "&"
	OpBitXor     BinaryOp = "^"
	OpBitOr      BinaryOp = "|"
)

// BinaryExpr = Expr BinaryOp Expr
type BinaryExpr struct {
	expr
	Op          BinaryOp
	Left, Right Expr
}

// LogicalOp is a short-circuiting operator.
type LogicalOp string

// Logical operators.
const (
	OpAnd     LogicalOp = "&&"
	OpOr      LogicalOp = "||"
	OpNullish LogicalOp = "??"
)

// LogicalExpr = Expr LogicalOp Expr
type LogicalExpr struct {
	expr
	Op          LogicalOp
	Left, Right Expr
}

// ConditionalExpr = Expr '?' Expr ':' Expr
type ConditionalExpr struct {
	expr
	Test, Consequent, Alternate Expr
}

// AssignOp is an assignment operator.
type AssignOp string

// Assignment operators.
const (
	OpAssign        AssignOp = "="
	OpAddAssign     AssignOp = "+="
	OpSubAssign     AssignOp = "-="
	OpMulAssign     AssignOp = "*="
	OpDivAssign     AssignOp = "/="
	OpModAssign     AssignOp = "%="
	OpExpAssign     AssignOp = "**="
	OpShlAssign     AssignOp = "<<="
	OpShrAssign     AssignOp = ">>="
	OpUShrAssign    AssignOp = ">>>="
	OpBitAndAssign  AssignOp = "&="
	OpBitXorAssign  AssignOp = "^="
	OpBitOrAssign   AssignOp = "|="
	OpAndAssign     AssignOp = "&&="
	OpOrAssign      AssignOp = "||="
	OpNullishAssign AssignOp = "??="
)

// AssignmentExpr = Target AssignOp Expr
//
// Left is an *ArrayPattern or *ObjectPattern for destructuring assignment
// (only with OpAssign), and an Expr otherwise. An Expr that does not evaluate
// to a reference is accepted here and fails at runtime.
type AssignmentExpr struct {
	expr
	Op    AssignOp
	Left  Node
	Right Expr
}

// SequenceExpr = Expr { ',' Expr }
type SequenceExpr struct {
	expr
	Exprs []Expr
}

// Member, call and new expressions.

// MemberExpr = Expr '.' Identifier | Expr '[' Expr ']'
//
// When Computed is false, Property is an *Identifier. Optional marks '?.'.
type MemberExpr struct {
	expr
	Object   Expr
	Property Expr
	Computed bool
	Optional bool
}

func (*MemberExpr) isPattern() {}

// CallExpr = Expr Arguments. Optional marks '?.('.
type CallExpr struct {
	expr
	Callee    Expr
	Arguments []Expr
	Optional  bool
}

// NewExpr = 'new' Expr [ Arguments ]
//
// NoArguments records that the argument clause was syntactically absent. It
// has no effect at runtime, where an absent clause is an empty list.
type NewExpr struct {
	expr
	Callee      Expr
	Arguments   []Expr
	NoArguments bool
}

// ChainExpr delimits an optional chain. A short-circuit anywhere inside the
// chain makes the whole ChainExpr evaluate to undefined.
type ChainExpr struct {
	expr
	Expression Expr
}

// Suspension points.

// YieldExpr = 'yield' [ '*' ] [ Expr ]
type YieldExpr struct {
	expr
	Argument Expr
	Delegate bool
}

// AwaitExpr = 'await' Expr
type AwaitExpr struct {
	expr
	Argument Expr
}

// Patterns.

// ArrayPattern = '[' { Pattern | <hole> } [ RestElement ] ']'
//
// A nil element is a hole.
type ArrayPattern struct {
	node
	Elements []Pattern
}

func (*ArrayPattern) isPattern() {}

// ObjectPattern = '{' { PatternProperty } [ RestElement ] '}'
type ObjectPattern struct {
	node
	Properties []Pattern
}

func (*ObjectPattern) isPattern() {}

// PatternProperty is a member of an ObjectPattern. When Computed is false, Key
// is an *Identifier, *StringLiteral or *NumberLiteral.
type PatternProperty struct {
	node
	Key       Expr
	Value     Pattern
	Computed  bool
	Shorthand bool
}

func (*PatternProperty) isPattern() {}

// AssignmentPattern = Pattern '=' Expr
type AssignmentPattern struct {
	node
	Left  Pattern
	Right Expr
}

func (*AssignmentPattern) isPattern() {}

// RestElement = '...' Pattern
type RestElement struct {
	node
	Argument Pattern
}

func (*RestElement) isPattern() {}

package estree

import (
	"gopkg.in/yaml.v3"
	"src.esval.dev/pkg/ast"
)

// nodeDecoder decodes an ESTree node of one type.
type nodeDecoder func(d *decoder, m fields) (ast.Node, error)

var nodeDecoders map[string]nodeDecoder

func init() {
	nodeDecoders = map[string]nodeDecoder{
		"Program":             (*decoder).program,
		"ExpressionStatement": (*decoder).expressionStatement,
		"BlockStatement":      (*decoder).blockStatement,

		"Identifier":               (*decoder).identifier,
		"Literal":                  (*decoder).literal,
		"TemplateLiteral":          (*decoder).templateLiteral,
		"TaggedTemplateExpression": (*decoder).taggedTemplate,
		"ThisExpression":           (*decoder).this,
		"MetaProperty":             (*decoder).metaProperty,
		"ArrayExpression":          (*decoder).arrayExpression,
		"ObjectExpression":         (*decoder).objectExpression,
		"SpreadElement":            (*decoder).spreadElement,
		"FunctionExpression":       (*decoder).function,
		"ArrowFunctionExpression":  (*decoder).function,
		"UnaryExpression":          (*decoder).unaryExpression,
		"UpdateExpression":         (*decoder).updateExpression,
		"BinaryExpression":         (*decoder).binaryExpression,
		"LogicalExpression":        (*decoder).logicalExpression,
		"ConditionalExpression":    (*decoder).conditionalExpression,
		"AssignmentExpression":     (*decoder).assignmentExpression,
		"SequenceExpression":       (*decoder).sequenceExpression,
		"MemberExpression":         (*decoder).memberExpression,
		"CallExpression":           (*decoder).callExpression,
		"NewExpression":            (*decoder).newExpression,
		"ChainExpression":          (*decoder).chainExpression,
		"YieldExpression":          (*decoder).yieldExpression,
		"AwaitExpression":          (*decoder).awaitExpression,
		"ParenthesizedExpression":  (*decoder).parenthesized,

		"ArrayPattern":      (*decoder).arrayPattern,
		"ObjectPattern":     (*decoder).objectPattern,
		"AssignmentPattern": (*decoder).assignmentPattern,
		"RestElement":       (*decoder).restElement,
	}
}

// Statement types that are decoded as opaque statements.
var opaqueStatements = map[string]bool{
	"EmptyStatement": true, "DebuggerStatement": true, "WithStatement": true,
	"ReturnStatement": true, "LabeledStatement": true, "BreakStatement": true,
	"ContinueStatement": true, "IfStatement": true, "SwitchStatement": true,
	"ThrowStatement": true, "TryStatement": true, "WhileStatement": true,
	"DoWhileStatement": true, "ForStatement": true, "ForInStatement": true,
	"ForOfStatement": true, "FunctionDeclaration": true,
	"VariableDeclaration": true, "ClassDeclaration": true,
	"ImportDeclaration": true, "ExportNamedDeclaration": true,
	"ExportDefaultDeclaration": true, "ExportAllDeclaration": true,
	"StaticBlock": true,
}

func (d *decoder) node(n *yaml.Node) (ast.Node, error) {
	m, err := d.mapping(n)
	if err != nil {
		return nil, err
	}
	typeNode := m.get("type")
	if typeNode == nil {
		return nil, d.errorf(n, "node has no type")
	}
	typ, err := d.str(typeNode)
	if err != nil {
		return nil, err
	}
	var result ast.Node
	if dec, ok := nodeDecoders[typ]; ok {
		result, err = dec(d, m)
		if err != nil {
			return nil, err
		}
	} else if opaqueStatements[typ] {
		result = &ast.OpaqueStatement{Type: typ}
	} else {
		return nil, d.errorf(typeNode, "unsupported node type %s", typ)
	}
	// A parenthesized expression keeps the range of its content.
	if typ != "ParenthesizedExpression" {
		ast.SetRange(result, d.position(m))
	}
	return result, nil
}

func (d *decoder) child(m fields, key string) (ast.Node, error) {
	n := m.get(key)
	if n == nil {
		return nil, d.errorf(m.node, "missing %s", key)
	}
	return d.node(n)
}

func (d *decoder) expr(m fields, key string) (ast.Expr, error) {
	n, err := d.child(m, key)
	if err != nil {
		return nil, err
	}
	e, ok := n.(ast.Expr)
	if !ok {
		return nil, d.errorf(m.get(key), "%s must be an expression, got %s", key, typeName(n))
	}
	return e, nil
}

func (d *decoder) optionalExpr(m fields, key string) (ast.Expr, error) {
	if !m.has(key) {
		return nil, nil
	}
	return d.expr(m, key)
}

// exprList decodes a list of expressions. Null items are kept as nil when
// holes is true.
func (d *decoder) exprList(m fields, key string, holes bool) ([]ast.Expr, error) {
	items, err := d.list(m, key)
	if err != nil {
		return nil, err
	}
	exprs := make([]ast.Expr, len(items))
	for i, item := range items {
		if isNull(item) {
			if !holes {
				return nil, d.errorf(item, "unexpected null in %s", key)
			}
			continue
		}
		n, err := d.node(item)
		if err != nil {
			return nil, err
		}
		e, ok := n.(ast.Expr)
		if !ok {
			return nil, d.errorf(item, "element of %s must be an expression, got %s", key, typeName(n))
		}
		exprs[i] = e
	}
	return exprs, nil
}

func (d *decoder) identifierField(m fields, key string) (*ast.Identifier, error) {
	n, err := d.child(m, key)
	if err != nil {
		return nil, err
	}
	id, ok := n.(*ast.Identifier)
	if !ok {
		return nil, d.errorf(m.get(key), "%s must be an identifier, got %s", key, typeName(n))
	}
	return id, nil
}

func typeName(n ast.Node) string {
	switch n.(type) {
	case *ast.OpaqueStatement:
		return "a statement"
	case ast.Expr:
		return "an expression"
	case ast.Pattern:
		return "a pattern"
	}
	return "another kind of node"
}

// Statements.

func (d *decoder) program(m fields) (ast.Node, error) {
	body, err := d.statements(m)
	if err != nil {
		return nil, err
	}
	return &ast.Script{Body: body, Strict: ast.HasStrictDirective(body)}, nil
}

func (d *decoder) statements(m fields) ([]ast.Node, error) {
	items, err := d.list(m, "body")
	if err != nil {
		return nil, err
	}
	body := make([]ast.Node, len(items))
	for i, item := range items {
		if body[i], err = d.node(item); err != nil {
			return nil, err
		}
		switch body[i].(type) {
		case *ast.ExpressionStatement, *ast.OpaqueStatement:
		case *ast.BlockStatement:
			// Nested blocks are not evaluated either.
			r := body[i].Range()
			body[i] = &ast.OpaqueStatement{Type: "BlockStatement"}
			ast.SetRange(body[i], r)
		default:
			return nil, d.errorf(item, "body must consist of statements, got %s", typeName(body[i]))
		}
	}
	return body, nil
}

func (d *decoder) expressionStatement(m fields) (ast.Node, error) {
	e, err := d.expr(m, "expression")
	if err != nil {
		return nil, err
	}
	stmt := &ast.ExpressionStatement{Expression: e}
	if dir := m.get("directive"); dir != nil {
		if stmt.Directive, err = d.str(dir); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (d *decoder) blockStatement(m fields) (ast.Node, error) {
	body, err := d.statements(m)
	if err != nil {
		return nil, err
	}
	return &ast.BlockStatement{Body: body}, nil
}

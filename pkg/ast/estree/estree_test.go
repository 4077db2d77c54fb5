package estree_test

import (
	"errors"
	"strings"
	"testing"

	"src.esval.dev/pkg/ast"
	"src.esval.dev/pkg/ast/estree"
	"src.esval.dev/pkg/diag"
)

var decodeExprTests = []struct {
	name string
	text string
	want string
}{
	{
		"binary precedence",
		`{"type": "BinaryExpression", "operator": "+",
		  "left": {"type": "Literal", "value": 1},
		  "right": {"type": "BinaryExpression", "operator": "*",
		            "left": {"type": "Literal", "value": 2},
		            "right": {"type": "Literal", "value": 3}}}`,
		"1 + 2 * 3",
	},
	{
		"literals",
		`{"type": "ArrayExpression", "elements": [
		  {"type": "Literal", "value": null, "raw": "null"},
		  {"type": "Literal", "value": true},
		  {"type": "Literal", "value": 1.5},
		  {"type": "Literal", "value": "1"}]}`,
		`[null, true, 1.5, "1"]`,
	},
	{
		"array holes",
		`{"type": "ArrayExpression", "elements": [
		  {"type": "Literal", "value": 1}, null, {"type": "Literal", "value": 3}]}`,
		"[1, , 3]",
	},
	{
		"object literal",
		`{"type": "ObjectExpression", "properties": [
		  {"type": "Property", "kind": "init", "computed": false, "method": false,
		   "shorthand": false, "key": {"type": "Identifier", "name": "a"},
		   "value": {"type": "Literal", "value": 1}},
		  {"type": "SpreadElement", "argument": {"type": "Identifier", "name": "o"}}]}`,
		"{ a: 1, ...o }",
	},
	{
		"getter",
		`{"type": "ObjectExpression", "properties": [
		  {"type": "Property", "kind": "get", "key": {"type": "Identifier", "name": "x"},
		   "value": {"type": "FunctionExpression", "params": [],
		             "body": {"type": "BlockStatement", "body": []}}}]}`,
		"{ get x() { ... } }",
	},
	{
		"arrow with destructuring parameters",
		`{"type": "ArrowFunctionExpression", "expression": true, "params": [
		  {"type": "ObjectPattern", "properties": [
		    {"type": "Property", "kind": "init", "shorthand": true,
		     "key": {"type": "Identifier", "name": "a"},
		     "value": {"type": "AssignmentPattern",
		               "left": {"type": "Identifier", "name": "a"},
		               "right": {"type": "Literal", "value": 1}}}]},
		  {"type": "RestElement", "argument": {"type": "Identifier", "name": "r"}}],
		 "body": {"type": "Identifier", "name": "a"}}`,
		"({ a = 1 }, ...r) => a",
	},
	{
		"destructuring assignment",
		`{"type": "AssignmentExpression", "operator": "=",
		  "left": {"type": "ArrayPattern", "elements": [
		    {"type": "Identifier", "name": "a"}, null,
		    {"type": "MemberExpression", "computed": false,
		     "object": {"type": "Identifier", "name": "o"},
		     "property": {"type": "Identifier", "name": "p"}}]},
		  "right": {"type": "Identifier", "name": "c"}}`,
		"[a, , o.p] = c",
	},
	{
		"template",
		`{"type": "TemplateLiteral", "expressions": [{"type": "Identifier", "name": "x"}],
		  "quasis": [
		    {"type": "TemplateElement", "value": {"raw": "a", "cooked": "a"}, "tail": false},
		    {"type": "TemplateElement", "value": {"raw": "b", "cooked": "b"}, "tail": true}]}`,
		"`a${x}b`",
	},
	{
		"optional chain",
		`{"type": "ChainExpression", "expression": {
		  "type": "CallExpression", "optional": true, "arguments": [],
		  "callee": {"type": "MemberExpression", "optional": true, "computed": false,
		             "object": {"type": "Identifier", "name": "a"},
		             "property": {"type": "Identifier", "name": "b"}}}}`,
		"a?.b?.()",
	},
	{
		"new target",
		`{"type": "MetaProperty", "meta": {"type": "Identifier", "name": "new"},
		  "property": {"type": "Identifier", "name": "target"}}`,
		"new.target",
	},
	{
		"parenthesized",
		`{"type": "ParenthesizedExpression",
		  "expression": {"type": "Identifier", "name": "x"}}`,
		"x",
	},
	{
		"program with a single expression statement",
		`{"type": "Program", "body": [{"type": "ExpressionStatement",
		  "expression": {"type": "ThisExpression"}}]}`,
		"this",
	},
	{
		"YAML",
		"type: UnaryExpression\n" +
			"operator: typeof\n" +
			"argument: {type: Identifier, name: x}\n",
		"typeof x",
	},
	{
		"YAML anchors",
		"type: BinaryExpression\n" +
			"operator: '*'\n" +
			"left: &x {type: Identifier, name: x}\n" +
			"right: *x\n",
		"x * x",
	},
}

func TestDecodeExpr(t *testing.T) {
	for _, test := range decodeExprTests {
		t.Run(test.name, func(t *testing.T) {
			e, err := estree.DecodeExpr("[test]", test.text)
			if err != nil {
				t.Fatalf("got error %v", err)
			}
			if got := ast.Format(e); got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}

func TestDecode_Script(t *testing.T) {
	doc, err := estree.Decode("[test]", `{"type": "Program", "body": [
	  {"type": "ExpressionStatement", "directive": "use strict",
	   "expression": {"type": "Literal", "value": "use strict"}},
	  {"type": "IfStatement"},
	  {"type": "BlockStatement", "body": [], "start": 20, "end": 22},
	  {"type": "ExpressionStatement", "expression": {"type": "Identifier", "name": "x"}}]}`)
	if err != nil {
		t.Fatal(err)
	}
	script, ok := doc.Root.(*ast.Script)
	if !ok {
		t.Fatalf("got root %T, want *ast.Script", doc.Root)
	}
	if !script.Strict {
		t.Errorf("script is not strict")
	}
	if len(script.Body) != 4 {
		t.Fatalf("got %d statements, want 4", len(script.Body))
	}
	for i, typ := range map[int]string{1: "IfStatement", 2: "BlockStatement"} {
		stmt, ok := script.Body[i].(*ast.OpaqueStatement)
		if !ok || stmt.Type != typ {
			t.Errorf("statement %d is %#v, want opaque %s", i, script.Body[i], typ)
		}
	}
	if r := script.Body[2].Range(); r != (diag.Ranging{From: 20, To: 22}) {
		t.Errorf("opaque block has range %v", r)
	}
	if _, err := estree.DecodeExpr("[test]", `{"type": "Program", "body": []}`); err == nil {
		t.Errorf("empty program decoded as an expression")
	}
}

func TestDecode_Positions(t *testing.T) {
	// The emoji takes two UTF-16 code units and four bytes.
	doc, err := estree.Decode("[test]", `
source: "'😀' + x"
ast:
  type: BinaryExpression
  operator: "+"
  start: 0
  end: 8
  left: {type: Literal, value: "😀", start: 0, end: 4}
  right: {type: Identifier, name: x, range: [7, 8]}
`)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Source != "'😀' + x" {
		t.Errorf("got source %q", doc.Source)
	}
	bin := doc.Root.(*ast.BinaryExpr)
	for _, c := range []struct {
		n    ast.Node
		want diag.Ranging
	}{
		{bin, diag.Ranging{From: 0, To: 10}},
		{bin.Left, diag.Ranging{From: 0, To: 6}},
		{bin.Right, diag.Ranging{From: 9, To: 10}},
	} {
		if got := c.n.Range(); got != c.want {
			t.Errorf("%s has range %v, want %v", ast.Format(c.n), got, c.want)
		}
	}
}

func TestDecode_PositionsWithoutSource(t *testing.T) {
	e, err := estree.DecodeExpr("[test]", `{"type": "MemberExpression",
	  "object": {"type": "Identifier", "name": "o"},
	  "property": {"type": "Identifier", "name": "p", "start": 2, "end": 3},
	  "start": 0, "end": 3}`)
	if err != nil {
		t.Fatal(err)
	}
	m := e.(*ast.MemberExpr)
	if r := m.Range(); r != (diag.Ranging{From: 0, To: 3}) {
		t.Errorf("member has range %v", r)
	}
	if r := m.Property.Range(); r != (diag.Ranging{From: 2, To: 3}) {
		t.Errorf("property has range %v", r)
	}
	if r := m.Object.Range(); r.Known() {
		t.Errorf("object without positions has range %v", r)
	}
}

var decodeErrorTests = []struct {
	name    string
	text    string
	message string
}{
	{"empty document", "", "empty document"},
	{"list", "[1, 2]", "expect a node, got a list"},
	{"no type", `{"name": "x"}`, "node has no type"},
	{"unsupported type", `{"type": "ClassExpression"}`, "unsupported node type ClassExpression"},
	{"regexp", `{"type": "Literal", "regex": {"pattern": "a", "flags": ""}}`,
		"regular expression literals are not supported"},
	{"unknown operator",
		`{"type": "BinaryExpression", "operator": "@",
		  "left": {"type": "Literal", "value": 1}, "right": {"type": "Literal", "value": 2}}`,
		"unknown operator @"},
	{"compound destructuring",
		`{"type": "AssignmentExpression", "operator": "+=",
		  "left": {"type": "ArrayPattern", "elements": []}, "right": {"type": "Literal", "value": 1}}`,
		"destructuring requires =, got +="},
	{"rest not last",
		`{"type": "AssignmentExpression", "operator": "=",
		  "left": {"type": "ArrayPattern", "elements": [
		    {"type": "RestElement", "argument": {"type": "Identifier", "name": "a"}},
		    {"type": "Identifier", "name": "b"}]},
		  "right": {"type": "Identifier", "name": "c"}}`,
		"rest element must be last"},
	{"pattern expected",
		`{"type": "ArrowFunctionExpression", "params": [{"type": "Literal", "value": 1}],
		  "body": {"type": "Literal", "value": 1}}`,
		"expect a pattern, got an expression"},
	{"concise function body",
		`{"type": "FunctionExpression", "params": [], "body": {"type": "Literal", "value": 1}}`,
		"function body must be a block"},
	{"template quasis",
		`{"type": "TemplateLiteral", "quasis": [], "expressions": []}`,
		"template has 0 quasis for 0 expressions"},
	{"statement as expression", `{"type": "IfStatement"}`, "not an expression"},
}

func TestDecode_Errors(t *testing.T) {
	for _, test := range decodeErrorTests {
		t.Run(test.name, func(t *testing.T) {
			_, err := estree.DecodeExpr("[test]", test.text)
			var derr *diag.Error
			if !errors.As(err, &derr) {
				t.Fatalf("got error %v, want *diag.Error", err)
			}
			if derr.Type != estree.ErrorType {
				t.Errorf("got error type %q", derr.Type)
			}
			if !strings.Contains(derr.Message, test.message) {
				t.Errorf("got message %q, want it to contain %q", derr.Message, test.message)
			}
		})
	}
}

func TestDecode_ErrorPosition(t *testing.T) {
	text := "type: BinaryExpression\noperator: '+'\nleft: {type: Literal, value: 1}\nright: {type: Klass}\n"
	_, err := estree.Decode("[test]", text)
	var derr *diag.Error
	if !errors.As(err, &derr) {
		t.Fatalf("got error %v, want *diag.Error", err)
	}
	if want := strings.Index(text, "Klass"); derr.Context.From != want {
		t.Errorf("error at %d, want %d", derr.Context.From, want)
	}
}

func TestDecode_SyntaxError(t *testing.T) {
	_, err := estree.Decode("[test]", "{")
	var derr *diag.Error
	if !errors.As(err, &derr) || derr.Type != estree.ErrorType {
		t.Errorf("got error %v, want a decode error", err)
	}
}

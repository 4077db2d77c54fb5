// Package estree decodes ESTree documents into the AST.
//
// ESTree is the tree format produced by most ECMAScript parsers, such as
// acorn, esprima and espree. A document is read as YAML, so JSON output of
// those parsers is accepted as is. Only the node types that have a
// counterpart in package ast are decoded; statements other than expression
// statements are kept opaque.
//
// A document is either a single node, or an envelope mapping with the keys
// "source" and "ast":
//
//	source: "1 + 2"
//	ast: {type: Program, body: [...]}
//
// Node positions are read from the "start" and "end" fields, or from a
// "range" pair. Parsers report them in UTF-16 code units; when the envelope
// carries the source text, they are converted to byte offsets into it.
package estree

import (
	"fmt"
	"sort"
	"strconv"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
	"src.esval.dev/pkg/ast"
	"src.esval.dev/pkg/diag"
	"src.esval.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[estree] ")

// Document is a decoded ESTree document.
type Document struct {
	// Name is the name the document was decoded with.
	Name string
	// Source is the source text the tree was parsed from, or "" if the
	// document does not carry it.
	Source string
	// Root is the decoded root node.
	Root ast.Node
}

// ErrorType is the type of the errors returned by Decode.
const ErrorType = "decode error"

// Decode decodes an ESTree document. Errors are *diag.Error values pointing
// into the document text.
func Decode(name, text string) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, &diag.Error{
			Type: ErrorType, Message: err.Error(),
			Context: *diag.NewContext(name, text, diag.PointRanging(0))}
	}
	d := &decoder{name: name, text: text, lineStarts: lineStarts(text)}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, d.errorf(&root, "empty document")
	}
	top := resolve(root.Content[0])

	doc := &Document{Name: name}
	if m, err := d.mapping(top); err == nil && m.has("ast") && !m.has("type") {
		if src := m.get("source"); src != nil {
			if doc.Source, err = d.str(src); err != nil {
				return nil, err
			}
			d.units = newUnitIndex(doc.Source)
		}
		top = m.get("ast")
	}
	n, err := d.node(top)
	if err != nil {
		return nil, err
	}
	doc.Root = n
	logger.Printf("decoded %s: %T", name, n)
	return doc, nil
}

// DecodeExpr decodes a document whose root is an expression, or a program
// consisting of a single expression statement.
func DecodeExpr(name, text string) (ast.Expr, error) {
	doc, err := Decode(name, text)
	if err != nil {
		return nil, err
	}
	switch root := doc.Root.(type) {
	case ast.Expr:
		return root, nil
	case *ast.Script:
		if len(root.Body) == 1 {
			if stmt, ok := root.Body[0].(*ast.ExpressionStatement); ok {
				return stmt.Expression, nil
			}
		}
	case *ast.ExpressionStatement:
		return root.Expression, nil
	}
	return nil, &diag.Error{
		Type: ErrorType, Message: fmt.Sprintf("document is a %T, not an expression", doc.Root),
		Context: *diag.NewContext(name, text, diag.PointRanging(0))}
}

type decoder struct {
	name       string
	text       string
	lineStarts []int
	// units converts UTF-16 offsets of the source to byte offsets; nil when
	// the source is not known.
	units *unitIndex
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...any) error {
	return &diag.Error{
		Type: ErrorType, Message: fmt.Sprintf(format, args...),
		Context: *diag.NewContext(d.name, d.text, d.docRange(n))}
}

// docRange returns a zero-width range at the start of a YAML node in the
// document text.
func (d *decoder) docRange(n *yaml.Node) diag.Ranging {
	if n == nil || n.Line < 1 || n.Line > len(d.lineStarts) {
		return diag.PointRanging(0)
	}
	start := d.lineStarts[n.Line-1]
	p := start
	// yaml.v3 counts columns in characters.
	for i := 1; i < n.Column && p < len(d.text) && d.text[p] != '\n'; i++ {
		_, size := utf8.DecodeRuneInString(d.text[p:])
		p += size
	}
	return diag.PointRanging(p)
}

func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// fields is a decoded YAML mapping.
type fields struct {
	node   *yaml.Node
	values map[string]*yaml.Node
}

func (d *decoder) mapping(n *yaml.Node) (fields, error) {
	n = resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return fields{}, d.errorf(n, "expect a node, got %s", describe(n))
	}
	m := fields{n, make(map[string]*yaml.Node, len(n.Content)/2)}
	for i := 0; i+1 < len(n.Content); i += 2 {
		m.values[n.Content[i].Value] = resolve(n.Content[i+1])
	}
	return m, nil
}

func (m fields) has(key string) bool { return m.get(key) != nil }

// get returns a field, or nil if it is absent or null.
func (m fields) get(key string) *yaml.Node {
	v := m.values[key]
	if v == nil || isNull(v) {
		return nil
	}
	return v
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

func describe(n *yaml.Node) string {
	if n == nil {
		return "nothing"
	}
	switch n.Kind {
	case yaml.SequenceNode:
		return "a list"
	case yaml.MappingNode:
		return "a mapping"
	case yaml.ScalarNode:
		if isNull(n) {
			return "null"
		}
		return strconv.Quote(n.Value)
	}
	return "an unexpected YAML node"
}

func (d *decoder) str(n *yaml.Node) (string, error) {
	if n == nil || n.Kind != yaml.ScalarNode || isNull(n) {
		return "", d.errorf(n, "expect a string, got %s", describe(n))
	}
	return n.Value, nil
}

func (d *decoder) boolean(m fields, key string) (bool, error) {
	n := m.get(key)
	if n == nil {
		return false, nil
	}
	if n.Kind != yaml.ScalarNode || n.Tag != "!!bool" {
		return false, d.errorf(n, "expect a boolean for %s, got %s", key, describe(n))
	}
	return strconv.ParseBool(n.Value)
}

func (d *decoder) number(n *yaml.Node) (float64, error) {
	if n == nil || n.Kind != yaml.ScalarNode || (n.Tag != "!!int" && n.Tag != "!!float") {
		return 0, d.errorf(n, "expect a number, got %s", describe(n))
	}
	var f float64
	if err := n.Decode(&f); err != nil {
		return 0, d.errorf(n, "bad number %q", n.Value)
	}
	return f, nil
}

func (d *decoder) list(m fields, key string) ([]*yaml.Node, error) {
	n := m.get(key)
	if n == nil {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf(n, "expect a list for %s, got %s", key, describe(n))
	}
	items := make([]*yaml.Node, len(n.Content))
	for i, item := range n.Content {
		items[i] = resolve(item)
	}
	return items, nil
}

// position returns the source range of an ESTree node, or diag.NoRanging when
// the node carries none.
func (d *decoder) position(m fields) diag.Ranging {
	from, to := -1, -1
	if r := m.get("range"); r != nil && r.Kind == yaml.SequenceNode && len(r.Content) == 2 {
		from, to = d.offset(r.Content[0]), d.offset(r.Content[1])
	} else if m.has("start") && m.has("end") {
		from, to = d.offset(m.get("start")), d.offset(m.get("end"))
	}
	if from < 0 || to < from {
		return diag.NoRanging
	}
	if d.units != nil {
		from, to = d.units.byteOffset(from), d.units.byteOffset(to)
	}
	return diag.Ranging{From: from, To: to}
}

func (d *decoder) offset(n *yaml.Node) int {
	if n.Kind != yaml.ScalarNode || n.Tag != "!!int" {
		// Babel uses objects for start and end locations in some modes.
		return -1
	}
	i, err := strconv.Atoi(n.Value)
	if err != nil {
		return -1
	}
	return i
}

// unitIndex maps UTF-16 code unit offsets to byte offsets in a string.
type unitIndex struct {
	// unitStarts[i] is the UTF-16 offset of the i-th rune, and byteStarts[i]
	// its byte offset.
	unitStarts []int
	byteStarts []int
	units      int
	bytes      int
}

func newUnitIndex(s string) *unitIndex {
	idx := &unitIndex{bytes: len(s)}
	units := 0
	for i, r := range s {
		idx.unitStarts = append(idx.unitStarts, units)
		idx.byteStarts = append(idx.byteStarts, i)
		if r >= 0x10000 {
			units += 2
		} else {
			units++
		}
	}
	idx.units = units
	return idx
}

func (idx *unitIndex) byteOffset(unit int) int {
	if unit >= idx.units {
		return idx.bytes + (unit - idx.units)
	}
	// The last rune starting at or before unit.
	i := sort.SearchInts(idx.unitStarts, unit+1) - 1
	if i < 0 {
		return 0
	}
	return idx.byteStarts[i]
}

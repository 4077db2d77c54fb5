package estree

import (
	"gopkg.in/yaml.v3"
	"src.esval.dev/pkg/ast"
)

func (d *decoder) identifier(m fields) (ast.Node, error) {
	name, err := d.str(m.get("name"))
	if err != nil {
		return nil, err
	}
	return &ast.Identifier{Name: name}, nil
}

func (d *decoder) literal(m fields) (ast.Node, error) {
	switch {
	case m.has("regex"):
		return nil, d.errorf(m.node, "regular expression literals are not supported")
	case m.has("bigint"):
		return nil, d.errorf(m.node, "BigInt literals are not supported")
	}
	v := m.values["value"]
	if v == nil || isNull(v) {
		return &ast.NullLiteral{}, nil
	}
	if v.Kind != yaml.ScalarNode {
		return nil, d.errorf(v, "bad literal value %s", describe(v))
	}
	switch v.Tag {
	case "!!bool":
		return &ast.BooleanLiteral{Value: v.Value == "true"}, nil
	case "!!int", "!!float":
		f, err := d.number(v)
		if err != nil {
			return nil, err
		}
		return &ast.NumberLiteral{Value: f}, nil
	}
	return &ast.StringLiteral{Value: v.Value}, nil
}

func (d *decoder) templateLiteral(m fields) (ast.Node, error) {
	return d.template(m)
}

func (d *decoder) template(m fields) (*ast.TemplateLiteral, error) {
	quasis, err := d.list(m, "quasis")
	if err != nil {
		return nil, err
	}
	exprs, err := d.exprList(m, "expressions", false)
	if err != nil {
		return nil, err
	}
	if len(quasis) != len(exprs)+1 {
		return nil, d.errorf(m.node, "template has %d quasis for %d expressions", len(quasis), len(exprs))
	}
	t := &ast.TemplateLiteral{Quasis: make([]*ast.TemplateElement, len(quasis)), Exprs: exprs}
	for i, q := range quasis {
		if t.Quasis[i], err = d.templateElement(q); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (d *decoder) templateElement(n *yaml.Node) (*ast.TemplateElement, error) {
	m, err := d.mapping(n)
	if err != nil {
		return nil, err
	}
	value, err := d.mapping(m.get("value"))
	if err != nil {
		return nil, err
	}
	raw, err := d.str(value.get("raw"))
	if err != nil {
		return nil, err
	}
	elem := &ast.TemplateElement{Raw: raw}
	// A null cooked value marks an invalid escape.
	if c := value.get("cooked"); c != nil {
		cooked, err := d.str(c)
		if err != nil {
			return nil, err
		}
		elem.Cooked = &cooked
	}
	ast.SetRange(elem, d.position(m))
	return elem, nil
}

func (d *decoder) taggedTemplate(m fields) (ast.Node, error) {
	tag, err := d.expr(m, "tag")
	if err != nil {
		return nil, err
	}
	qm, err := d.mapping(m.get("quasi"))
	if err != nil {
		return nil, err
	}
	quasi, err := d.template(qm)
	if err != nil {
		return nil, err
	}
	ast.SetRange(quasi, d.position(qm))
	return &ast.TaggedTemplateExpr{Tag: tag, Quasi: quasi}, nil
}

func (d *decoder) this(fields) (ast.Node, error) { return &ast.ThisExpr{}, nil }

func (d *decoder) metaProperty(m fields) (ast.Node, error) {
	meta, err := d.identifierField(m, "meta")
	if err != nil {
		return nil, err
	}
	prop, err := d.identifierField(m, "property")
	if err != nil {
		return nil, err
	}
	if meta.Name != "new" || prop.Name != "target" {
		return nil, d.errorf(m.node, "unsupported meta property %s.%s", meta.Name, prop.Name)
	}
	return &ast.MetaProperty{Meta: meta.Name, Property: prop.Name}, nil
}

func (d *decoder) arrayExpression(m fields) (ast.Node, error) {
	elems, err := d.exprList(m, "elements", true)
	if err != nil {
		return nil, err
	}
	return &ast.ArrayLiteral{Elements: elems}, nil
}

var propertyKinds = map[string]ast.PropertyKind{
	"init": ast.PropertyInit, "get": ast.PropertyGet, "set": ast.PropertySet,
}

func (d *decoder) objectExpression(m fields) (ast.Node, error) {
	items, err := d.list(m, "properties")
	if err != nil {
		return nil, err
	}
	obj := &ast.ObjectLiteral{Properties: make([]ast.ObjectMember, len(items))}
	for i, item := range items {
		pm, err := d.mapping(item)
		if err != nil {
			return nil, err
		}
		if typ, _ := d.str(pm.get("type")); typ == "Property" {
			obj.Properties[i], err = d.property(pm)
			if err != nil {
				return nil, err
			}
			continue
		}
		n, err := d.node(item)
		if err != nil {
			return nil, err
		}
		member, ok := n.(ast.ObjectMember)
		if !ok {
			return nil, d.errorf(item, "bad member of object expression")
		}
		obj.Properties[i] = member
	}
	return obj, nil
}

func (d *decoder) property(m fields) (*ast.Property, error) {
	p := &ast.Property{}
	var err error
	for key, dst := range map[string]*bool{"computed": &p.Computed, "method": &p.Method, "shorthand": &p.Shorthand} {
		if *dst, err = d.boolean(m, key); err != nil {
			return nil, err
		}
	}
	if kind := m.get("kind"); kind != nil {
		s, err := d.str(kind)
		if err != nil {
			return nil, err
		}
		k, ok := propertyKinds[s]
		if !ok {
			return nil, d.errorf(kind, "bad property kind %s", s)
		}
		p.Kind = k
	}
	if p.Key, err = d.propertyKey(m, p.Computed); err != nil {
		return nil, err
	}
	if p.Value, err = d.expr(m, "value"); err != nil {
		return nil, err
	}
	if p.Kind != ast.PropertyInit {
		if _, ok := p.Value.(*ast.FunctionExpr); !ok {
			return nil, d.errorf(m.get("value"), "accessor value must be a function")
		}
	}
	ast.SetRange(p, d.position(m))
	return p, nil
}

func (d *decoder) propertyKey(m fields, computed bool) (ast.Expr, error) {
	key, err := d.expr(m, "key")
	if err != nil {
		return nil, err
	}
	if !computed {
		switch key.(type) {
		case *ast.Identifier, *ast.StringLiteral, *ast.NumberLiteral:
		default:
			return nil, d.errorf(m.get("key"), "non-computed key must be an identifier or a literal")
		}
	}
	return key, nil
}

func (d *decoder) spreadElement(m fields) (ast.Node, error) {
	arg, err := d.expr(m, "argument")
	if err != nil {
		return nil, err
	}
	return &ast.SpreadElement{Argument: arg}, nil
}

func (d *decoder) function(m fields) (ast.Node, error) {
	fn := &ast.FunctionExpr{}
	typ, _ := d.str(m.get("type"))
	fn.Arrow = typ == "ArrowFunctionExpression"
	var err error
	for key, dst := range map[string]*bool{"async": &fn.Async, "generator": &fn.Generator} {
		if *dst, err = d.boolean(m, key); err != nil {
			return nil, err
		}
	}
	if m.has("id") {
		if fn.ID, err = d.identifierField(m, "id"); err != nil {
			return nil, err
		}
	}
	params, err := d.list(m, "params")
	if err != nil {
		return nil, err
	}
	fn.Params = make([]ast.Pattern, len(params))
	for i, param := range params {
		if fn.Params[i], err = d.pattern(param); err != nil {
			return nil, err
		}
	}
	if fn.Body, err = d.child(m, "body"); err != nil {
		return nil, err
	}
	switch body := fn.Body.(type) {
	case *ast.BlockStatement:
		fn.Strict = ast.HasStrictDirective(body.Body)
	case ast.Expr:
		if !fn.Arrow {
			return nil, d.errorf(m.get("body"), "function body must be a block")
		}
	default:
		return nil, d.errorf(m.get("body"), "bad function body")
	}
	return fn, nil
}

var (
	unaryOps   = map[string]ast.UnaryOp{}
	binaryOps  = map[string]ast.BinaryOp{}
	logicalOps = map[string]ast.LogicalOp{}
	assignOps  = map[string]ast.AssignOp{}
)

func init() {
	for _, op := range []ast.UnaryOp{ast.OpDelete, ast.OpVoid, ast.OpTypeof, ast.OpPos, ast.OpNeg, ast.OpBitNot, ast.OpNot} {
		unaryOps[string(op)] = op
	}
	for _, op := range []ast.BinaryOp{
		ast.OpExp, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpAdd, ast.OpSub,
		ast.OpShl, ast.OpShr, ast.OpUShr, ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe,
		ast.OpInstanceof, ast.OpIn, ast.OpEq, ast.OpNe, ast.OpStrictEq, ast.OpStrictNe,
		ast.OpBitAnd, ast.OpBitXor, ast.OpBitOr,
	} {
		binaryOps[string(op)] = op
	}
	for _, op := range []ast.LogicalOp{ast.OpAnd, ast.OpOr, ast.OpNullish} {
		logicalOps[string(op)] = op
	}
	for _, op := range []ast.AssignOp{
		ast.OpAssign, ast.OpAddAssign, ast.OpSubAssign, ast.OpMulAssign, ast.OpDivAssign,
		ast.OpModAssign, ast.OpExpAssign, ast.OpShlAssign, ast.OpShrAssign, ast.OpUShrAssign,
		ast.OpBitAndAssign, ast.OpBitXorAssign, ast.OpBitOrAssign,
		ast.OpAndAssign, ast.OpOrAssign, ast.OpNullishAssign,
	} {
		assignOps[string(op)] = op
	}
}

// operator looks up the operator of a node in ops.
func operator[Op any](d *decoder, m fields, ops map[string]Op) (Op, error) {
	var zero Op
	n := m.get("operator")
	s, err := d.str(n)
	if err != nil {
		return zero, err
	}
	op, ok := ops[s]
	if !ok {
		return zero, d.errorf(n, "unknown operator %s", s)
	}
	return op, nil
}

func (d *decoder) unaryExpression(m fields) (ast.Node, error) {
	op, err := operator(d, m, unaryOps)
	if err != nil {
		return nil, err
	}
	arg, err := d.expr(m, "argument")
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Op: op, Argument: arg}, nil
}

func (d *decoder) updateExpression(m fields) (ast.Node, error) {
	op, err := operator(d, m, map[string]ast.UpdateOp{"++": ast.OpInc, "--": ast.OpDec})
	if err != nil {
		return nil, err
	}
	prefix, err := d.boolean(m, "prefix")
	if err != nil {
		return nil, err
	}
	arg, err := d.expr(m, "argument")
	if err != nil {
		return nil, err
	}
	return &ast.UpdateExpr{Op: op, Prefix: prefix, Argument: arg}, nil
}

func (d *decoder) operands(m fields) (ast.Expr, ast.Expr, error) {
	left, err := d.expr(m, "left")
	if err != nil {
		return nil, nil, err
	}
	right, err := d.expr(m, "right")
	return left, right, err
}

func (d *decoder) binaryExpression(m fields) (ast.Node, error) {
	op, err := operator(d, m, binaryOps)
	if err != nil {
		return nil, err
	}
	left, right, err := d.operands(m)
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Op: op, Left: left, Right: right}, nil
}

func (d *decoder) logicalExpression(m fields) (ast.Node, error) {
	op, err := operator(d, m, logicalOps)
	if err != nil {
		return nil, err
	}
	left, right, err := d.operands(m)
	if err != nil {
		return nil, err
	}
	return &ast.LogicalExpr{Op: op, Left: left, Right: right}, nil
}

func (d *decoder) conditionalExpression(m fields) (ast.Node, error) {
	var c ast.ConditionalExpr
	var err error
	if c.Test, err = d.expr(m, "test"); err != nil {
		return nil, err
	}
	if c.Consequent, err = d.expr(m, "consequent"); err != nil {
		return nil, err
	}
	if c.Alternate, err = d.expr(m, "alternate"); err != nil {
		return nil, err
	}
	return &c, nil
}

func (d *decoder) assignmentExpression(m fields) (ast.Node, error) {
	op, err := operator(d, m, assignOps)
	if err != nil {
		return nil, err
	}
	left, err := d.child(m, "left")
	if err != nil {
		return nil, err
	}
	switch left.(type) {
	case *ast.ArrayPattern, *ast.ObjectPattern:
		if op != ast.OpAssign {
			return nil, d.errorf(m.get("left"), "destructuring requires =, got %s", op)
		}
	case ast.Expr:
	default:
		return nil, d.errorf(m.get("left"), "bad assignment target")
	}
	right, err := d.expr(m, "right")
	if err != nil {
		return nil, err
	}
	return &ast.AssignmentExpr{Op: op, Left: left, Right: right}, nil
}

func (d *decoder) sequenceExpression(m fields) (ast.Node, error) {
	exprs, err := d.exprList(m, "expressions", false)
	if err != nil {
		return nil, err
	}
	if len(exprs) == 0 {
		return nil, d.errorf(m.node, "empty sequence expression")
	}
	return &ast.SequenceExpr{Exprs: exprs}, nil
}

func (d *decoder) memberExpression(m fields) (ast.Node, error) {
	e := &ast.MemberExpr{}
	var err error
	if e.Computed, err = d.boolean(m, "computed"); err != nil {
		return nil, err
	}
	if e.Optional, err = d.boolean(m, "optional"); err != nil {
		return nil, err
	}
	if e.Object, err = d.expr(m, "object"); err != nil {
		return nil, err
	}
	if e.Computed {
		e.Property, err = d.expr(m, "property")
	} else {
		// Private names (#x) are not supported.
		e.Property, err = d.identifierField(m, "property")
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (d *decoder) callExpression(m fields) (ast.Node, error) {
	e := &ast.CallExpr{}
	var err error
	if e.Optional, err = d.boolean(m, "optional"); err != nil {
		return nil, err
	}
	if e.Callee, err = d.expr(m, "callee"); err != nil {
		return nil, err
	}
	if e.Arguments, err = d.exprList(m, "arguments", false); err != nil {
		return nil, err
	}
	return e, nil
}

func (d *decoder) newExpression(m fields) (ast.Node, error) {
	e := &ast.NewExpr{}
	var err error
	if e.Callee, err = d.expr(m, "callee"); err != nil {
		return nil, err
	}
	if e.Arguments, err = d.exprList(m, "arguments", false); err != nil {
		return nil, err
	}
	return e, nil
}

func (d *decoder) chainExpression(m fields) (ast.Node, error) {
	e, err := d.expr(m, "expression")
	if err != nil {
		return nil, err
	}
	return &ast.ChainExpr{Expression: e}, nil
}

func (d *decoder) yieldExpression(m fields) (ast.Node, error) {
	arg, err := d.optionalExpr(m, "argument")
	if err != nil {
		return nil, err
	}
	delegate, err := d.boolean(m, "delegate")
	if err != nil {
		return nil, err
	}
	return &ast.YieldExpr{Argument: arg, Delegate: delegate}, nil
}

func (d *decoder) awaitExpression(m fields) (ast.Node, error) {
	arg, err := d.expr(m, "argument")
	if err != nil {
		return nil, err
	}
	return &ast.AwaitExpr{Argument: arg}, nil
}

func (d *decoder) parenthesized(m fields) (ast.Node, error) {
	return d.expr(m, "expression")
}

package estree

import (
	"gopkg.in/yaml.v3"
	"src.esval.dev/pkg/ast"
)

// pattern decodes a binding or assignment target.
func (d *decoder) pattern(n *yaml.Node) (ast.Pattern, error) {
	decoded, err := d.node(n)
	if err != nil {
		return nil, err
	}
	p, ok := decoded.(ast.Pattern)
	if !ok {
		return nil, d.errorf(n, "expect a pattern, got %s", typeName(decoded))
	}
	return p, nil
}

func (d *decoder) patternField(m fields, key string) (ast.Pattern, error) {
	n := m.get(key)
	if n == nil {
		return nil, d.errorf(m.node, "missing %s", key)
	}
	return d.pattern(n)
}

func (d *decoder) arrayPattern(m fields) (ast.Node, error) {
	items, err := d.list(m, "elements")
	if err != nil {
		return nil, err
	}
	p := &ast.ArrayPattern{Elements: make([]ast.Pattern, len(items))}
	for i, item := range items {
		if isNull(item) {
			continue
		}
		if p.Elements[i], err = d.pattern(item); err != nil {
			return nil, err
		}
		if _, ok := p.Elements[i].(*ast.RestElement); ok && i != len(items)-1 {
			return nil, d.errorf(item, "rest element must be last")
		}
	}
	return p, nil
}

func (d *decoder) objectPattern(m fields) (ast.Node, error) {
	items, err := d.list(m, "properties")
	if err != nil {
		return nil, err
	}
	p := &ast.ObjectPattern{Properties: make([]ast.Pattern, len(items))}
	for i, item := range items {
		pm, err := d.mapping(item)
		if err != nil {
			return nil, err
		}
		if typ, _ := d.str(pm.get("type")); typ == "Property" {
			if p.Properties[i], err = d.patternProperty(pm); err != nil {
				return nil, err
			}
			continue
		}
		if p.Properties[i], err = d.pattern(item); err != nil {
			return nil, err
		}
		if _, ok := p.Properties[i].(*ast.RestElement); !ok || i != len(items)-1 {
			return nil, d.errorf(item, "object pattern members must be properties and a last rest element")
		}
	}
	return p, nil
}

func (d *decoder) patternProperty(m fields) (*ast.PatternProperty, error) {
	p := &ast.PatternProperty{}
	var err error
	if p.Computed, err = d.boolean(m, "computed"); err != nil {
		return nil, err
	}
	if p.Shorthand, err = d.boolean(m, "shorthand"); err != nil {
		return nil, err
	}
	if p.Key, err = d.propertyKey(m, p.Computed); err != nil {
		return nil, err
	}
	if p.Value, err = d.patternField(m, "value"); err != nil {
		return nil, err
	}
	ast.SetRange(p, d.position(m))
	return p, nil
}

func (d *decoder) assignmentPattern(m fields) (ast.Node, error) {
	left, err := d.patternField(m, "left")
	if err != nil {
		return nil, err
	}
	right, err := d.expr(m, "right")
	if err != nil {
		return nil, err
	}
	return &ast.AssignmentPattern{Left: left, Right: right}, nil
}

func (d *decoder) restElement(m fields) (ast.Node, error) {
	arg, err := d.patternField(m, "argument")
	if err != nil {
		return nil, err
	}
	if _, ok := arg.(*ast.AssignmentPattern); ok {
		return nil, d.errorf(m.get("argument"), "rest element cannot have a default")
	}
	return &ast.RestElement{Argument: arg}, nil
}

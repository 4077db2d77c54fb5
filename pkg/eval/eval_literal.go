package eval

import (
	"strings"

	"src.esval.dev/pkg/ast"
	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
)

func (fm *Frame) evalTemplate(e *ast.TemplateLiteral) (vals.Value, error) {
	var sb strings.Builder
	for i, quasi := range e.Quasis {
		if quasi.Cooked == nil {
			return nil, fm.errorp(quasi, fm.throw(errs.SyntaxError, "invalid escape sequence in template"))
		}
		sb.WriteString(*quasi.Cooked)
		if i < len(e.Exprs) {
			v, err := fm.eval(e.Exprs[i])
			if err != nil {
				return nil, err
			}
			s, err := ToString(fm.realm, v)
			if err != nil {
				return nil, fm.errorp(e.Exprs[i], err)
			}
			sb.WriteString(s)
		}
	}
	return vals.String(sb.String()), nil
}

// evalArray evaluates an array literal. Elements are defined left to right; a
// hole advances the index without defining anything, and the final length
// counts trailing holes.
func (fm *Frame) evalArray(e *ast.ArrayLiteral) (vals.Value, error) {
	array := fm.realm.NewArray()
	index := 0
	for _, elem := range e.Elements {
		switch elem := elem.(type) {
		case nil:
			index++
		case *ast.SpreadElement:
			err := fm.evalSpread(elem, func(v vals.Value) error {
				err := CreateDataProperty(fm.realm, array, vals.IndexKey(index), v)
				index++
				return err
			})
			if err != nil {
				return nil, err
			}
		default:
			v, err := fm.eval(elem)
			if err != nil {
				return nil, err
			}
			if err := CreateDataProperty(fm.realm, array, vals.IndexKey(index), v); err != nil {
				return nil, fm.errorp(elem, err)
			}
			index++
		}
	}
	if err := SetOrThrow(fm.realm, array, vals.String("length"), vals.Number(index)); err != nil {
		return nil, err
	}
	return array, nil
}

// evalObject evaluates an object literal, evaluating and defining members in
// source order.
func (fm *Frame) evalObject(e *ast.ObjectLiteral) (vals.Value, error) {
	obj := fm.realm.NewObject()
	for _, member := range e.Properties {
		var err error
		switch member := member.(type) {
		case *ast.SpreadElement:
			err = fm.evalObjectSpread(obj, member)
		case *ast.Property:
			err = fm.evalProperty(obj, member)
		default:
			err = fm.fatalf("cannot evaluate object member %T", member)
		}
		if err != nil {
			return nil, fm.errorp(member, err)
		}
	}
	return obj, nil
}

func (fm *Frame) evalObjectSpread(obj vals.Object, e *ast.SpreadElement) error {
	if err := fm.enter(); err != nil {
		return err
	}
	defer fm.leave()
	source, err := fm.eval(e.Argument)
	if err != nil {
		return err
	}
	return CopyDataProperties(fm.realm, obj, source, nil)
}

func (fm *Frame) evalProperty(obj vals.Object, p *ast.Property) error {
	if err := fm.enter(); err != nil {
		return err
	}
	defer fm.leave()
	key, err := fm.propertyKey(p.Key, p.Computed)
	if err != nil {
		return err
	}
	switch p.Kind {
	case ast.PropertyGet, ast.PropertySet:
		fn, ok := p.Value.(*ast.FunctionExpr)
		if !ok {
			return fm.fatalf("accessor value is %T", p.Value)
		}
		prefix, getter := "get ", true
		if p.Kind == ast.PropertySet {
			prefix, getter = "set ", false
		}
		closure, err := fm.instantiate(fn, vals.String(prefix+vals.KeyString(key)))
		if err != nil {
			return err
		}
		desc := vals.AccessorDescriptor(nil, closure, true, true)
		if getter {
			desc = vals.AccessorDescriptor(closure, nil, true, true)
		}
		return DefinePropertyOrThrow(fm.realm, obj, key, desc)
	}

	if p.Method {
		fn, ok := p.Value.(*ast.FunctionExpr)
		if !ok {
			return fm.fatalf("method value is %T", p.Value)
		}
		closure, err := fm.instantiate(fn, key)
		if err != nil {
			return err
		}
		return DefinePropertyOrThrow(fm.realm, obj, key, vals.DataDescriptor(closure, true, true, true))
	}

	// A non-computed, non-shorthand __proto__ sets the prototype instead of
	// defining a property.
	isProtoSetter := !p.Computed && !p.Shorthand && key == vals.PropertyKey(vals.String("__proto__"))
	var v vals.Value
	if !isProtoSetter && ast.IsAnonymousFunctionDefinition(p.Value) {
		v, err = fm.namedEvaluation(p.Value, key)
	} else {
		v, err = fm.eval(p.Value)
	}
	if err != nil {
		return err
	}
	if isProtoSetter {
		switch proto := v.(type) {
		case vals.Object:
			_, err = obj.SetPrototypeOf(proto)
		case vals.Null:
			_, err = obj.SetPrototypeOf(nil)
		}
		return err
	}
	return CreateDataProperty(fm.realm, obj, key, v)
}

// propertyKey evaluates the key of a property or pattern property.
func (fm *Frame) propertyKey(keyNode ast.Expr, computed bool) (vals.PropertyKey, error) {
	if computed {
		v, err := fm.eval(keyNode)
		if err != nil {
			return nil, err
		}
		key, err := ToPropertyKey(fm.realm, v)
		return key, fm.errorp(keyNode, err)
	}
	if num, ok := keyNode.(*ast.NumberLiteral); ok {
		return vals.String(vals.NumberToString(num.Value)), nil
	}
	name, ok := ast.PropName(keyNode)
	if !ok {
		return nil, fm.fatalf("property key is %T", keyNode)
	}
	return vals.String(name), nil
}

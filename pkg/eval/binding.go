package eval

import (
	"src.esval.dev/pkg/ast"
	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
)

// Binding initialization and destructuring assignment share one
// implementation. When env is non-nil, identifiers are bound in env with
// InitializeReferencedBinding; when env is nil, targets are evaluated as
// references in the context and assigned with PutValue, and member
// expressions are allowed as targets.
//
// Targets that are identifiers or member expressions are evaluated before
// the value for them is pulled from the source.

// valueIterator is the source of values for an array pattern: an iterator
// record, or a plain list of arguments.
type valueIterator interface {
	// StepValue returns the next value, or undefined and true when there are
	// no more values.
	StepValue(r Realm) (vals.Value, bool, error)
}

type listIterator struct {
	values []vals.Value
	next   int
}

func (it *listIterator) StepValue(Realm) (vals.Value, bool, error) {
	if it.next >= len(it.values) {
		return vals.Undefined{}, true, nil
	}
	v := it.values[it.next]
	it.next++
	return v, false, nil
}

func (fm *Frame) bindingInitialization(p ast.Pattern, v vals.Value, env EnvRecord) error {
	if err := fm.enter(); err != nil {
		return fm.errorp(p, err)
	}
	defer fm.leave()
	return fm.errorp(p, fm.bindingInitializationInner(p, v, env))
}

func (fm *Frame) bindingInitializationInner(p ast.Pattern, v vals.Value, env EnvRecord) error {
	switch p := p.(type) {
	case *ast.Identifier, *ast.MemberExpr:
		target, err := fm.evalTarget(p, env)
		if err != nil {
			return err
		}
		return fm.putTarget(target, v, env)
	case *ast.ObjectPattern:
		if err := RequireObjectCoercible(fm.realm, v, errs.CannotDestructure); err != nil {
			return err
		}
		return fm.objectBinding(p, v, env)
	case *ast.ArrayPattern:
		rec, err := GetIterator(fm.realm, v)
		if err != nil {
			return err
		}
		err = fm.arrayBinding(p.Elements, rec, env)
		if !rec.Done {
			return IteratorClose(fm.realm, rec, err)
		}
		return err
	default:
		return fm.fatalf("cannot bind to %T", p)
	}
}

func (fm *Frame) bindParameters(params []ast.Pattern, args []vals.Value, env EnvRecord) error {
	return fm.arrayBinding(params, &listIterator{values: args}, env)
}

func (fm *Frame) arrayBinding(elems []ast.Pattern, it valueIterator, env EnvRecord) error {
	for _, elem := range elems {
		if elem == nil {
			// A hole consumes a value. A record that is already done is not
			// stepped again.
			if _, _, err := it.StepValue(fm.realm); err != nil {
				return err
			}
			continue
		}
		if err := fm.arrayElementBinding(elem, it, env); err != nil {
			return err
		}
	}
	return nil
}

func (fm *Frame) arrayElementBinding(elem ast.Pattern, it valueIterator, env EnvRecord) error {
	if err := fm.enter(); err != nil {
		return fm.errorp(elem, err)
	}
	defer fm.leave()

	if rest, ok := elem.(*ast.RestElement); ok {
		target, err := fm.evalTargetIfSingle(rest.Argument, env)
		if err != nil {
			return fm.errorp(elem, err)
		}
		array := fm.realm.NewArray()
		for n := 0; ; n++ {
			if err := fm.checkBudget(); err != nil {
				return fm.errorp(elem, err)
			}
			v, done, err := it.StepValue(fm.realm)
			if err != nil {
				return fm.errorp(elem, err)
			}
			if done {
				break
			}
			if err := CreateDataProperty(fm.realm, array, vals.IndexKey(n), v); err != nil {
				return fm.errorp(elem, err)
			}
		}
		return fm.errorp(elem, fm.bindTarget(rest.Argument, target, array, env))
	}

	pattern, init := splitDefault(elem)
	target, err := fm.evalTargetIfSingle(pattern, env)
	if err != nil {
		return fm.errorp(elem, err)
	}
	v, _, err := it.StepValue(fm.realm)
	if err != nil {
		return fm.errorp(elem, err)
	}
	if v, err = fm.applyDefault(pattern, init, v); err != nil {
		return err
	}
	return fm.errorp(elem, fm.bindTarget(pattern, target, v, env))
}

func (fm *Frame) objectBinding(p *ast.ObjectPattern, v vals.Value, env EnvRecord) error {
	var excluded []vals.PropertyKey
	for _, prop := range p.Properties {
		var err error
		switch prop := prop.(type) {
		case *ast.PatternProperty:
			var key vals.PropertyKey
			key, err = fm.propertyKey(prop.Key, prop.Computed)
			if err == nil {
				excluded = append(excluded, key)
				err = fm.keyedBinding(prop.Value, v, key, env)
			}
		case *ast.RestElement:
			err = fm.objectRestBinding(prop, v, excluded, env)
		default:
			err = fm.fatalf("cannot bind object pattern member %T", prop)
		}
		if err != nil {
			return fm.errorp(prop, err)
		}
	}
	return nil
}

func (fm *Frame) keyedBinding(p ast.Pattern, source vals.Value, key vals.PropertyKey, env EnvRecord) error {
	if err := fm.enter(); err != nil {
		return fm.errorp(p, err)
	}
	defer fm.leave()
	pattern, init := splitDefault(p)
	target, err := fm.evalTargetIfSingle(pattern, env)
	if err != nil {
		return fm.errorp(p, err)
	}
	v, err := GetV(fm.realm, source, key)
	if err != nil {
		return fm.errorp(p, err)
	}
	if v, err = fm.applyDefault(pattern, init, v); err != nil {
		return err
	}
	return fm.errorp(p, fm.bindTarget(pattern, target, v, env))
}

func (fm *Frame) objectRestBinding(rest *ast.RestElement, source vals.Value, excluded []vals.PropertyKey, env EnvRecord) error {
	if err := fm.enter(); err != nil {
		return err
	}
	defer fm.leave()
	target, err := fm.evalTargetIfSingle(rest.Argument, env)
	if err != nil {
		return err
	}
	restObj := fm.realm.NewObject()
	if err := CopyDataProperties(fm.realm, restObj, source, excluded); err != nil {
		return err
	}
	return fm.bindTarget(rest.Argument, target, restObj, env)
}

func splitDefault(p ast.Pattern) (ast.Pattern, ast.Expr) {
	if ap, ok := p.(*ast.AssignmentPattern); ok {
		return ap.Left, ap.Right
	}
	return p, nil
}

// applyDefault evaluates the initializer when the value is undefined.
func (fm *Frame) applyDefault(target ast.Pattern, init ast.Expr, v vals.Value) (vals.Value, error) {
	if init == nil {
		return v, nil
	}
	if _, ok := v.(vals.Undefined); !ok {
		return v, nil
	}
	if id, ok := target.(*ast.Identifier); ok {
		return fm.namedEvaluation(init, vals.String(id.Name))
	}
	return fm.eval(init)
}

// evalTargetIfSingle evaluates an identifier or member expression target to a
// reference. Nested patterns give a nil reference.
func (fm *Frame) evalTargetIfSingle(p ast.Pattern, env EnvRecord) (*Reference, error) {
	switch p.(type) {
	case *ast.Identifier, *ast.MemberExpr:
		return fm.evalTarget(p, env)
	}
	return nil, nil
}

func (fm *Frame) evalTarget(p ast.Pattern, env EnvRecord) (*Reference, error) {
	switch p := p.(type) {
	case *ast.Identifier:
		if env != nil {
			return NewEnvReference(env, p.Name, fm.strict()), nil
		}
		return fm.ctx.ResolveBinding(p.Name)
	case *ast.MemberExpr:
		if env != nil {
			return nil, fm.fatalf("member expression in a binding pattern")
		}
		op, err := fm.evalRef(p)
		if err != nil {
			return nil, err
		}
		ref, ok := op.(*Reference)
		if !ok {
			return nil, fm.throw(errs.ReferenceError, errs.NotAssignable)
		}
		return ref, nil
	}
	return nil, fm.fatalf("cannot evaluate target %T", p)
}

// bindTarget binds v to a target that was evaluated by evalTargetIfSingle, or
// destructures it with a nested pattern.
func (fm *Frame) bindTarget(p ast.Pattern, target *Reference, v vals.Value, env EnvRecord) error {
	if target == nil {
		return fm.bindingInitialization(p, v, env)
	}
	return fm.putTarget(target, v, env)
}

func (fm *Frame) putTarget(target *Reference, v vals.Value, env EnvRecord) error {
	if env != nil {
		return InitializeReferencedBinding(target, v)
	}
	return putValue(fm.realm, target, v)
}

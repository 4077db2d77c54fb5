package eval

import (
	"src.esval.dev/pkg/ast"
	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
)

// Member, call and new expressions, optional chains and tagged templates.
//
// The functions for member and call expressions return, in addition to the
// operand, whether an optional chain was short-circuited. A short-circuit
// propagates up to the enclosing ChainExpr, which evaluates to undefined.

func shortToUndefined(op Operand, short bool, err error) (Operand, error) {
	switch {
	case err != nil:
		return nil, err
	case short:
		return ValueOperand(vals.Undefined{}), nil
	}
	return op, nil
}

// chainPart evaluates an element of a chain: a member or call expression is
// evaluated without ending the chain, and anything else ends it.
func (fm *Frame) chainPart(e ast.Expr) (Operand, bool, error) {
	var op Operand
	var short bool
	var err error
	switch e := e.(type) {
	case *ast.MemberExpr:
		if err := fm.enter(); err != nil {
			return nil, false, fm.errorp(e, err)
		}
		defer fm.leave()
		op, short, err = fm.evalMember(e)
	case *ast.CallExpr:
		if err := fm.enter(); err != nil {
			return nil, false, fm.errorp(e, err)
		}
		defer fm.leave()
		op, short, err = fm.evalCall(e)
	default:
		op, err = fm.evalRef(e)
	}
	return op, short, fm.errorp(e, err)
}

func (fm *Frame) evalMember(e *ast.MemberExpr) (Operand, bool, error) {
	baseOp, short, err := fm.chainPart(e.Object)
	if err != nil || short {
		return nil, short, err
	}
	base, err := getValue(fm.realm, baseOp)
	if err != nil {
		return nil, false, fm.errorp(e.Object, err)
	}
	if e.Optional && vals.IsNullish(base) {
		return nil, true, nil
	}
	ref, err := fm.memberReference(e, base)
	if err != nil {
		return nil, false, err
	}
	return ref, false, nil
}

// memberReference evaluates the property part of a member expression and
// returns the reference. The property expression is evaluated before the base
// is checked for undefined and null, and the key is converted after.
func (fm *Frame) memberReference(e *ast.MemberExpr, base vals.Value) (*Reference, error) {
	var keyValue vals.Value
	if e.Computed {
		var err error
		if keyValue, err = fm.eval(e.Property); err != nil {
			return nil, err
		}
	} else {
		id, ok := e.Property.(*ast.Identifier)
		if !ok {
			return nil, fm.fatalf("non-computed member property is %T", e.Property)
		}
		keyValue = vals.String(id.Name)
	}
	if vals.IsNullish(base) {
		return nil, fm.throw(errs.TypeError,
			errs.CannotReadProperty(keyDisplay(keyValue), vals.Kind(base)))
	}
	key, err := ToPropertyKey(fm.realm, keyValue)
	if err != nil {
		return nil, err
	}
	return NewPropertyReference(base, key, fm.strict()), nil
}

func keyDisplay(v vals.Value) string {
	switch v := v.(type) {
	case vals.String:
		return string(v)
	case vals.Number:
		return vals.NumberToString(float64(v))
	case *vals.Symbol:
		return vals.SymbolDescriptiveString(v)
	}
	return vals.Repr(v)
}

func (fm *Frame) evalCall(e *ast.CallExpr) (Operand, bool, error) {
	calleeOp, short, err := fm.chainPart(e.Callee)
	if err != nil || short {
		return nil, short, err
	}
	f, err := getValue(fm.realm, calleeOp)
	if err != nil {
		return nil, false, fm.errorp(e.Callee, err)
	}
	if e.Optional && vals.IsNullish(f) {
		return nil, true, nil
	}
	this := thisForCall(calleeOp)
	args, err := fm.evalArgs(e.Arguments)
	if err != nil {
		return nil, false, err
	}
	v, err := fm.call(e.Callee, f, this, args)
	if err != nil {
		return nil, false, err
	}
	return ValueOperand(v), false, nil
}

// thisForCall determines the this value of a call from the operand its
// callee evaluated to.
func thisForCall(op Operand) vals.Value {
	if ref, ok := op.(*Reference); ok {
		switch {
		case ref.IsPropertyReference():
			return GetThisValue(ref)
		case ref.env != nil:
			if base := ref.env.WithBaseObject(); base != nil {
				return base
			}
		}
	}
	return vals.Undefined{}
}

// call checks that f is callable and calls it. The arguments have been
// evaluated already.
func (fm *Frame) call(callee ast.Expr, f, this vals.Value, args []vals.Value) (vals.Value, error) {
	callable, ok := f.(vals.Callable)
	if !ok {
		return nil, fm.throw(errs.TypeError, errs.NotAFunction(fm.describe(callee)))
	}
	return callable.Call(this, args)
}

func (fm *Frame) evalNew(e *ast.NewExpr) (vals.Value, error) {
	ctor, err := fm.eval(e.Callee)
	if err != nil {
		return nil, err
	}
	// An absent argument clause is the same as an empty one.
	args, err := fm.evalArgs(e.Arguments)
	if err != nil {
		return nil, err
	}
	c, ok := ctor.(vals.Constructor)
	if !ok {
		return nil, fm.throw(errs.TypeError, errs.NotAConstructor(fm.describe(e.Callee)))
	}
	return c.Construct(args, c)
}

// evalArgs evaluates an argument list left to right, expanding spread
// arguments in place.
func (fm *Frame) evalArgs(argNodes []ast.Expr) ([]vals.Value, error) {
	args := make([]vals.Value, 0, len(argNodes))
	for _, argNode := range argNodes {
		if spread, ok := argNode.(*ast.SpreadElement); ok {
			err := fm.evalSpread(spread, func(v vals.Value) error {
				args = append(args, v)
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}
		v, err := fm.eval(argNode)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

// evalSpread evaluates the operand of a spread element and calls emit with
// each value it iterates over.
func (fm *Frame) evalSpread(e *ast.SpreadElement, emit func(vals.Value) error) error {
	if err := fm.enter(); err != nil {
		return fm.errorp(e, err)
	}
	defer fm.leave()
	v, err := fm.eval(e.Argument)
	if err != nil {
		return err
	}
	rec, err := GetIterator(fm.realm, v)
	if err != nil {
		return fm.errorp(e, err)
	}
	for {
		// Iteration can be unbounded, so each step is subject to the budget.
		if err := fm.checkBudget(); err != nil {
			return fm.errorp(e, err)
		}
		next, done, err := rec.StepValue(fm.realm)
		if err != nil {
			return fm.errorp(e, err)
		}
		if done {
			return nil
		}
		if err := emit(next); err != nil {
			return fm.errorp(e, err)
		}
	}
}

func (fm *Frame) evalTaggedTemplate(e *ast.TaggedTemplateExpr) (vals.Value, error) {
	tagOp, err := fm.evalRef(e.Tag)
	if err != nil {
		return nil, err
	}
	tag, err := getValue(fm.realm, tagOp)
	if err != nil {
		return nil, fm.errorp(e.Tag, err)
	}
	this := thisForCall(tagOp)
	site, err := fm.templateObject(e)
	if err != nil {
		return nil, err
	}
	args := make([]vals.Value, 1, 1+len(e.Quasi.Exprs))
	args[0] = site
	for _, sub := range e.Quasi.Exprs {
		v, err := fm.eval(sub)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return fm.call(e.Tag, tag, this, args)
}

// templateObject returns the template object of a tagged template site: a
// frozen array of the cooked strings, with a frozen array of the raw strings
// as its raw property. It is created once per site and realm.
func (fm *Frame) templateObject(e *ast.TaggedTemplateExpr) (vals.Object, error) {
	if obj := fm.realm.TemplateObject(e); obj != nil {
		return obj, nil
	}
	template, raw := fm.realm.NewArray(), fm.realm.NewArray()
	for i, quasi := range e.Quasi.Quasis {
		var cooked vals.Value = vals.Undefined{}
		if quasi.Cooked != nil {
			cooked = vals.String(*quasi.Cooked)
		}
		if err := CreateDataProperty(fm.realm, template, vals.IndexKey(i), cooked); err != nil {
			return nil, err
		}
		if err := CreateDataProperty(fm.realm, raw, vals.IndexKey(i), vals.String(quasi.Raw)); err != nil {
			return nil, err
		}
	}
	if err := Freeze(fm.realm, raw); err != nil {
		return nil, err
	}
	err := DefinePropertyOrThrow(fm.realm, template, vals.String("raw"),
		vals.DataDescriptor(raw, false, false, false))
	if err != nil {
		return nil, err
	}
	if err := Freeze(fm.realm, template); err != nil {
		return nil, err
	}
	fm.realm.CacheTemplateObject(e, template)
	return template, nil
}

// describe returns a short description of an expression for error messages:
// its source text when available, and a reconstruction otherwise.
func (fm *Frame) describe(e ast.Expr) string {
	r := e.Range()
	if r.Known() && r.To <= len(fm.src.Code) && r.From < r.To {
		return fm.src.Code[r.From:r.To]
	}
	switch e := e.(type) {
	case *ast.Identifier:
		return e.Name
	case *ast.ThisExpr:
		return "this"
	case *ast.MemberExpr:
		if id, ok := e.Property.(*ast.Identifier); ok && !e.Computed {
			return fm.describe(e.Object) + "." + id.Name
		}
		return fm.describe(e.Object) + "[...]"
	case *ast.CallExpr:
		return fm.describe(e.Callee) + "(...)"
	}
	return ast.Format(e)
}

package eval

import (
	"src.esval.dev/pkg/ast"
	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
)

// eval evaluates an expression and applies GetValue to the result.
func (fm *Frame) eval(e ast.Expr) (vals.Value, error) {
	op, err := fm.evalRef(e)
	if err != nil {
		return nil, err
	}
	v, err := getValue(fm.realm, op)
	return v, fm.errorp(e, err)
}

// evalRef evaluates an expression to an Operand. Every evaluation of a node
// goes through here or through chainPart, which check the budget first.
func (fm *Frame) evalRef(e ast.Expr) (Operand, error) {
	if err := fm.enter(); err != nil {
		return nil, fm.errorp(e, err)
	}
	defer fm.leave()
	op, err := fm.evalRefInner(e)
	return op, fm.errorp(e, err)
}

func valueOp(v vals.Value, err error) (Operand, error) {
	if err != nil {
		return nil, err
	}
	return ValueOperand(v), nil
}

func (fm *Frame) evalRefInner(e ast.Expr) (Operand, error) {
	switch e := e.(type) {
	case *ast.NullLiteral:
		return ValueOperand(vals.Null{}), nil
	case *ast.BooleanLiteral:
		return ValueOperand(vals.Bool(e.Value)), nil
	case *ast.NumberLiteral:
		return ValueOperand(vals.Number(e.Value)), nil
	case *ast.StringLiteral:
		return ValueOperand(vals.String(e.Value)), nil
	case *ast.TemplateLiteral:
		return valueOp(fm.evalTemplate(e))
	case *ast.TaggedTemplateExpr:
		return valueOp(fm.evalTaggedTemplate(e))
	case *ast.Identifier:
		ref, err := fm.ctx.ResolveBinding(e.Name)
		if err != nil {
			return nil, err
		}
		return ref, nil
	case *ast.ThisExpr:
		return valueOp(fm.ctx.ResolveThisBinding())
	case *ast.MetaProperty:
		if e.Meta == "new" && e.Property == "target" {
			return ValueOperand(fm.ctx.NewTarget()), nil
		}
		return nil, fm.fatalf("unsupported meta property %s.%s", e.Meta, e.Property)
	case *ast.ArrayLiteral:
		return valueOp(fm.evalArray(e))
	case *ast.ObjectLiteral:
		return valueOp(fm.evalObject(e))
	case *ast.FunctionExpr:
		name := ""
		if e.ID != nil {
			name = e.ID.Name
		}
		return valueOp(fm.instantiate(e, vals.String(name)))
	case *ast.UnaryExpr:
		return valueOp(fm.evalUnary(e))
	case *ast.UpdateExpr:
		return valueOp(fm.evalUpdate(e))
	case *ast.BinaryExpr:
		lval, err := fm.eval(e.Left)
		if err != nil {
			return nil, err
		}
		rval, err := fm.eval(e.Right)
		if err != nil {
			return nil, err
		}
		return valueOp(ApplyBinaryOperator(fm.realm, e.Op, lval, rval))
	case *ast.LogicalExpr:
		return valueOp(fm.evalLogical(e))
	case *ast.ConditionalExpr:
		test, err := fm.eval(e.Test)
		if err != nil {
			return nil, err
		}
		if ToBoolean(test) {
			return valueOp(fm.eval(e.Consequent))
		}
		return valueOp(fm.eval(e.Alternate))
	case *ast.AssignmentExpr:
		return valueOp(fm.evalAssignment(e))
	case *ast.SequenceExpr:
		var v vals.Value = vals.Undefined{}
		for _, sub := range e.Exprs {
			var err error
			if v, err = fm.eval(sub); err != nil {
				return nil, err
			}
		}
		return ValueOperand(v), nil
	case *ast.MemberExpr:
		return shortToUndefined(fm.evalMember(e))
	case *ast.CallExpr:
		return shortToUndefined(fm.evalCall(e))
	case *ast.ChainExpr:
		return shortToUndefined(fm.chainPart(e.Expression))
	case *ast.NewExpr:
		return valueOp(fm.evalNew(e))
	case *ast.YieldExpr:
		// Suspension is not implemented: yield evaluates to its operand.
		if e.Argument == nil {
			return ValueOperand(vals.Undefined{}), nil
		}
		return valueOp(fm.eval(e.Argument))
	case *ast.AwaitExpr:
		// Likewise, await evaluates to its operand without awaiting it.
		return valueOp(fm.eval(e.Argument))
	case *ast.SpreadElement:
		return nil, fm.fatalf("spread element outside of a list")
	default:
		return nil, fm.fatalf("cannot evaluate %T", e)
	}
}

func (fm *Frame) evalUnary(e *ast.UnaryExpr) (vals.Value, error) {
	switch e.Op {
	case ast.OpDelete:
		return fm.evalDelete(e)
	case ast.OpTypeof:
		op, err := fm.evalRef(e.Argument)
		if err != nil {
			return nil, err
		}
		if ref, ok := op.(*Reference); ok && ref.IsUnresolvable() {
			return vals.String("undefined"), nil
		}
		v, err := getValue(fm.realm, op)
		if err != nil {
			return nil, fm.errorp(e.Argument, err)
		}
		return vals.String(vals.TypeOf(v)), nil
	}

	v, err := fm.eval(e.Argument)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case ast.OpVoid:
		return vals.Undefined{}, nil
	case ast.OpPos:
		n, err := ToNumber(fm.realm, v)
		return vals.Number(n), err
	case ast.OpNeg:
		n, err := ToNumeric(fm.realm, v)
		return vals.Number(-n), err
	case ast.OpBitNot:
		n, err := ToInt32(fm.realm, v)
		return vals.Number(^n), err
	case ast.OpNot:
		return vals.Bool(!ToBoolean(v)), nil
	}
	return nil, fm.fatalf("unknown unary operator %q", e.Op)
}

func (fm *Frame) evalDelete(e *ast.UnaryExpr) (vals.Value, error) {
	op, err := fm.evalRef(e.Argument)
	if err != nil {
		return nil, err
	}
	ref, ok := op.(*Reference)
	if !ok {
		return vals.Bool(true), nil
	}
	switch {
	case ref.IsUnresolvable():
		if ref.strict {
			return nil, fm.throw(errs.SyntaxError, errs.StrictDeleteOfUnqualifiedRef)
		}
		return vals.Bool(true), nil
	case ref.IsPropertyReference():
		obj, err := ToObject(fm.realm, ref.base)
		if err != nil {
			return nil, err
		}
		deleted, err := obj.Delete(ref.name)
		if err != nil {
			return nil, err
		}
		if !deleted && ref.strict {
			return nil, fm.throw(errs.TypeError, errs.CannotDeleteProperty(vals.KeyString(ref.name)))
		}
		return vals.Bool(deleted), nil
	default:
		deleted, err := ref.env.DeleteBinding(ref.bindingName())
		return vals.Bool(deleted), err
	}
}

func (fm *Frame) evalUpdate(e *ast.UpdateExpr) (vals.Value, error) {
	op, err := fm.evalRef(e.Argument)
	if err != nil {
		return nil, err
	}
	oldValue, err := getValue(fm.realm, op)
	if err != nil {
		return nil, fm.errorp(e.Argument, err)
	}
	oldNum, err := ToNumeric(fm.realm, oldValue)
	if err != nil {
		return nil, err
	}
	newNum := oldNum + 1
	if e.Op == ast.OpDec {
		newNum = oldNum - 1
	}
	if err := putValue(fm.realm, op, vals.Number(newNum)); err != nil {
		return nil, fm.errorp(e.Argument, err)
	}
	if e.Prefix {
		return vals.Number(newNum), nil
	}
	return vals.Number(oldNum), nil
}

func (fm *Frame) evalLogical(e *ast.LogicalExpr) (vals.Value, error) {
	lval, err := fm.eval(e.Left)
	if err != nil {
		return nil, err
	}
	if shortCircuits(e.Op, lval) {
		return lval, nil
	}
	return fm.eval(e.Right)
}

// shortCircuits reports whether a logical operator with the given left value
// produces that value without evaluating its right operand.
func shortCircuits(op ast.LogicalOp, lval vals.Value) bool {
	switch op {
	case ast.OpAnd:
		return !ToBoolean(lval)
	case ast.OpOr:
		return ToBoolean(lval)
	default:
		return !vals.IsNullish(lval)
	}
}

package eval

import (
	"src.esval.dev/pkg/ast"
	"src.esval.dev/pkg/eval/vals"
)

func (fm *Frame) evalAssignment(e *ast.AssignmentExpr) (vals.Value, error) {
	if e.Op == ast.OpAssign && ast.IsDestructuringTarget(e.Left) {
		rval, err := fm.eval(e.Right)
		if err != nil {
			return nil, err
		}
		if err := fm.bindingInitialization(e.Left.(ast.Pattern), rval, nil); err != nil {
			return nil, fm.errorp(e.Left, err)
		}
		return rval, nil
	}

	target, ok := e.Left.(ast.Expr)
	if !ok {
		return nil, fm.fatalf("invalid assignment target %T", e.Left)
	}
	lref, err := fm.evalRef(target)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case ast.OpAssign:
		rval, err := fm.assignedValue(target, e.Right)
		if err != nil {
			return nil, err
		}
		if err := putValue(fm.realm, lref, rval); err != nil {
			return nil, fm.errorp(target, err)
		}
		return rval, nil
	case ast.OpAndAssign, ast.OpOrAssign, ast.OpNullishAssign:
		lval, err := getValue(fm.realm, lref)
		if err != nil {
			return nil, fm.errorp(target, err)
		}
		if shortCircuits(logicalOperators[e.Op], lval) {
			return lval, nil
		}
		rval, err := fm.assignedValue(target, e.Right)
		if err != nil {
			return nil, err
		}
		if err := putValue(fm.realm, lref, rval); err != nil {
			return nil, fm.errorp(target, err)
		}
		return rval, nil
	}

	binOp, ok := compoundOperators[e.Op]
	if !ok {
		return nil, fm.fatalf("unknown assignment operator %q", e.Op)
	}
	lval, err := getValue(fm.realm, lref)
	if err != nil {
		return nil, fm.errorp(target, err)
	}
	rval, err := fm.eval(e.Right)
	if err != nil {
		return nil, err
	}
	result, err := ApplyBinaryOperator(fm.realm, binOp, lval, rval)
	if err != nil {
		return nil, err
	}
	if err := putValue(fm.realm, lref, result); err != nil {
		return nil, fm.errorp(target, err)
	}
	return result, nil
}

var logicalOperators = map[ast.AssignOp]ast.LogicalOp{
	ast.OpAndAssign:     ast.OpAnd,
	ast.OpOrAssign:      ast.OpOr,
	ast.OpNullishAssign: ast.OpNullish,
}

// assignedValue evaluates the right-hand side of an assignment. An anonymous
// function assigned to an identifier is named after it.
func (fm *Frame) assignedValue(target ast.Expr, rhs ast.Expr) (vals.Value, error) {
	if id, ok := target.(*ast.Identifier); ok && ast.IsAnonymousFunctionDefinition(rhs) {
		return fm.namedEvaluation(rhs, vals.String(id.Name))
	}
	return fm.eval(rhs)
}

package eval

import (
	"fmt"
	"math"

	"src.esval.dev/pkg/ast"
	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
)

// ApplyBinaryOperator applies a binary operator to two values that have
// already been evaluated, left first. All coercions of the left operand are
// done before those of the right operand.
func ApplyBinaryOperator(r Realm, op ast.BinaryOp, lval, rval vals.Value) (vals.Value, error) {
	switch op {
	case ast.OpAdd:
		return add(r, lval, rval)
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpExp:
		lnum, rnum, err := toNumerics(r, lval, rval)
		if err != nil {
			return nil, err
		}
		return vals.Number(arithmetic(op, lnum, rnum)), nil
	case ast.OpShl, ast.OpShr, ast.OpUShr:
		lnum, rnum, err := toNumerics(r, lval, rval)
		if err != nil {
			return nil, err
		}
		shift := vals.ToUint32(rnum) & 0x1f
		switch op {
		case ast.OpShl:
			return vals.Number(vals.ToInt32(lnum) << shift), nil
		case ast.OpShr:
			return vals.Number(vals.ToInt32(lnum) >> shift), nil
		default:
			return vals.Number(vals.ToUint32(lnum) >> shift), nil
		}
	case ast.OpBitAnd, ast.OpBitXor, ast.OpBitOr:
		lnum, rnum, err := toNumerics(r, lval, rval)
		if err != nil {
			return nil, err
		}
		a, b := vals.ToInt32(lnum), vals.ToInt32(rnum)
		switch op {
		case ast.OpBitAnd:
			return vals.Number(a & b), nil
		case ast.OpBitXor:
			return vals.Number(a ^ b), nil
		default:
			return vals.Number(a | b), nil
		}
	case ast.OpLt:
		result, err := IsLessThan(r, lval, rval, true)
		return vals.Bool(result == Less), err
	case ast.OpGt:
		result, err := IsLessThan(r, rval, lval, false)
		return vals.Bool(result == Less), err
	case ast.OpLe:
		result, err := IsLessThan(r, rval, lval, false)
		return vals.Bool(result == NotLess), err
	case ast.OpGe:
		result, err := IsLessThan(r, lval, rval, true)
		return vals.Bool(result == NotLess), err
	case ast.OpEq, ast.OpNe:
		eq, err := IsLooselyEqual(r, lval, rval)
		return vals.Bool(eq == (op == ast.OpEq)), err
	case ast.OpStrictEq:
		return vals.Bool(vals.StrictEquals(lval, rval)), nil
	case ast.OpStrictNe:
		return vals.Bool(!vals.StrictEquals(lval, rval)), nil
	case ast.OpInstanceof:
		b, err := InstanceofOperator(r, lval, rval)
		return vals.Bool(b), err
	case ast.OpIn:
		obj, ok := rval.(vals.Object)
		if !ok {
			return nil, ThrowError(r, errs.TypeError,
				errs.RightHandSideNotObject("in", vals.Repr(rval)))
		}
		key, err := ToPropertyKey(r, lval)
		if err != nil {
			return nil, err
		}
		b, err := obj.HasProperty(key)
		return vals.Bool(b), err
	}
	return nil, &Completion{Kind: Fatal, Reason: fmt.Errorf("unknown binary operator %q", op)}
}

// The + operator converts both operands to primitives before deciding between
// string concatenation and numeric addition.
func add(r Realm, lval, rval vals.Value) (vals.Value, error) {
	lprim, err := ToPrimitive(r, lval, HintDefault)
	if err != nil {
		return nil, err
	}
	rprim, err := ToPrimitive(r, rval, HintDefault)
	if err != nil {
		return nil, err
	}
	_, lstr := lprim.(vals.String)
	_, rstr := rprim.(vals.String)
	if lstr || rstr {
		ls, err := ToString(r, lprim)
		if err != nil {
			return nil, err
		}
		rs, err := ToString(r, rprim)
		if err != nil {
			return nil, err
		}
		return vals.String(ls + rs), nil
	}
	lnum, rnum, err := toNumerics(r, lprim, rprim)
	if err != nil {
		return nil, err
	}
	return vals.Number(lnum + rnum), nil
}

func toNumerics(r Realm, lval, rval vals.Value) (float64, float64, error) {
	lnum, err := ToNumeric(r, lval)
	if err != nil {
		return 0, 0, err
	}
	rnum, err := ToNumeric(r, rval)
	if err != nil {
		return 0, 0, err
	}
	return lnum, rnum, nil
}

func arithmetic(op ast.BinaryOp, a, b float64) float64 {
	switch op {
	case ast.OpSub:
		return a - b
	case ast.OpMul:
		return a * b
	case ast.OpDiv:
		return a / b
	case ast.OpMod:
		return vals.Remainder(a, b)
	case ast.OpExp:
		return vals.Exponentiate(a, b)
	}
	return math.NaN()
}

// compoundOperators maps compound assignment operators to the binary
// operators they apply. The logical assignment operators are not included.
var compoundOperators = map[ast.AssignOp]ast.BinaryOp{
	ast.OpAddAssign:    ast.OpAdd,
	ast.OpSubAssign:    ast.OpSub,
	ast.OpMulAssign:    ast.OpMul,
	ast.OpDivAssign:    ast.OpDiv,
	ast.OpModAssign:    ast.OpMod,
	ast.OpExpAssign:    ast.OpExp,
	ast.OpShlAssign:    ast.OpShl,
	ast.OpShrAssign:    ast.OpShr,
	ast.OpUShrAssign:   ast.OpUShr,
	ast.OpBitAndAssign: ast.OpBitAnd,
	ast.OpBitXorAssign: ast.OpBitXor,
	ast.OpBitOrAssign:  ast.OpBitOr,
}

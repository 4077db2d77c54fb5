package eval

import (
	"fmt"

	"src.esval.dev/pkg/ast"
	"src.esval.dev/pkg/diag"
	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
)

// Source describes a piece of source code that AST nodes were decoded from.
// Code may be empty, in which case diagnostics show byte offsets.
type Source struct {
	Name string
	Code string
}

const anonymousSource = "[expression]"

// Frame is the state of one evaluation: the Evaler, the execution context, and
// the current nesting depth. It is not safe for concurrent use.
type Frame struct {
	ev    *Evaler
	ctx   Context
	realm Realm
	src   Source
	depth int
}

func (ev *Evaler) newFrame(src Source, ctx Context) *Frame {
	if src.Name == "" {
		src.Name = anonymousSource
	}
	return &Frame{ev: ev, ctx: ctx, realm: ctx.Realm(), src: src}
}

// checkBudget consults the budget of the context. A completion returned by
// the context is passed on as is; any other error becomes an Interrupt.
func (fm *Frame) checkBudget() error {
	err := fm.ctx.CheckBudget()
	if err == nil {
		return nil
	}
	if c, ok := err.(*Completion); ok {
		return c
	}
	logger.Printf("evaluation interrupted: %v", err)
	return &Completion{Kind: Interrupt, Reason: err}
}

// enter is called on entry to every node, before anything else is done.
func (fm *Frame) enter() error {
	if err := fm.checkBudget(); err != nil {
		return err
	}
	fm.depth++
	if fm.ev.MaxDepth > 0 && fm.depth > fm.ev.MaxDepth {
		fm.depth--
		return &Completion{Kind: Fatal, Reason: ErrTooDeep}
	}
	return nil
}

func (fm *Frame) leave() { fm.depth-- }

// errorp records r as the origin of an abrupt completion that has none yet.
// An error that is not a completion becomes a Fatal completion.
func (fm *Frame) errorp(r diag.Ranger, err error) error {
	switch err := err.(type) {
	case nil:
		return nil
	case *Completion:
		if err.Origin == nil {
			err.Origin = diag.NewContext(fm.src.Name, fm.src.Code, r)
		}
		return err
	default:
		logger.Printf("wrapping host error as fatal completion: %v", err)
		return &Completion{Kind: Fatal, Reason: err,
			Origin: diag.NewContext(fm.src.Name, fm.src.Code, r)}
	}
}

func (fm *Frame) throw(kind errs.Kind, msg string) error {
	return ThrowError(fm.realm, kind, msg)
}

func (fm *Frame) throwf(kind errs.Kind, format string, args ...any) error {
	return fm.throw(kind, fmt.Sprintf(format, args...))
}

func (fm *Frame) fatalf(format string, args ...any) error {
	return &Completion{Kind: Fatal, Reason: fmt.Errorf(format, args...)}
}

func (fm *Frame) strict() bool { return fm.ctx.Strict() }

// instantiate creates a function object for a function expression.
func (fm *Frame) instantiate(fn *ast.FunctionExpr, name vals.PropertyKey) (vals.Value, error) {
	return fm.realm.InstantiateFunction(fm.ctx, fm.src, fn, name)
}

// namedEvaluation evaluates an initializer, giving an anonymous function
// definition the name of what it initializes.
func (fm *Frame) namedEvaluation(e ast.Expr, name vals.PropertyKey) (vals.Value, error) {
	if fn, ok := e.(*ast.FunctionExpr); ok && ast.IsAnonymousFunctionDefinition(e) {
		if err := fm.enter(); err != nil {
			return nil, fm.errorp(e, err)
		}
		defer fm.leave()
		v, err := fm.instantiate(fn, name)
		return v, fm.errorp(e, err)
	}
	return fm.eval(e)
}

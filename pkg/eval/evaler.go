package eval

import (
	"src.esval.dev/pkg/ast"
	"src.esval.dev/pkg/eval/vals"
	"src.esval.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[eval] ")

// DefaultMaxDepth is the default nesting depth limit of an Evaler.
const DefaultMaxDepth = 2000

// Evaler evaluates AST nodes. It holds no state that changes during
// evaluation, so one Evaler may be used by several goroutines at once, each
// with its own Context.
type Evaler struct {
	// MaxDepth limits the nesting depth of nodes being evaluated at the same
	// time within one evaluation. Exceeding it produces a Fatal completion
	// with ErrTooDeep. Zero means no limit. It must not be changed while
	// evaluations are running.
	MaxDepth int
}

// NewEvaler creates a new Evaler with the default depth limit.
func NewEvaler() *Evaler {
	return &Evaler{MaxDepth: DefaultMaxDepth}
}

var defaultEvaler = NewEvaler()

// Evaluate evaluates a node in a context with a default Evaler. It is
// equivalent to NewEvaler().Eval(Source{}, n, ctx).
func Evaluate(n ast.Node, ctx Context) Completion {
	return defaultEvaler.Eval(Source{}, n, ctx)
}

// Eval evaluates a node decoded from src in a context. The node may be an
// expression, an expression statement, or a script whose statements are all
// expression statements; the value of a script is the value of its last
// statement.
//
// The result is a Normal completion with the value, or an abrupt completion
// whose Origin is set to the innermost node where it was observed.
func (ev *Evaler) Eval(src Source, n ast.Node, ctx Context) Completion {
	fm := ev.newFrame(src, ctx)
	return AsCompletion(fm.evalNode(n))
}

// EvalReference evaluates an expression without applying GetValue to the
// result. The returned Operand can be passed to GetValue and PutValue; this
// is how a caller writes through an expression such as a.b[c].
func (ev *Evaler) EvalReference(src Source, e ast.Expr, ctx Context) (Operand, Completion) {
	fm := ev.newFrame(src, ctx)
	op, err := fm.evalRef(e)
	return op, AsCompletion(vals.Undefined{}, err)
}

// BindingInitialization initializes the bindings of a pattern with a value.
// When env is nil, identifiers are resolved in the context and assigned with
// PutValue; otherwise they are initialized in env.
func (ev *Evaler) BindingInitialization(src Source, ctx Context, p ast.Pattern, v vals.Value, env EnvRecord) error {
	fm := ev.newFrame(src, ctx)
	return fm.bindingInitialization(p, v, env)
}

// BindParameters initializes the bindings of a list of parameters in env with
// a list of arguments. Missing arguments are undefined.
func (ev *Evaler) BindParameters(src Source, ctx Context, params []ast.Pattern, args []vals.Value, env EnvRecord) error {
	fm := ev.newFrame(src, ctx)
	return fm.bindParameters(params, args, env)
}

// BindingInitialization is like (*Evaler).BindingInitialization with a
// default Evaler.
func BindingInitialization(ctx Context, p ast.Pattern, v vals.Value, env EnvRecord) error {
	return defaultEvaler.BindingInitialization(Source{}, ctx, p, v, env)
}

func (fm *Frame) evalNode(n ast.Node) (vals.Value, error) {
	switch n := n.(type) {
	case *ast.Script:
		if err := fm.enter(); err != nil {
			return nil, fm.errorp(n, err)
		}
		defer fm.leave()
		var v vals.Value = vals.Undefined{}
		for _, stmt := range n.Body {
			var err error
			v, err = fm.evalNode(stmt)
			if err != nil {
				return nil, err
			}
		}
		return v, nil
	case *ast.ExpressionStatement:
		if err := fm.enter(); err != nil {
			return nil, fm.errorp(n, err)
		}
		defer fm.leave()
		return fm.eval(n.Expression)
	case ast.Expr:
		return fm.eval(n)
	case *ast.OpaqueStatement:
		return nil, fm.errorp(n, fm.fatalf("unsupported statement: %s", n.Type))
	default:
		return nil, fm.errorp(n, fm.fatalf("cannot evaluate %T", n))
	}
}

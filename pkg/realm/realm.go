// Package realm is a host for the evaluator. It implements the interfaces the
// evaluator needs with ordinary objects, arrays, native functions, error
// objects, primitive wrappers, environment records and an evaluation budget.
//
// It is a minimal host. Functions whose body is a block of statements can be
// created but not called, since statements are not evaluated; functions with
// an expression body are fully functional.
package realm

import (
	"errors"
	"fmt"

	"src.esval.dev/pkg/ast"
	"src.esval.dev/pkg/eval"
	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
)

// DefaultMaxCallDepth is the default limit on nested function calls.
const DefaultMaxCallDepth = 400

// Options configures a Realm.
type Options struct {
	// MaxCallDepth limits the number of nested function calls. Exceeding it
	// throws a RangeError. Zero means DefaultMaxCallDepth, and a negative
	// value means no limit.
	MaxCallDepth int
	// Evaler evaluates the bodies of functions. Nil means
	// eval.NewEvaler().
	Evaler *eval.Evaler
}

// Realm is a set of intrinsic objects and a global environment. It is not
// safe for concurrent use.
type Realm struct {
	ObjectPrototype         *Object
	FunctionPrototype       *Object
	ArrayPrototype          *Object
	StringPrototype         *Object
	NumberPrototype         *Object
	BooleanPrototype        *Object
	SymbolPrototype         *Object
	IteratorPrototype       *Object
	ArrayIteratorPrototype  *Object
	StringIteratorPrototype *Object
	errorPrototypes         map[errs.Kind]*Object

	global    *Object
	globalEnv *GlobalEnv
	evaler    *eval.Evaler
	templates map[*ast.TaggedTemplateExpr]vals.Object

	maxCallDepth int
	callDepth    int
	// budget of the most recently created top-level context; native loops
	// over guest-controlled lengths are charged to it.
	budget *Budget
}

var errForeignContext = errors.New("context was not created by package realm")

func errNoBinding(name string) error {
	return fmt.Errorf("no binding for %q in environment record", name)
}

// New creates a new realm with its intrinsics and global bindings.
func New(opts Options) *Realm {
	r := &Realm{
		errorPrototypes: make(map[errs.Kind]*Object),
		templates:       make(map[*ast.TaggedTemplateExpr]vals.Object),
		evaler:          opts.Evaler,
		maxCallDepth:    opts.MaxCallDepth,
	}
	if r.evaler == nil {
		r.evaler = eval.NewEvaler()
	}
	if r.maxCallDepth == 0 {
		r.maxCallDepth = DefaultMaxCallDepth
	}
	// The order matters: every object created below needs the prototypes
	// created before it.
	r.ObjectPrototype = r.NewObjectWithProto(nil)
	r.FunctionPrototype = r.NewObjectWithProto(r.ObjectPrototype)
	r.ArrayPrototype = r.NewObjectWithProto(r.ObjectPrototype)
	r.StringPrototype = r.NewObjectWithProto(r.ObjectPrototype)
	r.NumberPrototype = r.NewObjectWithProto(r.ObjectPrototype)
	r.BooleanPrototype = r.NewObjectWithProto(r.ObjectPrototype)
	r.SymbolPrototype = r.NewObjectWithProto(r.ObjectPrototype)
	r.global = r.NewObjectWithProto(r.ObjectPrototype)
	r.global.class = "global"
	r.globalEnv = newGlobalEnv(r, r.global)

	r.initIterators()
	r.initErrors()
	r.initBuiltins()
	return r
}

// GlobalObject implements eval.Realm.
func (r *Realm) GlobalObject() vals.Object { return r.global }

// Global returns the global object.
func (r *Realm) Global() *Object { return r.global }

// GlobalEnv returns the global environment.
func (r *Realm) GlobalEnv() *GlobalEnv { return r.globalEnv }

// Evaler returns the Evaler used for function bodies.
func (r *Realm) Evaler() *eval.Evaler { return r.evaler }

// DefineGlobal defines a writable, non-enumerable and configurable property of
// the global object.
func (r *Realm) DefineGlobal(name string, v vals.Value) { r.defineGlobal(name, v) }

func (r *Realm) defineGlobal(name string, v vals.Value) {
	r.global.defineBuiltin(vals.String(name), v)
}

// TemplateObject implements eval.Realm.
func (r *Realm) TemplateObject(site *ast.TaggedTemplateExpr) vals.Object {
	return r.templates[site]
}

// CacheTemplateObject implements eval.Realm.
func (r *Realm) CacheTemplateObject(site *ast.TaggedTemplateExpr, obj vals.Object) {
	r.templates[site] = obj
}

func (r *Realm) enterCall() error {
	if r.maxCallDepth > 0 && r.callDepth >= r.maxCallDepth {
		logger.Printf("call depth limit %d reached", r.maxCallDepth)
		return eval.ThrowError(r, errs.RangeError, "maximum call stack size exceeded")
	}
	r.callDepth++
	return nil
}

func (r *Realm) leaveCall() { r.callDepth-- }

// step charges one step of a native loop to the active budget. Running out
// interrupts the evaluation the same way the evaluator does.
func (r *Realm) step() error {
	if r.budget == nil {
		return nil
	}
	if err := r.budget.Check(); err != nil {
		logger.Printf("native loop interrupted: %v", err)
		return &eval.Completion{Kind: eval.Interrupt, Reason: err}
	}
	return nil
}

func arg(args []vals.Value, i int) vals.Value {
	if i < len(args) {
		return args[i]
	}
	return vals.Undefined{}
}

func isUndefined(v vals.Value) bool {
	_, ok := v.(vals.Undefined)
	return ok
}

package eval

import (
	"src.esval.dev/pkg/ast"
	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
)

// Context is the execution context an expression is evaluated in. It is
// implemented by the host.
type Context interface {
	// Realm returns the realm of the context.
	Realm() Realm
	// ResolveBinding resolves an identifier against the lexical environment.
	// An identifier that is not bound anywhere resolves to an unresolvable
	// reference, not an error.
	ResolveBinding(name string) (*Reference, error)
	// ResolveThisBinding returns the this value.
	ResolveThisBinding() (vals.Value, error)
	// NewTarget returns the value of new.target, undefined outside of a
	// function invoked by new.
	NewTarget() vals.Value
	// Strict reports whether the code being evaluated is strict mode code.
	Strict() bool
	// CheckBudget is called on entry to every node. A non-nil result stops the
	// evaluation with an Interrupt completion carrying it.
	CheckBudget() error
}

// EnvRecord is an environment record. It is implemented by the host.
type EnvRecord interface {
	HasBinding(name string) (bool, error)
	// InitializeBinding sets the value of a binding that has been created but
	// not initialized.
	InitializeBinding(name string, v vals.Value) error
	SetMutableBinding(name string, v vals.Value, strict bool) error
	GetBindingValue(name string, strict bool) (vals.Value, error)
	DeleteBinding(name string) (bool, error)
	// WithBaseObject returns the object that supplies the this value of a
	// call through a binding of this record, or undefined.
	WithBaseObject() vals.Value
}

// Realm creates the objects the evaluator needs. It is implemented by the
// host.
type Realm interface {
	GlobalObject() vals.Object
	// NewObject returns a fresh ordinary object whose prototype is
	// Object.prototype.
	NewObject() vals.Object
	// NewArray returns a fresh empty array.
	NewArray() vals.Object
	// NewError returns a fresh native error object.
	NewError(kind errs.Kind, msg string) vals.Object
	// WrapPrimitive returns a wrapper object for a boolean, number, string or
	// symbol value.
	WrapPrimitive(v vals.Value) (vals.Object, error)
	// InstantiateFunction creates a function object from a function
	// expression, with the given name. The function closes over the lexical
	// environment of ctx.
	InstantiateFunction(ctx Context, src Source, fn *ast.FunctionExpr, name vals.PropertyKey) (vals.Object, error)
	// TemplateObject returns the template object cached for a tagged template
	// site, or nil.
	TemplateObject(site *ast.TaggedTemplateExpr) vals.Object
	// CacheTemplateObject caches the template object of a site.
	CacheTemplateObject(site *ast.TaggedTemplateExpr, obj vals.Object)
}

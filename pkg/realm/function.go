package realm

import (
	"src.esval.dev/pkg/ast"
	"src.esval.dev/pkg/eval"
	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
)

// NativeFunc is the Go implementation of a function. For a constructor call,
// newTarget is the constructor new was applied to; for an ordinary call it is
// nil.
type NativeFunc func(this vals.Value, args []vals.Value, newTarget vals.Object) (vals.Value, error)

// Function is a function object that can be called but not constructed.
type Function struct {
	Object
	name string
	impl NativeFunc
}

// ConstructorFunction is a function object that can also be constructed.
type ConstructorFunction struct {
	Function
}

func (r *Realm) initFunction(f *Function, self vals.Object, name string, length int, impl NativeFunc) {
	f.init(r, self, r.FunctionPrototype, "Function")
	f.name = name
	f.impl = impl
	f.defineOrdinary(vals.String("length"), vals.DataDescriptor(vals.Number(length), false, false, true))
	f.defineOrdinary(vals.String("name"), vals.DataDescriptor(vals.String(name), false, false, true))
}

// NewFunction returns a native function that is not a constructor.
func (r *Realm) NewFunction(name string, length int, impl NativeFunc) *Function {
	f := &Function{}
	r.initFunction(f, f, name, length, impl)
	return f
}

// NewConstructor returns a native constructor. Its prototype property is
// proto, whose constructor property is set to the new function.
func (r *Realm) NewConstructor(name string, length int, proto *Object, impl NativeFunc) *ConstructorFunction {
	f := &ConstructorFunction{}
	r.initFunction(&f.Function, f, name, length, impl)
	if proto != nil {
		f.defineOrdinary(vals.String("prototype"), vals.DataDescriptor(proto, false, false, false))
		proto.defineBuiltin(vals.String("constructor"), f)
	}
	return f
}

// Name returns the name the function was created with.
func (f *Function) Name() string { return f.name }

func (f *Function) Call(this vals.Value, args []vals.Value) (vals.Value, error) {
	if err := f.realm.enterCall(); err != nil {
		return nil, err
	}
	defer f.realm.leaveCall()
	return f.impl(this, args, nil)
}

func (f *ConstructorFunction) Construct(args []vals.Value, newTarget vals.Object) (vals.Object, error) {
	if err := f.realm.enterCall(); err != nil {
		return nil, err
	}
	defer f.realm.leaveCall()
	v, err := f.impl(vals.Undefined{}, args, newTarget)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(vals.Object)
	if !ok {
		return nil, eval.ThrowError(f.realm, errs.TypeError, "constructor did not return an object")
	}
	return obj, nil
}

func (f *Function) Repr() string { return functionRepr(f) }

func functionRepr(f vals.Callable) string {
	name := ""
	if fn, ok := f.(interface{ Name() string }); ok {
		name = fn.Name()
	}
	if name == "" {
		return "[Function (anonymous)]"
	}
	return "[Function: " + name + "]"
}

// OrdinaryCreateFromConstructor creates an ordinary object whose prototype is
// the prototype property of newTarget, or fallback if that is not an object.
func (r *Realm) OrdinaryCreateFromConstructor(newTarget vals.Object, fallback vals.Object) (*Object, error) {
	proto, err := r.prototypeFromConstructor(newTarget, fallback)
	if err != nil {
		return nil, err
	}
	return r.NewObjectWithProto(proto), nil
}

// InstantiateFunction implements eval.Realm. Functions with a concise body are
// fully functional: an arrow function takes this and new.target from where it
// was created, and other functions bind them when called. Functions whose body
// is a block are created with the usual properties, but calling or
// constructing them fails with a TypeError, since statements are not
// evaluated.
func (r *Realm) InstantiateFunction(ctx eval.Context, src eval.Source, fn *ast.FunctionExpr, name vals.PropertyKey) (vals.Object, error) {
	c, ok := ctx.(*Context)
	if !ok {
		return nil, errForeignContext
	}
	fname := functionName(name)
	cl := &closure{realm: r, ctx: c, src: src, fn: fn}
	impl := cl.call
	length := expectedArgumentCount(fn.Params)
	if fn.Arrow || fn.Async || fn.Generator {
		return r.NewFunction(fname, length, impl), nil
	}
	proto := r.NewObjectWithProto(r.ObjectPrototype)
	return r.NewConstructor(fname, length, proto, impl), nil
}

// functionName converts the name given to a function by named evaluation to
// a string. Symbols are named after their description in brackets.
func functionName(name vals.PropertyKey) string {
	if name == nil {
		return ""
	}
	return vals.KeyString(name)
}

// expectedArgumentCount counts the parameters before the first one with a
// default value or a rest parameter.
func expectedArgumentCount(params []ast.Pattern) int {
	for i, p := range params {
		switch p.(type) {
		case *ast.AssignmentPattern, *ast.RestElement:
			return i
		}
	}
	return len(params)
}

type closure struct {
	realm *Realm
	ctx   *Context
	src   eval.Source
	fn    *ast.FunctionExpr
}

func (c *closure) call(this vals.Value, args []vals.Value, newTarget vals.Object) (vals.Value, error) {
	body, ok := c.fn.Body.(ast.Expr)
	if !ok {
		return nil, eval.ThrowError(c.realm, errs.TypeError, "function bodies with statements are not supported")
	}
	env := NewDeclarativeEnv(c.ctx.env)
	for _, p := range c.fn.Params {
		if p == nil {
			continue
		}
		for _, name := range ast.BoundNames(p) {
			env.CreateMutableBinding(name, false)
		}
	}
	fctx := c.ctx.withEnv(env)
	fctx.strict = c.ctx.strict || c.fn.Strict
	var created vals.Object
	if !c.fn.Arrow {
		if newTarget != nil {
			obj, err := c.realm.OrdinaryCreateFromConstructor(newTarget, c.realm.ObjectPrototype)
			if err != nil {
				return nil, err
			}
			created, this = obj, obj
			fctx.newTarget = newTarget
		} else {
			fctx.newTarget = vals.Undefined{}
		}
		bound, err := c.realm.bindThis(this, fctx.strict)
		if err != nil {
			return nil, err
		}
		fctx.this = bound
	}
	if err := c.realm.evaler.BindParameters(c.src, fctx, c.fn.Params, args, env); err != nil {
		return nil, err
	}
	result := c.realm.evaler.Eval(c.src, body, fctx)
	if err := result.Err(); err != nil {
		return nil, err
	}
	if created != nil {
		if _, ok := result.Value.(vals.Object); !ok {
			return created, nil
		}
	}
	return result.Value, nil
}

// bindThis computes the this value seen by a non-arrow function. Sloppy mode
// functions see the global object for undefined and null, and a wrapper for
// other primitives.
func (r *Realm) bindThis(this vals.Value, strict bool) (vals.Value, error) {
	switch {
	case strict:
		return this, nil
	case vals.IsNullish(this):
		return r.global, nil
	case vals.IsPrimitive(this):
		return r.WrapPrimitive(this)
	}
	return this, nil
}

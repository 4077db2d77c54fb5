package realm

import (
	"src.esval.dev/pkg/eval"
	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
)

// Env is an environment record together with its outer environment.
type Env interface {
	eval.EnvRecord
	// Outer returns the outer environment, or nil for the global environment.
	Outer() Env
}

type binding struct {
	// nil until initialized.
	value     vals.Value
	mutable   bool
	deletable bool
	// strict is only meaningful for immutable bindings: assigning to a
	// non-strict immutable binding is silently ignored in sloppy mode code.
	strict bool
}

// DeclarativeEnv is a declarative environment record, holding bindings
// created by declarations and parameter lists.
type DeclarativeEnv struct {
	realm    *Realm
	outer    Env
	bindings map[string]*binding
}

// NewDeclarativeEnv returns an empty declarative environment. The outer
// environment must not be nil; the outermost environment is the global one.
func NewDeclarativeEnv(outer Env) *DeclarativeEnv {
	return &DeclarativeEnv{realm: realmOf(outer), outer: outer, bindings: make(map[string]*binding)}
}

func realmOf(env Env) *Realm {
	switch env := env.(type) {
	case *DeclarativeEnv:
		return env.realm
	case *ObjectEnv:
		return env.realm
	case *GlobalEnv:
		return env.realm
	}
	return nil
}

func (e *DeclarativeEnv) Outer() Env { return e.outer }

// CreateMutableBinding creates an uninitialized mutable binding. It does
// nothing if the binding exists.
func (e *DeclarativeEnv) CreateMutableBinding(name string, deletable bool) {
	if _, ok := e.bindings[name]; !ok {
		e.bindings[name] = &binding{mutable: true, deletable: deletable}
	}
}

// CreateImmutableBinding creates an uninitialized immutable binding.
func (e *DeclarativeEnv) CreateImmutableBinding(name string, strict bool) {
	if _, ok := e.bindings[name]; !ok {
		e.bindings[name] = &binding{strict: strict}
	}
}

// Define creates and initializes a mutable binding.
func (e *DeclarativeEnv) Define(name string, v vals.Value) {
	e.bindings[name] = &binding{value: v, mutable: true}
}

func (e *DeclarativeEnv) HasBinding(name string) (bool, error) {
	_, ok := e.bindings[name]
	return ok, nil
}

func (e *DeclarativeEnv) InitializeBinding(name string, v vals.Value) error {
	b, ok := e.bindings[name]
	if !ok {
		return errNoBinding(name)
	}
	b.value = v
	return nil
}

func (e *DeclarativeEnv) SetMutableBinding(name string, v vals.Value, strict bool) error {
	b, ok := e.bindings[name]
	switch {
	case !ok:
		if strict {
			return eval.ThrowError(e.realm, errs.ReferenceError, errs.NotDefined(name))
		}
		e.Define(name, v)
		return nil
	case b.value == nil:
		return eval.ThrowError(e.realm, errs.ReferenceError, errUninitialized(name))
	case b.mutable:
		b.value = v
		return nil
	case b.strict || strict:
		return eval.ThrowError(e.realm, errs.TypeError, "assignment to constant variable '"+name+"'")
	}
	return nil
}

func (e *DeclarativeEnv) GetBindingValue(name string, strict bool) (vals.Value, error) {
	b, ok := e.bindings[name]
	if !ok {
		return nil, errNoBinding(name)
	}
	if b.value == nil {
		return nil, eval.ThrowError(e.realm, errs.ReferenceError, errUninitialized(name))
	}
	return b.value, nil
}

func (e *DeclarativeEnv) DeleteBinding(name string) (bool, error) {
	b, ok := e.bindings[name]
	if !ok {
		return true, nil
	}
	if !b.deletable {
		return false, nil
	}
	delete(e.bindings, name)
	return true, nil
}

func (e *DeclarativeEnv) WithBaseObject() vals.Value { return vals.Undefined{} }

func errUninitialized(name string) string {
	return "cannot access '" + name + "' before initialization"
}

// ObjectEnv is an object environment record, whose bindings are the
// properties of an object. A with environment supplies its object as the this
// value of calls through its bindings.
type ObjectEnv struct {
	realm *Realm
	outer Env
	obj   vals.Object
	with  bool
}

// NewObjectEnv returns an object environment for obj.
func NewObjectEnv(obj vals.Object, with bool, outer Env) *ObjectEnv {
	return &ObjectEnv{realm: realmOf(outer), outer: outer, obj: obj, with: with}
}

func (e *ObjectEnv) Outer() Env { return e.outer }

func (e *ObjectEnv) HasBinding(name string) (bool, error) {
	return e.obj.HasProperty(vals.String(name))
}

func (e *ObjectEnv) InitializeBinding(name string, v vals.Value) error {
	return e.SetMutableBinding(name, v, false)
}

func (e *ObjectEnv) SetMutableBinding(name string, v vals.Value, strict bool) error {
	key := vals.String(name)
	exists, err := e.obj.HasProperty(key)
	if err != nil {
		return err
	}
	if !exists && strict {
		return eval.ThrowError(e.realm, errs.ReferenceError, errs.NotDefined(name))
	}
	ok, err := e.obj.Set(key, v, e.obj)
	if err != nil {
		return err
	}
	if !ok && strict {
		return eval.ThrowError(e.realm, errs.TypeError, errs.CannotSetProperty(name, "object"))
	}
	return nil
}

func (e *ObjectEnv) GetBindingValue(name string, strict bool) (vals.Value, error) {
	key := vals.String(name)
	exists, err := e.obj.HasProperty(key)
	if err != nil {
		return nil, err
	}
	if !exists {
		if strict {
			return nil, eval.ThrowError(e.realm, errs.ReferenceError, errs.NotDefined(name))
		}
		return vals.Undefined{}, nil
	}
	return e.obj.Get(key, e.obj)
}

func (e *ObjectEnv) DeleteBinding(name string) (bool, error) {
	return e.obj.Delete(vals.String(name))
}

func (e *ObjectEnv) WithBaseObject() vals.Value {
	if e.with {
		return e.obj
	}
	return vals.Undefined{}
}

// GlobalEnv is the global environment record: declarative bindings layered
// over the properties of the global object.
type GlobalEnv struct {
	realm   *Realm
	objEnv  *ObjectEnv
	declEnv *DeclarativeEnv
}

func newGlobalEnv(r *Realm, global vals.Object) *GlobalEnv {
	return &GlobalEnv{
		realm:   r,
		objEnv:  &ObjectEnv{realm: r, obj: global},
		declEnv: &DeclarativeEnv{realm: r, bindings: make(map[string]*binding)},
	}
}

// Declarative returns the declarative part of the global environment, which
// holds lexical declarations.
func (e *GlobalEnv) Declarative() *DeclarativeEnv { return e.declEnv }

func (e *GlobalEnv) Outer() Env { return nil }

func (e *GlobalEnv) HasBinding(name string) (bool, error) {
	if ok, _ := e.declEnv.HasBinding(name); ok {
		return true, nil
	}
	return e.objEnv.HasBinding(name)
}

func (e *GlobalEnv) InitializeBinding(name string, v vals.Value) error {
	if ok, _ := e.declEnv.HasBinding(name); ok {
		return e.declEnv.InitializeBinding(name, v)
	}
	return e.objEnv.InitializeBinding(name, v)
}

func (e *GlobalEnv) SetMutableBinding(name string, v vals.Value, strict bool) error {
	if ok, _ := e.declEnv.HasBinding(name); ok {
		return e.declEnv.SetMutableBinding(name, v, strict)
	}
	return e.objEnv.SetMutableBinding(name, v, strict)
}

func (e *GlobalEnv) GetBindingValue(name string, strict bool) (vals.Value, error) {
	if ok, _ := e.declEnv.HasBinding(name); ok {
		return e.declEnv.GetBindingValue(name, strict)
	}
	return e.objEnv.GetBindingValue(name, strict)
}

func (e *GlobalEnv) DeleteBinding(name string) (bool, error) {
	if ok, _ := e.declEnv.HasBinding(name); ok {
		return e.declEnv.DeleteBinding(name)
	}
	return e.objEnv.DeleteBinding(name)
}

func (e *GlobalEnv) WithBaseObject() vals.Value { return vals.Undefined{} }

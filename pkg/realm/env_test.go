package realm

import (
	"testing"

	"src.esval.dev/pkg/ast"
	"src.esval.dev/pkg/ast/astbuild"
	"src.esval.dev/pkg/eval"
	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
)

func TestDeclarativeEnv_Uninitialized(t *testing.T) {
	r := New(Options{})
	env := NewDeclarativeEnv(r.GlobalEnv())
	env.CreateMutableBinding("x", false)

	_, err := env.GetBindingValue("x", false)
	if kind, ok := thrownKind(err); !ok || kind != errs.ReferenceError {
		t.Errorf("reading uninitialized binding: got %v, want ReferenceError", err)
	}
	err = env.SetMutableBinding("x", vals.Number(1), false)
	if kind, ok := thrownKind(err); !ok || kind != errs.ReferenceError {
		t.Errorf("assigning uninitialized binding: got %v, want ReferenceError", err)
	}

	env.InitializeBinding("x", vals.Number(1))
	if err := env.SetMutableBinding("x", vals.Number(2), true); err != nil {
		t.Errorf("assigning initialized binding: %v", err)
	}
	if v, _ := env.GetBindingValue("x", true); v != vals.Number(2) {
		t.Errorf("x = %s, want 2", vals.Repr(v))
	}
}

func TestDeclarativeEnv_Immutable(t *testing.T) {
	r := New(Options{})
	env := NewDeclarativeEnv(r.GlobalEnv())
	env.CreateImmutableBinding("strict", true)
	env.InitializeBinding("strict", vals.Number(1))
	env.CreateImmutableBinding("sloppy", false)
	env.InitializeBinding("sloppy", vals.Number(1))

	err := env.SetMutableBinding("strict", vals.Number(2), false)
	if kind, ok := thrownKind(err); !ok || kind != errs.TypeError {
		t.Errorf("assigning strict immutable binding: got %v, want TypeError", err)
	}
	// Ignored in sloppy code, an error in strict code.
	if err := env.SetMutableBinding("sloppy", vals.Number(2), false); err != nil {
		t.Errorf("sloppy assignment to sloppy immutable binding: %v", err)
	}
	if v, _ := env.GetBindingValue("sloppy", false); v != vals.Number(1) {
		t.Errorf("sloppy = %s, want 1", vals.Repr(v))
	}
	err = env.SetMutableBinding("sloppy", vals.Number(2), true)
	if kind, ok := thrownKind(err); !ok || kind != errs.TypeError {
		t.Errorf("strict assignment to sloppy immutable binding: got %v, want TypeError", err)
	}
}

func TestDeclarativeEnv_DeleteBinding(t *testing.T) {
	r := New(Options{})
	env := NewDeclarativeEnv(r.GlobalEnv())
	env.CreateMutableBinding("kept", false)
	env.CreateMutableBinding("deletable", true)
	if ok, _ := env.DeleteBinding("kept"); ok {
		t.Errorf("deleted a non-deletable binding")
	}
	if ok, _ := env.DeleteBinding("deletable"); !ok {
		t.Errorf("cannot delete a deletable binding")
	}
	if has, _ := env.HasBinding("deletable"); has {
		t.Errorf("binding still exists after deletion")
	}
}

func TestObjectEnv(t *testing.T) {
	r := New(Options{})
	obj := r.NewObjectWithProto(r.ObjectPrototype)
	obj.defineOrdinary(vals.String("a"), vals.DataDescriptor(vals.Number(1), true, true, true))
	env := NewObjectEnv(obj, true, r.GlobalEnv())

	if has, _ := env.HasBinding("a"); !has {
		t.Errorf("HasBinding(a) = false")
	}
	// Inherited properties are bindings too.
	if has, _ := env.HasBinding("hasOwnProperty"); !has {
		t.Errorf("HasBinding(hasOwnProperty) = false")
	}
	if env.WithBaseObject() != vals.Value(obj) {
		t.Errorf("WithBaseObject() is not the object")
	}
	if v, _ := env.GetBindingValue("missing", false); v != (vals.Undefined{}) {
		t.Errorf("sloppy read of missing binding = %s, want undefined", vals.Repr(v))
	}
	if _, err := env.GetBindingValue("missing", true); err == nil {
		t.Errorf("strict read of missing binding succeeded")
	}
	if NewObjectEnv(obj, false, r.GlobalEnv()).WithBaseObject() != (vals.Undefined{}) {
		t.Errorf("WithBaseObject() of a non-with environment is not undefined")
	}
}

func TestGlobalEnv_DeclarativeShadowsGlobalObject(t *testing.T) {
	r := New(Options{})
	r.DefineGlobal("x", vals.String("property"))
	r.GlobalEnv().Declarative().Define("x", vals.String("lexical"))

	v, err := r.GlobalEnv().GetBindingValue("x", false)
	if err != nil || v != vals.String("lexical") {
		t.Errorf("x = %s, %v; want lexical", vals.Repr(v), err)
	}
	if ok, _ := r.GlobalEnv().DeleteBinding("undefined"); ok {
		t.Errorf("deleted the undefined binding")
	}
}

func TestContext_ResolvesThroughEnvironments(t *testing.T) {
	r := New(Options{})
	outer := NewDeclarativeEnv(r.GlobalEnv())
	outer.Define("a", vals.Number(1))
	inner := NewDeclarativeEnv(outer)
	inner.Define("b", vals.Number(2))
	inner.CreateImmutableBinding("c", true)
	ctx := r.NewContext(true, nil).WithEnv(inner)

	c := eval.NewEvaler().Eval(eval.Source{}, astbuild.Bin(ast.OpAdd, astbuild.Id("a"), astbuild.Id("b")), ctx)
	if c.Kind != eval.Normal || c.Value != vals.Number(3) {
		t.Errorf("a + b: got %s, want 3", c.Error())
	}
	c = eval.NewEvaler().Eval(eval.Source{}, astbuild.Id("c"), ctx)
	if kind, ok := thrownKind(c.Err()); !ok || kind != errs.ReferenceError {
		t.Errorf("reading c: got %s, want ReferenceError", c.Error())
	}
	c = eval.NewEvaler().Eval(eval.Source{}, astbuild.Typeof(astbuild.Id("c")), ctx)
	if c.Kind != eval.Throw {
		t.Errorf("typeof c: got %s, want a throw", c.Error())
	}
	c = eval.NewEvaler().Eval(eval.Source{}, astbuild.Set(astbuild.Id("a"), astbuild.Num(5)), ctx)
	if v, _ := outer.GetBindingValue("a", true); c.Kind != eval.Normal || v != vals.Number(5) {
		t.Errorf("a = 5: got %s, a = %s", c.Error(), vals.Repr(v))
	}
}

package eval

import (
	"errors"

	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
)

// Operand is the result of evaluating an expression before GetValue: either a
// *Reference or a plain value made with ValueOperand.
type Operand interface {
	isOperand()
}

type valueOperand struct{ v vals.Value }

func (valueOperand) isOperand() {}

// ValueOperand wraps a value as an Operand.
func ValueOperand(v vals.Value) Operand { return valueOperand{v} }

// Reference is a resolved name binding: either a property of a base value, a
// binding of an environment record, or unresolvable. It is never a value.
type Reference struct {
	// Exactly one of base and env is set, or neither for an unresolvable
	// reference.
	base      vals.Value
	env       EnvRecord
	name      vals.PropertyKey
	strict    bool
	thisValue vals.Value
}

func (*Reference) isOperand() {}

// NewPropertyReference returns a reference to a property of a base value.
func NewPropertyReference(base vals.Value, name vals.PropertyKey, strict bool) *Reference {
	return &Reference{base: base, name: name, strict: strict}
}

// NewEnvReference returns a reference to a binding of an environment record.
func NewEnvReference(env EnvRecord, name string, strict bool) *Reference {
	return &Reference{env: env, name: vals.String(name), strict: strict}
}

// NewUnresolvableReference returns a reference to a name that is not bound.
func NewUnresolvableReference(name string, strict bool) *Reference {
	return &Reference{name: vals.String(name), strict: strict}
}

// WithThisValue returns a copy of a property reference with an explicit this
// value, distinct from its base.
func (r *Reference) WithThisValue(this vals.Value) *Reference {
	r2 := *r
	r2.thisValue = this
	return &r2
}

// IsPropertyReference reports whether the base of the reference is a value.
func (r *Reference) IsPropertyReference() bool { return r.base != nil }

// IsUnresolvable reports whether the reference has no base.
func (r *Reference) IsUnresolvable() bool { return r.base == nil && r.env == nil }

// Base returns the base value of a property reference, or nil.
func (r *Reference) Base() vals.Value { return r.base }

// Env returns the base environment record of a binding reference, or nil.
func (r *Reference) Env() EnvRecord { return r.env }

// Name returns the referenced name.
func (r *Reference) Name() vals.PropertyKey { return r.name }

// Strict reports whether the reference was created in strict mode code.
func (r *Reference) Strict() bool { return r.strict }

func (r *Reference) bindingName() string {
	return string(r.name.(vals.String))
}

var errNotEnvReference = errors.New("initializing a reference that is not an environment reference")

// GetThisValue returns the this value of a property reference.
func GetThisValue(r *Reference) vals.Value {
	if r.thisValue != nil {
		return r.thisValue
	}
	return r.base
}

// GetValue returns the value of an operand. A plain value is returned
// unchanged.
func GetValue(ctx Context, op Operand) (vals.Value, error) {
	return getValue(ctx.Realm(), op)
}

func getValue(r Realm, op Operand) (vals.Value, error) {
	ref, ok := op.(*Reference)
	if !ok {
		return op.(valueOperand).v, nil
	}
	switch {
	case ref.IsUnresolvable():
		return nil, ThrowError(r, errs.ReferenceError, errs.NotDefined(ref.bindingName()))
	case ref.IsPropertyReference():
		obj, err := ToObject(r, ref.base)
		if err != nil {
			return nil, err
		}
		return obj.Get(ref.name, GetThisValue(ref))
	default:
		return ref.env.GetBindingValue(ref.bindingName(), ref.strict)
	}
}

// PutValue stores a value through a reference. It is a ReferenceError if the
// operand is not a reference.
func PutValue(ctx Context, op Operand, w vals.Value) error {
	return putValue(ctx.Realm(), op, w)
}

func putValue(r Realm, op Operand, w vals.Value) error {
	ref, ok := op.(*Reference)
	if !ok {
		return ThrowError(r, errs.ReferenceError, errs.NotAssignable)
	}
	switch {
	case ref.IsUnresolvable():
		if ref.strict {
			return ThrowError(r, errs.ReferenceError, errs.NotDefined(ref.bindingName()))
		}
		_, err := r.GlobalObject().Set(ref.name, w, r.GlobalObject())
		return err
	case ref.IsPropertyReference():
		obj, err := ToObject(r, ref.base)
		if err != nil {
			return err
		}
		ok, err := obj.Set(ref.name, w, GetThisValue(ref))
		if err != nil {
			return err
		}
		if !ok && ref.strict {
			return ThrowError(r, errs.TypeError,
				errs.CannotSetProperty(vals.KeyString(ref.name), vals.Repr(ref.base)))
		}
		return nil
	default:
		return ref.env.SetMutableBinding(ref.bindingName(), w, ref.strict)
	}
}

// InitializeReferencedBinding initializes the binding of an environment
// reference. Initialization differs from assignment in that it is allowed on a
// binding that has not been initialized yet.
func InitializeReferencedBinding(ref *Reference, w vals.Value) error {
	if ref.env == nil {
		return &Completion{Kind: Fatal, Reason: errNotEnvReference}
	}
	return ref.env.InitializeBinding(ref.bindingName(), w)
}

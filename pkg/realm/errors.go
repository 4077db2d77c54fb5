package realm

import (
	"src.esval.dev/pkg/eval"
	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
)

// Error is a native error object.
type Error struct {
	Object
	kind errs.Kind
}

// NewError implements eval.Realm.
func (r *Realm) NewError(kind errs.Kind, msg string) vals.Object {
	return r.newError(kind, r.errorPrototypes[kind], msg)
}

func (r *Realm) newError(kind errs.Kind, proto vals.Object, msg string) *Error {
	e := &Error{kind: kind}
	e.init(r, e, proto, kind.String())
	if msg != "" {
		e.defineBuiltin(vals.String("message"), vals.String(msg))
	}
	return e
}

// Kind returns the kind of the error.
func (e *Error) Kind() errs.Kind { return e.kind }

// Message returns the message of the error, or "" if it has no own message
// data property.
func (e *Error) Message() string {
	if s, ok := e.dataValue(vals.String("message")).(vals.String); ok {
		return string(s)
	}
	return ""
}

// Native returns the error as a Go error value.
func (e *Error) Native() errs.Native {
	return errs.Native{Kind: e.kind, Message: e.Message()}
}

// Repr shows the error as "Kind: message".
func (e *Error) Repr() string { return e.Native().Error() }

func (r *Realm) initErrors() {
	for k := errs.Error; k <= errs.URIError; k++ {
		kind := k
		var protoProto vals.Object = r.ObjectPrototype
		if kind != errs.Error {
			protoProto = r.errorPrototypes[errs.Error]
		}
		proto := r.NewObjectWithProto(protoProto)
		proto.defineBuiltin(vals.String("name"), vals.String(kind.String()))
		proto.defineBuiltin(vals.String("message"), vals.String(""))
		r.errorPrototypes[kind] = proto
		ctor := r.NewConstructor(kind.String(), 1, proto,
			func(this vals.Value, args []vals.Value, newTarget vals.Object) (vals.Value, error) {
				p, err := r.prototypeFromConstructor(newTarget, r.errorPrototypes[kind])
				if err != nil {
					return nil, err
				}
				e := r.newError(kind, p, "")
				if msg := arg(args, 0); !isUndefined(msg) {
					s, err := eval.ToString(r, msg)
					if err != nil {
						return nil, err
					}
					e.defineBuiltin(vals.String("message"), vals.String(s))
				}
				return e, nil
			})
		r.defineGlobal(kind.String(), ctor)
	}
	r.errorPrototypes[errs.Error].defineBuiltin(vals.String("toString"),
		r.NewFunction("toString", 0, r.errorToString))
}

func (r *Realm) errorToString(this vals.Value, _ []vals.Value, _ vals.Object) (vals.Value, error) {
	obj, ok := this.(vals.Object)
	if !ok {
		return nil, eval.ThrowError(r, errs.TypeError, "Error.prototype.toString called on a non-object")
	}
	name, err := stringProperty(r, obj, "name", "Error")
	if err != nil {
		return nil, err
	}
	msg, err := stringProperty(r, obj, "message", "")
	if err != nil {
		return nil, err
	}
	switch {
	case msg == "":
		return vals.String(name), nil
	case name == "":
		return vals.String(msg), nil
	}
	return vals.String(name + ": " + msg), nil
}

func stringProperty(r *Realm, obj vals.Object, key, fallback string) (string, error) {
	v, err := obj.Get(vals.String(key), obj)
	if err != nil {
		return "", err
	}
	if isUndefined(v) {
		return fallback, nil
	}
	return eval.ToString(r, v)
}

// prototypeFromConstructor returns the prototype property of newTarget if it
// is an object, and fallback otherwise, including for ordinary calls.
func (r *Realm) prototypeFromConstructor(newTarget vals.Object, fallback vals.Object) (vals.Object, error) {
	if newTarget == nil {
		return fallback, nil
	}
	p, err := newTarget.Get(vals.String("prototype"), newTarget)
	if err != nil {
		return nil, err
	}
	if p, ok := p.(vals.Object); ok {
		return p, nil
	}
	return fallback, nil
}

// Package errs defines the kinds of errors the evaluator throws and the
// messages it throws them with.
//
// The evaluator does not construct error objects itself: it asks the host to
// create one of the given kind with the given message, and throws the result.
package errs

import "fmt"

// Kind is the kind of a native error. Its String method returns the name of
// the corresponding constructor.
type Kind int

// Kinds of native errors.
const (
	Error Kind = iota
	TypeError
	ReferenceError
	RangeError
	SyntaxError
	EvalError
	URIError
)

var kindNames = [...]string{
	Error:          "Error",
	TypeError:      "TypeError",
	ReferenceError: "ReferenceError",
	RangeError:     "RangeError",
	SyntaxError:    "SyntaxError",
	EvalError:      "EvalError",
	URIError:       "URIError",
}

func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the Kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Native is a native error as a Go value: a kind and a message. It is what a
// host returns to describe a guest error before it becomes an error object,
// and what tests match thrown error objects against.
type Native struct {
	Kind    Kind
	Message string
}

func (e Native) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Message
}

// Messages used by the evaluator.

// NotDefined is the message of the ReferenceError for an unresolvable read.
func NotDefined(name string) string { return name + " is not defined" }

// NotAssignable is the message of the ReferenceError for assigning to a value
// that is not a reference.
const NotAssignable = "invalid assignment target: value is not assignable"

// NotAFunction is the message of the TypeError for calling a non-callable.
func NotAFunction(what string) string { return what + " is not a function" }

// NotAConstructor is the message of the TypeError for constructing a value
// that cannot be constructed.
func NotAConstructor(what string) string { return what + " is not a constructor" }

// NotIterable is the message of the TypeError for iterating a value without a
// callable @@iterator.
func NotIterable(what string) string { return what + " is not iterable" }

// CannotReadProperty is the message of the TypeError for member access on
// undefined or null.
func CannotReadProperty(key, base string) string {
	return fmt.Sprintf("cannot read properties of %s (reading '%s')", base, key)
}

// CannotSetProperty is the message of the TypeError for a failed strict-mode
// assignment to a property.
func CannotSetProperty(key, base string) string {
	return fmt.Sprintf("cannot assign to property '%s' of %s", key, base)
}

// CannotDeleteProperty is the message of the TypeError for a failed
// strict-mode delete.
func CannotDeleteProperty(key string) string {
	return fmt.Sprintf("cannot delete property '%s'", key)
}

// RightHandSideNotObject is the message of the TypeError for a non-object right
// operand of in or instanceof.
func RightHandSideNotObject(op, what string) string {
	return fmt.Sprintf("right-hand side of '%s' is not an object: %s", op, what)
}

// Other fixed messages.
const (
	CannotConvertToObject        = "cannot convert undefined or null to object"
	CannotConvertSymbolToString  = "cannot convert a Symbol value to a string"
	CannotConvertSymbolToNumber  = "cannot convert a Symbol value to a number"
	CannotConvertToPrimitive     = "cannot convert object to primitive value"
	CannotDestructure            = "cannot destructure undefined or null"
	IteratorResultNotObject      = "iterator result is not an object"
	IteratorNotObject            = "result of the Symbol.iterator method is not an object"
	PrototypeNotObject           = "function has non-object prototype in instanceof check"
	RightHandSideNotCallable     = "right-hand side of 'instanceof' is not callable"
	StrictDeleteOfUnqualifiedRef = "delete of an unqualified identifier in strict mode"
)

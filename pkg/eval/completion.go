package eval

import (
	"errors"
	"fmt"
	"strings"

	"src.esval.dev/pkg/ast"
	"src.esval.dev/pkg/diag"
	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
)

// CompletionKind is the kind of a Completion.
type CompletionKind uint8

// Kinds of completions. Normal, Throw, Return, Break and Continue are the
// completion types of the guest language; the evaluator itself only produces
// Normal and Throw. Interrupt and Fatal are host conditions that travel on the
// same channel but can never be caught by guest code.
const (
	Normal CompletionKind = iota
	Throw
	Return
	Break
	Continue
	// Interrupt is produced when the budget check of the context fails.
	Interrupt
	// Fatal is produced for host failures, such as exceeding the maximum
	// nesting depth or a collaborator returning an error that is not a
	// completion.
	Fatal
)

var completionKindNames = [...]string{
	Normal: "normal", Throw: "throw", Return: "return", Break: "break",
	Continue: "continue", Interrupt: "interrupt", Fatal: "fatal",
}

func (k CompletionKind) String() string {
	if int(k) < len(completionKindNames) {
		return completionKindNames[k]
	}
	return fmt.Sprintf("CompletionKind(%d)", int(k))
}

// Completion is the result of an evaluation.
//
// Inside the evaluator, and in the object model, an abrupt completion travels
// as a non-nil error of type *Completion. Functions of the public API return
// a Completion value, whose Kind must be checked before Value is used.
type Completion struct {
	Kind CompletionKind
	// Value is the produced or thrown value. It is nil when the completion
	// carries no value (empty).
	Value vals.Value
	// Target is the label of a Break or Continue.
	Target string
	// Reason is the host error behind an Interrupt or Fatal completion.
	Reason error
	// Origin is where the completion was first observed by the evaluator. It
	// is set at most once.
	Origin *diag.Context
}

// NormalCompletion returns a Normal completion with the given value.
func NormalCompletion(v vals.Value) Completion {
	return Completion{Kind: Normal, Value: v}
}

// ThrowValue returns an abrupt Throw completion, as an error, carrying v.
func ThrowValue(v vals.Value) error {
	return &Completion{Kind: Throw, Value: v}
}

// ThrowError asks the realm for a native error object and returns a Throw
// completion carrying it.
func ThrowError(r Realm, kind errs.Kind, msg string) error {
	return ThrowValue(r.NewError(kind, msg))
}

// ErrInterrupted is the reason of an Interrupt completion caused by an
// interrupt request, such as SIGINT.
var ErrInterrupted = errors.New("interrupted")

// ErrTooDeep is the reason of the Fatal completion produced when the nesting
// depth exceeds the limit of the Evaler.
var ErrTooDeep = errors.New("maximum expression nesting depth exceeded")

// IsAbrupt reports whether the completion is not Normal.
func (c *Completion) IsAbrupt() bool { return c.Kind != Normal }

// Err returns nil for a Normal completion, and the completion as an error
// otherwise.
func (c Completion) Err() error {
	if c.Kind == Normal {
		return nil
	}
	return &c
}

// Error returns a one-line description of the completion.
func (c *Completion) Error() string {
	switch c.Kind {
	case Throw:
		return "uncaught " + vals.Repr(c.Value)
	case Interrupt, Fatal:
		if c.Reason == nil {
			return c.Kind.String()
		}
		return c.Kind.String() + ": " + c.Reason.Error()
	case Break, Continue:
		if c.Target != "" {
			return c.Kind.String() + " " + c.Target
		}
	}
	return c.Kind.String() + " completion"
}

// Unwrap returns the host reason of the completion.
func (c *Completion) Unwrap() error { return c.Reason }

// Show shows the completion with its origin.
func (c *Completion) Show(indent string) string {
	var sb strings.Builder
	switch c.Kind {
	case Throw:
		sb.WriteString("Uncaught " + diag.Message(vals.Repr(c.Value)))
	default:
		sb.WriteString(diag.Message(c.Error()))
	}
	if c.Origin != nil {
		sb.WriteString("\n" + c.Origin.ShowCompact(indent))
	}
	return sb.String()
}

// Enrich returns the completion with its origin set to n, when it is abrupt
// and has no origin yet. The kind and value are never altered. The node is
// described by its byte range only; Frames enrich with the full source.
func Enrich(c Completion, n ast.Node) Completion {
	if c.Kind != Normal && c.Origin == nil && n != nil {
		c.Origin = diag.NewContext(anonymousSource, "", n)
	}
	return c
}

// AsCompletion returns the Completion corresponding to an error returned by
// the evaluator or the object model. A nil error corresponds to a Normal
// completion with the given value, and an error that is not a *Completion to a
// Fatal completion.
func AsCompletion(v vals.Value, err error) Completion {
	if err == nil {
		return NormalCompletion(v)
	}
	var c *Completion
	if errors.As(err, &c) {
		return *c
	}
	return Completion{Kind: Fatal, Reason: err}
}

// Reason returns the Reason of err if it is a *Completion, and err itself
// otherwise.
func Reason(err error) error {
	if c, ok := err.(*Completion); ok {
		return c.Reason
	}
	return err
}

// Thrown returns the thrown value if err is a Throw completion.
func Thrown(err error) (vals.Value, bool) {
	if c, ok := err.(*Completion); ok && c.Kind == Throw {
		return c.Value, true
	}
	return nil, false
}

// IsHostAbrupt reports whether err is an Interrupt or Fatal completion. Such
// completions must not run guest code while unwinding.
func IsHostAbrupt(err error) bool {
	c, ok := err.(*Completion)
	return ok && (c.Kind == Interrupt || c.Kind == Fatal)
}

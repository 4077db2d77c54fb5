// Package evaltest provides a framework for testing the evaluation of
// expressions.
//
// The entry point for the framework is the Test function, which accepts a
// *testing.T and any number of test cases. Test cases are constructed using
// the That function, followed by method calls that add additional
// information to it.
//
// Example:
//
//	Test(t,
//		That(Bin("+", Num(1), Str("2"))).Evaluates("12"),
//		That(Call(Num(1))).Throws(ErrorOfKind(errs.TypeError)))
//
// Each case is evaluated in a fresh realm. If some setup is needed, use
// WithSetup or the TestWithSetup function.
package evaltest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"src.esval.dev/pkg/ast"
	"src.esval.dev/pkg/eval"
	"src.esval.dev/pkg/eval/vals"
	"src.esval.dev/pkg/realm"
)

// Case is a test case that can be used in Test.
type Case struct {
	node     ast.Node
	strict   bool
	maxSteps int
	setup    func(r *realm.Realm)
	verify   func(t *testing.T, r *realm.Realm)
	want     result
}

type result struct {
	kind eval.CompletionKind
	// Matches the produced value of a Normal completion, or the thrown value
	// of a Throw completion. Nil matches anything.
	value any
	// Matches the reason of an Interrupt or Fatal completion with errors.Is.
	// Nil matches anything.
	reason error
}

// That returns a new Case that evaluates the given node.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that 1+2 evaluates to 3 reads:
//
//	That(Bin("+", Num(1), Num(2))).Evaluates(3)
func That(n ast.Node) Case {
	return Case{node: n}
}

// Strict returns an altered Case that is evaluated as strict mode code.
func (c Case) Strict() Case {
	c.strict = true
	return c
}

// WithSetup returns an altered Case whose realm is passed to f before the
// node is evaluated.
func (c Case) WithSetup(f func(*realm.Realm)) Case {
	c.setup = f
	return c
}

// WithMaxSteps returns an altered Case evaluated with a step limit.
func (c Case) WithMaxSteps(n int) Case {
	c.maxSteps = n
	return c
}

// Passes returns an altered Case that runs an additional verification
// function after the evaluation.
func (c Case) Passes(f func(t *testing.T, r *realm.Realm)) Case {
	c.verify = f
	return c
}

// Evaluates returns an altered Case that requires the node to evaluate
// normally to a value matching v. See Match for how values are matched.
func (c Case) Evaluates(v any) Case {
	c.want = result{kind: eval.Normal, value: v}
	return c
}

// Throws returns an altered Case that requires the evaluation to throw a value
// matching v. An errs.Native matches an error object with the same kind and
// message.
func (c Case) Throws(v any) Case {
	c.want = result{kind: eval.Throw, value: v}
	return c
}

// Interrupts returns an altered Case that requires the evaluation to be
// interrupted with the given reason. A nil reason matches any reason.
func (c Case) Interrupts(reason error) Case {
	c.want = result{kind: eval.Interrupt, reason: reason}
	return c
}

// IsFatal returns an altered Case that requires the evaluation to fail with a
// Fatal completion with the given reason. A nil reason matches any reason.
func (c Case) IsFatal(reason error) Case {
	c.want = result{kind: eval.Fatal, reason: reason}
	return c
}

// Test runs test cases. Each case is evaluated in a new realm.
func Test(t *testing.T, tests ...Case) {
	t.Helper()
	TestWithSetup(t, func(*realm.Realm) {}, tests...)
}

// TestWithSetup runs test cases. Each case is evaluated in a new realm, which
// is passed to the setup function first.
func TestWithSetup(t *testing.T, setup func(*realm.Realm), tests ...Case) {
	t.Helper()
	for _, tc := range tests {
		t.Run(ast.Format(tc.node), func(t *testing.T) {
			t.Helper()
			r := realm.New(realm.Options{})
			setup(r)
			if tc.setup != nil {
				tc.setup(r)
			}
			got := Eval(r, tc.node, tc.strict, tc.maxSteps)
			if tc.verify != nil {
				tc.verify(t, r)
			}
			if !matchCompletion(tc.want, got) {
				t.Errorf("got %s", describeCompletion(got))
				t.Errorf("want %s", tc.want)
			}
		})
	}
}

// Eval evaluates a node at the top level of a realm, with a step limit if
// maxSteps is positive.
func Eval(r *realm.Realm, n ast.Node, strict bool, maxSteps int) eval.Completion {
	budget := realm.NewBudget(context.Background(), maxSteps, nil)
	return r.Evaler().Eval(eval.Source{Name: "[test]"}, n, r.NewContext(strict, budget))
}

func matchCompletion(want result, got eval.Completion) bool {
	if want.kind != got.Kind {
		return false
	}
	switch got.Kind {
	case eval.Normal, eval.Throw:
		return want.value == nil || Match(got.Value, want.value)
	default:
		return want.reason == nil || errors.Is(got.Reason, want.reason)
	}
}

func describeCompletion(c eval.Completion) string {
	switch c.Kind {
	case eval.Normal:
		return "normal completion with " + vals.Repr(c.Value)
	case eval.Throw:
		return "throw completion with " + vals.Repr(c.Value)
	}
	return c.Error()
}

func (r result) String() string {
	switch r.kind {
	case eval.Normal, eval.Throw:
		if r.value == nil {
			return fmt.Sprintf("%s completion with any value", r.kind)
		}
		return fmt.Sprintf("%s completion with %s", r.kind, describe(r.value))
	}
	if r.reason == nil {
		return fmt.Sprintf("%s completion", r.kind)
	}
	return fmt.Sprintf("%s completion with reason %v", r.kind, r.reason)
}

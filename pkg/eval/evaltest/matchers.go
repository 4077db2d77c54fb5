package evaltest

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
	"src.esval.dev/pkg/realm"
)

// ValueMatcher is a value that can be passed to Case.Evaluates and
// Case.Throws, and has its own matching semantics.
type ValueMatcher interface {
	matchValue(vals.Value) bool
	String() string
}

// Match reports whether got matches want:
//
//   - A ValueMatcher matches with its own semantics.
//
//   - An errs.Native matches an error object of the same kind and message.
//
//   - A Go int, float64, string or bool is converted to a Number, String or
//     Bool and compared with SameValue, as is any vals.Value.
//
//   - Go nil matches anything.
func Match(got vals.Value, want any) bool {
	switch want := want.(type) {
	case nil:
		return true
	case ValueMatcher:
		return want.matchValue(got)
	case errs.Native:
		e, ok := got.(*realm.Error)
		return ok && e.Native() == want
	}
	v, ok := toValue(want)
	return ok && vals.SameValue(got, v)
}

func toValue(x any) (vals.Value, bool) {
	switch x := x.(type) {
	case vals.Value:
		return x, true
	case int:
		return vals.Number(x), true
	case float64:
		return vals.Number(x), true
	case string:
		return vals.String(x), true
	case bool:
		return vals.Bool(x), true
	}
	return nil, false
}

func describe(want any) string {
	switch want := want.(type) {
	case ValueMatcher:
		return want.String()
	case errs.Native:
		return want.Error()
	}
	if v, ok := toValue(want); ok {
		return vals.Repr(v)
	}
	return fmt.Sprintf("(invalid matcher %#v)", want)
}

// Anything matches any value.
var Anything ValueMatcher = anything{}

type anything struct{}

func (anything) matchValue(vals.Value) bool { return true }
func (anything) String() string             { return "<anything>" }

// Approximately returns a ValueMatcher that matches a Number within a relative
// error of 1e-9 of f.
func Approximately(f float64) ValueMatcher { return approximately{f} }

type approximately struct{ want float64 }

func (a approximately) matchValue(v vals.Value) bool {
	got, ok := v.(vals.Number)
	if !ok {
		return false
	}
	return math.Abs(float64(got)-a.want) <= 1e-9*math.Max(1, math.Abs(a.want))
}

func (a approximately) String() string { return fmt.Sprintf("<approximately %v>", a.want) }

// StringMatching returns a ValueMatcher that matches any String that matches
// the given regular expression. The pattern must match the entire string; use
// ".*" at both ends for substring matching.
func StringMatching(p string) ValueMatcher {
	return stringMatching{regexp.MustCompile("^(?:" + p + ")$")}
}

type stringMatching struct{ pattern *regexp.Regexp }

func (m stringMatching) matchValue(v vals.Value) bool {
	s, ok := v.(vals.String)
	return ok && m.pattern.MatchString(string(s))
}

func (m stringMatching) String() string { return "<string matching " + m.pattern.String() + ">" }

// Absent matches an absent element in ArrayOf.
var Absent ValueMatcher = absent{}

type absent struct{}

func (absent) matchValue(v vals.Value) bool { return v == nil }
func (absent) String() string               { return "<absent>" }

// ArrayOf returns a ValueMatcher that matches an array with the given
// elements. Each element is matched with Match; use Absent for an absent
// element.
func ArrayOf(elems ...any) ValueMatcher { return arrayOf(elems) }

type arrayOf []any

func (m arrayOf) matchValue(v vals.Value) bool {
	a, ok := v.(*realm.Array)
	if !ok || int(a.Len()) != len(m) {
		return false
	}
	for i, want := range m {
		desc, err := a.GetOwnProperty(vals.IndexKey(i))
		if err != nil {
			return false
		}
		if desc == nil {
			if want != Absent {
				return false
			}
			continue
		}
		if want == Absent || !Match(desc.Value, want) {
			return false
		}
	}
	return true
}

func (m arrayOf) String() string {
	parts := make([]string, len(m))
	for i, e := range m {
		parts[i] = describe(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ObjectWith returns a ValueMatcher that matches an object whose own
// enumerable string-keyed data properties are exactly the given ones, in the
// given order. The arguments alternate between keys and values.
func ObjectWith(kvs ...any) ValueMatcher {
	if len(kvs)%2 != 0 {
		panic("ObjectWith needs an even number of arguments")
	}
	m := objectWith{}
	for i := 0; i < len(kvs); i += 2 {
		m.keys = append(m.keys, kvs[i].(string))
		m.values = append(m.values, kvs[i+1])
	}
	return m
}

type objectWith struct {
	keys   []string
	values []any
}

func (m objectWith) matchValue(v vals.Value) bool {
	obj, ok := v.(vals.Object)
	if !ok {
		return false
	}
	keys, err := obj.OwnPropertyKeys()
	if err != nil {
		return false
	}
	i := 0
	for _, key := range keys {
		s, ok := key.(vals.String)
		if !ok {
			continue
		}
		desc, err := obj.GetOwnProperty(key)
		if err != nil || desc == nil || !desc.Enumerable {
			continue
		}
		if i >= len(m.keys) || string(s) != m.keys[i] ||
			!desc.IsData() || !Match(desc.Value, m.values[i]) {
			return false
		}
		i++
	}
	return i == len(m.keys)
}

func (m objectWith) String() string {
	parts := make([]string, len(m.keys))
	for i, k := range m.keys {
		parts[i] = k + ": " + describe(m.values[i])
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// ErrorOfKind returns a ValueMatcher that matches an error object of the given
// kind with any message.
func ErrorOfKind(k errs.Kind) ValueMatcher { return errorOfKind{k} }

type errorOfKind struct{ kind errs.Kind }

func (m errorOfKind) matchValue(v vals.Value) bool {
	e, ok := v.(*realm.Error)
	return ok && e.Kind() == m.kind
}

func (m errorOfKind) String() string { return "<any " + m.kind.String() + ">" }

// FunctionNamed returns a ValueMatcher that matches a callable object whose
// name property is the given string.
func FunctionNamed(name string) ValueMatcher { return functionNamed{name} }

type functionNamed struct{ name string }

func (m functionNamed) matchValue(v vals.Value) bool {
	f, ok := v.(vals.Callable)
	if !ok {
		return false
	}
	got, err := f.Get(vals.String("name"), f)
	return err == nil && got == vals.String(m.name)
}

func (m functionNamed) String() string { return "<function named " + m.name + ">" }

package vals

import (
	"strconv"
	"strings"
)

// Reprer wraps the Repr method.
type Reprer interface {
	// Repr returns a string that represents the object for diagnostics and
	// interactive display.
	Repr() string
}

// Repr returns a representation of a value for display. Primitives are shown
// as literals; objects that implement Reprer show themselves, and other
// objects are shown as "[object]".
func Repr(v Value) string {
	switch v := v.(type) {
	case nil:
		return "<empty>"
	case Undefined:
		return "undefined"
	case Null:
		return "null"
	case Bool:
		if v {
			return "true"
		}
		return "false"
	case Number:
		return NumberToString(float64(v))
	case String:
		return strconv.Quote(string(v))
	case *Symbol:
		return SymbolDescriptiveString(v)
	case Reprer:
		return v.Repr()
	default:
		return "[object]"
	}
}

// SymbolDescriptiveString returns "Symbol(description)".
func SymbolDescriptiveString(s *Symbol) string {
	return "Symbol(" + s.Description + ")"
}

// ReprList returns the representations of values separated by ", ".
func ReprList(vs []Value) string {
	var sb strings.Builder
	for i, v := range vs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(Repr(v))
	}
	return sb.String()
}

package vals

import (
	"strconv"
	"unicode/utf16"
)

// CompareStrings compares two strings by UTF-16 code units, which is the
// order used by the relational operators. It returns -1, 0 or 1.
func CompareStrings(a, b string) int {
	ua, ub := utf16.Encode([]rune(a)), utf16.Encode([]rune(b))
	for i := 0; i < len(ua) && i < len(ub); i++ {
		switch {
		case ua[i] < ub[i]:
			return -1
		case ua[i] > ub[i]:
			return 1
		}
	}
	switch {
	case len(ua) < len(ub):
		return -1
	case len(ua) > len(ub):
		return 1
	}
	return 0
}

// KeyString returns the string form of a property key for diagnostics. Symbol
// keys are shown as "[description]", the form used for function names.
func KeyString(k PropertyKey) string {
	switch k := k.(type) {
	case String:
		return string(k)
	case *Symbol:
		if !k.HasDescription {
			return ""
		}
		return "[" + k.Description + "]"
	}
	return ""
}

// IndexKey returns the property key for an array index.
func IndexKey(i int) String {
	return String(strconv.Itoa(i))
}

// ArrayIndex reports whether k is a canonical array index, and returns it.
func ArrayIndex(k PropertyKey) (uint32, bool) {
	s, ok := k.(String)
	if !ok || s == "" || len(s) > 10 {
		return 0, false
	}
	if s[0] == '0' && len(s) > 1 {
		return 0, false
	}
	n, err := strconv.ParseUint(string(s), 10, 32)
	if err != nil || n == 1<<32-1 {
		return 0, false
	}
	return uint32(n), true
}

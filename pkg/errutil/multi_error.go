// Package errutil contains utilities for working with errors.
package errutil

import "strings"

// Multi combines multiple errors into one. Nil errors are dropped; if none is
// left, it returns nil, and if one is left, it returns that error. Otherwise
// the result shows all the messages, and errors.Is and errors.As see all of
// the errors. Results of Multi among the arguments are flattened.
func Multi(errs ...error) error {
	var nonNil []error
	for _, err := range errs {
		if multi, ok := err.(multiError); ok {
			nonNil = append(nonNil, multi...)
		} else if err != nil {
			nonNil = append(nonNil, err)
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return multiError(nonNil)
	}
}

type multiError []error

func (me multiError) Error() string {
	var sb strings.Builder
	sb.WriteString("multiple errors: ")
	for i, e := range me {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

func (me multiError) Unwrap() []error { return me }

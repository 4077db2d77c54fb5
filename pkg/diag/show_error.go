package diag

import (
	"fmt"
	"io"
)

// Shower is implemented by errors and completions that know how to present
// themselves with source context.
type Shower interface {
	// Show returns a multi-line presentation. Lines after the first are
	// prefixed with indent.
	Show(indent string) string
}

// ShowError writes err to w. Showers are presented with Show; other errors
// have their message wrapped in the message markers.
func ShowError(w io.Writer, err error) {
	if shower, ok := err.(Shower); ok {
		fmt.Fprintln(w, shower.Show(""))
	} else {
		fmt.Fprintln(w, Message(err.Error()))
	}
}

// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import "errors"

// ErrNoMatchingEntry is the error returned when a history query completes
// with no result.
var ErrNoMatchingEntry = errors.New("no matching history entry")

// Store is an interface satisfied by the storage service.
type Store interface {
	NextEntrySeq() (int, error)
	AddEntry(e Entry) (int, error)
	DelEntry(seq int) error
	Entry(seq int) (Entry, error)
	EntriesWithSeq(from, upto int) ([]Entry, error)
	LastEntry(namePrefix string) (Entry, error)
}

// Entry is an entry in the evaluation history.
type Entry struct {
	Seq int `yaml:"-"`
	// Name of the evaluated document, usually a file name.
	Name string `yaml:"name"`
	// Text of the evaluated document.
	Document string `yaml:"document"`
	// Kind of the completion, such as "normal" or "throw".
	Kind string `yaml:"kind"`
	// Result is the printed value of a normal completion, or the error
	// message of an abrupt one.
	Result string `yaml:"result"`
}

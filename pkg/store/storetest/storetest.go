// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.esval.dev/pkg/store/storedefs"
)

var entries = []storedefs.Entry{
	{Name: "a.json", Document: `{"type": "Literal", "value": 1}`, Kind: "normal", Result: "1"},
	{Name: "b.yaml", Document: "type: Identifier\nname: x\n", Kind: "throw",
		Result: "ReferenceError: x is not defined"},
	{Name: "a.json", Document: `{"type": "Literal", "value": 2}`, Kind: "normal", Result: "2"},
	{Name: "[stdin]", Document: "{}", Kind: "fatal", Result: "fatal: unsupported node"},
}

// TestHistory runs the history test suite against the given store.
func TestHistory(t *testing.T, store storedefs.Store) {
	startSeq, err := store.NextEntrySeq()
	if startSeq != 1 || err != nil {
		t.Errorf("store.NextEntrySeq() -> (%v, %v), want (1, nil)", startSeq, err)
	}

	for i, e := range entries {
		seq, err := store.AddEntry(e)
		if seq != startSeq+i || err != nil {
			t.Errorf("store.AddEntry(%v) -> (%v, %v), want (%v, nil)", e.Name, seq, err, startSeq+i)
		}
	}
	endSeq, err := store.NextEntrySeq()
	if want := startSeq + len(entries); endSeq != want || err != nil {
		t.Errorf("store.NextEntrySeq() -> (%v, %v), want (%v, nil)", endSeq, err, want)
	}

	want := make([]storedefs.Entry, len(entries))
	for i, e := range entries {
		e.Seq = startSeq + i
		want[i] = e
		got, err := store.Entry(e.Seq)
		if err != nil {
			t.Errorf("store.Entry(%v) -> error %v", e.Seq, err)
		} else if diff := cmp.Diff(e, got); diff != "" {
			t.Errorf("store.Entry(%v) (-want +got):\n%s", e.Seq, diff)
		}
	}

	got, err := store.EntriesWithSeq(startSeq+1, startSeq+3)
	if err != nil {
		t.Errorf("store.EntriesWithSeq -> error %v", err)
	}
	if diff := cmp.Diff(want[1:3], got); diff != "" {
		t.Errorf("store.EntriesWithSeq (-want +got):\n%s", diff)
	}

	last, err := store.LastEntry("a.")
	if err != nil || last.Seq != startSeq+2 {
		t.Errorf("store.LastEntry(%q) -> (%v, %v), want seq %v", "a.", last, err, startSeq+2)
	}
	if _, err := store.LastEntry("c."); err != storedefs.ErrNoMatchingEntry {
		t.Errorf("store.LastEntry(%q) -> error %v, want ErrNoMatchingEntry", "c.", err)
	}

	if err := store.DelEntry(startSeq + 2); err != nil {
		t.Errorf("store.DelEntry -> error %v", err)
	}
	if _, err := store.Entry(startSeq + 2); err != storedefs.ErrNoMatchingEntry {
		t.Errorf("store.Entry of a deleted entry -> error %v, want ErrNoMatchingEntry", err)
	}
	last, err = store.LastEntry("a.")
	if err != nil || last.Seq != startSeq {
		t.Errorf("store.LastEntry after deletion -> (%v, %v), want seq %v", last, err, startSeq)
	}
}

// Entry returns a history entry with the given name and a trivial document.
func Entry(name string) storedefs.Entry {
	return storedefs.Entry{Name: name, Document: "{type: ThisExpression}", Kind: "normal", Result: "undefined"}
}

package errutil

import (
	"errors"
	"io"
	"os"
	"testing"
)

var (
	err1 = errors.New("error 1")
	err2 = errors.New("error 2")
	err3 = errors.New("error 3")
)

func TestMulti(t *testing.T) {
	if Multi() != nil {
		t.Errorf("Multi() != nil")
	}
	if Multi(nil, nil) != nil {
		t.Errorf("Multi(nil, nil) != nil")
	}
	if err := Multi(nil, err1); err != err1 {
		t.Errorf("Multi(nil, err1) = %v, want err1", err)
	}

	err := Multi(Multi(err1, nil, err2), err3)
	if want := "multiple errors: error 1; error 2; error 3"; err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
	for _, e := range []error{err1, err2, err3} {
		if !errors.Is(err, e) {
			t.Errorf("errors.Is(%v, %v) = false", err, e)
		}
	}
	if errors.Is(err, io.EOF) {
		t.Errorf("errors.Is(%v, io.EOF) = true", err)
	}

	var pathErr *os.PathError
	if !errors.As(Multi(err1, &os.PathError{Op: "open", Path: "x", Err: os.ErrNotExist}), &pathErr) {
		t.Errorf("errors.As did not find the *os.PathError")
	}
}

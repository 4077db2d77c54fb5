package store

import (
	"path/filepath"

	"src.esval.dev/pkg/must"
	"src.esval.dev/pkg/testutil"
)

// MustTempStore returns a Store backed by a file in a temporary directory. The
// store is closed when the test finishes.
func MustTempStore(c testutil.Cleanuper) DBStore {
	st := must.OK1(NewStore(filepath.Join(testutil.TempDir(c), "history.db")))
	c.Cleanup(func() { st.Close() })
	return st
}

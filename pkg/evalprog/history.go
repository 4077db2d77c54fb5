package evalprog

import (
	"fmt"
	"os"
	"strings"

	"src.esval.dev/pkg/store/storedefs"
	"src.esval.dev/pkg/sys"
)

// showHistory lists the last n history entries, oldest first. On a terminal,
// lines are cut to its width.
func showHistory(out *os.File, st storedefs.Store, n int) error {
	next, err := st.NextEntrySeq()
	if err != nil {
		return err
	}
	from := next - n
	if from < 1 {
		from = 1
	}
	entries, err := st.EntriesWithSeq(from, next)
	if err != nil {
		return err
	}
	width := -1
	if sys.IsATTY(out.Fd()) {
		_, width = sys.WinSize(out)
	}
	for _, e := range entries {
		line := fmt.Sprintf("%4d  %s  %s  %s", e.Seq, e.Name, e.Kind, firstLine(e.Result))
		if r := []rune(line); width > 0 && len(r) > width {
			line = string(r[:width])
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}

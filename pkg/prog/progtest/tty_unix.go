//go:build unix

package progtest

import (
	"io"
	"os"
	"strings"

	"github.com/creack/pty"
	"src.esval.dev/pkg/must"
	"src.esval.dev/pkg/prog"
)

// RunWithTTYStderr runs a Program with stderr connected to a pseudo-terminal
// and an empty stdin. It returns the exit code and the output written to
// stdout and stderr. Newlines written to the terminal come back as "\r\n".
func RunWithTTYStderr(p prog.Program, args []string) (exit int, stdout, stderr string) {
	ptmx, tty := must.OK2(pty.Open())
	defer ptmx.Close()
	ttyOutput := make(chan string, 1)
	go func() {
		var sb strings.Builder
		// Reading the master side fails once the slave side is closed.
		io.Copy(&sb, ptmx)
		ttyOutput <- sb.String()
	}()

	r0, w0 := must.Pipe()
	w0.Close()
	defer r0.Close()
	w1, get1 := capture()

	exit = prog.Run([3]*os.File{r0, w1, tty}, args, p)
	stdout = get1()
	tty.Close()
	return exit, stdout, <-ttyOutput
}

//go:build unix

package sys

import (
	"os"
	"testing"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
	"src.esval.dev/pkg/must"
)

func TestIsATTY(t *testing.T) {
	r, w := must.Pipe()
	defer r.Close()
	defer w.Close()
	if IsATTY(r.Fd()) {
		t.Errorf("IsATTY(pipe) = true")
	}

	ptmx, tty := must.OK2(pty.Open())
	defer ptmx.Close()
	defer tty.Close()
	if !IsATTY(tty.Fd()) {
		t.Errorf("IsATTY(pty) = false")
	}
}

func TestWinSize(t *testing.T) {
	ptmx, tty := must.OK2(pty.Open())
	defer ptmx.Close()
	defer tty.Close()
	must.OK(pty.Setsize(ptmx, &pty.Winsize{Rows: 30, Cols: 100}))
	if row, col := WinSize(tty); row != 30 || col != 100 {
		t.Errorf("WinSize(pty) = (%v, %v), want (30, 100)", row, col)
	}

	f := must.OK1(os.CreateTemp(t.TempDir(), "file"))
	defer f.Close()
	if row, col := WinSize(f); row != -1 || col != -1 {
		t.Errorf("WinSize(file) = (%v, %v), want (-1, -1)", row, col)
	}
}

func TestInterruptSignals(t *testing.T) {
	sigs := InterruptSignals()
	if len(sigs) != 2 || sigs[0] != unix.SIGINT || sigs[1] != unix.SIGQUIT {
		t.Errorf("InterruptSignals() = %v", sigs)
	}
}

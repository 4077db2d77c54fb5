//go:build unix

package realm

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestListenInterrupts(t *testing.T) {
	interrupts, stop := ListenInterrupts()
	defer stop()

	select {
	case <-interrupts:
		t.Fatal("interrupted before any signal")
	default:
	}
	if err := unix.Kill(unix.Getpid(), unix.SIGINT); err != nil {
		t.Skip("cannot send SIGINT to myself:", err)
	}
	select {
	case <-interrupts:
	case <-time.After(time.Second):
		t.Fatal("not interrupted within 1s after SIGINT")
	}
}

package realm

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"src.esval.dev/pkg/eval"
	"src.esval.dev/pkg/logutil"
	"src.esval.dev/pkg/sys"
)

var logger = logutil.GetLogger("[realm] ")

// ErrStepLimit is the reason of the Interrupt completion produced when an
// evaluation runs out of steps.
var ErrStepLimit = errors.New("step limit exceeded")

// Budget limits an evaluation. It is consulted on entry to every node; each
// check counts as one step.
type Budget struct {
	maxSteps   int
	steps      int
	ctx        context.Context
	interrupts <-chan struct{}
}

// NewBudget returns a budget. A maxSteps of zero means no step limit. The
// evaluation is also stopped when ctx is done or interrupts is closed; both
// may be nil.
func NewBudget(ctx context.Context, maxSteps int, interrupts <-chan struct{}) *Budget {
	return &Budget{maxSteps: maxSteps, ctx: ctx, interrupts: interrupts}
}

// Steps returns the number of steps taken so far.
func (b *Budget) Steps() int { return b.steps }

// Check takes one step and reports why the evaluation must stop, if it must.
func (b *Budget) Check() error {
	b.steps++
	if b.maxSteps > 0 && b.steps > b.maxSteps {
		return ErrStepLimit
	}
	if b.ctx != nil {
		if err := b.ctx.Err(); err != nil {
			return err
		}
	}
	select {
	case <-b.interrupts:
		return eval.ErrInterrupted
	default:
		return nil
	}
}

// ListenInterrupts starts to listen to the signals of sys.InterruptSignals. It
// returns a channel that is closed when one has been received, and a function
// that stops listening.
func ListenInterrupts() (<-chan struct{}, func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, sys.InterruptSignals()...)
	// Closed after receiving the first signal.
	intCh := make(chan struct{})
	// Closed by the cleanup function to ask the relaying goroutine to stop.
	stop := make(chan struct{})
	// Closed by the relaying goroutine once it has stopped.
	stopped := make(chan struct{})

	go func() {
		closed := false
	loop:
		for {
			select {
			case sig := <-sigCh:
				if !closed {
					logger.Printf("received %v, interrupting evaluation", sig)
					close(intCh)
					closed = true
				}
			case <-stop:
				break loop
			}
		}
		signal.Stop(sigCh)
		close(stopped)
	}()

	return intCh, func() {
		close(stop)
		<-stopped
	}
}

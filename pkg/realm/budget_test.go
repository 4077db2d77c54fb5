package realm

import (
	"context"
	"errors"
	"testing"

	"src.esval.dev/pkg/eval"
)

func TestBudget_StepLimit(t *testing.T) {
	b := NewBudget(context.Background(), 3, nil)
	for i := 0; i < 3; i++ {
		if err := b.Check(); err != nil {
			t.Fatalf("step %d: %v", i+1, err)
		}
	}
	if err := b.Check(); err != ErrStepLimit {
		t.Errorf("step 4: got %v, want ErrStepLimit", err)
	}
	if b.Steps() != 4 {
		t.Errorf("Steps() = %d, want 4", b.Steps())
	}
}

func TestBudget_Unlimited(t *testing.T) {
	b := NewBudget(nil, 0, nil)
	for i := 0; i < 10000; i++ {
		if err := b.Check(); err != nil {
			t.Fatalf("step %d: %v", i+1, err)
		}
	}
}

func TestBudget_Context(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b := NewBudget(ctx, 0, nil)
	if err := b.Check(); err != nil {
		t.Fatalf("before cancellation: %v", err)
	}
	cancel()
	if err := b.Check(); !errors.Is(err, context.Canceled) {
		t.Errorf("after cancellation: got %v, want context.Canceled", err)
	}
}

func TestBudget_Interrupts(t *testing.T) {
	interrupts := make(chan struct{})
	b := NewBudget(nil, 0, interrupts)
	if err := b.Check(); err != nil {
		t.Fatalf("before interrupt: %v", err)
	}
	close(interrupts)
	if err := b.Check(); err != eval.ErrInterrupted {
		t.Errorf("after interrupt: got %v, want ErrInterrupted", err)
	}
}

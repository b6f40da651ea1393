package completion

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestResolveWinsOnce(t *testing.T) {
	t.Parallel()

	h := New[int]()
	if _, _, ok := h.Result(); ok {
		t.Fatal("fresh handle should be pending")
	}

	if !h.Resolve(42) {
		t.Fatal("first Resolve should win")
	}
	if h.Resolve(43) {
		t.Error("second Resolve should be a no-op")
	}
	if h.Reject(errors.New("late")) {
		t.Error("Reject after Resolve should be a no-op")
	}

	v, err, ok := h.Result()
	if !ok || err != nil || v != 42 {
		t.Errorf("Result() = (%d, %v, %t), want (42, nil, true)", v, err, ok)
	}
}

func TestRejectWinsOnce(t *testing.T) {
	t.Parallel()

	h := New[int]()
	want := errors.New("boom")
	if !h.Reject(want) {
		t.Fatal("first Reject should win")
	}
	if h.Resolve(1) {
		t.Error("Resolve after Reject should be a no-op")
	}

	_, err, ok := h.Result()
	if !ok || !errors.Is(err, want) {
		t.Errorf("Result() err = %v, want %v", err, want)
	}
}

func TestAwaitBlocksUntilSettled(t *testing.T) {
	t.Parallel()

	h := New[string]()
	go func() {
		time.Sleep(10 * time.Millisecond)
		h.Resolve("done")
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := h.Await(ctx)
	if err != nil {
		t.Fatalf("Await: %v", err)
	}
	if v != "done" {
		t.Errorf("Await = %q", v)
	}

	select {
	case <-h.Done():
	default:
		t.Error("Done channel should be closed")
	}
}

func TestAwaitHonorsContext(t *testing.T) {
	t.Parallel()

	h := New[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := h.Await(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Await err = %v, want deadline exceeded", err)
	}
}

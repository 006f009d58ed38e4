package circuit

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestNewBreaker(t *testing.T) {
	breaker := NewBreaker("test", DefaultConfig(), nil)

	if breaker.State() != StateClosed {
		t.Errorf("Expected initial state CLOSED, got %s", breaker.State().String())
	}

	if breaker.IsOpen() {
		t.Error("Expected breaker to not be open initially")
	}
}

func TestBreaker_TransitionToOpen(t *testing.T) {
	config := Config{
		Threshold:        3,
		Timeout:          1 * time.Second,
		SuccessThreshold: 2,
		MaxHalfOpen:      2,
	}
	breaker := NewBreaker("test", config, zap.NewNop())

	for i := 0; i < 3; i++ {
		breaker.Record(errors.New("test error"))
	}

	if breaker.State() != StateOpen {
		t.Errorf("Expected state OPEN after %d failures, got %s", config.Threshold, breaker.State().String())
	}

	if err := breaker.Allow(); err != ErrCircuitOpen {
		t.Errorf("Expected ErrCircuitOpen, got %v", err)
	}
}

func TestBreaker_TransitionToHalfOpen(t *testing.T) {
	config := Config{
		Threshold:        2,
		Timeout:          100 * time.Millisecond,
		SuccessThreshold: 2,
		MaxHalfOpen:      2,
	}
	breaker := NewBreaker("test", config, zap.NewNop())

	breaker.Record(errors.New("error 1"))
	breaker.Record(errors.New("error 2"))

	if breaker.State() != StateOpen {
		t.Fatalf("Expected state OPEN, got %s", breaker.State().String())
	}

	time.Sleep(150 * time.Millisecond)

	if err := breaker.Allow(); err != nil {
		t.Errorf("Expected Allow() to succeed after timeout, got %v", err)
	}

	if breaker.State() != StateHalfOpen {
		t.Errorf("Expected state HALF_OPEN, got %s", breaker.State().String())
	}
}

func TestBreaker_ClosesAfterSuccesses(t *testing.T) {
	config := Config{
		Threshold:        2,
		Timeout:          50 * time.Millisecond,
		SuccessThreshold: 2,
		MaxHalfOpen:      5,
	}
	breaker := NewBreaker("test", config, zap.NewNop())

	breaker.Record(errors.New("error 1"))
	breaker.Record(errors.New("error 2"))
	time.Sleep(80 * time.Millisecond)

	for i := 0; i < 2; i++ {
		if err := breaker.Execute(func() error { return nil }); err != nil {
			t.Fatalf("Expected probe %d to pass, got %v", i, err)
		}
	}

	if breaker.State() != StateClosed {
		t.Errorf("Expected state CLOSED after successful probes, got %s", breaker.State().String())
	}
}

func TestBreaker_ReopensOnHalfOpenFailure(t *testing.T) {
	config := Config{
		Threshold:        1,
		Timeout:          50 * time.Millisecond,
		SuccessThreshold: 2,
		MaxHalfOpen:      2,
	}
	breaker := NewBreaker("test", config, zap.NewNop())

	breaker.Record(errors.New("error"))
	time.Sleep(80 * time.Millisecond)

	_ = breaker.Execute(func() error { return errors.New("still failing") })

	if breaker.State() != StateOpen {
		t.Errorf("Expected state OPEN after half-open failure, got %s", breaker.State().String())
	}
}

func TestBreaker_ExecutePassesThrough(t *testing.T) {
	breaker := NewBreaker("test", DefaultConfig(), zap.NewNop())

	called := false
	err := breaker.Execute(func() error {
		called = true
		return nil
	})

	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if !called {
		t.Error("Expected wrapped function to be called")
	}
}

package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewScheduler_InvalidSpec(t *testing.T) {
	_, err := NewScheduler(context.Background(), "every morning", time.UTC, func(context.Context) error { return nil })
	if err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
}

func TestNewScheduler_DefaultSpecInExchangeTime(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	s, err := NewScheduler(context.Background(), "", loc, func(context.Context) error { return nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// entries only get a Next time once the cron is running
	s.Start()
	defer s.Stop()

	next := s.Next().In(loc)
	if next.IsZero() {
		t.Fatal("expected a next activation")
	}
	if next.Hour() != 10 || next.Minute() != 1 || next.Second() != 0 {
		t.Errorf("next run at %s, want 10:01:00", next.Format("15:04:05"))
	}
	if wd := next.Weekday(); wd == time.Saturday || wd == time.Sunday {
		t.Errorf("next run on %s, want a weekday", wd)
	}
}

type ctxKey struct{}

func TestScheduler_RunPassesContextAndSwallowsErrors(t *testing.T) {
	called := make(chan context.Context, 1)
	job := func(ctx context.Context) error {
		called <- ctx
		return errors.New("smtp down")
	}

	ctx := context.WithValue(context.Background(), ctxKey{}, "run")
	s, err := NewScheduler(ctx, "0 1 10 * * 1-5", time.UTC, job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.run(job)

	select {
	case got := <-called:
		if got.Value(ctxKey{}) != "run" {
			t.Error("job did not receive the scheduler context")
		}
	default:
		t.Fatal("job was not called")
	}
}

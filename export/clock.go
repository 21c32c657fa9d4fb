package export

import (
	"context"
	"time"
)

// Clock abstracts time so the polling loop can be tested without waiting on
// the wall clock.
type Clock interface {
	Now() time.Time
	// Sleep pauses for d, or returns early with the context's error.
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func NewRealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

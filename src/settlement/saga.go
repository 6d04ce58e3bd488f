package settlement

import (
	"context"
	"errors"
	"fmt"
	"log"
	"triphub/src/monitoring"
)

// Step is one unit of a saga. Rollback, when set, undoes a completed Run
// and is invoked only if a later step fails.
type Step[T any] struct {
	Name     string
	Run      func(ctx context.Context, state T) error
	Rollback func(ctx context.Context, state T) error
}

type Saga[T any] struct {
	steps []Step[T]
}

func NewSaga[T any](steps ...Step[T]) *Saga[T] {
	return &Saga[T]{steps: steps}
}

// CompensationError reports a failed step whose rollback failed too. It
// unwraps to the rollback failure only, so callers do not mistake it for a
// cleanly compensated step.
type CompensationError struct {
	Cause    error
	Rollback error
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("%s (compensation failed: %s)", e.Cause.Error(), e.Rollback.Error())
}

func (e *CompensationError) Unwrap() error {
	return e.Rollback
}

// Execute runs the steps in order. When a step fails the rollbacks of the
// steps that already completed run in reverse order and the step error is
// returned.
func (s *Saga[T]) Execute(ctx context.Context, state T) error {
	for i, step := range s.steps {
		err := step.Run(ctx, state)
		if err == nil {
			continue
		}
		stepErr := fmt.Errorf("%s: %w", step.Name, err)
		if rbErr := s.rollback(ctx, state, i); rbErr != nil {
			return &CompensationError{Cause: stepErr, Rollback: rbErr}
		}
		return stepErr
	}
	return nil
}

func (s *Saga[T]) rollback(ctx context.Context, state T, failed int) error {
	var errs []error
	// compensation must run even when the request context is gone
	ctx = context.WithoutCancel(ctx)
	for i := failed - 1; i >= 0; i-- {
		step := s.steps[i]
		if step.Rollback == nil {
			continue
		}
		if err := step.Rollback(ctx, state); err != nil {
			log.Printf("[Saga] rollback of %s failed: %s\n", step.Name, err.Error())
			monitoring.SettlementCompensations.WithLabelValues(step.Name, "error").Inc()
			errs = append(errs, fmt.Errorf("rollback %s: %w", step.Name, err))
			continue
		}
		monitoring.SettlementCompensations.WithLabelValues(step.Name, "ok").Inc()
	}
	return errors.Join(errs...)
}

package settlement

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trace struct {
	calls []string
}

func recordStep(name string, fail bool, rollbackErr error) Step[*trace] {
	return Step[*trace]{
		Name: name,
		Run: func(_ context.Context, tr *trace) error {
			tr.calls = append(tr.calls, "run:"+name)
			if fail {
				return errors.New(name + " failed")
			}
			return nil
		},
		Rollback: func(_ context.Context, tr *trace) error {
			tr.calls = append(tr.calls, "rollback:"+name)
			return rollbackErr
		},
	}
}

func TestSagaRollsBackInReverse(t *testing.T) {
	tr := &trace{}
	saga := NewSaga(recordStep("a", false, nil), recordStep("b", false, nil), recordStep("c", true, nil))

	err := saga.Execute(context.Background(), tr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "c: c failed")
	assert.Equal(t, []string{"run:a", "run:b", "run:c", "rollback:b", "rollback:a"}, tr.calls)
}

func TestSagaSkipsMissingRollback(t *testing.T) {
	tr := &trace{}
	plain := Step[*trace]{Name: "plain", Run: func(context.Context, *trace) error { return nil }}
	saga := NewSaga(recordStep("a", false, nil), plain, recordStep("c", true, nil))

	require.Error(t, saga.Execute(context.Background(), tr))
	assert.Equal(t, []string{"run:a", "run:c", "rollback:a"}, tr.calls)
}

func TestSagaReportsFailedCompensation(t *testing.T) {
	tr := &trace{}
	rbErr := errors.New("rollback broke")
	saga := NewSaga(recordStep("a", false, rbErr), recordStep("b", true, nil))

	err := saga.Execute(context.Background(), tr)
	var compErr *CompensationError
	require.ErrorAs(t, err, &compErr)
	assert.ErrorIs(t, err, rbErr)
}

func TestSagaSuccess(t *testing.T) {
	tr := &trace{}
	saga := NewSaga(recordStep("a", false, nil), recordStep("b", false, nil))

	require.NoError(t, saga.Execute(context.Background(), tr))
	assert.Equal(t, []string{"run:a", "run:b"}, tr.calls)
}

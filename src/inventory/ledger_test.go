package inventory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"triphub/src/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCounter struct {
	mu  sync.Mutex
	qty map[uint]int
	err error
}

func (m *memCounter) DecrementIfAvailable(_ context.Context, id uint, qty int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if m.qty[id] < qty {
		return false, nil
	}
	m.qty[id] -= qty
	return true, nil
}

func (m *memCounter) Increment(_ context.Context, id uint, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.qty[id] += qty
	return nil
}

func TestReserve(t *testing.T) {
	counter := &memCounter{qty: map[uint]int{1: 2}}
	ledger := NewLedger(counter)

	ok, err := ledger.Reserve(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, counter.qty[1])

	ok, err = ledger.Reserve(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, counter.qty[1])
}

func TestReserveRejectsNonPositive(t *testing.T) {
	ledger := NewLedger(&memCounter{qty: map[uint]int{1: 5}})

	_, err := ledger.Reserve(context.Background(), 1, 0)
	assert.ErrorIs(t, err, types.ErrValidation)
	_, err = ledger.Reserve(context.Background(), 1, -1)
	assert.ErrorIs(t, err, types.ErrValidation)
	assert.ErrorIs(t, ledger.Release(context.Background(), 1, 0), types.ErrValidation)
}

func TestReserveWrapsStoreErrors(t *testing.T) {
	boom := errors.New("boom")
	ledger := NewLedger(&memCounter{qty: map[uint]int{}, err: boom})

	_, err := ledger.Reserve(context.Background(), 1, 1)
	assert.ErrorIs(t, err, boom)
}

func TestConcurrentReserveNeverGoesNegative(t *testing.T) {
	counter := &memCounter{qty: map[uint]int{1: 10}}
	ledger := NewLedger(counter)

	var wg sync.WaitGroup
	var reserved atomic.Int64
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := ledger.Reserve(context.Background(), 1, 3)
			if err == nil && ok {
				reserved.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(3), reserved.Load())
	assert.Equal(t, 1, counter.qty[1])
}

package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCategoryWarmer struct {
	mock.Mock
}

func (m *MockCategoryWarmer) WarmCache(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type countingWarmer struct {
	calls atomic.Int32
}

func (w *countingWarmer) WarmCache(ctx context.Context) error {
	w.calls.Add(1)
	return nil
}

func TestNewScheduler_RegistersWarmup(t *testing.T) {
	s, err := NewScheduler(&MockCategoryWarmer{}, time.Hour, zap.NewNop())
	require.NoError(t, err)
	defer s.Stop()

	assert.Equal(t, []string{"category-cache-warmup"}, s.JobNames())
}

func TestWarmCategories_PassesDeadline(t *testing.T) {
	warmer := &MockCategoryWarmer{}
	warmer.On("WarmCache", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})).Return(nil).Once()

	s := &Scheduler{warmer: warmer, log: zap.NewNop()}
	s.warmCategories()
	warmer.AssertExpectations(t)
}

func TestWarmCategories_ToleratesFailure(t *testing.T) {
	warmer := &MockCategoryWarmer{}
	warmer.On("WarmCache", mock.Anything).Return(errors.New("redis: connection refused")).Once()

	s := &Scheduler{warmer: warmer, log: zap.NewNop()}
	assert.NotPanics(t, s.warmCategories)
	warmer.AssertExpectations(t)
}

func TestScheduler_RunsImmediatelyOnStart(t *testing.T) {
	warmer := &countingWarmer{}
	s, err := NewScheduler(warmer, time.Hour, zap.NewNop())
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return warmer.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gonotes/internal/notes/config"
)

var errRedisDown = errors.New("redis down")

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockCache) Close() error {
	return m.Called().Error(0)
}

func testBreaker(clock *fakeClock) *CircuitBreaker {
	return newCircuitBreaker("test", BreakerConfig{
		ErrorThreshold:   2,
		SuccessThreshold: 2,
		Timeout:          10 * time.Second,
	}, clock.now)
}

func TestCircuitBreaker_Transitions(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Unix(0, 0)}
	cb := testBreaker(clock)

	fail := func() error { return errRedisDown }
	ok := func() error { return nil }

	assert.ErrorIs(t, cb.Execute(ctx, fail), errRedisDown)
	assert.Equal(t, StateClosed, cb.State())

	assert.ErrorIs(t, cb.Execute(ctx, fail), errRedisDown)
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(ctx, func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)

	clock.advance(10 * time.Second)
	require.NoError(t, cb.Execute(ctx, ok))
	assert.Equal(t, StateHalfOpen, cb.State())

	require.NoError(t, cb.Execute(ctx, ok))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Unix(0, 0)}
	cb := testBreaker(clock)

	for range 2 {
		_ = cb.Execute(ctx, func() error { return errRedisDown })
	}
	require.Equal(t, StateOpen, cb.State())

	clock.advance(11 * time.Second)
	assert.ErrorIs(t, cb.Execute(ctx, func() error { return errRedisDown }), errRedisDown)
	assert.Equal(t, StateOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(ctx, func() error { return nil }), ErrCircuitOpen)
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	ctx := context.Background()
	cb := testBreaker(&fakeClock{t: time.Unix(0, 0)})

	_ = cb.Execute(ctx, func() error { return errRedisDown })
	_ = cb.Execute(ctx, func() error { return nil })
	_ = cb.Execute(ctx, func() error { return errRedisDown })

	assert.Equal(t, StateClosed, cb.State())
}

func TestBreakerConfigFromRedis(t *testing.T) {
	got := BreakerConfigFromRedis(&config.RedisConfig{
		BreakerErrorThreshold:   0,
		BreakerSuccessThreshold: 3,
		BreakerTimeout:          time.Second,
	})

	assert.Equal(t, BreakerConfig{ErrorThreshold: 1, SuccessThreshold: 3, Timeout: time.Second}, got)
}

func TestGuardedCache_StaleKeyAfterFailedDelete(t *testing.T) {
	ctx := context.Background()
	next := &mockCache{}
	guarded := NewGuardedCache(next, testBreaker(&fakeClock{t: time.Unix(0, 0)}))

	next.On("Delete", ctx, "k").Return(errRedisDown).Once()
	require.ErrorIs(t, guarded.Delete(ctx, "k"), errRedisDown)

	// Get повторяет удаление вместо чтения старого значения.
	next.On("Delete", ctx, "k").Return(nil).Once()
	value, err := guarded.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, value)

	next.On("Get", ctx, "k").Return("fresh", nil).Once()
	value, err = guarded.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "fresh", value)

	next.AssertExpectations(t)
}

func TestGuardedCache_SetClearsStale(t *testing.T) {
	ctx := context.Background()
	next := &mockCache{}
	guarded := NewGuardedCache(next, testBreaker(&fakeClock{t: time.Unix(0, 0)}))

	next.On("Delete", ctx, "k").Return(errRedisDown).Once()
	_ = guarded.Delete(ctx, "k")

	next.On("Set", ctx, "k", "v", time.Duration(0)).Return(nil).Once()
	require.NoError(t, guarded.Set(ctx, "k", "v", 0))

	next.On("Get", ctx, "k").Return("v", nil).Once()
	value, err := guarded.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)

	next.AssertExpectations(t)
}

func TestGuardedCache_OpenBreakerSkipsRedis(t *testing.T) {
	ctx := context.Background()
	next := &mockCache{}
	guarded := NewGuardedCache(next, testBreaker(&fakeClock{t: time.Unix(0, 0)}))

	next.On("Get", ctx, "k").Return("", errRedisDown).Twice()
	for range 2 {
		_, err := guarded.Get(ctx, "k")
		require.ErrorIs(t, err, errRedisDown)
	}

	_, err := guarded.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.ErrorIs(t, guarded.Set(ctx, "k", "v", 0), ErrCircuitOpen)

	next.On("Close").Return(nil).Once()
	require.NoError(t, guarded.Close())

	next.AssertExpectations(t)
}

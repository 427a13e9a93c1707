package browser

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openkraft/uikraft/internal/domain"
)

type fakeLauncher struct {
	launched atomic.Int32
	closed   atomic.Int32
	err      error
	hang     bool
}

func (f *fakeLauncher) launch(ctx context.Context, _ domain.BrowserConfig, _ *zap.Logger) (context.Context, context.CancelFunc, error) {
	if f.hang {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}
	if f.err != nil {
		return nil, nil, f.err
	}
	f.launched.Add(1)
	ctx, cancel := context.WithCancel(context.Background())
	return ctx, func() {
		f.closed.Add(1)
		cancel()
	}, nil
}

func newTestPool(l *fakeLauncher) *Pool {
	p := NewPool(domain.BrowserConfig{}, zap.NewNop())
	p.launch = l.launch
	return p
}

func TestPool_SharesOneBrowserAcrossAcquires(t *testing.T) {
	l := &fakeLauncher{}
	p := newTestPool(l)
	ctx := context.Background()

	_, err := p.Acquire(ctx)
	require.NoError(t, err)
	_, err = p.Acquire(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(1), l.launched.Load())
	assert.Equal(t, 2, p.RefCount())

	p.Release()
	assert.Equal(t, int32(0), l.closed.Load(), "still referenced")
	p.Release()
	assert.Equal(t, int32(1), l.closed.Load())
	assert.Equal(t, 0, p.RefCount())
}

func TestPool_HungLaunchHonoursAcquireContext(t *testing.T) {
	l := &fakeLauncher{hang: true}
	p := newTestPool(l)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := p.Acquire(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBrowserLaunch)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, p.RefCount())

	// the lock is free again once the hung start was abandoned
	l.hang = false
	_, err = p.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), l.launched.Load())
	p.Release()
}

func TestPool_RelaunchesAfterLastRelease(t *testing.T) {
	l := &fakeLauncher{}
	p := newTestPool(l)

	_, err := p.Acquire(context.Background())
	require.NoError(t, err)
	p.Release()
	_, err = p.Acquire(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), l.launched.Load())
}

func TestPool_RelaunchesDeadBrowser(t *testing.T) {
	l := &fakeLauncher{}
	p := newTestPool(l)

	_, err := p.Acquire(context.Background())
	require.NoError(t, err)
	p.cancel() // simulate a crash

	_, err = p.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), l.launched.Load())
}

func TestPool_ExtraReleaseIsHarmless(t *testing.T) {
	p := newTestPool(&fakeLauncher{})
	p.Release()
	assert.Equal(t, 0, p.RefCount())
}

func TestPool_CloseIgnoresReferences(t *testing.T) {
	l := &fakeLauncher{}
	p := newTestPool(l)
	_, err := p.Acquire(context.Background())
	require.NoError(t, err)

	p.Close()
	assert.Equal(t, int32(1), l.closed.Load())
	assert.Equal(t, 0, p.RefCount())
}

func TestPool_LaunchFailure(t *testing.T) {
	p := newTestPool(&fakeLauncher{err: errors.New("no chrome")})

	_, err := p.Acquire(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBrowserLaunch))
	assert.Contains(t, err.Error(), "no chrome")
	assert.Equal(t, 0, p.RefCount())
}

func TestPool_AcquireCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestPool(&fakeLauncher{}).Acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunParallel_IsolatesFailuresAndPanics(t *testing.T) {
	l := &fakeLauncher{}
	p := newTestPool(l)

	ok := func(name string) domain.Thunk {
		return func(context.Context) (*domain.ValidationResult, error) {
			return &domain.ValidationResult{Validator: name, Valid: true}, nil
		}
	}
	outcomes := p.RunParallel(context.Background(),
		ok("a11y"),
		func(context.Context) (*domain.ValidationResult, error) { return nil, errors.New("boom") },
		func(context.Context) (*domain.ValidationResult, error) { panic("kaboom") },
		func(context.Context) (*domain.ValidationResult, error) { return nil, nil },
		ok("tokens"),
	)

	require.Len(t, outcomes, 5)
	assert.Equal(t, "a11y", outcomes[0].Result.Validator)
	assert.EqualError(t, outcomes[1].Err, "boom")
	assert.Contains(t, outcomes[2].Err.Error(), "kaboom")
	assert.Error(t, outcomes[3].Err)
	assert.Equal(t, "tokens", outcomes[4].Result.Validator)

	assert.Equal(t, 0, p.RefCount())
	assert.Equal(t, int32(1), l.closed.Load())
}

func TestRunParallel_ThunksShareTheBatchBrowser(t *testing.T) {
	l := &fakeLauncher{}
	p := newTestPool(l)

	thunk := func(ctx context.Context) (*domain.ValidationResult, error) {
		if _, err := p.Acquire(ctx); err != nil {
			return nil, err
		}
		defer p.Release()
		return &domain.ValidationResult{Valid: true}, nil
	}
	outcomes := p.RunParallel(context.Background(), thunk, thunk, thunk)

	for _, o := range outcomes {
		require.NoError(t, o.Err)
	}
	assert.Equal(t, int32(1), l.launched.Load())
}

func TestRunParallel_LaunchFailureFailsEveryThunk(t *testing.T) {
	p := newTestPool(&fakeLauncher{err: errors.New("no chrome")})
	called := false
	outcomes := p.RunParallel(context.Background(), func(context.Context) (*domain.ValidationResult, error) {
		called = true
		return &domain.ValidationResult{}, nil
	})

	require.Len(t, outcomes, 1)
	assert.ErrorIs(t, outcomes[0].Err, domain.ErrBrowserLaunch)
	assert.False(t, called)
}

package shutdown_test

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/pkg/shutdown"
)

func TestRunExecutesAllHooks(t *testing.T) {
	var calls atomic.Int32

	hook := func(context.Context) error {
		calls.Add(1)
		return nil
	}
	failing := func(context.Context) error {
		calls.Add(1)
		return errors.New("close failed")
	}

	shutdown.Run(context.Background(), time.Second, hook, failing, hook)

	assert.Equal(t, int32(3), calls.Load())
}

func TestRunRespectsTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	slow := func(ctx context.Context) error {
		select {
		case <-release:
		case <-time.After(5 * time.Second):
		}
		return nil
	}

	start := time.Now()
	shutdown.Run(context.Background(), 50*time.Millisecond, slow)

	assert.Less(t, time.Since(start), time.Second)
}

func TestRunHookSeesDeadline(t *testing.T) {
	var hasDeadline atomic.Bool

	shutdown.Run(context.Background(), time.Second, func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		hasDeadline.Store(ok)
		return nil
	})

	assert.True(t, hasDeadline.Load())
}

func TestWaitExecutesHooksOnSignal(t *testing.T) {
	hookCalled := make(chan struct{})
	waitDone := make(chan struct{})

	go func() {
		defer close(waitDone)
		shutdown.Wait(context.Background(), time.Second, func(context.Context) error {
			close(hookCalled)
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)

	process, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, process.Signal(syscall.SIGTERM))

	select {
	case <-hookCalled:
	case <-time.After(2 * time.Second):
		t.Fatal("hook was not called")
	}

	select {
	case <-waitDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return")
	}
}

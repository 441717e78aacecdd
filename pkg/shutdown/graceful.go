// Package shutdown предоставляет корректное завершение приложения
// по сигналам SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"gonotes/pkg/logger"
)

// Hook освобождает один ресурс при завершении.
type Hook func(context.Context) error

// Wait блокируется до SIGINT/SIGTERM, затем выполняет хуки в пределах timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	sig := <-sigCh
	logger.Log(ctx).Info(ctx, "shutdown signal received", zap.String("signal", sig.String()))

	Run(ctx, timeout, hooks...)
}

// Run параллельно выполняет хуки и возвращается, когда все завершены
// или истек timeout. Ошибки хуков только логируются.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	log := logger.Log(ctx)

	hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var wgp sync.WaitGroup
	for i, hook := range hooks {
		wgp.Add(1)
		go func(idx int, fn Hook) {
			defer wgp.Done()
			if err := fn(hookCtx); err != nil {
				log.Error(hookCtx, "shutdown hook failed", zap.Int("hook", idx), zap.Error(err))
			}
		}(i, hook)
	}

	done := make(chan struct{})
	go func() {
		wgp.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		log.Warn(ctx, "shutdown timeout exceeded", zap.Duration("timeout", timeout))
	}
}

package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"gonotes/internal/notes/config"
	"gonotes/internal/notes/ports/cache"
	"gonotes/pkg/logger"
)

// CircuitState состояние circuit breaker.
type CircuitState int

// Состояния circuit breaker.
const (
	// StateClosed запросы проходят.
	StateClosed CircuitState = iota
	// StateOpen запросы отклоняются без обращения к Redis.
	StateOpen
	// StateHalfOpen пробные запросы после таймаута.
	StateHalfOpen
)

// Константы для логирования.
const (
	LogCircuitStateChange = "circuit breaker state changed"
	LogCircuitTrip        = "circuit breaker tripped"
	LogCircuitReset       = "circuit breaker reset"
	LogStaleKey           = "cache key marked stale"
)

// ErrCircuitOpen возвращается, пока breaker открыт.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// BreakerConfig настройки circuit breaker.
type BreakerConfig struct {
	// ErrorThreshold ошибок подряд до перехода в открытое состояние.
	ErrorThreshold int
	// SuccessThreshold успехов в полуоткрытом состоянии до закрытия.
	SuccessThreshold int
	// Timeout после которого открытый breaker пропускает пробный запрос.
	Timeout time.Duration
}

// BreakerConfigFromRedis извлекает настройки breaker из конфигурации Redis.
func BreakerConfigFromRedis(cfg *config.RedisConfig) BreakerConfig {
	return BreakerConfig{
		ErrorThreshold:   max(cfg.BreakerErrorThreshold, 1),
		SuccessThreshold: max(cfg.BreakerSuccessThreshold, 1),
		Timeout:          cfg.BreakerTimeout,
	}
}

// CircuitBreaker перестает обращаться к зависимости после серии ошибок.
type CircuitBreaker struct {
	name string
	cfg  BreakerConfig
	now  func() time.Time

	mu              sync.Mutex
	state           CircuitState
	failures        int
	successes       int
	lastStateChange time.Time
}

// NewCircuitBreaker создает закрытый breaker.
func NewCircuitBreaker(name string, cfg BreakerConfig) *CircuitBreaker {
	return newCircuitBreaker(name, cfg, time.Now)
}

func newCircuitBreaker(name string, cfg BreakerConfig, now func() time.Time) *CircuitBreaker {
	return &CircuitBreaker{
		name:            name,
		cfg:             cfg,
		now:             now,
		state:           StateClosed,
		lastStateChange: now(),
	}
}

// Execute вызывает fn, если breaker это допускает, и учитывает результат.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if !cb.allow(ctx) {
		return ErrCircuitOpen
	}

	err := fn()
	cb.record(ctx, err)
	return err
}

// State возвращает текущее состояние.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) allow(ctx context.Context) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if cb.now().Sub(cb.lastStateChange) < cb.cfg.Timeout {
			return false
		}
		cb.setState(ctx, StateHalfOpen)
		return true
	default:
		return true
	}
}

func (cb *CircuitBreaker) record(ctx context.Context, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		switch cb.state {
		case StateClosed:
			cb.failures++
			if cb.failures >= cb.cfg.ErrorThreshold {
				logger.Log(ctx).Warn(ctx, LogCircuitTrip,
					zap.String("circuit_breaker", cb.name),
					zap.Int("failures", cb.failures),
					zap.Error(err))
				cb.setState(ctx, StateOpen)
			}
		case StateHalfOpen:
			cb.setState(ctx, StateOpen)
		}
		return
	}

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.cfg.SuccessThreshold {
			logger.Log(ctx).Info(ctx, LogCircuitReset, zap.String("circuit_breaker", cb.name))
			cb.setState(ctx, StateClosed)
		}
	}
}

// setState вызывается под cb.mu.
func (cb *CircuitBreaker) setState(ctx context.Context, state CircuitState) {
	cb.state = state
	cb.lastStateChange = cb.now()
	cb.failures = 0
	cb.successes = 0
	logger.Log(ctx).Info(ctx, LogCircuitStateChange,
		zap.String("circuit_breaker", cb.name),
		zap.Int("new_state", int(state)))
}

// GuardedCache пропускает обращения к кэшу через circuit breaker.
// Ключ, удаление которого не удалось, считается устаревшим: пока его
// не удастся удалить или перезаписать, Get возвращает промах.
type GuardedCache struct {
	next cache.Cache
	cb   *CircuitBreaker

	mu    sync.Mutex
	stale map[string]struct{}
}

var _ cache.Cache = (*GuardedCache)(nil)

// NewGuardedCache оборачивает next.
func NewGuardedCache(next cache.Cache, cb *CircuitBreaker) *GuardedCache {
	return &GuardedCache{
		next:  next,
		cb:    cb,
		stale: make(map[string]struct{}),
	}
}

// Get возвращает значение. Для устаревшего ключа сначала повторяется удаление.
func (g *GuardedCache) Get(ctx context.Context, key string) (string, error) {
	if g.isStale(key) {
		if err := g.Delete(ctx, key); err != nil {
			return "", err
		}
		return "", nil
	}

	var value string
	err := g.cb.Execute(ctx, func() error {
		var err error
		value, err = g.next.Get(ctx, key)
		return err
	})
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set сохраняет значение. Успешная запись снимает отметку устаревания.
func (g *GuardedCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	err := g.cb.Execute(ctx, func() error {
		return g.next.Set(ctx, key, value, ttl)
	})
	if err != nil {
		return err
	}
	g.clearStale(key)
	return nil
}

// Delete удаляет значение, при неудаче помечает ключ устаревшим.
func (g *GuardedCache) Delete(ctx context.Context, key string) error {
	err := g.cb.Execute(ctx, func() error {
		return g.next.Delete(ctx, key)
	})
	if err != nil {
		g.markStale(ctx, key)
		return err
	}
	g.clearStale(key)
	return nil
}

// Close закрывает нижележащий кэш.
func (g *GuardedCache) Close() error {
	return g.next.Close()
}

func (g *GuardedCache) isStale(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.stale[key]
	return ok
}

func (g *GuardedCache) markStale(ctx context.Context, key string) {
	g.mu.Lock()
	g.stale[key] = struct{}{}
	g.mu.Unlock()
	logger.Log(ctx).Debug(ctx, LogStaleKey, zap.String("key", key))
}

func (g *GuardedCache) clearStale(key string) {
	g.mu.Lock()
	delete(g.stale, key)
	g.mu.Unlock()
}

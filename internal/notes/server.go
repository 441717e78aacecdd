// Package notes собирает сервис заметок из адаптеров и конфигурации.
package notes

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/internal/notes/adapters/cache"
	notesHTTP "gonotes/internal/notes/adapters/http"
	"gonotes/internal/notes/adapters/http/middleware"
	"gonotes/internal/notes/adapters/memory"
	"gonotes/internal/notes/adapters/metrics"
	"gonotes/internal/notes/app"
	"gonotes/internal/notes/config"
	"gonotes/internal/notes/domain/entities"
	portsCache "gonotes/internal/notes/ports/cache"
	"gonotes/pkg/logger"
	"gonotes/pkg/shutdown"
)

// Константы для сообщений сервиса.
const (
	LogInitRepo       = "initializing in-memory repository"
	LogInitCache      = "initializing redis list cache"
	LogInitMetrics    = "initializing metrics"
	LogInitHTTPServer = "initializing HTTP server"
	LogStartingHTTP   = "starting HTTP server"
	LogStartingMetric = "starting metrics server"
	LogStoppingHTTP   = "stopping HTTP server"
	LogStoppingMetric = "stopping metrics server"
	LogClosingCache   = "closing redis connection"

	ErrCreateRedisClient = "failed to create Redis client"
	ErrResetListCache    = "failed to reset notes list cache"
	ErrStartHTTPServer   = "failed to start HTTP server"
	ErrStartMetrics      = "failed to start metrics server"
)

// Server держит HTTP приложение и его зависимости.
type Server struct {
	cfg       *config.Config
	app       *fiber.App
	repo      *memory.NoteRepository
	listCache portsCache.Cache
	metrics   *metrics.Server
}

// NewServer создает хранилище с начальными заметками, опциональный кэш,
// опциональные метрики и маршруты.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	log := logger.Log(ctx)
	s := &Server{cfg: cfg}

	log.Info(ctx, LogInitRepo)
	s.repo = memory.NewNoteRepository(entities.DefaultNotes()...)

	if cfg.Redis.Enabled {
		log.Info(ctx, LogInitCache, zap.String("address", cfg.Redis.GetAddress()))
		redisCache, err := cache.NewRedisCache(ctx, &cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrCreateRedisClient, err)
		}
		// Снимок списка от предыдущего процесса не соответствует новому хранилищу.
		if err := redisCache.Delete(ctx, app.ListCacheKey); err != nil {
			_ = redisCache.Close()
			return nil, fmt.Errorf("%s: %w", ErrResetListCache, err)
		}

		breaker := cache.NewCircuitBreaker("redis", cache.BreakerConfigFromRedis(&cfg.Redis))
		s.listCache = cache.NewGuardedCache(redisCache, breaker)
	}

	var recorder middleware.Recorder
	if cfg.Metrics.Enabled {
		log.Info(ctx, LogInitMetrics)
		m := metrics.New(s.repo.Len)
		s.metrics = metrics.NewServer(&cfg.Metrics, m)
		recorder = m
	}

	log.Info(ctx, LogInitHTTPServer)
	s.app = fiber.New(fiber.Config{
		AppName:      "notes",
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	})

	notesHTTP.SetupRouter(s.app, app.NewNoteUseCase(s.repo, s.listCache), recorder)

	return s, nil
}

// App возвращает fiber приложение.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start запускает listener метрик (если включен) и HTTP сервер в фоне.
// Ошибки listener пишутся в журнал.
func (s *Server) Start(ctx context.Context) {
	log := logger.Log(ctx)

	if s.metrics != nil {
		log.Info(ctx, LogStartingMetric, zap.String("address", s.cfg.Metrics.GetAddress()))
		go func() {
			if err := s.metrics.Start(); err != nil {
				log.Error(ctx, ErrStartMetrics, zap.Error(err))
			}
		}()
	}

	log.Info(ctx, LogStartingHTTP, zap.String("address", s.cfg.HTTP.GetAddress()))
	go func() {
		if err := s.app.Listen(s.cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
		}
	}()
}

// ShutdownHooks возвращает хуки освобождения ресурсов для shutdown.Wait.
func (s *Server) ShutdownHooks() []shutdown.Hook {
	hooks := []shutdown.Hook{
		func(ctx context.Context) error {
			logger.Log(ctx).Info(ctx, LogStoppingHTTP)
			return s.app.ShutdownWithContext(ctx)
		},
	}

	if s.metrics != nil {
		hooks = append(hooks, func(ctx context.Context) error {
			logger.Log(ctx).Info(ctx, LogStoppingMetric)
			return s.metrics.Shutdown(ctx)
		})
	}

	if s.listCache != nil {
		hooks = append(hooks, func(ctx context.Context) error {
			logger.Log(ctx).Info(ctx, LogClosingCache)
			return s.listCache.Close()
		})
	}

	return hooks
}

package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
)

// Recorder принимает результат обработки запроса.
type Recorder interface {
	Observe(method, route string, status int, latency time.Duration)
}

// UnmatchedRoute метка маршрута для запросов, не нашедших обработчика.
const UnmatchedRoute = "unmatched"

// NewMetricsMiddleware передает в recorder метод, шаблон маршрута, статус и время.
func NewMetricsMiddleware(recorder Recorder) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()

		err := ctx.Next()

		route := ctx.Route().Path
		if unmatched, _ := ctx.Locals(LocalsUnmatched).(bool); unmatched {
			route = UnmatchedRoute
		}
		recorder.Observe(ctx.Method(), route, ctx.Response().StatusCode(), time.Since(start))

		return err
	}
}

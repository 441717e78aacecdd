package middleware

import (
	"github.com/gofiber/fiber/v3"

	"gonotes/pkg/logger"
)

// NewRequestIDMiddleware берет X-Request-ID из запроса или генерирует новый,
// кладет его в контекст запроса и возвращает в ответе.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}

		ctx.Set(HeaderRequestID, requestID)
		ctx.Locals(LocalsRequestContext, logger.NewRequestIDContext(ctx.Context(), requestID))

		return ctx.Next()
	}
}

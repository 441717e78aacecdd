package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/pkg/logger"
)

// ErrMsgInvalidRequestBody ответ на неразбираемое JSON тело.
const ErrMsgInvalidRequestBody = "invalid request body"

// HasJSONBody сообщает, что у запроса непустое тело с Content-Type JSON.
func HasJSONBody(ctx fiber.Ctx) bool {
	if len(ctx.Body()) == 0 {
		return false
	}
	contentType := strings.ToLower(ctx.Get(fiber.HeaderContentType))
	return strings.HasPrefix(contentType, fiber.MIMEApplicationJSON)
}

// NewBodyParserMiddleware разбирает JSON тело в объект и кладет его в Locals.
// Запросы без JSON тела получают пустой объект. Некорректный JSON
// завершает цепочку ответом 400.
func NewBodyParserMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		body := map[string]any{}

		if HasJSONBody(ctx) {
			if err := ctx.App().Config().JSONDecoder(ctx.Body(), &body); err != nil {
				requestCtx := RequestContext(ctx)
				logger.Log(requestCtx).Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
				return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": ErrMsgInvalidRequestBody,
				})
			}
		}

		ctx.Locals(LocalsBody, body)
		return ctx.Next()
	}
}

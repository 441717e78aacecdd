package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/pkg/logger"
)

// ErrMsgInternal тело ответа после паники.
const ErrMsgInternal = "Internal Server Error"

// NewRecoveryMiddleware создает новое промежуточное ПО для восстановления после паники.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx)

		defer func() {
			if r := recover(); r != nil {
				log.Error(requestCtx, "server panic",
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("path", ctx.Path()),
					zap.String("stack", string(debug.Stack())),
				)

				if sendErr := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": ErrMsgInternal,
				}); sendErr != nil {
					log.Error(requestCtx, "failed to send error response after panic", zap.Error(sendErr))
				}
				err = nil
			}
		}()

		return ctx.Next()
	}
}

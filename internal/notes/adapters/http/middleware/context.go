// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// Ключи fiber.Locals, которые заполняет конвейер.
const (
	LocalsRequestContext = "requestContext"
	LocalsBody           = "requestBody"
	LocalsUnmatched      = "unmatchedRoute"
)

// HeaderRequestID заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// RequestContext возвращает контекст запроса с request_id или
// контекст fiber, если request id middleware не отработал.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(LocalsRequestContext).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}

// Body возвращает разобранное тело запроса. Без тела это пустой объект.
func Body(ctx fiber.Ctx) map[string]any {
	if body, ok := ctx.Locals(LocalsBody).(map[string]any); ok {
		return body
	}
	return map[string]any{}
}

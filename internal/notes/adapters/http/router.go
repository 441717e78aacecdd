// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"

	"gonotes/internal/notes/adapters/http/middleware"
	"gonotes/internal/notes/adapters/http/notes"
	"gonotes/internal/notes/app/dto"
	"gonotes/internal/notes/ports/services"
)

// ErrMsgUnknownEndpoint ответ на запрос без подходящего маршрута.
const ErrMsgUnknownEndpoint = "unknown endpoint"

// SetupRouter регистрирует конвейер в фиксированном порядке:
// request id, метрики, recovery, разбор тела, CORS, журнал запросов,
// маршруты и обработчик неизвестных адресов. recorder может быть nil.
func SetupRouter(app *fiber.App, notesService services.NoteService, recorder middleware.Recorder) {
	notesHandler := notes.NewHandler(notesService)

	app.Use(middleware.NewRequestIDMiddleware())
	if recorder != nil {
		app.Use(middleware.NewMetricsMiddleware(recorder))
	}
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewBodyParserMiddleware())
	app.Use(cors.New())
	app.Use(middleware.NewLoggerMiddleware())

	app.Get("/", notesHandler.Home)

	notesRoutes := app.Group("/api/notes")
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Get("/:id", notesHandler.GetNote)
	notesRoutes.Delete("/:id", notesHandler.DeleteNote)
	notesRoutes.Post("/", notesHandler.CreateNote)

	app.Use(UnknownEndpoint)
}

// UnknownEndpoint отвечает 404 на любой запрос, не попавший в маршруты.
func UnknownEndpoint(ctx fiber.Ctx) error {
	ctx.Locals(middleware.LocalsUnmatched, true)
	return ctx.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: ErrMsgUnknownEndpoint,
	})
}

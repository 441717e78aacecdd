// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/internal/notes/adapters/http/middleware"
	"gonotes/internal/notes/app"
	"gonotes/internal/notes/app/dto"
	"gonotes/internal/notes/ports/services"
	"gonotes/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerGetNote    = "handling get note request"
	LogHandlerCreateNote = "handling create note request"
	LogHandlerDeleteNote = "handling delete note request"

	ErrMsgContentMissing = "content missing"

	// HomePage тело ответа на GET /.
	HomePage = "<h1>Hello World!</h1>"

	maxSafeID = 1<<53 - 1
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	notesService services.NoteService
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(notesService services.NoteService) *Handler {
	return &Handler{
		notesService: notesService,
	}
}

// Home отдает статическое приветствие.
func (h *Handler) Home(ctx fiber.Ctx) error {
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	if err := ctx.SendString(HomePage); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListNotes возвращает все заметки.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(requestCtx, LogHandlerListNotes)

	notes, err := h.notesService.ListNotes(requestCtx)
	if err != nil {
		log.Error(requestCtx, "failed to list notes", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(notes); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetNote возвращает заметку по ID. Неизвестный или нечисловой ID дает 400
// с пустым телом.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetNote"))
	log.Debug(requestCtx, LogHandlerGetNote)

	id, ok := ParseNoteID(ctx.Params("id"))
	if !ok {
		log.Debug(requestCtx, "note id does not match any note", zap.String("id", ctx.Params("id")))
		ctx.Status(fiber.StatusBadRequest)
		return nil
	}

	note, err := h.notesService.GetNote(requestCtx, id)
	if err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.JSON(note); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// CreateNote создает заметку из JSON тела.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(requestCtx, LogHandlerCreateNote)

	var body dto.CreateNoteBody
	if middleware.HasJSONBody(ctx) {
		if err := ctx.App().Config().JSONDecoder(ctx.Body(), &body); err != nil {
			log.Debug(requestCtx, middleware.ErrMsgInvalidRequestBody, zap.Error(err))
			return sendInvalidBody(ctx)
		}
	}

	req, ok := body.ToRequest()
	if !ok {
		log.Debug(requestCtx, middleware.ErrMsgInvalidRequestBody, zap.Any("content", body.Content))
		return sendInvalidBody(ctx)
	}

	note, err := h.notesService.CreateNote(requestCtx, req)
	if err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.JSON(note); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteNote удаляет заметку и всегда отвечает 204.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(requestCtx, LogHandlerDeleteNote)

	if id, ok := ParseNoteID(ctx.Params("id")); ok {
		if err := h.notesService.DeleteNote(requestCtx, id); err != nil {
			log.Error(requestCtx, "failed to delete note", zap.Error(err))
			return handleError(ctx, err)
		}
	}

	ctx.Status(fiber.StatusNoContent)
	return nil
}

// ParseNoteID переводит параметр пути в ID заметки. Параметр читается как
// десятичное число; ID получается только из точного целого значения.
func ParseNoteID(raw string) (int, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	if value != math.Trunc(value) || value > maxSafeID || value < -maxSafeID {
		return 0, false
	}
	return int(value), true
}

func sendInvalidBody(ctx fiber.Ctx) error {
	if err := ctx.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: middleware.ErrMsgInvalidRequestBody,
	}); err != nil {
		return fmt.Errorf("failed to send bad request response: %w", err)
	}
	return nil
}

// handleError переводит ошибки сервиса в HTTP-статусы.
func handleError(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, app.ErrNotFound):
		ctx.Status(fiber.StatusBadRequest)
		return nil
	case errors.Is(err, app.ErrContentMissing):
		if err := ctx.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: ErrMsgContentMissing,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	if err := ctx.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: middleware.ErrMsgInternal,
	}); err != nil {
		return fmt.Errorf("error sending 500 response: %w", err)
	}
	return nil
}

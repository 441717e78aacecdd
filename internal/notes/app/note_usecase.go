// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"gonotes/internal/notes/app/dto"
	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/cache"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/internal/notes/ports/services"
	"gonotes/pkg/logger"
)

// Ошибки уровня бизнес-логики.
var (
	ErrNotFound       = errors.New("note not found")
	ErrContentMissing = errors.New("content missing")
)

// ListCacheKey ключ кэша со списком заметок.
const ListCacheKey = "notes:list"

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	noteRepo  repositories.NoteRepository
	listCache cache.Cache
	validate  *validator.Validate
}

var _ services.NoteService = (*NoteUseCase)(nil)

// NewNoteUseCase создает новый экземпляр NoteUseCase. listCache может быть nil.
func NewNoteUseCase(noteRepo repositories.NoteRepository, listCache cache.Cache) *NoteUseCase {
	return &NoteUseCase{
		noteRepo:  noteRepo,
		listCache: listCache,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ListNotes возвращает все заметки. Кэш используется только для чтения
// снимка, его ошибки не влияют на ответ.
func (uc *NoteUseCase) ListNotes(ctx context.Context) ([]entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.ListNotes"))

	if uc.listCache != nil {
		if cached, ok := uc.cachedList(ctx, log); ok {
			return cached, nil
		}
	}

	notes, version := uc.noteRepo.Snapshot()

	if uc.listCache != nil {
		uc.storeList(ctx, log, notes, version)
	}

	return notes, nil
}

// storeList кладет снимок в кэш. Если после снимка хранилище изменилось,
// запись могла перекрыть инвалидацию, поэтому ключ удаляется.
func (uc *NoteUseCase) storeList(ctx context.Context, log *logger.Logger, notes []entities.Note, version uint64) {
	raw, err := json.Marshal(notes)
	if err != nil {
		log.Warn(ctx, "failed to encode notes list", zap.Error(err))
		return
	}

	if err := uc.listCache.Set(ctx, ListCacheKey, string(raw), 0); err != nil {
		log.Warn(ctx, "failed to store notes list in cache", zap.Error(err))
		return
	}

	if uc.noteRepo.Version() != version {
		log.Debug(ctx, "notes changed while caching list", zap.Uint64("snapshot_version", version))
		uc.invalidateList(ctx, log)
	}
}

func (uc *NoteUseCase) cachedList(ctx context.Context, log *logger.Logger) ([]entities.Note, bool) {
	raw, err := uc.listCache.Get(ctx, ListCacheKey)
	if err != nil {
		log.Warn(ctx, "notes list cache unavailable", zap.Error(err))
		return nil, false
	}
	if raw == "" {
		return nil, false
	}

	var notes []entities.Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		log.Warn(ctx, "corrupted notes list in cache", zap.Error(err))
		return nil, false
	}

	log.Debug(ctx, "notes list served from cache", zap.Int("count", len(notes)))
	return notes, true
}

// GetNote возвращает заметку по ID.
func (uc *NoteUseCase) GetNote(ctx context.Context, id int) (entities.Note, error) {
	note, ok := uc.noteRepo.FindByID(id)
	if !ok {
		logger.Log(ctx).Debug(ctx, "note not found", zap.Int("id", id))
		return entities.Note{}, ErrNotFound
	}
	return note, nil
}

// CreateNote проверяет наличие content и сохраняет заметку со следующим ID.
func (uc *NoteUseCase) CreateNote(ctx context.Context, req *dto.CreateNoteRequest) (entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.CreateNote"))

	if req == nil {
		return entities.Note{}, ErrContentMissing
	}
	if err := uc.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return entities.Note{}, ErrContentMissing
		}
		return entities.Note{}, fmt.Errorf("failed to validate note: %w", err)
	}

	note := uc.noteRepo.Create(entities.NewNote(req.Content, req.Important))
	uc.invalidateList(ctx, log)

	log.Debug(ctx, "note created", zap.Int("id", note.ID))
	return note, nil
}

// DeleteNote удаляет заметку. Удаление отсутствующей заметки не ошибка.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, id int) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.DeleteNote"))

	uc.noteRepo.RemoveByID(id)
	uc.invalidateList(ctx, log)

	log.Debug(ctx, "note removed", zap.Int("id", id))
	return nil
}

func (uc *NoteUseCase) invalidateList(ctx context.Context, log *logger.Logger) {
	if uc.listCache == nil {
		return
	}
	if err := uc.listCache.Delete(ctx, ListCacheKey); err != nil {
		log.Warn(ctx, "failed to invalidate notes list cache", zap.Error(err))
	}
}

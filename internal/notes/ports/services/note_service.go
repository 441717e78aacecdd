// Package services определяет интерфейсы сервисов для HTTP-слоя.
package services

import (
	"context"

	"gonotes/internal/notes/app/dto"
	"gonotes/internal/notes/domain/entities"
)

// NoteService определяет операции над заметками.
type NoteService interface {
	// ListNotes возвращает все заметки в порядке добавления
	ListNotes(ctx context.Context) ([]entities.Note, error)

	// GetNote возвращает заметку по ID
	GetNote(ctx context.Context, id int) (entities.Note, error)

	// CreateNote проверяет запрос и создает заметку
	CreateNote(ctx context.Context, req *dto.CreateNoteRequest) (entities.Note, error)

	// DeleteNote удаляет заметку, отсутствие не является ошибкой
	DeleteNote(ctx context.Context, id int) error
}

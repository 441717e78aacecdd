// Package repositories defines repository interfaces for the notes service.
package repositories

import (
	"gonotes/internal/notes/domain/entities"
)

// NoteRepository определяет хранилище заметок.
type NoteRepository interface {
	// List возвращает все заметки в порядке добавления.
	List() []entities.Note
	// Snapshot возвращает все заметки вместе с версией коллекции.
	Snapshot() ([]entities.Note, uint64)
	// Version возвращает версию, которая меняется при каждой записи.
	Version() uint64
	// FindByID возвращает заметку с данным id.
	FindByID(id int) (entities.Note, bool)
	// Append добавляет заметку в конец.
	Append(note entities.Note)
	// Create назначает заметке следующий id и добавляет ее одной операцией.
	Create(note entities.Note) entities.Note
	// RemoveByID удаляет заметку с данным id, отсутствие не является ошибкой.
	RemoveByID(id int)
	// Len возвращает количество заметок.
	Len() int
}

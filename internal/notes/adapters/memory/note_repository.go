// Package memory provides an in-process implementation of the note repository.
package memory

import (
	"slices"
	"sync"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/repositories"
)

// NoteRepository хранит заметки в памяти процесса.
// version растет при каждом изменении коллекции.
type NoteRepository struct {
	mu      sync.RWMutex
	notes   []entities.Note
	version uint64
}

var _ repositories.NoteRepository = (*NoteRepository)(nil)

// NewNoteRepository создает хранилище с начальными заметками seed.
func NewNoteRepository(seed ...entities.Note) *NoteRepository {
	return &NoteRepository{notes: slices.Clone(seed)}
}

// List возвращает копию всех заметок в порядке добавления.
func (r *NoteRepository) List() []entities.Note {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.copyNotes()
}

// Snapshot возвращает копию заметок и версию, которой она соответствует.
func (r *NoteRepository) Snapshot() ([]entities.Note, uint64) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.copyNotes(), r.version
}

// Version возвращает текущую версию коллекции.
func (r *NoteRepository) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.version
}

// FindByID ищет заметку линейным проходом.
func (r *NoteRepository) FindByID(id int) (entities.Note, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, note := range r.notes {
		if note.ID == id {
			return note, true
		}
	}
	return entities.Note{}, false
}

// Append добавляет заметку в конец как есть.
func (r *NoteRepository) Append(note entities.Note) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notes = append(r.notes, note)
	r.version++
}

// Create присваивает заметке NextID и добавляет ее под одной блокировкой.
func (r *NoteRepository) Create(note entities.Note) entities.Note {
	r.mu.Lock()
	defer r.mu.Unlock()

	note.ID = NextID(r.notes)
	r.notes = append(r.notes, note)
	r.version++
	return note
}

// RemoveByID заменяет коллекцию отфильтрованной копией.
func (r *NoteRepository) RemoveByID(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]entities.Note, 0, len(r.notes))
	for _, note := range r.notes {
		if note.ID != id {
			kept = append(kept, note)
		}
	}
	if len(kept) != len(r.notes) {
		r.version++
	}
	r.notes = kept
}

// Len возвращает количество заметок.
func (r *NoteRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.notes)
}

// copyNotes вызывается под r.mu. Пустая коллекция дает пустой, не nil, срез.
func (r *NoteRepository) copyNotes() []entities.Note {
	out := make([]entities.Note, len(r.notes))
	copy(out, r.notes)
	return out
}

// NextID возвращает max(id)+1 или 1 для пустой коллекции.
func NextID(notes []entities.Note) int {
	if len(notes) == 0 {
		return 1
	}
	maxID := notes[0].ID
	for _, note := range notes[1:] {
		if note.ID > maxID {
			maxID = note.ID
		}
	}
	return maxID + 1
}

// Package entities defines the domain entities for the notes service.
package entities

import (
	"encoding/json"
	"time"
)

// DateLayout формат даты заметки в JSON: UTC с тремя знаками миллисекунд.
const DateLayout = "2006-01-02T15:04:05.000Z"

// Note представляет собой заметку. Порядок полей задает порядок в JSON.
type Note struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
	Important bool      `json:"important"`
}

// MarshalJSON пишет date в DateLayout, сохраняя нули в миллисекундах.
func (n Note) MarshalJSON() ([]byte, error) {
	type noteJSON struct {
		ID        int    `json:"id"`
		Content   string `json:"content"`
		Date      string `json:"date"`
		Important bool   `json:"important"`
	}

	return json.Marshal(noteJSON{
		ID:        n.ID,
		Content:   n.Content,
		Date:      n.Date.UTC().Format(DateLayout),
		Important: n.Important,
	})
}

// NewNote создает заметку с текущим временем. ID назначает хранилище.
func NewNote(content string, important bool) Note {
	return Note{
		Content:   content,
		Date:      time.Now().UTC().Truncate(time.Millisecond),
		Important: important,
	}
}

// DefaultNotes возвращает начальный набор заметок.
func DefaultNotes() []Note {
	return []Note{
		{
			ID:        1,
			Content:   "HTML is easy",
			Date:      time.Date(2019, time.May, 30, 17, 30, 31, 98*int(time.Millisecond), time.UTC),
			Important: true,
		},
		{
			ID:        2,
			Content:   "Browser can execute only Javascript",
			Date:      time.Date(2019, time.May, 30, 18, 39, 34, 91*int(time.Millisecond), time.UTC),
			Important: false,
		},
		{
			ID:        3,
			Content:   "GET and POST are the most important methods of HTTP protocol",
			Date:      time.Date(2019, time.May, 30, 19, 20, 14, 298*int(time.Millisecond), time.UTC),
			Important: true,
		},
	}
}

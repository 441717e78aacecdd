// Package dto содержит структуры запросов к сервису заметок.
package dto

// CreateNoteRequest содержит данные для создания заметки.
type CreateNoteRequest struct {
	Content   string `json:"content" validate:"required"`
	Important bool   `json:"important"`
}

// CreateNoteBody тело POST /api/notes до проверки типа content.
type CreateNoteBody struct {
	Content   any  `json:"content"`
	Important bool `json:"important"`
}

// ToRequest переводит тело в CreateNoteRequest. Ложные значения content
// (null, false, 0) дают пустую строку, прочие нестроковые значения
// возвращают false.
func (b *CreateNoteBody) ToRequest() (*CreateNoteRequest, bool) {
	req := &CreateNoteRequest{Important: b.Important}

	switch content := b.Content.(type) {
	case nil:
	case string:
		req.Content = content
	case bool:
		if content {
			return nil, false
		}
	case float64:
		if content != 0 {
			return nil, false
		}
	default:
		return nil, false
	}

	return req, true
}

// ErrorResponse тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/internal/notes/app/dto"
)

func TestCreateNoteBody_ToRequest(t *testing.T) {
	testCases := []struct {
		name    string
		body    dto.CreateNoteBody
		want    *dto.CreateNoteRequest
		wantErr bool
	}{
		{name: "string", body: dto.CreateNoteBody{Content: "x", Important: true}, want: &dto.CreateNoteRequest{Content: "x", Important: true}},
		{name: "empty string", body: dto.CreateNoteBody{Content: ""}, want: &dto.CreateNoteRequest{}},
		{name: "absent", body: dto.CreateNoteBody{}, want: &dto.CreateNoteRequest{}},
		{name: "false", body: dto.CreateNoteBody{Content: false}, want: &dto.CreateNoteRequest{}},
		{name: "zero", body: dto.CreateNoteBody{Content: float64(0)}, want: &dto.CreateNoteRequest{}},
		{name: "true", body: dto.CreateNoteBody{Content: true}, wantErr: true},
		{name: "number", body: dto.CreateNoteBody{Content: float64(3)}, wantErr: true},
		{name: "object", body: dto.CreateNoteBody{Content: map[string]any{}}, wantErr: true},
		{name: "array", body: dto.CreateNoteBody{Content: []any{}}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, ok := tc.body.ToRequest()
			if tc.wantErr {
				assert.False(t, ok)
				assert.Nil(t, req)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tc.want, req)
		})
	}
}

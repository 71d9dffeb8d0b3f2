package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	MedicID string `json:"medic_id" validate:"required,uuid"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"medic_id":"8d3c6f0e-6a0b-4c8e-9d43-2a8b1f7c9e10"}`},
		{name: "empty body", body: ``, wantErr: true},
		{name: "malformed", body: `{"medic_id":`, wantErr: true},
		{name: "fails validation", body: `{"medic_id":"not-a-uuid"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst sampleRequest
			err := DecodeJSON(r, &dst)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRespondErrorWithDetails(t *testing.T) {
	w := httptest.NewRecorder()
	RespondErrorWithDetails(w, http.StatusConflict, "conflict", map[string]int{"critical_conflicts": 1})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "conflict", body["error"])
	assert.Equal(t, float64(1), body["details"].(map[string]interface{})["critical_conflicts"])
}

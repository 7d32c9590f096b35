// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnvilela/motolink/internal/platform/apperr"
	"github.com/johnvilela/motolink/internal/platform/respond"
	"github.com/johnvilela/motolink/pkg/pagination"
)

/*
TestError checks status, code and cause hiding for wrapped and plain errors.
*/
func TestError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"wrapped_app_error", fmt.Errorf("region_service_lookup_failed: %w", apperr.NotFound("Região não encontrada")), http.StatusNotFound, apperr.CodeNotFound},
		{"validation", apperr.ValidationError("Dados inválidos", apperr.FieldError{Field: "cnpj", Message: "CNPJ inválido"}), http.StatusBadRequest, apperr.CodeValidation},
		{"plain_error", errors.New("pq: connection reset"), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respond.Error(recorder, httptest.NewRequest(http.MethodGet, "/api/regions/r1", nil), tt.err)

			assert.Equal(t, tt.status, recorder.Code)

			var body respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotContains(t, body.Error, "connection reset")
		})
	}
}

/*
TestPaginated checks the list envelope key.
*/
func TestPaginated(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Paginated(recorder, []string{"a"}, pagination.NewMeta(1, 10, 1))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"pagination":`)
	assert.Contains(t, recorder.Body.String(), `"data":["a"]`)
}

// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnvilela/motolink/internal/platform/apperr"
)

/*
TestConstructors_StatusMapping checks that every constructor carries the
expected HTTP status and code.
*/
func TestConstructors_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Usuário não encontrado"), http.StatusNotFound, apperr.CodeNotFound},
		{"unauthorized", apperr.Unauthorized("Credenciais inválidas"), http.StatusUnauthorized, apperr.CodeUnauthorized},
		{"session_expired", apperr.SessionExpired(), http.StatusUnauthorized, apperr.CodeSessionExpired},
		{"forbidden", apperr.Forbidden("Usuário não está ativo"), http.StatusForbidden, apperr.CodeForbidden},
		{"conflict", apperr.Conflict("dup"), http.StatusConflict, apperr.CodeConflict},
		{"bad_request", apperr.BadRequest("deleted"), http.StatusBadRequest, apperr.CodeBadRequest},
		{"validation", apperr.ValidationError("invalid"), http.StatusBadRequest, apperr.CodeValidation},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

/*
TestAs_WrappedChain verifies an AppError is found through fmt.Errorf wrapping.
*/
func TestAs_WrappedChain(t *testing.T) {
	wrapped := fmt.Errorf("account_service_failed: %w", apperr.NotFound("Usuário não encontrado"))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeNotFound, ae.Code)
	assert.True(t, apperr.IsAppError(wrapped))
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeNotFound))

	assert.Nil(t, apperr.As(errors.New("plain")))
	assert.False(t, apperr.HasCode(errors.New("plain"), apperr.CodeNotFound))
}

/*
TestInternal_HidesCause ensures the client message never leaks the cause.
*/
func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("pq: relation does not exist")
	ae := apperr.Internal(cause)

	assert.NotContains(t, ae.Error(), "relation")
	assert.ErrorIs(t, ae, cause)
}

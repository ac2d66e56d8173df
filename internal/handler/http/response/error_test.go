package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taplog/attendance-backend-go/internal/domain/attendance"
	"github.com/taplog/attendance-backend-go/internal/domain/auth"
	"github.com/taplog/attendance-backend-go/internal/domain/employee"
	"github.com/taplog/attendance-backend-go/internal/domain/override"
	"github.com/taplog/attendance-backend-go/internal/pkg/validator"
)

func TestHandleErrorMapsDomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"inactive employee", employee.ErrEmployeeInactive, http.StatusForbidden, "FORBIDDEN"},
		{"unknown employee", employee.ErrEmployeeNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"duplicate badge", employee.ErrBadgeAlreadyRegistered, http.StatusConflict, "CONFLICT"},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"disabled account", auth.ErrAccountDisabled, http.StatusForbidden, "FORBIDDEN"},
		{"bad event type", attendance.ErrInvalidEventType, http.StatusBadRequest, "BAD_REQUEST"},
		{"bad month", attendance.ErrInvalidMonth, http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown override", override.ErrOverrideNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped sentinel", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body Response
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleErrorUnwrapsSentinels(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.Join(errors.New("context"), employee.ErrEmployeeInactive))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleErrorValidation(t *testing.T) {
	errs := validator.ValidationErrors{
		{Field: "uid", Message: "uid must be 2-64 chars from [A-Za-z0-9:_-]"},
	}

	rec := httptest.NewRecorder()
	HandleError(rec, errs)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Contains(t, body.Error.Details, "uid")
}

func TestHandleErrorHidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("pq: connection refused on 10.0.0.3"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}

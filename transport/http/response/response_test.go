package response_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"klinik/shared/constant"
	"klinik/shared/failure"
	"klinik/transport/http/response"
)

func TestWithError_FailureCodePassesThrough(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "bad request",
			err:      failure.BadRequestFromString("booking date is required"),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "not found",
			err:      failure.NotFound("shift not found"),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "conflict",
			err:      failure.Conflict("shift already has an active appointment"),
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.wantCode, recorder.Code)

			var body response.Error
			assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.NotNil(t, body.Error)
			assert.Equal(t, tt.err.Error(), *body.Error)
		})
	}
}

func TestWithError_StorageErrorIsRedacted(t *testing.T) {
	driverErr := &pq.Error{Code: "42P01", Message: `relation "appointments" does not exist`}
	wrapped := fmt.Errorf("failed to get appointments: %w", fmt.Errorf("failed to get data (appointment): %w", driverErr))

	recorder := httptest.NewRecorder()

	response.WithError(recorder, wrapped)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var body response.Error
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.NotNil(t, body.Error)
	assert.Equal(t, constant.ResponseErrorInternal, *body.Error)
	assert.NotContains(t, recorder.Body.String(), "pq:")
	assert.NotContains(t, recorder.Body.String(), "appointments")
}

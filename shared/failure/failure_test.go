package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"hotelier/shared/failure"
)

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "not found",
			err:      failure.NotFound("room not found"),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "conflict",
			err:      failure.Conflict("room is booked out"),
			wantCode: http.StatusConflict,
		},
		{
			name:     "bad request",
			err:      failure.BadRequestFromString("end date before start date"),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure keeps its code",
			err:      fmt.Errorf("create booking: %w", failure.Conflict("room is booked out")),
			wantCode: http.StatusConflict,
		},
		{
			name:     "plain error maps to internal server error",
			err:      errors.New("database gone"),
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
		})
	}
}

func TestBadRequestNilError(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

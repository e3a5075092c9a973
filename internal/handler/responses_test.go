package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/treedoctor/treedoctor-api/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"nil", nil, http.StatusInternalServerError, ErrMsgUnknownError},
		{"student not found", domain.ErrUserNotFound, http.StatusNotFound, ErrMsgStudentNotFoundError},
		{"wrapped tree not found", fmt.Errorf("get: %w", domain.ErrTreeNotFound), http.StatusNotFound, ErrMsgTreeNotFoundError},
		{"duplicate username", domain.ErrUserAlreadyExists, http.StatusConflict, ErrMsgStudentExistsError},
		{"tree limit", domain.ErrTreeLimitReached, http.StatusConflict, ErrMsgTreeLimitError},
		{"bad measurement", fmt.Errorf("%w: note", domain.ErrInvalidMeasurement), http.StatusBadRequest, ErrMsgInvalidMeasureError},
		{"bad input", domain.ErrInvalidInput, http.StatusBadRequest, ErrMsgInvalidInputError},
		{"store read", fmt.Errorf("%w: trees", domain.ErrStoreRead), http.StatusServiceUnavailable, ErrMsgUnavailableError},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, ErrMsgServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestRespondJSON_EncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()
	respondJSON(w, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgServerError)
}

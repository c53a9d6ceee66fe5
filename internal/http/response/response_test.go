package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monoare/vigor-vista-server/internal/apperr"
)

func TestError(t *testing.T) {
	resp := Error(apperr.KindNotFound, "nothing here")

	assert.Equal(t, apperr.KindNotFound, resp.Kind)
	assert.Equal(t, "nothing here", resp.Message)
}

func TestRenderError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   apperr.Kind
		wantMsg    string
	}{
		{"duplicate vote", fmt.Errorf("forum.UpVote: %w", apperr.ErrDuplicateVote), http.StatusBadRequest, apperr.KindDuplicateVote, MsgDuplicateVote},
		{"invalid id", apperr.ErrInvalidID, http.StatusBadRequest, apperr.KindInvalidIdentifier, MsgInvalidID},
		{"not found", apperr.ErrNotFound, http.StatusNotFound, apperr.KindNotFound, MsgNotFound},
		{"forbidden", apperr.ErrForbidden, http.StatusForbidden, apperr.KindForbidden, MsgForbidden},
		{"unauthorized", apperr.ErrUnauthorized, http.StatusUnauthorized, apperr.KindUnauthorized, MsgUnauthorized},
		{"payment provider", apperr.ErrPaymentProvider, http.StatusBadGateway, apperr.KindPaymentProvider, MsgPaymentProvider},
		{"internal hides details", errors.New("connection refused on 10.0.0.1"), http.StatusInternalServerError, apperr.KindInternal, MsgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			w := httptest.NewRecorder()

			RenderError(w, req, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantKind, body.Kind)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestValidationError(t *testing.T) {
	type TestStruct struct {
		Email string  `validate:"required,email"`
		Price float64 `validate:"gt=0"`
	}

	v := validator.New()
	err := v.Struct(TestStruct{Email: "not-an-email", Price: 0})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, apperr.KindValidation, resp.Kind)
	assert.Contains(t, resp.Message, "field Email must be a valid email")
	assert.Contains(t, resp.Message, "field Price must be greater than 0")
}

func TestValidationErrorRequired(t *testing.T) {
	type TestStruct struct {
		Name string `validate:"required"`
	}

	v := validator.New()
	err := v.Struct(TestStruct{})
	require.Error(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()
	RenderValidation(w, req, err)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"kind":"validation","message":"field Name is a required field"}`, w.Body.String())
}

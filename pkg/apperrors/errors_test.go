package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Is(t *testing.T) {
	withDetails := ErrUsernameTooShort.WithDetails(map[string]string{"username": "min"})
	assert.True(t, errors.Is(withDetails, ErrUsernameTooShort))
	assert.Nil(t, ErrUsernameTooShort.Details, "исходная ошибка не мутируется")

	// один код, разные сообщения
	assert.False(t, errors.Is(ErrUsernameTooShort, ErrPasswordTooShort))

	wrapped := fmt.Errorf("register: %w", ErrUsernameTaken)
	assert.True(t, Is(wrapped, ErrUsernameTaken))

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestAppError_MarshalJSON(t *testing.T) {
	err := Wrap(errors.New("db down"), CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)

	data, mErr := json.Marshal(err)
	require.NoError(t, mErr)
	assert.JSONEq(t, `{"code":"INTERNAL_ERROR","domain":"system","message":"Internal server error"}`, string(data))
}

func TestHandleError_JSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		debug  bool
		err    error
		status int
		code   string
	}{
		{"forbidden", false, ErrForbidden, http.StatusForbidden, string(CodeForbidden)},
		{"plain error hidden", false, errors.New("secret detail"), http.StatusInternalServerError, string(CodeInternalError)},
		{"not found", false, NewNotFoundError("Страница не найдена"), http.StatusNotFound, string(CodeNotFound)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetDebug(tt.debug)
			t.Cleanup(func() { SetDebug(false) })

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
			c.Request.Header.Set("Accept", "application/json")

			HandleError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.True(t, c.IsAborted())

			var body struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotContains(t, body.Error.Message, "secret detail")
		})
	}
}

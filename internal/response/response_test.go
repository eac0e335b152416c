package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, http.StatusForbidden, "forbidden")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":403,"message":"forbidden"}`, rec.Body.String())
}

func TestNotFoundDefaultMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	NotFound(rec, "")

	assert.JSONEq(t, `{"status":404,"message":"resource not found"}`, rec.Body.String())
}

func TestInternalHidesError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/app/sports", nil)

	Internal(rec, req, errors.New("dial tcp 10.0.0.5:3306: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")

	var body Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, MsgInternal, body.Message)
}

func TestWriteValidation(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteValidation(rec, "name is required", map[string]string{"name": "name is required"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"status":400,"message":"name is required","fields":{"name":"name is required"}}`, rec.Body.String())
}

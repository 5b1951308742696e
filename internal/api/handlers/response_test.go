package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondSessionExpired(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondSessionExpired(rec)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "true", rec.Header().Get(HeaderSessionExpired))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, msgSessionExpired, body.Error)
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Start string `json:"start"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"start":"2025-01-06T08:00:00"}`))
	require.NoError(t, DecodeJSON(req, &v))
	assert.Equal(t, "2025-01-06T08:00:00", v.Start)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"begin":"x"}`))
	assert.Error(t, DecodeJSON(req, &v))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.Error(t, DecodeJSON(req, &v))
}

func TestPathVars(t *testing.T) {
	id := uuid.New()
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{
		"draftId":   id.String(),
		"bookingId": "17",
		"bad":       "-3",
	})

	got, err := UUIDVar(req, "draftId")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	n, err := Int64Var(req, "bookingId")
	require.NoError(t, err)
	assert.Equal(t, int64(17), n)

	_, err = Int64Var(req, "bad")
	assert.Error(t, err)
	_, err = UUIDVar(req, "bookingId")
	assert.Error(t, err)
	_, err = UUIDVar(req, "missing")
	assert.Error(t, err)
}

func TestOptionalUUIDQuery(t *testing.T) {
	id := uuid.New()

	got, err := OptionalUUIDQuery(httptest.NewRequest(http.MethodPut, "/?draftId="+id.String(), nil), "draftId")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, *got)

	got, err = OptionalUUIDQuery(httptest.NewRequest(http.MethodPut, "/", nil), "draftId")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = OptionalUUIDQuery(httptest.NewRequest(http.MethodPut, "/?draftId=nope", nil), "draftId")
	assert.Error(t, err)
}

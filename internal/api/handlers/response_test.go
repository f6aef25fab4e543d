package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError_KindFromStatus(t *testing.T) {
	cases := map[int]string{
		http.StatusBadRequest:          KindInvalidInput,
		http.StatusUnauthorized:        KindUnauthorized,
		http.StatusForbidden:           KindUnauthorized,
		http.StatusNotFound:            KindNotFound,
		http.StatusConflict:            KindConflict,
		http.StatusInternalServerError: KindStorageFailure,
	}

	for status, kind := range cases {
		w := httptest.NewRecorder()
		RespondError(w, status, "msg")

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, status, w.Code)
		assert.Equal(t, status, body.Code)
		assert.Equal(t, kind, body.Kind)
		assert.Equal(t, "msg", body.Message)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	}
}

func TestRespondErrorKind(t *testing.T) {
	w := httptest.NewRecorder()
	RespondErrorKind(w, http.StatusConflict, KindSlotAlreadyBooked, "занято")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, KindSlotAlreadyBooked, body.Kind)
}

func TestRespondJSON_UnencodableValue(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusOK, map[string]float64{"radius": math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusInternalServerError, body.Code)
	assert.Equal(t, KindStorageFailure, body.Kind)
	assert.Equal(t, msgInternalError, body.Message)
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "x", v.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.ErrorIs(t, DecodeJSON(r, &v), ErrEmptyBody)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, DecodeJSON(r, &v))
}

func TestPathUUID(t *testing.T) {
	id := uuid.New()
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"facilityId": id.String()})

	got, err := PathUUID(r, "facilityId")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = PathUUID(r, "missing")
	assert.Error(t, err)
}

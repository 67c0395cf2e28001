package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/boxoffice/pkg/apiclient"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestWriteBackendError_Validation(t *testing.T) {
	rec := httptest.NewRecorder()
	err := errors.Wrap(&apiclient.StatusError{
		Status:  http.StatusUnprocessableEntity,
		Message: "The name field is required.",
		Errors:  map[string][]string{"name": {"The name field is required."}},
	}, "update event")

	require.NoError(t, WriteBackendError(rec, err, nil))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec)
	require.Equal(t, CodeValidation, env.Code)
	require.Equal(t, "The name field is required.", env.Meta["field.name"])
}

func TestWriteBackendError_StatusMapping(t *testing.T) {
	cases := map[int]int{
		http.StatusNotFound:            http.StatusNotFound,
		http.StatusUnauthorized:        http.StatusUnauthorized,
		419:                            http.StatusUnauthorized,
		http.StatusForbidden:           http.StatusForbidden,
		http.StatusInternalServerError: http.StatusBadGateway,
	}
	for backend, want := range cases {
		rec := httptest.NewRecorder()
		require.NoError(t, WriteBackendError(rec, &apiclient.StatusError{Status: backend, Message: "secret detail"}, map[string]string{"request_id": "r1"}))
		require.Equal(t, want, rec.Code, "backend status %d", backend)
		env := decode(t, rec)
		require.NotContains(t, env.Message, "secret")
		require.Equal(t, "r1", env.Meta["request_id"])
	}
}

func TestWriteBackendError_TransportFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteBackendError(rec, errors.New("dial tcp: refused"), nil))
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Equal(t, CodeUpstream, decode(t, rec).Code)
}

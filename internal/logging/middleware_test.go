package logging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLoggerAttachesRequestLogger(t *testing.T) {
	var attached bool
	handler := RequestLogger(NewLogger(true))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attached = r.Context().Value(LoggerContextKey) != nil
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/meals/abc", nil))

	assert.True(t, attached)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestResponseWriterCapturesStatusAndBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusInternalServerError) // ignored after the first
	n, err := rw.Write([]byte("hello"))
	require.NoError(t, err)

	assert.Equal(t, 5, n)
	assert.Equal(t, http.StatusCreated, rw.statusCode)
	assert.Equal(t, 5, rw.bytes)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestResponseWriterDefaultsToOKOnWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	_, err := rw.Write([]byte("ok"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rw.statusCode)
	assert.Equal(t, 2, rw.bytes)
}

func TestGetLoggerFromContextFallback(t *testing.T) {
	assert.NotNil(t, GetLoggerFromContext(context.Background()))
}

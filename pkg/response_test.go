package pkg

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type TestHttpResponseWriter struct {
	HeaderMap  http.Header
	Body       []byte
	StatusCode int
}

func (w *TestHttpResponseWriter) Header() http.Header {
	return w.HeaderMap
}

func (w *TestHttpResponseWriter) Write(bytes []byte) (int, error) {
	w.Body = bytes
	return len(bytes), nil
}

func (w *TestHttpResponseWriter) WriteHeader(statusCode int) {
	w.StatusCode = statusCode
}

func newTestWriter() *TestHttpResponseWriter {
	return &TestHttpResponseWriter{
		HeaderMap: make(http.Header),
	}
}

func TestWriteResponseBytes(t *testing.T) {
	w := newTestWriter()

	testJson := `{"key":"val"}`
	WriteResponseBytes(w, ContentType.JSON, []byte(testJson), http.StatusCreated)

	assert.Equal(t, http.StatusCreated, w.StatusCode)
	assert.Equal(t, ContentType.JSON, w.HeaderMap.Get("Content-Type"))
	assert.Equal(t, testJson, string(w.Body))
}

func TestWriteResponseBytesOK(t *testing.T) {
	w := newTestWriter()

	testJson := `{"key":"val"}`
	WriteResponseBytesOK(w, ContentType.JSON, []byte(testJson))

	assert.Equal(t, http.StatusOK, w.StatusCode)
	assert.Equal(t, ContentType.JSON, w.HeaderMap.Get("Content-Type"))
	assert.Equal(t, testJson, string(w.Body))
}

func TestWriteJSONOK(t *testing.T) {
	w := newTestWriter()

	WriteJSONOK(w, SuccessResponse{Success: true, ID: "msg-1"})

	assert.Equal(t, http.StatusOK, w.StatusCode)
	assert.Equal(t, ContentType.JSON, w.HeaderMap.Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"id":"msg-1"}`, string(w.Body))
}

func TestWriteJSONOK_omitsEmptyID(t *testing.T) {
	w := newTestWriter()

	WriteJSONOK(w, SuccessResponse{Success: true})

	assert.JSONEq(t, `{"success":true}`, string(w.Body))
}

func TestWriteJSONError(t *testing.T) {
	w := newTestWriter()

	WriteJSONError(w, "Missing fields", http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, w.StatusCode)
	assert.Equal(t, ContentType.JSON, w.HeaderMap.Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Missing fields"}`, string(w.Body))
}

func TestWriteJSON_unmarshalable(t *testing.T) {
	w := newTestWriter()

	WriteJSON(w, map[string]any{"ch": make(chan int)}, http.StatusOK)

	assert.Equal(t, http.StatusInternalServerError, w.StatusCode)
	assert.JSONEq(t, `{"error":"internal server error"}`, string(w.Body))
}

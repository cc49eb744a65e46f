package httpjson

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteSetsContentTypeAndStatus(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Write(rec, 201, map[string]string{"status": "created"})

	if rec.Code != 201 {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("content type = %q, want application/json", got)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "created" {
		t.Fatalf("body = %v, want status=created", body)
	}
}

func TestWriteErrorUsesEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(rec, 404, "NOT_FOUND", "no such phrase")

	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Code != "NOT_FOUND" || envelope.Error.Message != "no such phrase" {
		t.Fatalf("envelope = %+v, want NOT_FOUND/no such phrase", envelope)
	}
}

func TestMethodNotAllowedSetsAllowHeader(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	MethodNotAllowed(rec, "GET", "POST")

	if rec.Code != 405 {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if got := rec.Header().Get("Allow"); got != "GET, POST" {
		t.Fatalf("allow = %q, want %q", got, "GET, POST")
	}
}

func TestDecodeReadsBody(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/translate", strings.NewReader(`{"text":"hello"}`))
	rec := httptest.NewRecorder()

	var payload struct {
		Text string `json:"text"`
	}
	if err := Decode(rec, req, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Text != "hello" {
		t.Fatalf("text = %q, want hello", payload.Text)
	}
}

func TestRecoverPanicWritesInternalEnvelope(t *testing.T) {
	t.Parallel()

	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	handler := Chain(panicking, RecoverPanic())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/signs", nil))

	if rec.Code != 500 {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Code != "INTERNAL" {
		t.Fatalf("code = %q, want INTERNAL", envelope.Error.Code)
	}
}

func TestMethodNotAllowedHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	MethodNotAllowedHandler("GET")(rec, httptest.NewRequest("DELETE", "/signs", nil))

	if rec.Code != 405 {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if got := rec.Header().Get("Allow"); got != "GET" {
		t.Fatalf("allow = %q, want GET", got)
	}
}

func TestDecodeRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/translate", strings.NewReader(`{"text":`))
	rec := httptest.NewRecorder()

	var payload struct {
		Text string `json:"text"`
	}
	err := Decode(rec, req, &payload)
	if err == nil {
		t.Fatal("expected error for malformed body")
	}
	if !strings.Contains(err.Error(), "decode request body:") {
		t.Fatalf("expected decode request body prefix, got %v", err)
	}
}

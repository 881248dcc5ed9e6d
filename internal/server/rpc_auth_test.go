package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func authProbe(t *testing.T, secret, header string) *httptest.ResponseRecorder {
	t.Helper()
	called := false
	h := requireToken(secret, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodPost, "/rpc", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if called != (rec.Code == http.StatusOK) {
		t.Fatalf("inner handler called=%v with status %d", called, rec.Code)
	}
	return rec
}

// TestRequireToken walks the accept and reject cases of the bearer check.
func TestRequireToken(t *testing.T) {
	cases := []struct {
		name   string
		secret string
		header string
		want   int
	}{
		{"valid token", "s3cret", "Bearer s3cret", http.StatusOK},
		{"wrong token", "s3cret", "Bearer nope", http.StatusUnauthorized},
		{"missing header", "s3cret", "", http.StatusUnauthorized},
		{"wrong scheme", "s3cret", "Basic s3cret", http.StatusUnauthorized},
		{"empty secret rejects all", "", "Bearer ", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := authProbe(t, tc.secret, tc.header)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

// TestRequireTokenErrorBody verifies rejections answer with a JSON-RPC
// error object, which the extension's transport expects.
func TestRequireTokenErrorBody(t *testing.T) {
	rec := authProbe(t, "s3cret", "Bearer nope")

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	var body struct {
		Jsonrpc string `json:"jsonrpc"`
		Error   struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Jsonrpc != "2.0" || body.Error.Code != -32600 || body.Error.Message != "Unauthorized" {
		t.Errorf("body = %+v", body)
	}
}

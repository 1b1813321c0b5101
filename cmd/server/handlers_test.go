package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRenderNotesHTML(t *testing.T) {
	out := string(renderNotesHTML("remember the **quiz** on slide 3"))
	if !strings.Contains(out, "<strong>quiz</strong>") {
		t.Fatalf("markdown not rendered: %q", out)
	}

	if got := string(renderNotesHTML("")); strings.Contains(got, "<p>") {
		t.Fatalf("empty notes should render empty, got %q", got)
	}
}

func TestWriteError_Localized(t *testing.T) {
	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "lang", Value: "hu"})
	w := httptest.NewRecorder()

	writeError(w, r, http.StatusBadRequest, "error.invalid_format")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != "error.invalid_format" {
		t.Errorf("error key = %q", body["error"])
	}
	if body["message"] == "" || body["message"] == "error.invalid_format" {
		t.Errorf("message not localized: %q", body["message"])
	}
}

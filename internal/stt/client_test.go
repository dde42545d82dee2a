package stt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lectureflow/lectureflow/internal/logger"
)

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{}, logger.New("error"))
	if err == nil {
		t.Error("New() without API key should return error")
	}
}

func TestTranscribeExtractsTranscript(t *testing.T) {
	var gotAuth string
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = map[string]string{
			"model":        r.URL.Query().Get("model"),
			"language":     r.URL.Query().Get("language"),
			"punctuate":    r.URL.Query().Get("punctuate"),
			"smart_format": r.URL.Query().Get("smart_format"),
		}
		w.Write([]byte(`{"results":{"channels":[{"alternatives":[{"transcript":"hello from the lecture"}]}]}}`))
	}))
	defer srv.Close()

	tr, err := New(Config{APIKey: "test-key", BaseURL: srv.URL}, logger.New("error"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, err := tr.Transcribe(context.Background(), []byte("fake-audio"), DefaultOptions())
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if got != "hello from the lecture" {
		t.Errorf("Transcribe() = %q", got)
	}

	if gotAuth != "Token test-key" {
		t.Errorf("Authorization = %q, want Token test-key", gotAuth)
	}
	if gotQuery["model"] != "nova-2" || gotQuery["language"] != "cs" {
		t.Errorf("query = %v", gotQuery)
	}
	if gotQuery["punctuate"] != "true" || gotQuery["smart_format"] != "true" {
		t.Errorf("formatting flags not sent: %v", gotQuery)
	}
}

func TestTranscribeMissingStructureYieldsEmpty(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no channels", `{"results":{"channels":[]}}`},
		{"no alternatives", `{"results":{"channels":[{"alternatives":[]}]}}`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			tr, _ := New(Config{APIKey: "k", BaseURL: srv.URL}, logger.New("error"))
			got, err := tr.Transcribe(context.Background(), nil, DefaultOptions())
			if err != nil {
				t.Fatalf("Transcribe() error = %v", err)
			}
			if got != "" {
				t.Errorf("Transcribe() = %q, want empty", got)
			}
		})
	}
}

func TestTranscribeHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	tr, _ := New(Config{APIKey: "bad", BaseURL: srv.URL}, logger.New("error"))
	if _, err := tr.Transcribe(context.Background(), nil, DefaultOptions()); err == nil {
		t.Error("Transcribe() should surface non-success status as error")
	}
}

func TestOptionsApply(t *testing.T) {
	base := DefaultOptions()

	lang := "en"
	diarize := false
	timeout := time.Minute
	merged := base.Apply(Overrides{Language: &lang, Diarize: &diarize, Timeout: &timeout})

	if merged.Language != "en" || merged.Diarize != false || merged.Timeout != time.Minute {
		t.Errorf("Apply() = %+v", merged)
	}
	if merged.Model != "nova-2" || !merged.Punctuate {
		t.Errorf("Apply() clobbered unset fields: %+v", merged)
	}

	// The base must never be mutated by an overlay.
	if base.Language != "cs" || !base.Diarize || base.Timeout != 300*time.Second {
		t.Errorf("base options mutated: %+v", base)
	}
}

func TestOptionsApplyEmptyOverrides(t *testing.T) {
	base := DefaultOptions()
	if got := base.Apply(Overrides{}); got != base {
		t.Errorf("Apply(empty) = %+v, want %+v", got, base)
	}
}

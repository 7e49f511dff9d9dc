package imagegen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["inputs"] != "Professional fashion photography of a trench coat" {
			t.Errorf("inputs = %q", body["inputs"])
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, want none without token", got)
		}
		w.Write(pngHeader)
	}))
	defer srv.Close()

	img, err := NewClient(srv.Client(), srv.URL, "").Generate(context.Background(), "Professional fashion photography of a trench coat")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if img.ContentType != "image/png" {
		t.Errorf("ContentType = %q", img.ContentType)
	}
	if len(img.Data) != len(pngHeader) {
		t.Errorf("len(Data) = %d", len(img.Data))
	}
}

func TestGenerate_Token(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer hf_test" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte{0xff, 0xd8, 0xff})
	}))
	defer srv.Close()

	img, err := NewClient(srv.Client(), srv.URL, "hf_test").Generate(context.Background(), "x")
	if err != nil || img.ContentType != "image/jpeg" {
		t.Errorf("Generate() = %+v, %v", img, err)
	}
}

func TestGenerate_Unavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"busy", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error": "Model is currently loading"}`))
		}},
		{"unauthorized", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusUnauthorized) }},
		{"empty", func(w http.ResponseWriter, r *http.Request) {}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			_, err := NewClient(srv.Client(), srv.URL, "").Generate(context.Background(), "x")
			if !errors.Is(err, ErrUnavailable) {
				t.Errorf("error = %v, want ErrUnavailable", err)
			}
		})
	}

	_, err := NewClient(http.DefaultClient, "http://127.0.0.1:1", "").Generate(context.Background(), "x")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("connection error = %v, want ErrUnavailable", err)
	}
}

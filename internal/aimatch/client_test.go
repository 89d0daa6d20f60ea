package aimatch

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFindMatch(t *testing.T) {
	photo := []byte{0xff, 0xd8, 0xff, 0xe0}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/find_match_react_native" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}

		decoded, err := base64.StdEncoding.DecodeString(r.PostFormValue("file_data"))
		if err != nil {
			t.Fatalf("decode file_data: %v", err)
		}
		if !bytes.Equal(decoded, photo) {
			t.Errorf("file_data does not round trip")
		}

		json.NewEncoder(w).Encode(MatchResult{
			MatchFound:   true,
			Confidence:   0.91,
			MatchedImage: "reports/abc123.jpg",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/")

	result, err := client.FindMatch(context.Background(), bytes.NewReader(photo))
	if err != nil {
		t.Fatalf("find match: %v", err)
	}
	if !result.MatchFound {
		t.Error("expected a match")
	}
	if result.Confidence != 0.91 {
		t.Errorf("confidence = %v", result.Confidence)
	}
}

func TestFindMatch_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid image data", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	if _, err := client.FindMatch(context.Background(), bytes.NewReader([]byte("x"))); err == nil {
		t.Error("expected error for non-200 response")
	}
}

package voice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"faceless-pipeline/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.APIKeys.ElevenLabs = "test-key"
	return cfg
}

func TestSynthesizeWritesAudioFile(t *testing.T) {
	audio := []byte("fake mp3 bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wantPath := "/v1/text-to-speech/" + config.Default().Voice.VoiceID
		if r.URL.Path != wantPath {
			t.Fatalf("path = %s, want %s", r.URL.Path, wantPath)
		}
		if got := r.Header.Get("xi-api-key"); got != "test-key" {
			t.Fatalf("unexpected api key header %q", got)
		}
		var req struct {
			Text          string `json:"text"`
			ModelID       string `json:"model_id"`
			VoiceSettings struct {
				Stability       float64 `json:"stability"`
				SimilarityBoost float64 `json:"similarity_boost"`
			} `json:"voice_settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Text != "Narration body." {
			t.Fatalf("text = %q", req.Text)
		}
		if req.VoiceSettings.Stability != 0.5 || req.VoiceSettings.SimilarityBoost != 0.75 {
			t.Fatalf("voice settings = %+v", req.VoiceSettings)
		}
		_, _ = w.Write(audio)
	}))
	defer server.Close()

	dir := t.TempDir()
	synth := NewWithBaseURL(testConfig(), server.URL)

	path, err := synth.Synthesize(context.Background(), "Narration body.", dir)
	if err != nil {
		t.Fatalf("Synthesize returned error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("audio written outside output dir: %s", path)
	}
	if !strings.HasSuffix(path, ".mp3") {
		t.Errorf("audio path = %s, want .mp3", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read audio file: %v", err)
	}
	if string(data) != string(audio) {
		t.Errorf("audio bytes do not match response body")
	}
}

func TestSynthesizeNon200Fails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"invalid api key"}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	synth := NewWithBaseURL(testConfig(), server.URL)

	_, err := synth.Synthesize(context.Background(), "text", dir)
	if err == nil {
		t.Fatal("expected error on non-200 status")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error should report the status, got: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("no audio file should be written on failure, found %d entries", len(entries))
	}
}

func TestSynthesizeMissingKey(t *testing.T) {
	synth := New(config.Default())
	if _, err := synth.Synthesize(context.Background(), "text", t.TempDir()); err == nil {
		t.Fatal("expected error when API key is missing")
	}
}

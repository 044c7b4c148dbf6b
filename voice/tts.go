package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"faceless-pipeline/config"
)

const defaultBaseURL = "https://api.elevenlabs.io"

// Synthesizer converts narration text to speech via the ElevenLabs API
type Synthesizer struct {
	cfg        *config.Config
	baseURL    string
	httpClient *http.Client
}

// New creates a new Synthesizer
func New(cfg *config.Config) *Synthesizer {
	return &Synthesizer{
		cfg:        cfg,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// NewWithBaseURL points the Synthesizer at an alternate endpoint (tests).
func NewWithBaseURL(cfg *config.Config, baseURL string) *Synthesizer {
	s := New(cfg)
	s.baseURL = strings.TrimSuffix(baseURL, "/")
	return s
}

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize sends the narration body to the configured voice and writes the
// returned audio to a uniquely named mp3 in outputDir. Any non-200 status is
// an error and the run aborts.
func (s *Synthesizer) Synthesize(ctx context.Context, text, outputDir string) (string, error) {
	log.Println("[voice] Generating voiceover...")

	if s.cfg.APIKeys.ElevenLabs == "" {
		return "", fmt.Errorf("elevenlabs API key not set")
	}

	reqBody := ttsRequest{
		Text:    text,
		ModelID: s.cfg.Voice.Model,
		VoiceSettings: voiceSettings{
			Stability:       s.cfg.Voice.Stability,
			SimilarityBoost: s.cfg.Voice.SimilarityBoost,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", s.baseURL, s.cfg.Voice.VoiceID)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("xi-api-key", s.cfg.APIKeys.ElevenLabs)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("tts service returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	audioPath := filepath.Join(outputDir, fmt.Sprintf("audio_%d.mp3", time.Now().Unix()))
	if err := writeBody(audioPath, resp.Body); err != nil {
		return "", fmt.Errorf("save voiceover: %w", err)
	}

	log.Printf("[voice] ✅ Voiceover saved: %s", audioPath)
	return audioPath, nil
}

// writeBody streams the audio to disk, closing the file on every path.
func writeBody(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return err
	}
	return f.Close()
}

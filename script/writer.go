package script

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"faceless-pipeline/config"
	"faceless-pipeline/types"
)

const defaultBaseURL = "https://api.anthropic.com"

const promptTemplate = `Create a compelling YouTube SHORT video script about: %s

CRITICAL REQUIREMENTS:
- Length: 150-200 words MAXIMUM (for ~30 seconds of natural speech)
- Style: Direct, conversational, factual - speak naturally as if talking to a friend
- NO meta-language: Never say "title", "description", "keywords", "script", "this video", "today we'll discuss"
- Start immediately with the CONTENT - no preamble or introduction
- Be SPECIFIC and FACTUAL - include real data, statistics, concrete benefits, or examples
- End with a strong value statement - summarize what they just learned
- NO generic CTAs like "subscribe", "hit the bell", or "comment below"

FORMAT (use these exact labels):
TITLE: [Compelling, curiosity-driven title under 60 characters]
DESCRIPTION: [2-3 sentences with key points, include relevant #hashtags]
TAGS: [8-10 relevant single-word tags separated by commas]
KEYWORDS: [3-5 descriptive phrases for stock footage - be specific like "person meditating peaceful nature sunset" not just "meditation"]
SCRIPT:
[Direct narration only - NO labels, NO meta-talk, just pure content]`

// Writer generates video scripts via the Anthropic Messages API
type Writer struct {
	cfg        *config.Config
	baseURL    string
	httpClient *http.Client
}

// New creates a new script Writer
func New(cfg *config.Config) *Writer {
	return &Writer{
		cfg:        cfg,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// NewWithBaseURL points the Writer at an alternate endpoint (tests).
func NewWithBaseURL(cfg *config.Config, baseURL string) *Writer {
	w := New(cfg)
	w.baseURL = strings.TrimSuffix(baseURL, "/")
	return w
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate asks the model for a script about topic and parses the response.
// If topic is empty, the configured content niche is used instead.
func (w *Writer) Generate(ctx context.Context, topic string) (types.ScriptRecord, error) {
	log.Println("[script] Generating video script...")

	if w.cfg.APIKeys.Anthropic == "" {
		return types.ScriptRecord{}, fmt.Errorf("anthropic API key not set")
	}

	subject := topic
	if subject == "" {
		subject = "a trending topic in " + w.cfg.Script.Niche
	}

	reqBody := messagesRequest{
		Model:     w.cfg.Script.Model,
		MaxTokens: w.cfg.Script.MaxTokens,
		Messages: []message{
			{Role: "user", Content: fmt.Sprintf(promptTemplate, subject)},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return types.ScriptRecord{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", w.baseURL+"/v1/messages", bytes.NewReader(bodyBytes))
	if err != nil {
		return types.ScriptRecord{}, err
	}
	req.Header.Set("x-api-key", w.cfg.APIKeys.Anthropic)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return types.ScriptRecord{}, fmt.Errorf("generation request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.ScriptRecord{}, err
	}

	var msgResp messagesResponse
	if err := json.Unmarshal(respBytes, &msgResp); err != nil {
		return types.ScriptRecord{}, fmt.Errorf("parse generation response: %w", err)
	}
	if msgResp.Error != nil {
		return types.ScriptRecord{}, fmt.Errorf("generation error: %s", msgResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return types.ScriptRecord{}, fmt.Errorf("generation service returned HTTP %d", resp.StatusCode)
	}
	if len(msgResp.Content) == 0 || msgResp.Content[0].Text == "" {
		return types.ScriptRecord{}, fmt.Errorf("generation service returned no content")
	}

	rec := Parse(msgResp.Content[0].Text)
	log.Printf("[script] ✅ Script generated: %q", rec.Title)
	log.Printf("[script] Keywords: %s", rec.Keywords)
	log.Printf("[script] Script length: %d characters", len(rec.Script))
	return rec, nil
}

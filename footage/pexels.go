package footage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"faceless-pipeline/config"
)

const defaultBaseURL = "https://api.pexels.com"

// Clip is one downloadable stock video rendition. The search stage keeps
// only the highest-resolution rendition of each result.
type Clip struct {
	URL    string
	Width  int
	Height int
}

// Client searches and downloads stock footage from Pexels
type Client struct {
	cfg        *config.Config
	baseURL    string
	httpClient *http.Client
	delay      time.Duration // pause between downloads to avoid rate limits
}

// New creates a new footage Client
func New(cfg *config.Config) *Client {
	return &Client{
		cfg:        cfg,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		delay:      500 * time.Millisecond,
	}
}

// NewWithBaseURL points the Client at an alternate endpoint with no
// inter-download delay (tests).
func NewWithBaseURL(cfg *config.Config, baseURL string) *Client {
	c := New(cfg)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	c.delay = 0
	return c
}

type searchResponse struct {
	Videos []struct {
		VideoFiles []struct {
			Width  int    `json:"width"`
			Height int    `json:"height"`
			Link   string `json:"link"`
		} `json:"video_files"`
	} `json:"videos"`
}

// Search queries landscape stock videos matching the keywords phrase and
// returns the best rendition per result. A non-200 response degrades to an
// empty list; the pipeline must tolerate zero footage.
func (c *Client) Search(ctx context.Context, keywords string, count int) ([]Clip, error) {
	log.Printf("[footage] Fetching stock footage for: %s", keywords)

	if c.cfg.APIKeys.Pexels == "" {
		log.Println("[footage] ⚠️  Pexels API key not set — continuing without footage")
		return nil, nil
	}

	params := url.Values{}
	params.Set("query", keywords)
	params.Set("per_page", fmt.Sprintf("%d", count))
	params.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/videos/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.cfg.APIKeys.Pexels)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("footage search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[footage] ⚠️  Search returned HTTP %d — continuing without footage", resp.StatusCode)
		return nil, nil
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("malformed search response: %w", err)
	}

	var clips []Clip
	for _, video := range result.Videos {
		best := Clip{}
		for _, f := range video.VideoFiles {
			if f.Link != "" && f.Width > best.Width {
				best = Clip{URL: f.Link, Width: f.Width, Height: f.Height}
			}
		}
		if best.URL != "" {
			clips = append(clips, best)
		}
	}

	log.Printf("[footage] ✅ Found %d stock videos", len(clips))
	return clips, nil
}

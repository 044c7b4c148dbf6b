package footage

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// maxDownloads caps how many clips one video uses, even when the search
// returned more.
const maxDownloads = 5

// Download streams up to five clips to uniquely named local files. A failure
// on any individual clip is logged and skipped, never fatal; the caller gets
// whatever was saved, possibly nothing.
func (c *Client) Download(ctx context.Context, clips []Clip, outputDir string) []string {
	log.Println("[footage] ⬇️  Downloading stock videos...")

	if len(clips) > maxDownloads {
		clips = clips[:maxDownloads]
	}

	var saved []string
	for i, clip := range clips {
		outFile := filepath.Join(outputDir,
			fmt.Sprintf("stock_%d_%d_%s.mp4", time.Now().Unix(), i, uuid.NewString()[:8]))

		if err := c.downloadOne(ctx, clip.URL, outFile); err != nil {
			log.Printf("[footage] ⚠️  Failed to download video %d/%d: %v", i+1, len(clips), err)
			continue
		}

		saved = append(saved, outFile)
		log.Printf("[footage] ✅ Downloaded video %d/%d", i+1, len(clips))

		// Short pause between requests to stay under provider rate limits.
		time.Sleep(c.delay)
	}

	return saved
}

func (c *Client) downloadOne(ctx context.Context, clipURL, outFile string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", clipURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(outFile)
		return err
	}
	return f.Close()
}

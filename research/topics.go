package research

import (
	"context"
	"log"
	"strings"

	"faceless-pipeline/config"

	"github.com/vartanbeno/go-reddit/v2/reddit"
)

// Suggester proposes a video topic from what is currently popular in the
// configured niche's subreddit. It backs the "AI-suggested topic" menu
// option; any failure degrades to an empty topic so the script prompt falls
// back to the niche itself.
type Suggester struct {
	cfg *config.Config
}

// New creates a new Suggester
func New(cfg *config.Config) *Suggester {
	return &Suggester{cfg: cfg}
}

// Candidate is one scored topic pulled from the subreddit front page.
type Candidate struct {
	Title    string
	Score    int
	Comments int
}

// Suggest returns a topic string, or "" when nothing usable was found.
func (s *Suggester) Suggest(ctx context.Context) string {
	subreddit := strings.ToLower(strings.ReplaceAll(s.cfg.Script.Niche, " ", ""))
	log.Printf("[research] Looking for trending topics in r/%s...", subreddit)

	client, err := reddit.NewReadonlyClient()
	if err != nil {
		log.Printf("[research] ⚠️  Reddit client unavailable: %v — using niche as topic", err)
		return ""
	}

	posts, _, err := client.Subreddit.HotPosts(ctx, subreddit, &reddit.ListOptions{Limit: 25})
	if err != nil {
		log.Printf("[research] ⚠️  Could not fetch r/%s: %v — using niche as topic", subreddit, err)
		return ""
	}

	candidates := make([]Candidate, 0, len(posts))
	for _, p := range posts {
		candidates = append(candidates, Candidate{
			Title:    p.Title,
			Score:    p.Score,
			Comments: p.NumberOfComments,
		})
	}

	topic := BestCandidate(candidates)
	if topic == "" {
		log.Printf("[research] ⚠️  No usable posts in r/%s — using niche as topic", subreddit)
		return ""
	}

	log.Printf("[research] ✅ Suggested topic: %q", topic)
	return topic
}

// BestCandidate picks the candidate with the highest engagement whose title
// fits a spoken-video topic: not a question of moderation, not too short to
// mean anything, not too long to narrate.
func BestCandidate(candidates []Candidate) string {
	best := ""
	bestScore := -1

	for _, c := range candidates {
		title := strings.TrimSpace(c.Title)
		if len(title) < 15 || len(title) > 120 {
			continue
		}
		if strings.HasPrefix(strings.ToLower(title), "[meta]") {
			continue
		}

		score := c.Score + c.Comments*2
		if score > bestScore {
			best = title
			bestScore = score
		}
	}

	return best
}

package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"faceless-pipeline/config"
	"faceless-pipeline/footage"
	"faceless-pipeline/types"

	"github.com/google/uuid"
)

// ScriptSource generates a script record for a topic.
type ScriptSource interface {
	Generate(ctx context.Context, topic string) (types.ScriptRecord, error)
}

// Voice turns narration text into an audio file and returns its path.
type Voice interface {
	Synthesize(ctx context.Context, text, outputDir string) (string, error)
}

// FootageSource finds and fetches stock clips for a keywords phrase.
type FootageSource interface {
	Search(ctx context.Context, keywords string, count int) ([]footage.Clip, error)
	Download(ctx context.Context, clips []footage.Clip, outputDir string) []string
}

// Muxer combines the voiceover and clips into the final video file.
type Muxer interface {
	Render(ctx context.Context, audioFile string, clipFiles []string, outputDir string) (string, error)
}

// Publisher uploads the final video and returns its hosted ID and URL.
type Publisher interface {
	Upload(ctx context.Context, videoFile string, rec types.ScriptRecord) (string, string, error)
}

// Pipeline runs the six ordered stages: script → voice → footage search →
// download → mux → publish. Script, voice and mux failures abort the run;
// footage and publish failures degrade instead.
type Pipeline struct {
	cfg     *config.Config
	scripts ScriptSource
	voice   Voice
	footage FootageSource
	muxer   Muxer
	pub     Publisher

	// ConfirmPublish gates the publish stage; nil means never publish.
	ConfirmPublish func(videoFile string, rec types.ScriptRecord) bool
}

// New wires a Pipeline from its stage collaborators
func New(cfg *config.Config, scripts ScriptSource, voice Voice, fs FootageSource, muxer Muxer, pub Publisher) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		scripts: scripts,
		voice:   voice,
		footage: fs,
		muxer:   muxer,
		pub:     pub,
	}
}

// Run executes one full pipeline run for the given topic (empty topic means
// the configured niche). The returned RunRecord is always populated and
// saved to the run directory; err is non-nil only when an essential stage
// (script, voice, mux) failed.
func (p *Pipeline) Run(ctx context.Context, topic string) (*types.RunRecord, error) {
	runID := uuid.NewString()[:8]
	runDir := filepath.Join(p.cfg.Paths.Output, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, fmt.Errorf("create run dir: %w", err)
	}

	log.Println(strings.Repeat("━", 50))
	log.Printf("🤖 Pipeline starting — Run ID: %s", runID)
	log.Printf("📁 Output dir: %s", runDir)
	log.Println(strings.Repeat("━", 50))

	rec := &types.RunRecord{
		RunID:     runID,
		StartedAt: time.Now().UTC().Format(time.RFC3339),
		Topic:     topic,
		Publish:   types.PublishOutcome{Status: types.PublishSkipped},
	}

	err := p.runStages(ctx, topic, runDir, rec)
	if err != nil {
		rec.Error = err.Error()
	}

	rec.CompletedAt = time.Now().UTC().Format(time.RFC3339)
	saveRunRecord(rec, runDir)

	if err != nil {
		return rec, err
	}
	log.Println("✅ Pipeline completed successfully!")
	return rec, nil
}

func (p *Pipeline) runStages(ctx context.Context, topic, runDir string, rec *types.RunRecord) error {
	// Stage 1: script (fail-fast)
	script, err := p.scripts.Generate(ctx, topic)
	if err != nil {
		return fmt.Errorf("script stage: %w", err)
	}
	rec.Record = &script

	// Stage 2: voiceover (fail-fast)
	audioFile, err := p.voice.Synthesize(ctx, script.Script, runDir)
	if err != nil {
		return fmt.Errorf("voice stage: %w", err)
	}
	rec.AudioFile = audioFile

	// Stage 3: footage search (fail-soft; zero footage is tolerated)
	clips, err := p.footage.Search(ctx, script.Keywords, p.cfg.Footage.ClipCount)
	if err != nil {
		log.Printf("⚠️  Footage search failed: %v — continuing without footage", err)
		clips = nil
	}

	// Stage 4: downloads (fail-soft per clip)
	var clipFiles []string
	if len(clips) > 0 {
		clipFiles = p.footage.Download(ctx, clips, runDir)
	}
	rec.ClipFiles = clipFiles

	// Stage 5: mux (fail-fast)
	videoFile, err := p.muxer.Render(ctx, audioFile, clipFiles, runDir)
	if err != nil {
		return fmt.Errorf("mux stage: %w", err)
	}
	rec.VideoFile = videoFile

	// Stage 6: publish (fail-soft, operator-gated)
	rec.Publish = p.publish(ctx, videoFile, script)
	return nil
}

// publish runs the optional upload. A failed upload never fails the run; the
// operator gets manual upload instructions instead.
func (p *Pipeline) publish(ctx context.Context, videoFile string, script types.ScriptRecord) types.PublishOutcome {
	if p.ConfirmPublish == nil || !p.ConfirmPublish(videoFile, script) {
		printManualInstructions(videoFile, script)
		return types.PublishOutcome{Status: types.PublishSkipped}
	}

	videoID, videoURL, err := p.pub.Upload(ctx, videoFile, script)
	if err != nil {
		log.Printf("⚠️  Upload failed: %v", err)
		printManualInstructions(videoFile, script)
		return types.PublishOutcome{Status: types.PublishFailed, Reason: err.Error()}
	}

	return types.PublishOutcome{
		Status:  types.PublishPublished,
		VideoID: videoID,
		URL:     videoURL,
	}
}

func printManualInstructions(videoFile string, script types.ScriptRecord) {
	log.Println("✅ Video ready for manual upload:")
	log.Printf("   File: %s", videoFile)
	log.Printf("   Title: %s", script.Title)
	log.Printf("   Description: %s", script.Description)
	log.Printf("   Tags: %s", strings.Join(script.Tags, ", "))
}

func saveRunRecord(rec *types.RunRecord, dir string) {
	path := filepath.Join(dir, "run.json")
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		log.Printf("Warning: could not marshal run record: %v", err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("Warning: could not save %s: %v", path, err)
	}
}

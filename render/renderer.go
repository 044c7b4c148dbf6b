package render

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"faceless-pipeline/config"
)

// Renderer muxes the voiceover with downloaded footage into the final video
type Renderer struct {
	cfg *config.Config
}

// New creates a new Renderer
func New(cfg *config.Config) *Renderer {
	return &Renderer{cfg: cfg}
}

// Render produces the final mp4. With footage it concatenates the clips
// losslessly, trims to the audio duration and re-encodes to fixed codecs.
// With no footage it synthesizes a solid black background for the exact
// duration of the audio track. The shorter stream determines the final
// length. Any ffmpeg failure aborts the run.
func (r *Renderer) Render(ctx context.Context, audioFile string, clipFiles []string, outputDir string) (string, error) {
	log.Println("[render] 🎥 Creating final video...")

	duration, err := AudioDuration(audioFile)
	if err != nil {
		return "", fmt.Errorf("probe audio duration: %w", err)
	}

	outFile := filepath.Join(outputDir,
		fmt.Sprintf("video_%s.mp4", time.Now().Format("20060102_150405")))

	if len(clipFiles) == 0 {
		log.Println("[render] ⚠️  No footage available — using solid background")
		if err := r.renderBlackBackground(ctx, audioFile, duration, outFile); err != nil {
			return "", err
		}
		log.Printf("[render] ✅ Video created: %s", outFile)
		return outFile, nil
	}

	// Lossless concat first, then trim to audio length and mux.
	listFile := filepath.Join(outputDir, "concat_list.txt")
	if err := writeConcatList(listFile, clipFiles); err != nil {
		return "", fmt.Errorf("write concat list: %w", err)
	}

	tempVideo := filepath.Join(outputDir, "temp_concat.mp4")
	if err := r.concatClips(ctx, listFile, tempVideo); err != nil {
		return "", fmt.Errorf("concatenate clips: %w", err)
	}

	if err := r.muxVideoAudio(ctx, tempVideo, audioFile, duration, outFile); err != nil {
		return "", fmt.Errorf("mux video+audio: %w", err)
	}

	// The final file exists, so the intermediate artifacts are no longer
	// needed.
	os.Remove(tempVideo)
	os.Remove(listFile)

	log.Printf("[render] ✅ Video created: %s", outFile)
	return outFile, nil
}

// renderBlackBackground muxes the audio over a synthesized color source.
func (r *Renderer) renderBlackBackground(ctx context.Context, audioFile string, duration float64, outFile string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=black:s=%s:d=%.3f", r.cfg.Video.Resolution, duration),
		"-i", audioFile,
		"-c:v", "libx264",
		"-c:a", "aac",
		"-r", strconv.Itoa(r.cfg.Video.FPS),
		"-shortest",
		outFile,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg background synth: %w", err)
	}
	return nil
}

func (r *Renderer) concatClips(ctx context.Context, listFile, outFile string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listFile,
		"-c", "copy",
		outFile,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg concat: %w", err)
	}
	return nil
}

func (r *Renderer) muxVideoAudio(ctx context.Context, videoFile, audioFile string, duration float64, outFile string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-i", videoFile,
		"-i", audioFile,
		"-t", fmt.Sprintf("%.3f", duration),
		"-c:v", "libx264",
		"-c:a", "aac",
		"-shortest",
		outFile,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg mux: %w", err)
	}
	return nil
}

// writeConcatList writes the ffmpeg concat demuxer file list, one absolute
// path per line.
func writeConcatList(listFile string, clipFiles []string) error {
	var lines []string
	for _, clip := range clipFiles {
		abs, err := filepath.Abs(clip)
		if err != nil {
			abs = clip
		}
		lines = append(lines, fmt.Sprintf("file '%s'", abs))
	}
	return os.WriteFile(listFile, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}

// AudioDuration uses ffprobe to measure an audio file's length in seconds.
func AudioDuration(audioFile string) (float64, error) {
	out, err := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		audioFile,
	).Output()
	if err != nil {
		return 0, err
	}
	return parseDuration(string(out))
}

func parseDuration(s string) (float64, error) {
	dur, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(s), err)
	}
	return dur, nil
}

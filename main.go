package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"faceless-pipeline/config"
	"faceless-pipeline/footage"
	"faceless-pipeline/pipeline"
	"faceless-pipeline/render"
	"faceless-pipeline/research"
	"faceless-pipeline/script"
	"faceless-pipeline/types"
	"faceless-pipeline/upload"
	"faceless-pipeline/voice"

	"github.com/joho/godotenv"
)

const configFile = "config.yaml"

const banner = `
╔═══════════════════════════════════════════════════════╗
║   FACELESS YOUTUBE VIDEO AUTOMATION                   ║
║   Script → Voice → Footage → Render → Upload          ║
╚═══════════════════════════════════════════════════════╝`

func main() {
	fmt.Println(banner)

	// Load .env for API keys and OAuth credentials (local dev convenience).
	_ = godotenv.Load()

	cfg, err := config.Load(configFile)
	if err != nil {
		if errors.Is(err, config.ErrTemplateCreated) {
			fmt.Printf("❌ %s not found. A template has been created.\n", configFile)
			fmt.Printf("✅ Please edit %s with your API keys and settings\n", configFile)
			os.Exit(1)
		}
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.ApplyEnv()

	if err := os.MkdirAll(cfg.Paths.Output, 0755); err != nil {
		log.Fatalf("Failed to create output dir %s: %v", cfg.Paths.Output, err)
	}

	stdin := bufio.NewReader(os.Stdin)

	fmt.Println("\nOptions:")
	fmt.Println("1. Create video with specific topic")
	fmt.Println("2. Create video with AI-suggested topic")
	fmt.Println("3. Run scheduled automation (coming soon)")

	switch readLine(stdin, "\nSelect option (1-3): ") {
	case "1":
		topic := readLine(stdin, "Enter your video topic: ")
		runPipeline(cfg, stdin, topic)
	case "2":
		topic := research.New(cfg).Suggest(context.Background())
		runPipeline(cfg, stdin, topic)
	case "3":
		fmt.Println("⏰ Scheduled automation will be available in the next version!")
	default:
		fmt.Println("Invalid choice!")
		os.Exit(1)
	}
}

func runPipeline(cfg *config.Config, stdin *bufio.Reader, topic string) {
	p := pipeline.New(cfg,
		script.New(cfg),
		voice.New(cfg),
		footage.New(cfg),
		render.New(cfg),
		upload.New(cfg),
	)
	p.ConfirmPublish = func(videoFile string, rec types.ScriptRecord) bool {
		fmt.Println("\nWould you like to upload to YouTube now?")
		fmt.Println("1. Yes, upload automatically")
		fmt.Println("2. No, I'll upload manually later")
		return readLine(stdin, "Choice (1/2): ") == "1"
	}

	rec, err := p.Run(context.Background(), topic)
	if err != nil {
		log.Printf("❌ Pipeline failed: %v", err)
		os.Exit(1)
	}

	fmt.Println("\n✅ AUTOMATION COMPLETED SUCCESSFULLY!")
	fmt.Printf("   Video: %s\n", rec.VideoFile)
	if rec.Publish.Status == types.PublishPublished {
		fmt.Printf("   Published: %s\n", rec.Publish.URL)
	}
}

func readLine(r *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

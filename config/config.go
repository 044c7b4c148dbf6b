package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrTemplateCreated is returned by Load when no settings file existed and a
// template was written for the operator to fill in.
var ErrTemplateCreated = errors.New("config template created")

type Config struct {
	APIKeys  APIKeysConfig  `yaml:"api_keys"`
	Script   ScriptConfig   `yaml:"script"`
	Voice    VoiceConfig    `yaml:"voice"`
	Footage  FootageConfig  `yaml:"footage"`
	Video    VideoConfig    `yaml:"video"`
	Upload   UploadConfig   `yaml:"upload"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Paths    PathsConfig    `yaml:"paths"`
}

type APIKeysConfig struct {
	Anthropic  string `yaml:"anthropic"`
	ElevenLabs string `yaml:"elevenlabs"`
	Pexels     string `yaml:"pexels"`
}

type ScriptConfig struct {
	Niche     string `yaml:"niche"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

type VoiceConfig struct {
	VoiceID         string  `yaml:"voice_id"`
	Model           string  `yaml:"model"`
	Stability       float64 `yaml:"stability"`
	SimilarityBoost float64 `yaml:"similarity_boost"`
}

type FootageConfig struct {
	ClipCount int `yaml:"clip_count"`
}

type VideoConfig struct {
	Resolution string `yaml:"resolution"`
	FPS        int    `yaml:"fps"`
}

type UploadConfig struct {
	CategoryID string `yaml:"category_id"`
	Privacy    string `yaml:"privacy"`
}

type ScheduleConfig struct {
	Enabled bool     `yaml:"enabled"`
	Time    string   `yaml:"time"`
	Days    []string `yaml:"days"`
}

type PathsConfig struct {
	Output string `yaml:"output"`
}

// Load reads the settings document. If it does not exist, a commented
// template is written to path and ErrTemplateCreated is returned so the
// process can exit before any stage runs.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if werr := writeTemplate(path); werr != nil {
				return nil, fmt.Errorf("create config template: %w", werr)
			}
			return nil, ErrTemplateCreated
		}
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns a Config with every non-secret setting filled in.
func Default() *Config {
	return &Config{
		Script: ScriptConfig{
			Niche:     "technology",
			Model:     "claude-sonnet-4-5-20250929",
			MaxTokens: 2000,
		},
		Voice: VoiceConfig{
			VoiceID:         "21m00Tcm4TlvDq8ikWAM",
			Model:           "eleven_multilingual_v2",
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
		Footage: FootageConfig{ClipCount: 5},
		Video: VideoConfig{
			Resolution: "1920x1080",
			FPS:        30,
		},
		Upload: UploadConfig{
			CategoryID: "22", // People & Blogs
			Privacy:    "public",
		},
		Schedule: ScheduleConfig{
			Enabled: false,
			Time:    "09:00",
			Days:    []string{"monday", "wednesday", "friday"},
		},
		Paths: PathsConfig{Output: "generated_videos"},
	}
}

// ApplyEnv overrides API keys with environment values when set, so secrets
// can live in .env instead of the yaml file.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.APIKeys.Anthropic = v
	}
	if v := os.Getenv("ELEVENLABS_API_KEY"); v != "" {
		c.APIKeys.ElevenLabs = v
	}
	if v := os.Getenv("PEXELS_API_KEY"); v != "" {
		c.APIKeys.Pexels = v
	}
}

func writeTemplate(path string) error {
	tpl := Default()
	tpl.APIKeys = APIKeysConfig{
		Anthropic:  "YOUR_ANTHROPIC_API_KEY",
		ElevenLabs: "YOUR_ELEVENLABS_API_KEY",
		Pexels:     "YOUR_PEXELS_API_KEY",
	}
	data, err := yaml.Marshal(tpl)
	if err != nil {
		return err
	}
	header := []byte("# faceless-pipeline settings\n# Fill in your API keys (or set them in .env) and adjust video settings.\n")
	return os.WriteFile(path, append(header, data...), 0644)
}

package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/keagan/powerhour/pkg/util"
)

type contextKey string

const configKey contextKey = "config"

// Config holds all application configuration
type Config struct {
	TempDir string `yaml:"temp_dir"`

	Playlist PlaylistConfig `yaml:"playlist"`
	Video    VideoConfig    `yaml:"video"`
	YouTube  YouTubeConfig  `yaml:"youtube"`
	FFmpeg   FFmpegConfig   `yaml:"ffmpeg"`
}

// PlaylistConfig holds selection defaults shared by all commands.
type PlaylistConfig struct {
	Limit       int     `yaml:"limit"`
	Shuffle     bool    `yaml:"shuffle"`
	ClipSeconds float64 `yaml:"clip_seconds"`
}

// VideoConfig holds encoding defaults for local builds.
type VideoConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	CRF       int     `yaml:"crf"`
	Preset    string  `yaml:"preset"`
	AudioFade float64 `yaml:"audio_fade"`
}

// YouTubeConfig holds defaults for the HTML player artifacts.
type YouTubeConfig struct {
	PreChorus    float64 `yaml:"pre_chorus"`
	DefaultStart float64 `yaml:"default_start"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	Threads    int    `yaml:"threads"`
}

// Load reads configuration from file or returns defaults. A .env file in
// the working directory is applied first so environment overrides work
// without exporting anything.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func defaultConfig() *Config {
	return &Config{
		TempDir: os.TempDir(),
		Playlist: PlaylistConfig{
			Limit:       60,
			Shuffle:     true,
			ClipSeconds: 60,
		},
		Video: VideoConfig{
			Width:     1280,
			Height:    720,
			CRF:       23,
			Preset:    "medium",
			AudioFade: 0.1,
		},
		YouTube: YouTubeConfig{
			PreChorus:    10,
			DefaultStart: 0,
		},
		FFmpeg: FFmpegConfig{
			BinaryPath: "ffmpeg",
			Threads:    0,
		},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("POWERHOUR_FFMPEG"); v != "" {
		c.FFmpeg.BinaryPath = v
	}
	if v := os.Getenv("POWERHOUR_TEMP_DIR"); v != "" {
		c.TempDir = v
	}
}

func findConfigFile() string {
	candidates := []string{
		"./powerhour.yaml",
		"./powerhour.yml",
		filepath.Join(os.Getenv("HOME"), ".powerhour", "config.yaml"),
	}

	for _, path := range candidates {
		if util.FileExists(path) {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}

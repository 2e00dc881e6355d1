// Package config loads lingodeck settings from defaults, an optional YAML
// file and LINGODECK_* environment variables.
package config

import (
	"time"

	"github.com/abhisek/lingodeck/internal/practice"
)

// Config holds all application configuration.
type Config struct {
	Practice PracticeConfig `mapstructure:"practice" validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Log      LogConfig      `mapstructure:"log" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"`
	UI       UIConfig       `mapstructure:"ui"`
}

// UIConfig controls the terminal interface.
type UIConfig struct {
	// Splash plays the welcome animation on startup.
	Splash bool `mapstructure:"splash"`
}

// PracticeConfig tunes practice sessions.
type PracticeConfig struct {
	// TimerSeconds is the per-card countdown. 0 fails cards on the first tick.
	TimerSeconds      int     `mapstructure:"timer_seconds" validate:"gte=0,lte=3600"`
	DistanceThreshold float64 `mapstructure:"distance_threshold" validate:"gt=0"`
	VelocityThreshold float64 `mapstructure:"velocity_threshold" validate:"gt=0"`
	Shuffle           bool    `mapstructure:"shuffle"`
	FaceFirst         string  `mapstructure:"face_first" validate:"oneof=term definition"`
	Sound             bool    `mapstructure:"sound"`

	// PixelsPerCell converts terminal columns into gesture pixels.
	PixelsPerCell float64 `mapstructure:"pixels_per_cell" validate:"gt=0,lte=64"`
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	File  string `mapstructure:"file"`
}

// LLMConfig selects the deck generation provider.
type LLMConfig struct {
	Provider       string `mapstructure:"provider" validate:"omitempty,oneof=anthropic openai gemini openrouter mock"`
	Model          string `mapstructure:"model"`
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url" validate:"omitempty,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
}

// DefaultPractice returns the practice settings used when nothing is
// configured.
func DefaultPractice() PracticeConfig {
	return PracticeConfig{
		TimerSeconds:      int(practice.DefaultTimerDuration / time.Second),
		DistanceThreshold: practice.DefaultThresholds().Distance,
		VelocityThreshold: practice.DefaultThresholds().Velocity,
		Shuffle:           true,
		FaceFirst:         practice.FaceTerm.String(),
		Sound:             true,
		PixelsPerCell:     8,
	}
}

// Options converts the practice settings into controller options.
func (p PracticeConfig) Options() practice.Options {
	opts := practice.DefaultOptions()
	opts.TimerDuration = time.Duration(p.TimerSeconds) * time.Second
	opts.Thresholds.Distance = p.DistanceThreshold
	opts.Thresholds.Velocity = p.VelocityThreshold
	return opts
}

// Setup returns the default session setup.
func (p PracticeConfig) Setup() practice.Setup {
	return practice.Setup{
		FaceFirst: practice.ParseFace(p.FaceFirst),
		Shuffle:   p.Shuffle,
	}
}

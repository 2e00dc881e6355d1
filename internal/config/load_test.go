package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingodeck/internal/practice"
)

// isolate points the default config dir at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.Practice.TimerSeconds)
	assert.Equal(t, 100.0, cfg.Practice.DistanceThreshold)
	assert.Equal(t, 0.3, cfg.Practice.VelocityThreshold)
	assert.True(t, cfg.Practice.Shuffle)
	assert.Equal(t, "term", cfg.Practice.FaceFirst)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.LLM.Provider)
	assert.True(t, cfg.UI.Splash)
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	p := writeConfig(t, dir, `
practice:
  timer_seconds: 30
  face_first: definition
  shuffle: false
log:
  level: debug
llm:
  provider: gemini
  api_key: test-key
ui:
  splash: false
`)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Practice.TimerSeconds)
	assert.Equal(t, "definition", cfg.Practice.FaceFirst)
	assert.False(t, cfg.Practice.Shuffle)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "test-key", cfg.LLM.APIKey)
	assert.False(t, cfg.UI.Splash)
}

func TestLoad_DefaultDirFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lingodeck"), 0o755))
	writeConfig(t, filepath.Join(dir, "lingodeck"), "practice:\n  timer_seconds: 5\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Practice.TimerSeconds)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	p := writeConfig(t, dir, "practice:\n  timer_seconds: 30\n")
	t.Setenv("LINGODECK_PRACTICE_TIMER_SECONDS", "45")
	t.Setenv("LINGODECK_LOG_LEVEL", "warn")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.Practice.TimerSeconds)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad face", "practice:\n  face_first: back\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"negative timer", "practice:\n  timer_seconds: -1\n"},
		{"zero distance", "practice:\n  distance_threshold: 0\n"},
		{"unknown provider", "llm:\n  provider: skynet\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			_, err := Load(writeConfig(t, dir, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPracticeConfig_Options(t *testing.T) {
	p := PracticeConfig{
		TimerSeconds:      20,
		DistanceThreshold: 80,
		VelocityThreshold: 0.5,
		FaceFirst:         "definition",
		Shuffle:           true,
	}

	opts := p.Options()
	assert.Equal(t, 20*time.Second, opts.TimerDuration)
	assert.Equal(t, 80.0, opts.Thresholds.Distance)
	assert.Equal(t, 0.5, opts.Thresholds.Velocity)
	assert.Equal(t, practice.DefaultThresholds().TapSlop, opts.Thresholds.TapSlop)

	assert.Equal(t, practice.Setup{FaceFirst: practice.FaceDefinition, Shuffle: true}, p.Setup())
}

func TestDefaultPractice_MatchesLoadedDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPractice(), cfg.Practice)
}

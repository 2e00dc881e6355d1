package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSetupCmd builds a command carrying the persistent flags setup reads.
func newSetupCmd(t *testing.T, tui, logStderr bool) *cobra.Command {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	prevLogger, prevCfg := slog.Default(), cfg
	t.Cleanup(func() {
		slog.SetDefault(prevLogger)
		cfg = prevCfg
		if logCloser != nil {
			logCloser.Close()
			logCloser = nil
		}
	})

	c := &cobra.Command{Use: "test"}
	if tui {
		c.Annotations = map[string]string{annotationTUI: "true"}
	}
	c.Flags().String("config", "", "")
	c.Flags().Bool("log-stderr", false, "")
	if logStderr {
		require.NoError(t, c.Flags().Set("log-stderr", "true"))
	}
	return c
}

func TestSetup_RejectsLogStderrForTUI(t *testing.T) {
	c := newSetupCmd(t, true, true)

	err := setup(c, nil)
	assert.ErrorIs(t, err, errLogStderrTUI)
}

func TestSetup_TUILogsToFile(t *testing.T) {
	c := newSetupCmd(t, true, false)

	require.NoError(t, setup(c, nil))
	require.NotNil(t, logCloser)

	slog.Info("hello from setup")
	path := filepath.Join(os.Getenv("XDG_STATE_HOME"), "lingodeck", "lingodeck.log")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from setup")
}

func TestSetup_LogStderrAllowedForPlainCommands(t *testing.T) {
	c := newSetupCmd(t, false, true)

	assert.NoError(t, setup(c, nil))
	assert.Nil(t, logCloser)
}

func TestTUICommandsAreAnnotated(t *testing.T) {
	assert.Equal(t, "true", rootCmd.Annotations[annotationTUI])
	assert.Equal(t, "true", practiceCmd.Annotations[annotationTUI])
	assert.Empty(t, setsCmd.Annotations[annotationTUI])
}

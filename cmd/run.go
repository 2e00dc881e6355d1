package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/lingodeck/internal/app"
	"github.com/abhisek/lingodeck/internal/deckgen"
	"github.com/abhisek/lingodeck/internal/llm"
	"github.com/abhisek/lingodeck/internal/screens/home"
	"github.com/abhisek/lingodeck/internal/sound"
	"github.com/abhisek/lingodeck/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI. A
// non-empty setRef opens that set straight into practice.
func runApp(cmd *cobra.Command, setRef string) error {
	ctx := cmd.Context()
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	pc := practiceConfig()
	opts := app.Options{
		Home: home.Deps{
			Sets:     st.SetRepo(),
			Cards:    st.CardRepo(),
			Sessions: st.SessionRepo(),
			Sound:    sound.New(pc.Sound),
			Practice: pc,
		},
		Splash: cfg != nil && cfg.UI.Splash,
	}

	if setRef != "" {
		set, err := st.SetRepo().GetSet(ctx, setRef)
		if err != nil {
			return fmt.Errorf("find set %q: %w", setRef, err)
		}
		opts.StartSet = set
	}

	gen, err := newGenerator(ctx, st)
	if err != nil {
		slog.Info("deck generation unavailable", "reason", err)
	} else {
		opts.Home.Generator = gen
	}

	return app.Run(opts)
}

// llmConfig builds the provider configuration from the llm config section,
// falling back to well-known API key environment variables.
func llmConfig() (llm.Config, error) {
	if cfg == nil || (cfg.LLM.Provider == "" && cfg.LLM.APIKey == "") {
		c, ok := llm.DiscoverConfig()
		if !ok {
			return llm.Config{}, fmt.Errorf("no LLM provider configured")
		}
		return c, nil
	}

	lc := cfg.LLM
	c := llm.DefaultConfig().WithSettings(lc.Provider, lc.Model, lc.APIKey, lc.BaseURL,
		time.Duration(lc.TimeoutSeconds)*time.Second)
	if err := c.Validate(); err != nil {
		return llm.Config{}, err
	}
	return c, nil
}

// newGenerator wires the configured LLM provider into a deck generator.
func newGenerator(ctx context.Context, st *store.Store) (*deckgen.Service, error) {
	c, err := llmConfig()
	if err != nil {
		return nil, err
	}
	provider, err := llm.NewProvider(ctx, c, st.EventRepo())
	if err != nil {
		return nil, err
	}
	return deckgen.NewService(provider, deckgen.DefaultConfig()), nil
}

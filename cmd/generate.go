package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/lingodeck/internal/deck"
	"github.com/abhisek/lingodeck/internal/deckgen"
	"github.com/abhisek/lingodeck/internal/store"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a card set with an LLM",
	Example: `  lingodeck generate --topic "food and drink" --lang Spanish
  lingodeck generate --topic travel --lang French --count 10 --into "French travel"
  lingodeck generate --topic colors --lang German --out colors.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		topic, _ := flags.GetString("topic")
		lang, _ := flags.GetString("lang")
		count, _ := flags.GetInt("count")
		level, _ := flags.GetString("level")
		into, _ := flags.GetString("into")
		name, _ := flags.GetString("name")
		outPath, _ := flags.GetString("out")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		gen, err := newGenerator(ctx, st)
		if err != nil {
			return fmt.Errorf("deck generation unavailable: %w\n\nSet LINGODECK_LLM_PROVIDER and LINGODECK_LLM_API_KEY, or one of GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY", err)
		}

		input := deckgen.Input{Topic: topic, Language: lang, Level: level, Count: count}

		var target *store.Set
		if into != "" {
			target, err = st.SetRepo().GetSet(ctx, into)
			if err != nil {
				return fmt.Errorf("find set %q: %w", into, err)
			}
			existing, err := st.CardRepo().CardsForSet(ctx, target.ID)
			if err != nil {
				return err
			}
			for _, c := range existing {
				input.Avoid = append(input.Avoid, c.Term)
			}
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Generating %d %s cards about %q...\n", count, lang, topic)
		d, err := gen.Generate(ctx, input)
		if err != nil {
			return fmt.Errorf("generate deck: %w", err)
		}
		if name != "" {
			d.Name = name
		}

		out := cmd.OutOrStdout()
		switch {
		case outPath != "":
			return writeDeck(outPath, d)

		case target != nil:
			ns := d.NewSet()
			if err := st.CardRepo().AddCards(ctx, target.ID, ns.Cards); err != nil {
				return fmt.Errorf("add cards: %w", err)
			}
			fmt.Fprintf(out, "Added %d cards to %q.\n", len(ns.Cards), target.Name)

		default:
			set, err := st.SetRepo().CreateSet(ctx, d.NewSet())
			if errors.Is(err, store.ErrDuplicate) {
				return fmt.Errorf("a set named %q already exists; pass --name or --into", d.Name)
			}
			if err != nil {
				return fmt.Errorf("save deck: %w", err)
			}
			fmt.Fprintf(out, "Created %q with %d cards.\n", set.Name, set.CardCount)
		}
		return nil
	},
}

// writeDeck saves d as an importable deck file.
func writeDeck(path string, d *deck.Deck) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write deck: %w", err)
	}
	return nil
}

func init() {
	f := generateCmd.Flags()
	f.StringP("topic", "t", "", "Vocabulary topic")
	f.StringP("lang", "l", "", "Target language")
	f.IntP("count", "n", 20, "Number of cards")
	f.String("level", deckgen.LevelBeginner, "Learner level: beginner, intermediate or advanced")
	f.String("into", "", "Append the cards to an existing set instead of creating one")
	f.String("name", "", "Name for the new set")
	f.StringP("out", "o", "", "Write a deck file instead of storing the set")
	generateCmd.MarkFlagRequired("topic")
	generateCmd.MarkFlagRequired("lang")
	generateCmd.MarkFlagsMutuallyExclusive("into", "out")
}

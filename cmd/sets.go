package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List and manage card sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		sets, err := st.SetRepo().ListSets(ctx)
		if err != nil {
			return fmt.Errorf("list sets: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sets) == 0 {
			fmt.Fprintln(out, "No card sets yet. Add one with `lingodeck import` or `lingodeck generate`.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-28s  %-10s  %5s  %8s\n", "ID", "Name", "Language", "Cards", "Accuracy")
		fmt.Fprintln(out, strings.Repeat("─", 96))
		for _, s := range sets {
			acc, err := st.SessionRepo().SetAccuracy(ctx, s.ID)
			if err != nil {
				return err
			}
			accuracy := "-"
			if acc.Correct+acc.Incorrect > 0 {
				accuracy = fmt.Sprintf("%.0f%%", acc.Percent())
			}
			fmt.Fprintf(out, "%-36s  %-28s  %-10s  %5d  %8s\n",
				s.ID, truncate(s.Name, 28), truncate(s.Language, 10), s.CardCount, accuracy)
		}
		return nil
	},
}

var setsRmCmd = &cobra.Command{
	Use:   "rm <set>",
	Short: "Delete a card set by name or ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		set, err := st.SetRepo().GetSet(ctx, args[0])
		if err != nil {
			return fmt.Errorf("find set %q: %w", args[0], err)
		}
		if err := st.SetRepo().DeleteSet(ctx, set.ID); err != nil {
			return fmt.Errorf("delete set: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q (%d cards).\n", set.Name, set.CardCount)
		return nil
	},
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func init() {
	setsCmd.AddCommand(setsRmCmd)
}

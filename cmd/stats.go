package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/lingodeck/internal/ui/layout"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		sessions, err := st.SessionRepo().RecentSessions(ctx, limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No finished sessions yet.")
			return nil
		}

		fmt.Fprintln(out, "Recent Sessions")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		fmt.Fprintf(out, "%-16s  %-24s  %5s  %5s  %6s  %7s\n",
			"Ended", "Set", "Right", "Wrong", "Score", "Time")
		fmt.Fprintln(out, strings.Repeat("─", 72))

		var right, wrong int
		for _, s := range sessions {
			setName := s.SetName
			if setName == "" {
				setName = "(deleted set)"
			}
			fmt.Fprintf(out, "%-16s  %-24s  %5d  %5d  %5.0f%%  %7s\n",
				s.EndedAt.Local().Format("2006-01-02 15:04"),
				truncate(setName, 24), s.Correct, s.Incorrect, s.Percent(),
				layout.FormatDuration(s.Duration))
			right += s.Correct
			wrong += s.Incorrect
		}

		fmt.Fprintln(out, strings.Repeat("─", 72))
		overall := 0.0
		if right+wrong > 0 {
			overall = float64(right) / float64(right+wrong) * 100
		}
		fmt.Fprintf(out, "%-16s  %-24s  %5d  %5d  %5.0f%%\n", "TOTAL", "", right, wrong, overall)
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}

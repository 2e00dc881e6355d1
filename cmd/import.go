package cmd

import (
	"fmt"

	"github.com/abhisek/lingodeck/internal/deck"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import card sets from deck JSON files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		if name != "" && len(args) > 1 {
			return fmt.Errorf("--name can only be used with a single file")
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		for _, path := range args {
			d, err := deck.Load(path)
			if err != nil {
				return err
			}
			if name != "" {
				d.Name = name
			}
			set, err := st.SetRepo().CreateSet(cmd.Context(), d.NewSet())
			if err != nil {
				return fmt.Errorf("import %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %q with %d cards.\n", set.Name, set.CardCount)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().String("name", "", "Override the set name from the file")
}

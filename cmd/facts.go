package cmd

import (
	"fmt"
	"os"

	"github.com/keith-kurak/i-didnt-park/internal/facts"
	"github.com/spf13/cobra"
)

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Why avoiding driving matters",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, f := range facts.All() {
			_, _ = fmt.Fprintf(os.Stdout, "%s\n  %s\n\n", f.Title, f.Text)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(factsCmd)
}

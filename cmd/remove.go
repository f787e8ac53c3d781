package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a recorded commute",
	Long:  `Remove a commute by id. A unique id prefix is accepted. Removing an unknown id is a no-op.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveID(args[0])
		if err != nil {
			return err
		}

		appStore.RemoveCommute(id)
		_, _ = fmt.Fprintf(os.Stdout, "Removed: %s\n", shortID(id))

		return nil
	},
}

// resolveID expands an id prefix to the full record id. Ambiguous
// prefixes are rejected; an unknown prefix passes through unchanged so
// the delete stays idempotent.
func resolveID(prefix string) (string, error) {
	var match string

	for _, c := range appStore.Commutes() {
		if len(prefix) <= len(c.ID) && c.ID[:len(prefix)] == prefix {
			if match != "" {
				return "", fmt.Errorf("ambiguous id prefix %q", prefix)
			}

			match = c.ID
		}
	}

	if match == "" {
		return prefix, nil
	}

	return match, nil
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

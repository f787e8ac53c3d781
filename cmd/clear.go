package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded commutes",
	Long:  `Remove every recorded commute. Preferences are kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			if !promptConfirm("Remove all recorded commutes? [y/N]: ") {
				_, _ = fmt.Fprintln(os.Stdout, "Cancelled.")
				return nil
			}
		}

		appStore.ClearAll()
		_, _ = fmt.Fprintln(os.Stdout, "Cleared.")

		return nil
	},
}

func promptConfirm(prompt string) bool {
	_, _ = fmt.Fprint(os.Stdout, prompt)

	reader := bufio.NewReader(os.Stdin)

	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))

	return answer == "y" || answer == "yes"
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Skip confirmation prompt")
}

package cmd

import (
	"fmt"
	"os"

	"github.com/keith-kurak/i-didnt-park/internal/application"
	"github.com/spf13/cobra"
)

// Version is overridable at build time via -ldflags.
var Version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintf(os.Stdout, "%s version %s\n", application.AppName, Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

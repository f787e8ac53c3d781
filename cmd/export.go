package cmd

import (
	"fmt"
	"os"

	"github.com/keith-kurak/i-didnt-park/internal/encoding"
	"github.com/keith-kurak/i-didnt-park/internal/persist"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data as JSON",
	Long:  `Write the full data set (commutes and preferences) as indented JSON, for backup or inspection. Defaults to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := persist.NewDocument(appStore.Commutes(), appStore.Settings())

		if exportOut != "" {
			if err := encoding.SaveJSON(exportOut, doc); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Exported to %s\n", exportOut)

			return nil
		}

		data, err := doc.Encode()
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(os.Stdout, string(data))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Output file (default: stdout)")
}

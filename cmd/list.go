package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/keith-kurak/i-didnt-park/internal/model"
	"github.com/spf13/cobra"
)

var listAvoidedOnly bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded commutes",
	Long:  `Display all recorded commutes in the order they were logged. Distances follow the configured display unit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		commutes := appStore.Commutes()
		settings := appStore.Settings()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "ID\tWHEN\tKIND\tMODE\tDISTANCE\tPARKING\tDESCRIPTION")

		for _, c := range commutes {
			if listAvoidedOnly && c.Kind != model.KindAvoided {
				continue
			}

			value, unit := settings.DisplayDistance(c.EffectiveMiles())

			parking := "-"
			if c.ParkingHours != nil {
				parking = fmt.Sprintf("%.1fh", *c.ParkingHours)
			}

			mode := string(c.Mode)
			if mode == "" {
				mode = "-"
			}

			when := time.UnixMilli(c.CreatedAt).Format("2006-01-02 15:04")

			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f %s\t%s\t%s\n",
				shortID(c.ID), when, c.Kind, mode, value, unit, parking, c.Description)
		}

		return w.Flush()
	},
}

// shortID trims a uuid for display; full ids still work everywhere.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}

	return id
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listAvoidedOnly, "avoided", false, "Show only avoided commutes")
}

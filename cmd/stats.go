package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show running statistics",
	Long:  `Show the derived statistics over all recorded commutes: totals, distance avoided, parking hours avoided and CO₂ saved.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st := appStore.Stats()
		settings := appStore.Settings()

		value, unit := settings.DisplayDistance(st.TotalMilesAvoided)

		_, _ = fmt.Fprintf(os.Stdout, "Total commutes:        %d\n", st.TotalCommutes)
		_, _ = fmt.Fprintf(os.Stdout, "Avoided commutes:      %d\n", st.AvoidedCommutes)
		_, _ = fmt.Fprintf(os.Stdout, "Distance avoided:      %.1f %s\n", value, unit)
		_, _ = fmt.Fprintf(os.Stdout, "Parking hours avoided: %.1f\n", st.TotalParkingHoursAvoided)
		_, _ = fmt.Fprintf(os.Stdout, "CO₂ saved:             %.2f kg\n", st.CO2SavedKg)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

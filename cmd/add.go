package cmd

import (
	"fmt"
	"os"

	"github.com/keith-kurak/i-didnt-park/internal/model"
	"github.com/spf13/cobra"
)

var (
	addDriven       bool
	addMode         string
	addDistance     float64
	addRoundTrip    bool
	addParkingHours float64
)

var addCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Record a commute",
	Long: `Record a commute event. By default the commute counts as avoided
driving; pass --driven for a trip where you drove and parked.

Examples:
  i-didnt-park add "Office run" --mode bicycle --distance 4.5 --round-trip
  i-didnt-park add "Dentist" --driven --distance 12
  i-didnt-park add "Worked from home" --mode avoided-entirely --distance 18 --parking-hours 8`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		draft := model.Draft{
			Kind:          model.KindAvoided,
			Description:   args[0],
			DistanceMiles: addDistance,
			RoundTrip:     addRoundTrip,
		}

		if addDriven {
			draft.Kind = model.KindDriven
		} else {
			mode, err := model.ParseTransportMode(addMode)
			if err != nil {
				return err
			}

			draft.Mode = mode
		}

		if cmd.Flags().Changed("parking-hours") {
			draft.ParkingHours = &addParkingHours
		}

		c, err := appStore.AddCommute(draft)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(os.Stdout, "Added: %s\n", c.ID)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().BoolVar(&addDriven, "driven", false, "Record a drove-and-parked trip")
	addCmd.Flags().StringVar(&addMode, "mode", string(model.ModeWalk), "Transport used instead: walk, bicycle, transit, avoided-entirely")
	addCmd.Flags().Float64Var(&addDistance, "distance", 0, "One-way distance in miles")
	addCmd.Flags().BoolVar(&addRoundTrip, "round-trip", false, "Count the distance both ways")
	addCmd.Flags().Float64Var(&addParkingHours, "parking-hours", 0, "Parking hours avoided")
	_ = addCmd.MarkFlagRequired("distance")
}

package cmd

import (
	"fmt"
	"os"

	"github.com/keith-kurak/i-didnt-park/internal/model"
	"github.com/spf13/cobra"
)

var (
	setUnits        string
	setReminders    bool
	setReminderTime string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change preferences",
	Long: `Show the current preferences, or change them with flags. Only the
flags you pass are changed; everything else is left as is.

Examples:
  i-didnt-park settings
  i-didnt-park settings --units metric
  i-didnt-park settings --reminders=false --reminder-time 08:30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := model.SettingsPatch{}

		if cmd.Flags().Changed("units") {
			u := model.Units(setUnits)
			patch.Units = &u
		}

		if cmd.Flags().Changed("reminders") {
			patch.WeekdayReminders = &setReminders
		}

		if cmd.Flags().Changed("reminder-time") {
			patch.ReminderTime = &setReminderTime
		}

		if patch != (model.SettingsPatch{}) {
			if err := appStore.UpdateSettings(patch); err != nil {
				return err
			}
		}

		s := appStore.Settings()

		_, _ = fmt.Fprintf(os.Stdout, "Units:             %s\n", s.Units)
		_, _ = fmt.Fprintf(os.Stdout, "Weekday reminders: %t\n", s.Notifications.WeekdayReminders)
		_, _ = fmt.Fprintf(os.Stdout, "Reminder time:     %s\n", s.Notifications.ReminderTime)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.Flags().StringVar(&setUnits, "units", "", "Display units: imperial or metric")
	settingsCmd.Flags().BoolVar(&setReminders, "reminders", true, "Enable weekday log reminders")
	settingsCmd.Flags().StringVar(&setReminderTime, "reminder-time", "", "Reminder time, HH:MM 24-hour")
}

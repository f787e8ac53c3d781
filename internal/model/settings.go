package model

import "fmt"

// Units selects the display unit system. Distances are always stored in
// miles; metric is a display transform only.
type Units string

const (
	UnitsImperial Units = "imperial"
	UnitsMetric   Units = "metric"
)

// KilometersPerMile converts stored miles to kilometers for display.
const KilometersPerMile = 1.60934

// ParseUnits converts a string tag to a Units value.
func ParseUnits(s string) (Units, error) {
	switch Units(s) {
	case UnitsImperial, UnitsMetric:
		return Units(s), nil
	}

	return "", fmt.Errorf("unknown units %q", s)
}

// Notifications holds the reminder preferences.
type Notifications struct {
	// WeekdayReminders enables the daily log reminder on weekdays
	WeekdayReminders bool `json:"weekday_reminders"`

	// ReminderTime is the reminder time of day, "HH:MM" 24-hour
	ReminderTime string `json:"reminder_time"`
}

// Settings is the singleton user preferences record.
type Settings struct {
	Units         Units         `json:"units"`
	Notifications Notifications `json:"notifications"`
}

// DefaultSettings returns the out-of-the-box preferences: imperial
// units, weekday reminders on at 17:00.
func DefaultSettings() Settings {
	return Settings{
		Units: UnitsImperial,
		Notifications: Notifications{
			WeekdayReminders: true,
			ReminderTime:     "17:00",
		},
	}
}

// SettingsPatch is a partial Settings update. Nil fields are left
// untouched by Apply; the Notifications sub-object merges one level deep.
type SettingsPatch struct {
	Units            *Units
	WeekdayReminders *bool
	ReminderTime     *string
}

// Validate checks the patch fields that carry invariants.
func (p SettingsPatch) Validate() error {
	if p.Units != nil {
		if _, err := ParseUnits(string(*p.Units)); err != nil {
			return &ValidationError{Field: "units", Reason: err.Error()}
		}
	}

	if p.ReminderTime != nil {
		if !validReminderTime(*p.ReminderTime) {
			return &ValidationError{Field: "reminder_time", Reason: "must be HH:MM 24-hour"}
		}
	}

	return nil
}

// Apply merges the patch into the settings and returns the result.
func (s Settings) Apply(p SettingsPatch) Settings {
	if p.Units != nil {
		s.Units = *p.Units
	}

	if p.WeekdayReminders != nil {
		s.Notifications.WeekdayReminders = *p.WeekdayReminders
	}

	if p.ReminderTime != nil {
		s.Notifications.ReminderTime = *p.ReminderTime
	}

	return s
}

// DisplayDistance converts stored miles to the display unit.
func (s Settings) DisplayDistance(miles float64) (value float64, unit string) {
	if s.Units == UnitsMetric {
		return miles * KilometersPerMile, "km"
	}

	return miles, "mi"
}

func validReminderTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}

	hh := int(s[0]-'0')*10 + int(s[1]-'0')
	mm := int(s[3]-'0')*10 + int(s[4]-'0')

	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return hh < 24 && mm < 60
}

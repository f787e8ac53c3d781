package persist

import (
	"fmt"

	"github.com/keith-kurak/i-didnt-park/internal/encoding"
	"github.com/keith-kurak/i-didnt-park/internal/model"
)

// Document is the medium-independent persisted payload: the full
// commute collection plus the settings singleton, as one versionable
// JSON-shaped value. Fields added in later versions must default
// sensibly on load.
type Document struct {
	Commutes []model.Commute `json:"commutes"`
	Settings model.Settings  `json:"settings"`
}

// NewDocument wraps the state in a Document. A nil collection encodes
// as an empty array so the payload is stable.
func NewDocument(commutes []model.Commute, settings model.Settings) Document {
	if commutes == nil {
		commutes = []model.Commute{}
	}

	return Document{Commutes: commutes, Settings: settings}
}

// Encode serializes the document as indented JSON.
func (d Document) Encode() ([]byte, error) {
	return encoding.ToJSONIndent(d)
}

// DecodeDocument parses a persisted payload. Missing fields fall back
// to defaults: an absent settings object loads as DefaultSettings.
func DecodeDocument(data []byte) (Document, error) {
	raw, err := encoding.ParseJSON[rawDocument](data)
	if err != nil {
		return Document{}, fmt.Errorf("corrupt payload: %w", err)
	}

	doc := Document{Commutes: raw.Commutes}

	if raw.Settings != nil {
		doc.Settings = *raw.Settings
	} else {
		doc.Settings = model.DefaultSettings()
	}

	// Fields added after a payload was written default sensibly, and an
	// unrecognized units tag loads as the default rather than leaking an
	// invalid value into the store.
	defaults := model.DefaultSettings()

	if _, err := model.ParseUnits(string(doc.Settings.Units)); err != nil {
		doc.Settings.Units = defaults.Units
	}

	if doc.Settings.Notifications.ReminderTime == "" {
		doc.Settings.Notifications.ReminderTime = defaults.Notifications.ReminderTime
	}

	return doc, nil
}

// rawDocument distinguishes an absent settings object from a
// zero-valued one during decode.
type rawDocument struct {
	Commutes []model.Commute `json:"commutes"`
	Settings *model.Settings `json:"settings"`
}

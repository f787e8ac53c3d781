package store

import (
	"testing"

	"github.com/keith-kurak/i-didnt-park/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hours(v float64) *float64 { return &v }

func avoidedDraft(desc string) model.Draft {
	return model.Draft{
		Kind:          model.KindAvoided,
		Mode:          model.ModeWalk,
		Description:   desc,
		DistanceMiles: 2,
	}
}

func TestStore_AddCommute(t *testing.T) {
	s := New()

	c, err := s.AddCommute(avoidedDraft("Morning walk"))
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)

	got := s.Commutes()
	require.Len(t, got, 1)
	assert.Equal(t, c.ID, got[0].ID)
	assert.Equal(t, "Morning walk", got[0].Description)
}

func TestStore_AddCommute_RejectsInvalidDraft(t *testing.T) {
	s := New()

	_, err := s.AddCommute(model.Draft{Kind: model.KindDriven, Description: "x", DistanceMiles: -1})

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, s.Commutes(), "a rejected draft must not change state")
}

func TestStore_InsertionOrderIsDisplayOrder(t *testing.T) {
	s := New()

	first, err := s.AddCommute(avoidedDraft("first"))
	require.NoError(t, err)
	second, err := s.AddCommute(avoidedDraft("second"))
	require.NoError(t, err)
	third, err := s.AddCommute(avoidedDraft("third"))
	require.NoError(t, err)

	s.RemoveCommute(second.ID)

	got := s.Commutes()
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, third.ID, got[1].ID)
}

func TestStore_RemoveCommute_Idempotent(t *testing.T) {
	s := New()

	c, err := s.AddCommute(avoidedDraft("walk"))
	require.NoError(t, err)

	s.RemoveCommute(c.ID)
	after := s.Commutes()

	s.RemoveCommute(c.ID)
	s.RemoveCommute("never-existed")

	assert.Equal(t, after, s.Commutes())
}

func TestStore_StatsTrackCollection(t *testing.T) {
	s := New()

	assert.Equal(t, model.Stats{}, s.Stats())

	_, err := s.AddCommute(model.Draft{
		Kind:          model.KindDriven,
		Description:   "Dentist",
		DistanceMiles: 5,
		RoundTrip:     true,
	})
	require.NoError(t, err)

	st := s.Stats()
	assert.Equal(t, 1, st.TotalCommutes)
	assert.Zero(t, st.TotalMilesAvoided, "driven commutes never count as avoided")

	_, err = s.AddCommute(model.Draft{
		Kind:          model.KindAvoided,
		Mode:          model.ModeWalk,
		Description:   "Morning walk",
		DistanceMiles: 2,
		RoundTrip:     true,
		ParkingHours:  hours(1.5),
	})
	require.NoError(t, err)

	st = s.Stats()
	assert.Equal(t, 2, st.TotalCommutes)
	assert.Equal(t, 1, st.AvoidedCommutes)
	assert.InDelta(t, 4.0, st.TotalMilesAvoided, 1e-9)
	assert.InDelta(t, 1.5, st.TotalParkingHoursAvoided, 1e-9)
	assert.InDelta(t, 1.616, st.CO2SavedKg, 1e-9)
}

func TestStore_UpdateSettings_PartialMerge(t *testing.T) {
	s := New()

	units := model.UnitsMetric
	require.NoError(t, s.UpdateSettings(model.SettingsPatch{Units: &units}))

	got := s.Settings()
	assert.Equal(t, model.UnitsMetric, got.Units)
	assert.Equal(t, model.DefaultSettings().Notifications, got.Notifications,
		"units patch must leave notifications untouched")
}

func TestStore_UpdateSettings_RejectsBadPatch(t *testing.T) {
	s := New()

	bad := "25:00"
	err := s.UpdateSettings(model.SettingsPatch{ReminderTime: &bad})

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, model.DefaultSettings(), s.Settings())
}

func TestStore_ClearAll(t *testing.T) {
	s := New()

	units := model.UnitsMetric
	require.NoError(t, s.UpdateSettings(model.SettingsPatch{Units: &units}))

	for i := 0; i < 3; i++ {
		_, err := s.AddCommute(avoidedDraft("walk"))
		require.NoError(t, err)
	}

	s.ClearAll()

	assert.Empty(t, s.Commutes())
	assert.Equal(t, 0, s.Stats().TotalCommutes)
	assert.Equal(t, model.UnitsMetric, s.Settings().Units, "clear must not touch settings")
}

func TestStore_Subscribe(t *testing.T) {
	s := New()

	var snaps []Snapshot

	unsubscribe := s.Subscribe(func(snap Snapshot) {
		snaps = append(snaps, snap)
	})

	c, err := s.AddCommute(avoidedDraft("walk"))
	require.NoError(t, err)
	require.Len(t, snaps, 1, "mutation must notify before returning")
	require.Len(t, snaps[0].Commutes, 1)
	assert.Equal(t, c.ID, snaps[0].Commutes[0].ID)

	s.RemoveCommute(c.ID)
	require.Len(t, snaps, 2)
	assert.Empty(t, snaps[1].Commutes)

	unsubscribe()

	s.ClearAll()
	assert.Len(t, snaps, 2, "no notifications after unsubscribe")
}

func TestStore_ReturnedSnapshotsAreCopies(t *testing.T) {
	s := New()

	_, err := s.AddCommute(model.Draft{
		Kind:          model.KindAvoided,
		Mode:          model.ModeWalk,
		Description:   "walk",
		DistanceMiles: 2,
		ParkingHours:  hours(1),
	})
	require.NoError(t, err)

	got := s.Commutes()
	got[0].Description = "tampered"
	*got[0].ParkingHours = 99

	fresh := s.Commutes()
	assert.Equal(t, "walk", fresh[0].Description)
	assert.Equal(t, 1.0, *fresh[0].ParkingHours)
}

func TestStore_ReplaceDoesNotNotify(t *testing.T) {
	s := New()

	notified := 0

	s.Subscribe(func(Snapshot) { notified++ })

	s.Replace([]model.Commute{{ID: "x", Kind: model.KindDriven, Description: "d", DistanceMiles: 1}}, model.DefaultSettings())

	assert.Zero(t, notified, "hydration must not fire observers")
	assert.Len(t, s.Commutes(), 1)
}

// Package stats derives the aggregate view over the commute collection.
package stats

import "github.com/keith-kurak/i-didnt-park/internal/model"

// Compute folds the collection into a Stats snapshot in one pass.
// An empty collection yields all-zero stats.
func Compute(commutes []model.Commute) model.Stats {
	var s model.Stats

	s.TotalCommutes = len(commutes)

	for _, c := range commutes {
		if c.Kind != model.KindAvoided {
			continue
		}

		s.AvoidedCommutes++
		s.TotalMilesAvoided += c.EffectiveMiles()

		if c.ParkingHours != nil {
			s.TotalParkingHoursAvoided += *c.ParkingHours
		}
	}

	s.CO2SavedKg = s.TotalMilesAvoided * model.CO2KgPerMile

	return s
}

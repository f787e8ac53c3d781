package model

// CO2KgPerMile is the emission estimate used for savings: roughly 404 g
// of CO₂ per mile for an average car.
const CO2KgPerMile = 0.404

// Stats is the derived aggregate view over the commute collection. It is
// never persisted; it is recomputed from the collection on every read.
type Stats struct {
	TotalCommutes            int     `json:"total_commutes"`
	AvoidedCommutes          int     `json:"avoided_commutes"`
	TotalMilesAvoided        float64 `json:"total_miles_avoided"`
	TotalParkingHoursAvoided float64 `json:"total_parking_hours_avoided"`
	CO2SavedKg               float64 `json:"co2_saved_kg"`
}

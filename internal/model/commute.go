package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CommuteKind discriminates a recorded trip: the user either drove and
// parked, or avoided driving altogether.
type CommuteKind string

const (
	// KindDriven marks a commute where the user drove and parked
	KindDriven CommuteKind = "driven"

	// KindAvoided marks a commute where driving was avoided
	KindAvoided CommuteKind = "avoided"
)

// ParseCommuteKind converts a string tag to a CommuteKind.
func ParseCommuteKind(s string) (CommuteKind, error) {
	switch CommuteKind(s) {
	case KindDriven, KindAvoided:
		return CommuteKind(s), nil
	}

	return "", fmt.Errorf("unknown commute kind %q", s)
}

// TransportMode is how an avoided commute was made instead. It is only
// meaningful when the kind is KindAvoided.
type TransportMode string

const (
	// ModeUnspecified is the zero value, used for driven commutes
	ModeUnspecified TransportMode = ""

	ModeWalk            TransportMode = "walk"
	ModeBicycle         TransportMode = "bicycle"
	ModeTransit         TransportMode = "transit"
	ModeAvoidedEntirely TransportMode = "avoided-entirely"
)

// ParseTransportMode converts a string tag to a TransportMode.
// The empty string parses to ModeUnspecified.
func ParseTransportMode(s string) (TransportMode, error) {
	switch TransportMode(s) {
	case ModeUnspecified, ModeWalk, ModeBicycle, ModeTransit, ModeAvoidedEntirely:
		return TransportMode(s), nil
	}

	return "", fmt.Errorf("unknown transport mode %q", s)
}

// Commute is one recorded trip-or-avoidance event. Records are immutable
// once created; they are removed wholesale, never edited in place.
type Commute struct {
	// ID is the unique identifier, assigned at creation
	ID string `json:"id"`

	// Kind is whether the user drove or avoided driving
	Kind CommuteKind `json:"kind"`

	// Mode is the alternative transport used; absent for driven commutes
	Mode TransportMode `json:"mode,omitempty"`

	// Description is a free-text label for the trip
	Description string `json:"description"`

	// DistanceMiles is the one-way distance, always stored in miles
	DistanceMiles float64 `json:"distance_miles"`

	// RoundTrip doubles the distance for aggregate purposes
	RoundTrip bool `json:"round_trip"`

	// ParkingHours is how long parking would have lasted; nil when not recorded
	ParkingHours *float64 `json:"parking_hours,omitempty"`

	// CreatedAt is the creation time in epoch milliseconds
	CreatedAt int64 `json:"created_at"`
}

// Draft is the caller-supplied portion of a new Commute. The store
// assigns ID and CreatedAt when the draft is accepted.
type Draft struct {
	Kind          CommuteKind
	Mode          TransportMode
	Description   string
	DistanceMiles float64
	RoundTrip     bool
	ParkingHours  *float64
}

// Validate checks the draft against the entity invariants. It returns a
// *ValidationError describing the first violation found.
func (d Draft) Validate() error {
	if _, err := ParseCommuteKind(string(d.Kind)); err != nil {
		return &ValidationError{Field: "kind", Reason: err.Error()}
	}

	if _, err := ParseTransportMode(string(d.Mode)); err != nil {
		return &ValidationError{Field: "mode", Reason: err.Error()}
	}

	switch d.Kind {
	case KindAvoided:
		if d.Mode == ModeUnspecified {
			return &ValidationError{Field: "mode", Reason: "required for avoided commutes"}
		}
	case KindDriven:
		if d.Mode != ModeUnspecified {
			return &ValidationError{Field: "mode", Reason: "only valid for avoided commutes"}
		}
	}

	if d.Description == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}

	if d.DistanceMiles <= 0 {
		return &ValidationError{Field: "distance_miles", Reason: "must be positive"}
	}

	if d.ParkingHours != nil && *d.ParkingHours < 0 {
		return &ValidationError{Field: "parking_hours", Reason: "must not be negative"}
	}

	return nil
}

// NewCommute materializes a validated draft into a Commute with a fresh
// id and the current timestamp.
func NewCommute(d Draft) (Commute, error) {
	if err := d.Validate(); err != nil {
		return Commute{}, err
	}

	return Commute{
		ID:            uuid.New().String(),
		Kind:          d.Kind,
		Mode:          d.Mode,
		Description:   d.Description,
		DistanceMiles: d.DistanceMiles,
		RoundTrip:     d.RoundTrip,
		ParkingHours:  cloneFloat(d.ParkingHours),
		CreatedAt:     time.Now().UnixMilli(),
	}, nil
}

// EffectiveMiles is the distance counted toward aggregates: the stored
// one-way distance, doubled for round trips.
func (c Commute) EffectiveMiles() float64 {
	if c.RoundTrip {
		return c.DistanceMiles * 2
	}

	return c.DistanceMiles
}

// Clone returns a deep copy of the commute.
func (c Commute) Clone() Commute {
	c.ParkingHours = cloneFloat(c.ParkingHours)
	return c
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}

	v := *f

	return &v
}

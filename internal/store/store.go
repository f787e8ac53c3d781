package store

import (
	"sync"

	"github.com/keith-kurak/i-didnt-park/internal/model"
	"github.com/keith-kurak/i-didnt-park/internal/stats"
)

// Snapshot is a point-in-time copy of the store's state, handed to
// observers after every mutation.
type Snapshot struct {
	Commutes []model.Commute
	Settings model.Settings
}

// Observer receives the post-mutation snapshot. Observers run
// synchronously on the mutating goroutine and must not call back into
// the store; everything they need is in the snapshot.
type Observer func(Snapshot)

// Store owns the commute collection and settings.
type Store struct {
	mu        sync.RWMutex
	commutes  []model.Commute
	settings  model.Settings
	observers map[int]Observer
	nextObs   int
}

// New returns an empty store with default settings.
func New() *Store {
	return &Store{
		settings:  model.DefaultSettings(),
		observers: make(map[int]Observer),
	}
}

// Subscribe registers an observer for mutation notifications. The
// returned function unregisters it.
func (s *Store) Subscribe(obs Observer) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextObs
	s.nextObs++
	s.observers[id] = obs

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		delete(s.observers, id)
	}
}

// AddCommute validates the draft, assigns an id and timestamp, and
// appends the record to the collection. The created record is returned.
func (s *Store) AddCommute(d model.Draft) (model.Commute, error) {
	c, err := model.NewCommute(d)
	if err != nil {
		return model.Commute{}, err
	}

	s.mu.Lock()
	s.commutes = append(s.commutes, c)
	snap, obs := s.snapshotLocked()
	s.mu.Unlock()

	notify(obs, snap)

	return c.Clone(), nil
}

// RemoveCommute deletes the record with the given id. Removing an
// unknown id is a no-op.
func (s *Store) RemoveCommute(id string) {
	s.mu.Lock()

	idx := -1

	for i, c := range s.commutes {
		if c.ID == id {
			idx = i
			break
		}
	}

	if idx < 0 {
		s.mu.Unlock()
		return
	}

	s.commutes = append(s.commutes[:idx], s.commutes[idx+1:]...)
	snap, obs := s.snapshotLocked()
	s.mu.Unlock()

	notify(obs, snap)
}

// UpdateSettings merges the patch into the current settings. Nil patch
// fields are untouched; the notifications sub-object merges one level
// deep.
func (s *Store) UpdateSettings(p model.SettingsPatch) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.settings = s.settings.Apply(p)
	snap, obs := s.snapshotLocked()
	s.mu.Unlock()

	notify(obs, snap)

	return nil
}

// ClearAll empties the commute collection. Settings are unaffected.
func (s *Store) ClearAll() {
	s.mu.Lock()
	s.commutes = nil
	snap, obs := s.snapshotLocked()
	s.mu.Unlock()

	notify(obs, snap)
}

// Replace swaps in previously persisted state wholesale. It is meant
// for hydration at startup and does not notify observers.
func (s *Store) Replace(commutes []model.Commute, settings model.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commutes = cloneCommutes(commutes)
	s.settings = settings
}

// Commutes returns a snapshot copy of the collection in insertion order.
func (s *Store) Commutes() []model.Commute {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneCommutes(s.commutes)
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings
}

// Stats recomputes the derived aggregate from the current collection.
func (s *Store) Stats() model.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return stats.Compute(s.commutes)
}

// snapshotLocked copies the state and observer list while the write
// lock is held. Observers are invoked after the lock is released so a
// slow observer never blocks readers.
func (s *Store) snapshotLocked() (Snapshot, []Observer) {
	snap := Snapshot{
		Commutes: cloneCommutes(s.commutes),
		Settings: s.settings,
	}

	obs := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		obs = append(obs, o)
	}

	return snap, obs
}

func notify(obs []Observer, snap Snapshot) {
	for _, o := range obs {
		o(snap)
	}
}

func cloneCommutes(in []model.Commute) []model.Commute {
	if len(in) == 0 {
		return nil
	}

	out := make([]model.Commute, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}

	return out
}

package persist

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/keith-kurak/i-didnt-park/internal/model"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS commutes (
	position       INTEGER PRIMARY KEY AUTOINCREMENT,
	id             TEXT    NOT NULL UNIQUE,
	kind           TEXT    NOT NULL,
	mode           TEXT    NOT NULL DEFAULT '',
	description    TEXT    NOT NULL,
	distance_miles REAL    NOT NULL,
	round_trip     INTEGER NOT NULL,
	parking_hours  REAL,
	created_at     INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
	id                INTEGER PRIMARY KEY CHECK (id = 1),
	units             TEXT    NOT NULL,
	weekday_reminders INTEGER NOT NULL,
	reminder_time     TEXT    NOT NULL
);
`

// SQLiteAdapter persists state in an embedded relational store.
// Insertion order is preserved through the auto-assigned position
// column; the settings singleton lives in a one-row table.
type SQLiteAdapter struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenSQLite opens (creating if needed) the database under dir.
func OpenSQLite(dir string) (*SQLiteAdapter, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, &PersistenceError{Op: "open", Err: fmt.Errorf("creating data directory: %w", err)}
	}

	path := filepath.Join(dir, StoreName+".db")

	// WAL for durability without blocking readers
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, &PersistenceError{Op: "open", Err: err}
	}

	// SQLite doesn't handle multiple writers well
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()

		return nil, &PersistenceError{Op: "open", Err: fmt.Errorf("applying schema: %w", err)}
	}

	return &SQLiteAdapter{db: db}, nil
}

func (a *SQLiteAdapter) Close() error {
	return a.db.Close()
}

// LoadAll reads the full persisted state. A database with no settings
// row has never been saved to; it yields the defaults.
func (a *SQLiteAdapter) LoadAll() ([]model.Commute, model.Settings, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	settings := model.DefaultSettings()

	row := a.db.QueryRow(`SELECT units, weekday_reminders, reminder_time FROM settings WHERE id = 1`)

	var (
		units     string
		reminders bool
		remTime   string
	)

	switch err := row.Scan(&units, &reminders, &remTime); {
	case errors.Is(err, sql.ErrNoRows):
		// never saved, keep defaults
	case err != nil:
		return nil, model.Settings{}, &PersistenceError{Op: "load", Err: err}
	default:
		if u, err := model.ParseUnits(units); err == nil {
			settings.Units = u
		}

		settings.Notifications.WeekdayReminders = reminders
		settings.Notifications.ReminderTime = remTime
	}

	rows, err := a.db.Query(`
		SELECT id, kind, mode, description, distance_miles, round_trip, parking_hours, created_at
		FROM commutes ORDER BY position`)
	if err != nil {
		return nil, model.Settings{}, &PersistenceError{Op: "load", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var commutes []model.Commute

	for rows.Next() {
		var (
			c       model.Commute
			parking sql.NullFloat64
		)

		if err := rows.Scan(&c.ID, &c.Kind, &c.Mode, &c.Description,
			&c.DistanceMiles, &c.RoundTrip, &parking, &c.CreatedAt); err != nil {
			return nil, model.Settings{}, &PersistenceError{Op: "load", Err: err}
		}

		if parking.Valid {
			v := parking.Float64
			c.ParkingHours = &v
		}

		commutes = append(commutes, c)
	}

	if err := rows.Err(); err != nil {
		return nil, model.Settings{}, &PersistenceError{Op: "load", Err: err}
	}

	return commutes, settings, nil
}

// SaveAll replaces the persisted state inside one transaction, so a
// failed write leaves the previous snapshot intact.
func (a *SQLiteAdapter) SaveAll(commutes []model.Commute, settings model.Settings) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	tx, err := a.db.Begin()
	if err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}

	if err := saveAllTx(tx, commutes, settings); err != nil {
		_ = tx.Rollback()

		return &PersistenceError{Op: "save", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}

	return nil
}

func saveAllTx(tx *sql.Tx, commutes []model.Commute, settings model.Settings) error {
	if _, err := tx.Exec(`DELETE FROM commutes`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO commutes (id, kind, mode, description, distance_miles, round_trip, parking_hours, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, c := range commutes {
		var parking any
		if c.ParkingHours != nil {
			parking = *c.ParkingHours
		}

		if _, err := stmt.Exec(c.ID, string(c.Kind), string(c.Mode), c.Description,
			c.DistanceMiles, c.RoundTrip, parking, c.CreatedAt); err != nil {
			return err
		}
	}

	_, err = tx.Exec(`
		INSERT INTO settings (id, units, weekday_reminders, reminder_time)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			units = excluded.units,
			weekday_reminders = excluded.weekday_reminders,
			reminder_time = excluded.reminder_time`,
		string(settings.Units), settings.Notifications.WeekdayReminders,
		settings.Notifications.ReminderTime)

	return err
}

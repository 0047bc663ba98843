package store

import (
	"database/sql"
	"errors"
)

// Setting keys.
const (
	// KeyActiveCalibration holds the ID of the calibration applied at start.
	KeyActiveCalibration = "active_calibration"
)

// SettingsRepository is a string key/value store.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Get returns the value for key, or ErrNotFound.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return value, err
}

// Set stores value under key, replacing any previous value.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// Delete removes key. Missing keys are not an error.
func (r *SettingsRepository) Delete(key string) error {
	_, err := r.db.Exec(`DELETE FROM settings WHERE key = ?`, key)
	return err
}

// ActiveCalibration returns the calibration marked active, or ErrNotFound
// when none is.
func (s *Store) ActiveCalibration() (*Calibration, error) {
	id, err := s.Settings().Get(KeyActiveCalibration)
	if err != nil {
		return nil, err
	}
	return s.Calibrations().GetByID(id)
}

// SetActiveCalibration marks calibration id active. The calibration must
// exist.
func (s *Store) SetActiveCalibration(id string) error {
	if _, err := s.Calibrations().GetByID(id); err != nil {
		return err
	}
	return s.Settings().Set(KeyActiveCalibration, id)
}

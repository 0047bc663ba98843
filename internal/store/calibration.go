package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/hoopshot/internal/physics"
)

// Calibration is a named rim-post layout.
type Calibration struct {
	ID     string
	Name   string
	Layout physics.Layout
	// Width and Height are the display size the layout was measured on.
	Width     float64
	Height    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CalibrationRepository provides CRUD operations for calibrations.
type CalibrationRepository struct {
	db *sql.DB
}

// Calibrations returns the calibration repository for this store.
func (s *Store) Calibrations() *CalibrationRepository {
	return &CalibrationRepository{db: s.db}
}

const calibrationColumns = `id, name, layout, width, height, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanCalibration(row scanner) (*Calibration, error) {
	c := &Calibration{}
	var layout string
	if err := row.Scan(&c.ID, &c.Name, &layout, &c.Width, &c.Height, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(layout), &c.Layout); err != nil {
		return nil, fmt.Errorf("calibration %s: decode layout: %w", c.ID, err)
	}
	return c, nil
}

// Create inserts c, assigning a new ID when it has none.
func (r *CalibrationRepository) Create(c *Calibration) error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	layout, err := json.Marshal(c.Layout)
	if err != nil {
		return err
	}

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err = r.db.Exec(
		`INSERT INTO calibrations (`+calibrationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, string(layout), c.Width, c.Height, c.CreatedAt, c.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("calibration %q: %w", c.Name, ErrDuplicate)
	}
	return err
}

// GetByID retrieves a calibration by ID.
func (r *CalibrationRepository) GetByID(id string) (*Calibration, error) {
	c, err := scanCalibration(r.db.QueryRow(
		`SELECT `+calibrationColumns+` FROM calibrations WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

// GetByName retrieves a calibration by name.
func (r *CalibrationRepository) GetByName(name string) (*Calibration, error) {
	c, err := scanCalibration(r.db.QueryRow(
		`SELECT `+calibrationColumns+` FROM calibrations WHERE name = ?`, name,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

// List returns every calibration, most recently updated first.
func (r *CalibrationRepository) List() ([]*Calibration, error) {
	rows, err := r.db.Query(
		`SELECT ` + calibrationColumns + ` FROM calibrations ORDER BY updated_at DESC, name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Calibration
	for rows.Next() {
		c, err := scanCalibration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update saves c's name, layout and size.
func (r *CalibrationRepository) Update(c *Calibration) error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	layout, err := json.Marshal(c.Layout)
	if err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()

	result, err := r.db.Exec(
		`UPDATE calibrations SET name = ?, layout = ?, width = ?, height = ?, updated_at = ?
		 WHERE id = ?`,
		c.Name, string(layout), c.Width, c.Height, c.UpdatedAt, c.ID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("calibration %q: %w", c.Name, ErrDuplicate)
	}
	if err != nil {
		return err
	}
	return requireRow(result)
}

// Delete removes a calibration. Deleting the active calibration also clears
// the active setting.
func (r *CalibrationRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM calibrations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err := requireRow(result); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM settings WHERE key = ? AND value = ?`, KeyActiveCalibration, id); err != nil {
		return err
	}
	return tx.Commit()
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

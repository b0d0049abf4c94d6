package store

import (
	"database/sql"
	"errors"
	"time"
)

// Profile represents a named interaction tuning profile. The active profile
// drives the gesture classifier and camera controller configuration.
type Profile struct {
	ID                   string
	Name                 string
	DwellMs              int
	DollyGain            float64
	PanGain              float64
	RotateGain           float64
	SmoothingAlpha       float64
	ClearFocusOnHandLoss bool
	Active               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ProfileRepository provides CRUD operations for profiles.
type ProfileRepository struct {
	db *sql.DB
}

// Profiles returns the profile repository for this store.
func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{db: s.db}
}

// Create inserts a new profile into the database.
func (r *ProfileRepository) Create(p *Profile) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO profiles (id, name, dwell_ms, dolly_gain, pan_gain, rotate_gain,
		 smoothing_alpha, clear_focus_on_hand_loss, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.DwellMs, p.DollyGain, p.PanGain, p.RotateGain,
		p.SmoothingAlpha, boolToInt(p.ClearFocusOnHandLoss), boolToInt(p.Active),
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a profile by its ID.
func (r *ProfileRepository) GetByID(id string) (*Profile, error) {
	return r.scanOne(r.db.QueryRow(
		`SELECT id, name, dwell_ms, dolly_gain, pan_gain, rotate_gain,
		 smoothing_alpha, clear_focus_on_hand_loss, active, created_at, updated_at
		 FROM profiles WHERE id = ?`,
		id,
	))
}

// GetByName retrieves a profile by its name.
func (r *ProfileRepository) GetByName(name string) (*Profile, error) {
	return r.scanOne(r.db.QueryRow(
		`SELECT id, name, dwell_ms, dolly_gain, pan_gain, rotate_gain,
		 smoothing_alpha, clear_focus_on_hand_loss, active, created_at, updated_at
		 FROM profiles WHERE name = ?`,
		name,
	))
}

// GetActive retrieves the currently active profile.
func (r *ProfileRepository) GetActive() (*Profile, error) {
	return r.scanOne(r.db.QueryRow(
		`SELECT id, name, dwell_ms, dolly_gain, pan_gain, rotate_gain,
		 smoothing_alpha, clear_focus_on_hand_loss, active, created_at, updated_at
		 FROM profiles WHERE active = 1 LIMIT 1`,
	))
}

// List retrieves all profiles from the database.
func (r *ProfileRepository) List() ([]*Profile, error) {
	rows, err := r.db.Query(
		`SELECT id, name, dwell_ms, dolly_gain, pan_gain, rotate_gain,
		 smoothing_alpha, clear_focus_on_hand_loss, active, created_at, updated_at
		 FROM profiles ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p := &Profile{}
		var clearFocus, active int

		err := rows.Scan(&p.ID, &p.Name, &p.DwellMs, &p.DollyGain, &p.PanGain,
			&p.RotateGain, &p.SmoothingAlpha, &clearFocus, &active,
			&p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}

		p.ClearFocusOnHandLoss = clearFocus != 0
		p.Active = active != 0
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

// Update updates an existing profile in the database.
func (r *ProfileRepository) Update(p *Profile) error {
	p.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE profiles SET name = ?, dwell_ms = ?, dolly_gain = ?, pan_gain = ?,
		 rotate_gain = ?, smoothing_alpha = ?, clear_focus_on_hand_loss = ?,
		 active = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, p.DwellMs, p.DollyGain, p.PanGain, p.RotateGain, p.SmoothingAlpha,
		boolToInt(p.ClearFocusOnHandLoss), boolToInt(p.Active), p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// SetActive marks the given profile as active and deactivates the rest.
func (r *ProfileRepository) SetActive(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE profiles SET active = 0 WHERE active = 1`); err != nil {
		return err
	}

	result, err := tx.Exec(`UPDATE profiles SET active = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// Delete removes a profile from the database by its ID.
func (r *ProfileRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *ProfileRepository) scanOne(row *sql.Row) (*Profile, error) {
	p := &Profile{}
	var clearFocus, active int

	err := row.Scan(&p.ID, &p.Name, &p.DwellMs, &p.DollyGain, &p.PanGain,
		&p.RotateGain, &p.SmoothingAlpha, &clearFocus, &active,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p.ClearFocusOnHandLoss = clearFocus != 0
	p.Active = active != 0
	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Profile represents a named tracking tuning profile: the threshold
// acceptance region plus the filter and mapper parameters.
type Profile struct {
	ID        string
	Name      string
	HueMin    int
	HueMax    int
	ValueMin  int
	ValueMax  int
	Alpha     float64
	MaxJump   float64
	DeadZone  float64
	Gain      float64
	InvertX   bool
	CreatedAt time.Time
	UpdatedAt time.Time
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
		`INSERT INTO profiles (id, name, hue_min, hue_max, value_min, value_max,
		                       alpha, max_jump, dead_zone, gain, invert_x, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.HueMin, p.HueMax, p.ValueMin, p.ValueMax,
		p.Alpha, p.MaxJump, p.DeadZone, p.Gain, boolToInt(p.InvertX), p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetByID retrieves a profile by its ID.
func (r *ProfileRepository) GetByID(id string) (*Profile, error) {
	row := r.db.QueryRow(selectProfile+` WHERE id = ?`, id)
	return scanProfile(row)
}

// GetByName retrieves a profile by its name.
func (r *ProfileRepository) GetByName(name string) (*Profile, error) {
	row := r.db.QueryRow(selectProfile+` WHERE name = ?`, name)
	return scanProfile(row)
}

// List retrieves all profiles ordered by creation time.
func (r *ProfileRepository) List() ([]*Profile, error) {
	rows, err := r.db.Query(selectProfile + ` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Update replaces a profile's tuning values. The ID is immutable.
func (r *ProfileRepository) Update(p *Profile) error {
	p.UpdatedAt = time.Now()

	res, err := r.db.Exec(
		`UPDATE profiles
		 SET name = ?, hue_min = ?, hue_max = ?, value_min = ?, value_max = ?,
		     alpha = ?, max_jump = ?, dead_zone = ?, gain = ?, invert_x = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, p.HueMin, p.HueMax, p.ValueMin, p.ValueMax,
		p.Alpha, p.MaxJump, p.DeadZone, p.Gain, boolToInt(p.InvertX), p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a profile by ID.
func (r *ProfileRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const selectProfile = `SELECT id, name, hue_min, hue_max, value_min, value_max,
       alpha, max_jump, dead_zone, gain, invert_x, created_at, updated_at
  FROM profiles`

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*Profile, error) {
	p := &Profile{}
	var invertX int

	err := row.Scan(
		&p.ID, &p.Name, &p.HueMin, &p.HueMax, &p.ValueMin, &p.ValueMax,
		&p.Alpha, &p.MaxJump, &p.DeadZone, &p.Gain, &invertX, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p.InvertX = invertX != 0
	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

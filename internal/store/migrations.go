package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Profiles table - stores named tracking tuning profiles.
		// The CHECK constraints mirror the threshold invariants:
		// both acceptance ranges must be non-empty and within the
		// 8-bit HSV encoding.
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			hue_min INTEGER NOT NULL CHECK(hue_min >= 0),
			hue_max INTEGER NOT NULL CHECK(hue_max <= 179 AND hue_max >= hue_min),
			value_min INTEGER NOT NULL CHECK(value_min >= 0),
			value_max INTEGER NOT NULL CHECK(value_max <= 255 AND value_max >= value_min),
			alpha REAL NOT NULL DEFAULT 0.5 CHECK(alpha > 0 AND alpha <= 1),
			max_jump REAL NOT NULL DEFAULT 150,
			dead_zone REAL NOT NULL DEFAULT 3 CHECK(dead_zone >= 0),
			gain REAL NOT NULL DEFAULT 1 CHECK(gain > 0),
			invert_x INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

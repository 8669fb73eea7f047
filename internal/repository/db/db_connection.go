package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is not great with many writers
	db.SetMaxIdleConns(1)

	// Pragmas to improve reliability
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA journal_mode=WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA foreign_keys=ON: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA busy_timeout=5000: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    is_guest BOOLEAN NOT NULL DEFAULT 0,
    is_admin BOOLEAN NOT NULL DEFAULT 0
);
`

const schemaGrinders = `
CREATE TABLE IF NOT EXISTS grinders (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    grind_scale_max REAL
);
`

const schemaBrewers = `
CREATE TABLE IF NOT EXISTS brewers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    method TEXT
);
`

const schemaServers = `
CREATE TABLE IF NOT EXISTS servers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    volume_ml REAL
);
`

const schemaCoffeeBeans = `
CREATE TABLE IF NOT EXISTS coffee_beans (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    roaster TEXT,
    origin TEXT,
    process TEXT,
    roast_level TEXT
);
`

const schemaCoffeeBatches = `
CREATE TABLE IF NOT EXISTS coffee_batches (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    coffee_bean_id INTEGER NOT NULL REFERENCES coffee_beans(id) ON DELETE CASCADE,
    price REAL,
    roast_date TIMESTAMP,
    weight_g REAL NOT NULL,
    current_weight_g REAL NOT NULL,
    purchase_date TIMESTAMP,
    active BOOLEAN NOT NULL DEFAULT 1
);
`

const schemaRecipes = `
CREATE TABLE IF NOT EXISTS recipes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    grinder_id INTEGER REFERENCES grinders(id) ON DELETE SET NULL,
    brewer_id INTEGER REFERENCES brewers(id) ON DELETE SET NULL,
    ratio TEXT,
    dose_g REAL,
    grind_size REAL,
    water_g REAL,
    yield_g REAL,
    temp_c REAL,
    brew_time TEXT,
    favorite BOOLEAN NOT NULL DEFAULT 0
);
`

const schemaRecipeSteps = `
CREATE TABLE IF NOT EXISTS recipe_steps (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    recipe_id INTEGER NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    description TEXT NOT NULL,
    water_g REAL,
    duration_sec INTEGER
);
`

const schemaBrews = `
CREATE TABLE IF NOT EXISTS brews (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    coffee_bean_id INTEGER NOT NULL REFERENCES coffee_beans(id),
    coffee_batch_id INTEGER REFERENCES coffee_batches(id) ON DELETE SET NULL,
    grinder_id INTEGER NOT NULL REFERENCES grinders(id),
    brewer_id INTEGER NOT NULL REFERENCES brewers(id),
    server_id INTEGER REFERENCES servers(id) ON DELETE SET NULL,
    recipe_id INTEGER REFERENCES recipes(id) ON DELETE SET NULL,
    dose_g REAL NOT NULL,
    grind_size REAL,
    water_g REAL NOT NULL,
    yield_g REAL NOT NULL,
    temp_c REAL NOT NULL,
    brew_time TEXT NOT NULL,
    tds REAL,
    extraction_yield REAL,
    rating INTEGER,
    comment TEXT,
    photo_path TEXT,
    favorite BOOLEAN NOT NULL DEFAULT 0,
    template_notes TEXT,
    brewed_at TIMESTAMP NOT NULL
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// In case of panic, rollback to avoid leaving an open transaction
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaUsers,
		schemaGrinders,
		schemaBrewers,
		schemaServers,
		schemaCoffeeBeans,
		schemaCoffeeBatches,
		schemaRecipes,
		schemaRecipeSteps,
		schemaBrews,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}

// Package history records cooked meals in a local SQLite database and
// analyzes them to learn eating patterns. The analysis produces preference
// update suggestions that feed back into the preference profile.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/prepwise/prepwise/pkg/storage"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS meals (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	cuisines TEXT NOT NULL DEFAULT '[]',
	meal_types TEXT NOT NULL DEFAULT '[]',
	difficulty TEXT NOT NULL DEFAULT '',
	rating INTEGER NOT NULL DEFAULT 0,
	prep_time_minutes INTEGER NOT NULL DEFAULT 0,
	cook_time_minutes INTEGER NOT NULL DEFAULT 0,
	source_url TEXT NOT NULL DEFAULT '',
	logged_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_meals_logged_at ON meals(logged_at);
`

// Entry is one logged meal.
type Entry struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Cuisines        []string  `json:"cuisines,omitempty"`
	MealTypes       []string  `json:"meal_types,omitempty"`
	Difficulty      string    `json:"difficulty,omitempty"`
	Rating          int       `json:"rating,omitempty"`
	PrepTimeMinutes int       `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes int       `json:"cook_time_minutes,omitempty"`
	SourceURL       string    `json:"source_url,omitempty"`
	LoggedAt        time.Time `json:"logged_at"`
}

// Store manages the meal history database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at the given path. Use
// ":memory:" for an ephemeral database in tests.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenDefault opens the history database at the standard location.
func OpenDefault() (*Store, error) {
	path, err := storage.HistoryPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Log records a cooked meal. A zero LoggedAt is filled with the current time.
func (s *Store) Log(e Entry) (int64, error) {
	if e.Name == "" {
		return 0, fmt.Errorf("meal name is required")
	}
	if e.Rating < 0 || e.Rating > 5 {
		return 0, fmt.Errorf("rating must be between 0 and 5, got %d", e.Rating)
	}
	if e.LoggedAt.IsZero() {
		e.LoggedAt = time.Now().UTC()
	}

	cuisines, err := json.Marshal(emptyIfNil(e.Cuisines))
	if err != nil {
		return 0, fmt.Errorf("encode cuisines: %w", err)
	}
	mealTypes, err := json.Marshal(emptyIfNil(e.MealTypes))
	if err != nil {
		return 0, fmt.Errorf("encode meal types: %w", err)
	}

	res, err := s.db.Exec(`
		INSERT INTO meals (name, cuisines, meal_types, difficulty, rating,
			prep_time_minutes, cook_time_minutes, source_url, logged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Name, string(cuisines), string(mealTypes), e.Difficulty, e.Rating,
		e.PrepTimeMinutes, e.CookTimeMinutes, e.SourceURL, e.LoggedAt)
	if err != nil {
		return 0, fmt.Errorf("insert meal: %w", err)
	}
	return res.LastInsertId()
}

// All returns every logged meal, most recent first.
func (s *Store) All() ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, name, cuisines, meal_types, difficulty, rating,
			prep_time_minutes, cook_time_minutes, source_url, logged_at
		FROM meals ORDER BY logged_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query meals: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var cuisines, mealTypes string
		if err := rows.Scan(&e.ID, &e.Name, &cuisines, &mealTypes, &e.Difficulty,
			&e.Rating, &e.PrepTimeMinutes, &e.CookTimeMinutes, &e.SourceURL,
			&e.LoggedAt); err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		// Malformed stored JSON degrades to empty lists rather than
		// failing the whole query.
		_ = json.Unmarshal([]byte(cuisines), &e.Cuisines)
		_ = json.Unmarshal([]byte(mealTypes), &e.MealTypes)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Recent returns up to n of the most recently logged meals.
func (s *Store) Recent(n int) ([]Entry, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// Delete removes a logged meal by ID.
func (s *Store) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM meals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no meal with id %d", id)
	}
	return nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

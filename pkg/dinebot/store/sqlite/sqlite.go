package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/cognicore/dinebot/pkg/dinebot/internalerr"
	"github.com/cognicore/dinebot/pkg/dinebot/menu"
	"github.com/cognicore/dinebot/pkg/dinebot/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Initialize schema
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS menu_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name_key TEXT UNIQUE NOT NULL,
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	price INTEGER NOT NULL,
	is_vegetarian INTEGER NOT NULL DEFAULT 0,
	is_vegan INTEGER NOT NULL DEFAULT 0,
	spice_level TEXT NOT NULL DEFAULT 'none',
	description TEXT,
	ingredients TEXT,
	preparation_time INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS stoplist (
	token TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS dict_entries (
	phrase TEXT PRIMARY KEY,
	canonical TEXT NOT NULL,
	category TEXT
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertItem inserts or updates an item. The row id, and with it the item's
// list position, survives updates.
func (s *sqliteStore) UpsertItem(ctx context.Context, it menu.Item) error {
	key := nameKey(it.Name)
	if key == "" {
		return internalerr.ErrInvalidItem
	}
	if it.SpiceLevel == "" {
		it.SpiceLevel = menu.SpiceNone
	}

	ingredients, err := json.Marshal(it.Ingredients)
	if err != nil {
		return err
	}

	const stmt = `
INSERT INTO menu_items (name_key, name, category, price, is_vegetarian, is_vegan, spice_level, description, ingredients, preparation_time)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(name_key) DO UPDATE SET
	name=excluded.name,
	category=excluded.category,
	price=excluded.price,
	is_vegetarian=excluded.is_vegetarian,
	is_vegan=excluded.is_vegan,
	spice_level=excluded.spice_level,
	description=excluded.description,
	ingredients=excluded.ingredients,
	preparation_time=excluded.preparation_time
RETURNING id;
`

	var id int64
	return s.db.QueryRowContext(
		ctx,
		stmt,
		key,
		strings.TrimSpace(it.Name),
		string(it.Category),
		it.Price,
		it.IsVegetarian,
		it.IsVegan,
		string(it.SpiceLevel),
		it.Description,
		string(ingredients),
		it.PrepMinutes,
	).Scan(&id)
}

const itemColumns = `name, category, price, is_vegetarian, is_vegan, spice_level, description, ingredients, preparation_time`

// GetItemByName fetches an item by case-insensitive name.
func (s *sqliteStore) GetItemByName(ctx context.Context, name string) (menu.Item, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM menu_items WHERE name_key=?`, nameKey(name))
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return menu.Item{}, false, nil
	}
	if err != nil {
		return menu.Item{}, false, err
	}
	return it, true, nil
}

// ListItems returns all items in insertion order.
func (s *sqliteStore) ListItems(ctx context.Context) ([]menu.Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM menu_items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []menu.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// DeleteItem removes an item by name.
func (s *sqliteStore) DeleteItem(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM menu_items WHERE name_key=?`, nameKey(name))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: menu item %q", internalerr.ErrNotFound, name)
	}
	return nil
}

// CountItems returns the number of stored items.
func (s *sqliteStore) CountItems(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&n)
	return n, err
}

// Stoplist returns a view of the stopword list.
// Returns nil if the stoplist table is empty.
func (s *sqliteStore) Stoplist() store.StoplistView {
	var count int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM stoplist`).Scan(&count); err != nil || count == 0 {
		return nil
	}
	return &sqliteStoplistView{db: s.db}
}

// Dict returns a view of the multi-token dictionary.
// Returns nil if the dict_entries table is empty.
func (s *sqliteStore) Dict() store.DictView {
	var count int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM dict_entries`).Scan(&count); err != nil || count == 0 {
		return nil
	}
	return &sqliteDictView{db: s.db}
}

// UpsertStoplist replaces the stopword set in a single transaction.
func (s *sqliteStore) UpsertStoplist(ctx context.Context, tokens []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stoplist`); err != nil {
		return err
	}

	if len(tokens) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO stoplist (token) VALUES (?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, tok := range tokens {
			if _, err := stmt.ExecContext(ctx, strings.ToLower(tok)); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// UpsertDictEntry adds or replaces a dictionary entry.
func (s *sqliteStore) UpsertDictEntry(ctx context.Context, phrase, canonical, category string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO dict_entries (phrase, canonical, category) VALUES (?, ?, ?)
ON CONFLICT(phrase) DO UPDATE SET canonical=excluded.canonical, category=excluded.category;
`, strings.ToLower(phrase), canonical, category)
	return err
}

// --- SQLite StoplistView ---

type sqliteStoplistView struct{ db *sql.DB }

func (v *sqliteStoplistView) IsStop(token string) bool {
	var count int64
	if err := v.db.QueryRow(`SELECT COUNT(*) FROM stoplist WHERE token=?`, strings.ToLower(token)).Scan(&count); err != nil {
		return false
	}
	return count > 0
}

func (v *sqliteStoplistView) AllStops() []string {
	rows, err := v.db.Query(`SELECT token FROM stoplist ORDER BY token`)
	if err != nil {
		return nil
	}
	defer rows.Close()
	var stops []string
	for rows.Next() {
		var tok string
		if err := rows.Scan(&tok); err != nil {
			return stops
		}
		stops = append(stops, tok)
	}
	return stops
}

// --- SQLite DictView ---

type sqliteDictView struct{ db *sql.DB }

func (v *sqliteDictView) Lookup(phrase string) (string, string, bool) {
	var canonical, category string
	err := v.db.QueryRow(`SELECT canonical, category FROM dict_entries WHERE phrase=?`, strings.ToLower(phrase)).Scan(&canonical, &category)
	if err != nil {
		return "", "", false
	}
	return canonical, category, true
}

func (v *sqliteDictView) AllEntries() []store.DictEntryData {
	rows, err := v.db.Query(`SELECT phrase, canonical, category FROM dict_entries ORDER BY phrase`)
	if err != nil {
		return nil
	}
	defer rows.Close()
	var entries []store.DictEntryData
	for rows.Next() {
		var e store.DictEntryData
		if err := rows.Scan(&e.Phrase, &e.Canonical, &e.Category); err != nil {
			return entries
		}
		entries = append(entries, e)
	}
	return entries
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (menu.Item, error) {
	var (
		it          menu.Item
		category    string
		spice       string
		description sql.NullString
		ingredients sql.NullString
		prep        sql.NullInt64
	)
	if err := row.Scan(&it.Name, &category, &it.Price, &it.IsVegetarian, &it.IsVegan,
		&spice, &description, &ingredients, &prep); err != nil {
		return menu.Item{}, err
	}
	it.Category = menu.Category(category)
	it.SpiceLevel = menu.SpiceLevel(spice)
	it.Description = description.String
	it.PrepMinutes = int(prep.Int64)
	if ingredients.Valid && ingredients.String != "" {
		if err := json.Unmarshal([]byte(ingredients.String), &it.Ingredients); err != nil {
			return menu.Item{}, fmt.Errorf("decode ingredients of %q: %w", it.Name, err)
		}
	}
	return it, nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Package store provides the SQLite-backed contact index built from card files.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tartampluch/go-vcf/internal/config"
	"github.com/tartampluch/go-vcf/internal/vcard"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS files (
	file_id       INTEGER PRIMARY KEY AUTOINCREMENT,
	file_name     TEXT NOT NULL UNIQUE,
	last_modified DATETIME,
	creation_time DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS contacts (
	contact_id  INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	birthday    DATETIME,
	anniversary DATETIME,
	file_id     INTEGER NOT NULL,
	FOREIGN KEY (file_id) REFERENCES files(file_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_contacts_file ON contacts(file_id);
CREATE INDEX IF NOT EXISTS idx_contacts_name ON contacts(name);
`

// DB wraps a sql.DB with contact-index operations.
type DB struct {
	conn *sql.DB
}

// ContactRow represents one indexed contact joined with its source file.
type ContactRow struct {
	Name        string
	Birthday    string // "2006-01-02", empty when unset or text-mode
	Anniversary string
	FileName    string
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// IndexCard records a card file and its contact, replacing any contacts
// previously indexed from the same file.
func (db *DB) IndexCard(fileName string, modTime time.Time, card *vcard.Card) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	// Upsert files table, keeping the original creation_time.
	_, err = tx.Exec(`
		INSERT INTO files (file_name, last_modified)
		VALUES (?, ?)
		ON CONFLICT(file_name) DO UPDATE SET
			last_modified = excluded.last_modified
	`, fileName, modTime)
	if err != nil {
		return fmt.Errorf("store: upsert file: %w", err)
	}

	var fileID int64
	if err := tx.QueryRow(`SELECT file_id FROM files WHERE file_name = ?`, fileName).Scan(&fileID); err != nil {
		return fmt.Errorf("store: resolve file id: %w", err)
	}

	// Replace contacts: delete old then insert the current snapshot.
	if _, err := tx.Exec(`DELETE FROM contacts WHERE file_id = ?`, fileID); err != nil {
		return fmt.Errorf("store: clear contacts: %w", err)
	}

	name := config.FallbackName
	if card.FN != nil && len(card.FN.Values) > 0 && card.FN.Values[0] != "" {
		name = card.FN.Values[0]
	}

	_, err = tx.Exec(`
		INSERT INTO contacts (name, birthday, anniversary, file_id)
		VALUES (?, ?, ?, ?)
	`, name, dateColumn(card.Birthday), dateColumn(card.Anniversary), fileID)
	if err != nil {
		return fmt.Errorf("store: insert contact: %w", err)
	}

	return tx.Commit()
}

// AllContacts returns every indexed contact ordered by name, then file name.
func (db *DB) AllContacts() ([]ContactRow, error) {
	rows, err := db.conn.Query(`
		SELECT c.name, COALESCE(c.birthday, ''), COALESCE(c.anniversary, ''), f.file_name
		FROM contacts c
		JOIN files f ON f.file_id = c.file_id
		ORDER BY c.name, f.file_name
	`)
	if err != nil {
		return nil, fmt.Errorf("store: all contacts: %w", err)
	}
	return scanContacts(rows)
}

// BornInMonth returns contacts whose birthday falls in the given month,
// ordered by day of month, then name.
func (db *DB) BornInMonth(month int) ([]ContactRow, error) {
	if month < config.MinMonth || month > config.MaxMonth {
		return nil, fmt.Errorf("store: %s: %d", config.ErrMonthRange, month)
	}

	rows, err := db.conn.Query(`
		SELECT c.name, COALESCE(c.birthday, ''), COALESCE(c.anniversary, ''), f.file_name
		FROM contacts c
		JOIN files f ON f.file_id = c.file_id
		WHERE c.birthday IS NOT NULL AND CAST(strftime('%m', c.birthday) AS INTEGER) = ?
		ORDER BY CAST(strftime('%d', c.birthday) AS INTEGER), c.name
	`, month)
	if err != nil {
		return nil, fmt.Errorf("store: born in month: %w", err)
	}
	return scanContacts(rows)
}

// Counts returns the number of indexed files and contacts.
func (db *DB) Counts() (files, contacts int, err error) {
	if err = db.conn.QueryRow(`SELECT COUNT(*) FROM files`).Scan(&files); err != nil {
		return 0, 0, fmt.Errorf("store: count files: %w", err)
	}
	if err = db.conn.QueryRow(`SELECT COUNT(*) FROM contacts`).Scan(&contacts); err != nil {
		return 0, 0, fmt.Errorf("store: count contacts: %w", err)
	}
	return files, contacts, nil
}

func scanContacts(rows *sql.Rows) ([]ContactRow, error) {
	defer rows.Close()
	var out []ContactRow
	for rows.Next() {
		var c ContactRow
		if err := rows.Scan(&c.Name, &c.Birthday, &c.Anniversary, &c.FileName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// dateColumn converts a DateTime into a nullable "2006-01-02" column value.
// Text-mode values and values without a full wire date become NULL.
func dateColumn(dt *vcard.DateTime) any {
	if dt == nil || dt.IsText() {
		return nil
	}
	parsed, err := time.Parse(config.DateFormatWire, dt.Date())
	if err != nil {
		return nil
	}
	return parsed.Format(config.DateFormatFullDash)
}

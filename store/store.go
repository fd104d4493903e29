/*
Package store implements an archive of COMP40 compressed images held in a
SQLite database.

Each entry is keyed by name and records the SHA1 of the source image it was
compressed from, so re-importing an unchanged image is a no-op.
*/
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // database/sql driver
)

// Entry is a single archived image.
type Entry struct {
	ID            int64
	Name          string
	SHA1          string
	Width, Height int
	Data          []byte
}

// DB is the archive database.
type DB struct {
	db *sql.DB
}

// Open opens, creating if necessary, the archive in file.
func Open(file string) (*DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, data BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *DB) Close() error {
	return db.db.Close()
}

// Add stores an image under name, replacing any existing image of that name
// unless its SHA1 is unchanged. The id of the entry is returned.
func (db *DB) Add(name, sha string, width, height int, data []byte) (int64, error) {
	var id int64
	var old string
	switch err := db.db.QueryRow("SELECT id, sha1 FROM image WHERE name = ?", name).Scan(&id, &old); err {
	case sql.ErrNoRows:
		result, err := db.db.Exec("INSERT INTO image (name, sha1, width, height, data) VALUES (?, ?, ?, ?, ?)", name, sha, width, height, data)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		if old == sha {
			return id, nil
		}
		if _, err := db.db.Exec("UPDATE image SET sha1 = ?, width = ?, height = ?, data = ? WHERE id = ?", sha, width, height, data, id); err != nil {
			return 0, err
		}
		return id, nil
	default:
		return 0, err
	}
}

// Find returns the image stored under name, or nil if there isn't one.
func (db *DB) Find(name string) (*Entry, error) {
	e := new(Entry)
	switch err := db.db.QueryRow("SELECT id, name, sha1, width, height, data FROM image WHERE name = ?", name).Scan(&e.ID, &e.Name, &e.SHA1, &e.Width, &e.Height, &e.Data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return e, nil
	default:
		return nil, err
	}
}

// List returns every archived image ordered by name. The Data field is not
// populated.
func (db *DB) List() ([]Entry, error) {
	rows, err := db.db.Query("SELECT id, name, sha1, width, height FROM image ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.SHA1, &e.Width, &e.Height); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the image stored under name. It reports whether there was
// one to remove.
func (db *DB) Delete(name string) (bool, error) {
	result, err := db.db.Exec("DELETE FROM image WHERE name = ?", name)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

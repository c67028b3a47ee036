package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	d, err := sql.Open("sqlite", "file::memory:?cache=shared&mode=rwc&_journal_mode=WAL&_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	// Create tables manually for test
	_, err = d.Exec(`
		CREATE TABLE users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			email         TEXT    NOT NULL UNIQUE COLLATE NOCASE,
			name          TEXT    NOT NULL,
			password_hash TEXT    NOT NULL,
			created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE sessions (
			token      TEXT    PRIMARY KEY,
			user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at DATETIME NOT NULL
		);
		CREATE INDEX idx_sessions_user_id ON sessions(user_id);

		CREATE TABLE cars (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			make       TEXT    NOT NULL,
			model      TEXT    NOT NULL,
			year       TEXT    NOT NULL DEFAULT '',
			plate      TEXT    NOT NULL DEFAULT '',
			color      TEXT    NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT (datetime('now'))
		);
		CREATE INDEX idx_cars_user_id ON cars(user_id);

		CREATE TABLE service_records (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			car_id      INTEGER NOT NULL REFERENCES cars(id) ON DELETE CASCADE,
			happened_on DATE    NOT NULL,
			shop_name   TEXT    NOT NULL DEFAULT '',
			description TEXT    NOT NULL,
			cost_huf    INTEGER NOT NULL DEFAULT 0,
			created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
		);
		CREATE INDEX idx_service_records_car_id ON service_records(car_id);
	`)
	require.NoError(t, err)

	return d
}

// testUser inserts a user and returns its id.
func testUser(t *testing.T, d *sql.DB) int64 {
	users := NewUserStore(d)
	user, err := users.Create(context.Background(), "owner@example.com", "Owner", "x")
	require.NoError(t, err)
	return user.ID
}

//go:build !cgo_sqlite

package main

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// initDB opens the database with the pure-Go driver. This driver only
// understands pragmas in its _pragma=name(value) DSN form, so WAL and the
// busy timeout are appended here rather than configured; without the busy
// timeout, concurrent writers fail with SQLITE_BUSY instead of queueing.
func initDB(path string) (*sql.DB, error) {
	return sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
}

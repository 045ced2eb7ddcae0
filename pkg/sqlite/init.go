package sqlite

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
)

// DriverName is the registered driver used for all database handles.
const DriverName = "sqlite3_casa"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			// WAL keeps the CLI and Telegram transports from blocking
			// each other on the shared history database.
			pragmas := []string{
				"PRAGMA journal_mode = WAL",
				"PRAGMA foreign_keys = ON",
				"PRAGMA busy_timeout = 5000",
			}
			for _, p := range pragmas {
				if _, err := conn.Exec(p, nil); err != nil {
					return err
				}
			}
			return nil
		},
	})
}

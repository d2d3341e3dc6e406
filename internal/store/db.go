package store

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"

	"github.com/yukihiko-shinoda/staticpress-e2e/internal/config"
)

// NewDB opens the wp_options database described by the configuration and
// verifies the connection.
func NewDB(cfg config.Database) (*sql.DB, error) {
	conn, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, err
	}

	// One test runs at a time; a single connection keeps the reset protocol's
	// acquire-and-release accounting trivial.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

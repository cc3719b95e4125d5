package keystore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/migrations"
)

// DB wraps the raw database handle together with the logger so repository
// code can share one connection.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate brings the key schema up to date using the embedded migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// NewConnectSQLite opens (and creates, when missing) the SQLite database at
// dsn, verifies the connection, and runs the embedded migrations.
func NewConnectSQLite(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	// db will be in file
	if err := createLocalDBFileIfNotExists(dsn); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file")
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB")
	}

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	db := &DB{
		DB:     conn,
		logger: log,
	}

	if err := db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error migrating key schema")
		conn.Close()
		return nil, err
	}

	return db, nil
}

func createLocalDBFileIfNotExists(dsn string) error {
	// Strip the optional URI form ("file:path?opt=...") down to the path.
	dbFile := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(dbFile, '?'); i >= 0 {
		dbFile = dbFile[:i]
	}
	if dbFile == "" || strings.HasPrefix(dbFile, ":memory:") {
		return nil
	}

	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		// if not found - create
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}

package keystore

import "errors"

// Sentinel errors returned by key store implementations. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrKeyNotFound is returned when no blob is stored under the requested
	// identifier.
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidKeyID is returned when an identifier contains characters
	// outside the file-name-safe set the stores accept.
	ErrInvalidKeyID = errors.New("invalid key identifier")
)

// Low-level database operation errors. These are returned (or wrapped) by
// the SQLite store when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan key row")
)

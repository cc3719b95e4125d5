package store

import "errors"

var (
	// ErrFileNotFound is returned when a configuration file does not
	// exist on disk.
	ErrFileNotFound = errors.New("configuration file not found")
	// ErrMalformedDocument is returned when a configuration file does
	// not contain a single JSON object.
	ErrMalformedDocument = errors.New("malformed configuration document")
	// ErrWatcherClosed is returned when a closed watcher is used.
	ErrWatcherClosed = errors.New("watcher closed")
	// ErrAlreadyWatching is returned when a path is already covered by
	// another watch.
	ErrAlreadyWatching = errors.New("path already watched")
)

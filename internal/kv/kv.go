// Package kv is the persistence gateway: a string-keyed store of JSON blobs.
// The tracker never sees files or tables, only Load and Save.
package kv

import (
	"bytes"
	"fmt"
	"regexp"
)

// Store loads and saves JSON documents by key.
type Store interface {
	// Load returns the stored document. ok is false when the key is absent.
	Load(key string) (data []byte, ok bool, err error)
	// Save replaces the document stored under key.
	Save(key string, data []byte) error
	// Close releases the underlying resources.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// SQLiteFile is the database file name used by the sqlite backend.
const SQLiteFile = "dietstreak.db"

var keyPattern = regexp.MustCompile(`^[a-z0-9_]{1,64}$`)

func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}

// BareString reports the text of a value stored without JSON quoting, as
// older data does for plain string keys. Objects, arrays, quoted strings
// and multi-line values are not bare.
func BareString(data []byte) (string, bool) {
	v := bytes.TrimSpace(data)
	if len(v) == 0 || bytes.ContainsAny(v, "\r\n") {
		return "", false
	}
	switch v[0] {
	case '{', '[', '"':
		return "", false
	}
	return string(v), true
}

// Open returns the store for backend rooted at dataDir.
func Open(backend, dataDir string) (Store, error) {
	switch backend {
	case "", BackendJSON:
		return NewFileStore(dataDir)
	case BackendSQLite:
		return NewSQLiteStore(dataDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want %s or %s)", backend, BackendJSON, BackendSQLite)
	}
}

package kv

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dietstreak/internal/fsutil"
	"dietstreak/internal/logger"
)

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600
)

// FileStore keeps one pretty-printed JSON file per key in a directory.
// Every write leaves the previous contents in <key>.json.bak, which Load
// uses to recover from a corrupt file.
type FileStore struct {
	dir string
	now func() time.Time
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

// Dir returns the directory holding the data files.
func (s *FileStore) Dir() string {
	return s.dir
}

// FileName returns the file name used for key.
func FileName(key string) string {
	return key + ".json"
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, FileName(key))
}

// Load reads the document for key. A bare string value is returned as is.
// A corrupt file is replaced by its backup when the backup parses, otherwise
// it is moved aside and reported absent.
func (s *FileStore) Load(key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", FileName(key), err)
	}

	if len(bytes.TrimSpace(data)) > 0 && json.Valid(data) {
		return data, true, nil
	}
	if _, ok := BareString(data); ok {
		return data, true, nil
	}
	return s.recover(key)
}

func (s *FileStore) recover(key string) ([]byte, bool, error) {
	path := s.path(key)
	corruptPath := fmt.Sprintf("%s.corrupt.%s", path, s.now().Format("20060102-150405"))

	bak, err := os.ReadFile(path + ".bak")
	if err == nil && len(bytes.TrimSpace(bak)) > 0 && json.Valid(bak) {
		_ = os.Rename(path, corruptPath)
		if err := fsutil.WriteFileAtomic(path, bak, dataFilePerm); err != nil {
			logger.Warn("restoring backup failed", "key", key, "error", err)
		}
		logger.Warn("recovered corrupt data file from backup", "key", key, "moved_to", corruptPath)
		return bak, true, nil
	}

	_ = os.Rename(path, corruptPath)
	logger.Warn("corrupt data file reset to defaults", "key", key, "moved_to", corruptPath)
	return nil, false, nil
}

// Save validates data as JSON and writes it atomically.
func (s *FileStore) Save(key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if !json.Valid(data) {
		return fmt.Errorf("save %s: value is not valid JSON", key)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}

	path := s.path(key)
	fsutil.BestEffortBackup(path, dataFilePerm)
	if err := fsutil.WriteFileAtomic(path, pretty.Bytes(), dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", FileName(key), err)
	}
	return nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error {
	return nil
}

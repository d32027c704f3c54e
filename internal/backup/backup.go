// Package backup keeps timestamped copies of the data directory.
// A backup is a directory under <data_dir>/backups holding the store files
// and a manifest with a few counts for listing.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"dietstreak/internal/fsutil"
	"dietstreak/internal/kv"
	"dietstreak/internal/logger"
	"dietstreak/internal/storage"
)

// Version constants for the backup format.
const (
	ManifestVersion = "1.0"
	ManifestFile    = "manifest.json"
	BackupsDir      = "backups"

	nameLayout = "2006-01-02_150405"
)

// DataFiles lists the files a backup copies: one JSON file per storage key
// and the sqlite database. Missing files are skipped.
func DataFiles() []string {
	files := make([]string, 0, len(storage.Keys)+1)
	for _, key := range storage.Keys {
		files = append(files, kv.FileName(key))
	}
	return append(files, kv.SQLiteFile)
}

// Manager handles backup and restore operations.
type Manager struct {
	dataDir    string
	backupDir  string
	appVersion string
	now        func() time.Time
}

// Manifest contains metadata about a backup.
type Manifest struct {
	Version    string         `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	AppVersion string         `json:"app_version"`
	Files      []string       `json:"files"`
	Stats      map[string]int `json:"stats"`
}

// BackupInfo contains summary information about a backup.
type BackupInfo struct {
	Name      string // Directory name (2025-12-15_143022_123)
	Path      string
	CreatedAt time.Time
	Files     []string
	Stats     map[string]int // records, plans, best_streak
}

// NewManager creates a backup manager for dataDir.
func NewManager(dataDir, appVersion string) *Manager {
	return &Manager{
		dataDir:    dataDir,
		backupDir:  filepath.Join(dataDir, BackupsDir),
		appVersion: appVersion,
		now:        time.Now,
	}
}

// Dir returns the directory holding the backups.
func (m *Manager) Dir() string {
	return m.backupDir
}

// Create copies every present data file into a new backup and returns its
// name.
func (m *Manager) Create() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	now := m.now()
	name := backupName(now)
	// Two backups in the same millisecond (create, then a restore's
	// safety copy) must not share a directory.
	for fsutil.Exists(filepath.Join(m.backupDir, name)) {
		now = now.Add(time.Millisecond)
		name = backupName(now)
	}
	backupPath := filepath.Join(m.backupDir, name)
	if err := os.MkdirAll(backupPath, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	copied := []string{}
	stats := make(map[string]int)
	for _, filename := range DataFiles() {
		src := filepath.Join(m.dataDir, filename)
		if !fsutil.Exists(src) {
			continue
		}
		if err := fsutil.CopyFileAtomic(src, filepath.Join(backupPath, filename), 0600); err != nil {
			_ = os.RemoveAll(backupPath)
			return "", fmt.Errorf("failed to copy %s: %w", filename, err)
		}
		copied = append(copied, filename)
		collectStats(src, filename, stats)
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		Files:      copied,
		Stats:      stats,
	}
	if err := writeJSON(filepath.Join(backupPath, ManifestFile), manifest); err != nil {
		_ = os.RemoveAll(backupPath)
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	logger.Info("backup created", "name", name, "files", len(copied))
	return name, nil
}

// List returns all available backups, newest first.
func (m *Manager) List() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := m.info(entry.Name())
		if err != nil {
			continue
		}
		backups = append(backups, *info)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// GetBackup returns information about a specific backup.
func (m *Manager) GetBackup(name string) (*BackupInfo, error) {
	if err := validateBackupName(name); err != nil {
		return nil, err
	}
	if _, err := os.Stat(filepath.Join(m.backupDir, name)); os.IsNotExist(err) {
		return nil, fmt.Errorf("backup not found: %s", name)
	}
	return m.info(name)
}

// info reads the manifest of name, falling back to the timestamp in the
// directory name when the manifest is unreadable.
func (m *Manager) info(name string) (*BackupInfo, error) {
	path := filepath.Join(m.backupDir, name)

	var manifest Manifest
	if err := readJSON(filepath.Join(path, ManifestFile), &manifest); err != nil {
		createdAt, parseErr := parseBackupName(name)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid backup: %s", name)
		}
		manifest.CreatedAt = createdAt
	}
	if manifest.Stats == nil {
		manifest.Stats = make(map[string]int)
	}

	return &BackupInfo{
		Name:      name,
		Path:      path,
		CreatedAt: manifest.CreatedAt,
		Files:     manifest.Files,
		Stats:     manifest.Stats,
	}, nil
}

// Restore copies the files of backup name back into the data directory,
// taking a safety backup first. The store must not be open.
func (m *Manager) Restore(name string) error {
	info, err := m.GetBackup(name)
	if err != nil {
		return err
	}
	files := info.Files
	if len(files) == 0 {
		files = DataFiles()
	}

	safetyName, err := m.Create()
	if err != nil {
		return fmt.Errorf("failed to create safety backup: %w", err)
	}

	for _, filename := range files {
		src := filepath.Join(info.Path, filename)
		if !fsutil.Exists(src) {
			continue
		}
		if err := fsutil.CopyFileAtomic(src, filepath.Join(m.dataDir, filename), 0600); err != nil {
			return fmt.Errorf("failed to restore %s (safety backup: %s): %w", filename, safetyName, err)
		}
	}

	for _, filename := range files {
		if filepath.Ext(filename) != ".json" {
			continue
		}
		if err := validateJSON(filepath.Join(m.dataDir, filename)); err != nil {
			return fmt.Errorf("restored file %s is invalid (safety backup: %s): %w", filename, safetyName, err)
		}
	}

	logger.Info("backup restored", "name", name, "safety", safetyName)
	return nil
}

// RestoreLatest restores from the most recent backup.
func (m *Manager) RestoreLatest() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups available")
	}
	return m.Restore(backups[0].Name)
}

// Delete removes a specific backup.
func (m *Manager) Delete(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}
	path := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}
	return os.RemoveAll(path)
}

// Prune removes old backups, keeping only the keep most recent.
func (m *Manager) Prune(keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must be non-negative")
	}

	backups, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keep {
		return 0, nil
	}

	deleted := 0
	for _, b := range backups[keep:] {
		if err := m.Delete(b.Name); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func backupName(t time.Time) string {
	return fmt.Sprintf("%s_%03d", t.Format(nameLayout), t.Nanosecond()/1e6)
}

func validateBackupName(name string) error {
	if name == "" {
		return fmt.Errorf("backup name is required")
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if _, err := parseBackupName(name); err != nil {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// validateJSON checks that a file contains valid JSON. A missing file is fine.
func validateJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if !json.Valid(data) {
		return fmt.Errorf("not valid JSON")
	}
	return nil
}

// collectStats adds the counts shown by List for one copied file.
// Only the JSON backend's files are inspected.
func collectStats(path, filename string, stats map[string]int) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	switch filename {
	case kv.FileName(storage.KeyDailyDiets):
		var records map[string]json.RawMessage
		if json.Unmarshal(data, &records) == nil {
			stats["records"] = len(records)
		}
	case kv.FileName(storage.KeyPlans):
		var plans []json.RawMessage
		if json.Unmarshal(data, &plans) == nil {
			stats["plans"] = len(plans)
		}
	case kv.FileName(storage.KeyStreak):
		var streak struct {
			BestStreak int `json:"bestStreak"`
		}
		if json.Unmarshal(data, &streak) == nil {
			stats["best_streak"] = streak.BestStreak
		}
	}
}

// parseBackupName parses a backup directory name into a timestamp.
// Accepts 2006-01-02_150405 and 2006-01-02_150405_XXX (milliseconds).
func parseBackupName(name string) (time.Time, error) {
	if len(name) == len(nameLayout)+4 {
		base, err := time.Parse(nameLayout, name[:len(nameLayout)])
		if err != nil {
			return time.Time{}, err
		}
		if name[len(nameLayout)] != '_' {
			return time.Time{}, fmt.Errorf("invalid backup format")
		}
		ms, err := strconv.Atoi(name[len(nameLayout)+1:])
		if err != nil || ms < 0 || ms > 999 {
			return time.Time{}, fmt.Errorf("invalid milliseconds")
		}
		return base.Add(time.Duration(ms) * time.Millisecond), nil
	}
	return time.Parse(nameLayout, name)
}

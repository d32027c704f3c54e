package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"dietstreak/internal/backup"
	"dietstreak/internal/config"
	"dietstreak/internal/kv"
	"dietstreak/internal/logger"
	"dietstreak/internal/storage"
	"dietstreak/internal/tracker"
)

// appContext is bound into every command's Run. The store is opened on
// first use so backup restore can run without holding it.
type appContext struct {
	cfg     *config.Config
	dataDir string
	out     io.Writer
	now     func() time.Time
	store   *storage.Storage
	svc     *tracker.Service
}

func newAppContext(cfg *config.Config) *appContext {
	return &appContext{cfg: cfg, dataDir: cfg.GetDataDir(), out: os.Stdout, now: time.Now}
}

func (a *appContext) logDir() string {
	return filepath.Join(a.dataDir, "logs")
}

// service opens the store, seeds the default plan and rolls the day over.
func (a *appContext) service() (*tracker.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}

	kvStore, err := kv.Open(a.cfg.Storage.Backend, a.dataDir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.store = storage.New(kvStore)
	svc := tracker.New(a.store)
	svc.SetNowFunc(a.now)

	if err := svc.EnsureDefaultPlan(); err != nil {
		return nil, err
	}
	if rolled, err := svc.CheckAndResetDaily(); err != nil {
		return nil, fmt.Errorf("daily rollover: %w", err)
	} else if rolled {
		logger.Debug("rolled over", "today", svc.TodayKey())
	}

	a.svc = svc
	return svc, nil
}

func (a *appContext) backups() *backup.Manager {
	return backup.NewManager(a.dataDir, version)
}

func (a *appContext) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	a.svc = nil
	return err
}

package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rmehra/billmitra-backend/config"
	"github.com/rmehra/billmitra-backend/internal/app/service"
	"github.com/rmehra/billmitra-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// BackupScheduler periodically writes the menu catalog to a JSON file, in the
// same document format the export endpoint serves.
type BackupScheduler struct {
	cron        *cron.Cron
	menuService service.MenuService
	cfg         *config.BackupConfig
}

func NewBackupScheduler(menuService service.MenuService, cfg *config.BackupConfig) *BackupScheduler {
	return &BackupScheduler{
		cron:        cron.New(),
		menuService: menuService,
		cfg:         cfg,
	}
}

// Start registers the cron job. The default spec runs daily at 3:00 AM.
func (s *BackupScheduler) Start() error {
	_, err := s.cron.AddFunc(s.cfg.CronSpec, func() {
		if err := s.RunOnce(context.Background()); err != nil {
			logger.Error("Scheduled menu backup failed", err)
		}
	})
	if err != nil {
		logger.Error("Failed to add cron job for menu backup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Menu backup scheduler started", map[string]interface{}{
		"cron_spec": s.cfg.CronSpec,
		"dir":       s.cfg.Dir,
	})
	return nil
}

// RunOnce writes one backup file immediately.
func (s *BackupScheduler) RunOnce(ctx context.Context) error {
	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	export := s.menuService.Export(ctx)
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode menu backup: %w", err)
	}

	path := filepath.Join(s.cfg.Dir, fmt.Sprintf("menu-backup-%s.json", time.Now().Format("2006-01-02")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write menu backup: %w", err)
	}

	logger.Info("Menu backup written", map[string]interface{}{
		"path":       path,
		"items":      len(export.Items),
		"categories": len(export.Categories),
	})
	return nil
}

func (s *BackupScheduler) Stop() {
	logger.Info("Stopping menu backup scheduler...", nil)
	s.cron.Stop()
	logger.Info("Menu backup scheduler stopped", nil)
}

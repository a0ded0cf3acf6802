package cron

import (
	"fmt"
	log "log/slog"
)

// InitCron 注册所有定时任务并启动引擎
func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return fmt.Errorf("failed to register cron jobs: %w", err)
	}
	mgr.Start()
	log.Info("Cron Jobs started.")
	return nil
}

package database

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/pkg/logger"
	"fmt"
	log "log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const (
	defaultMaxIdle     = 10
	defaultMaxOpen     = 100
	defaultMaxLifetime = 60 * time.Minute
)

// NewGormDB 初始化并返回 *gorm.DB 实例，处理连接池配置
func NewGormDB(cfg *config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger:      logger.NewGormLogger(),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}

	maxIdle, maxOpen := cfg.MaxIdle, cfg.MaxOpen
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdle
	}
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpen
	}
	lifetime := time.Duration(cfg.MaxLifetime) * time.Minute
	if lifetime <= 0 {
		lifetime = defaultMaxLifetime
	}

	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(lifetime)

	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database connection check failed: %w", err)
	}

	log.Info("Database connection established successfully.")
	return db, nil
}

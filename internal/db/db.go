package db

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bricksy-web/bricksy-backend/internal/config"
	"github.com/bricksy-web/bricksy-backend/internal/domain"
)

// Open abre la base SQLite y ejecuta las migraciones.
// Orden de intentos: ruta configurada, /tmp/bricksy.sqlite3 y por último
// :memory:, igual que el arranque original.
func Open(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	candidates := []string{cfg.DatabasePath(), "/tmp/bricksy.sqlite3", ":memory:"}

	var gdb *gorm.DB
	var err error
	for _, path := range candidates {
		gdb, err = openAt(path)
		if err == nil {
			logger.Info("sqlite abierta", zap.String("path", path))
			break
		}
		logger.Warn("no se pudo abrir sqlite", zap.String("path", path), zap.Error(err))
	}
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := gdb.AutoMigrate(&domain.User{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return gdb, nil
}

func openAt(path string) (*gorm.DB, error) {
	dsn := path
	if path != ":memory:" {
		// WAL permite lecturas concurrentes con un único escritor.
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		dsn = fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
}

package db

import (
	"fmt"
	"log/slog"
	"strings"

	"newsroom/internal/config"
	"newsroom/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database and migrates the schema.
func Open(cfg config.Config) (*gorm.DB, error) {
	conn, err := gorm.Open(dialector(cfg), &gorm.Config{
		// 唯一索引冲突翻译为 gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	slog.Info("database connection established", "type", cfg.DatabaseType)

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Migrate runs AutoMigrate for every model.
func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	slog.Info("database migration completed")
	return nil
}

func dialector(cfg config.Config) gorm.Dialector {
	if cfg.DatabaseType == config.DatabaseSQLite {
		return sqlite.Open(SQLiteDSN(cfg.DatabaseURL))
	}
	return postgres.Open(cfg.DatabaseURL)
}

// SQLiteDSN turns on foreign keys and a busy timeout unless the DSN already
// sets pragmas.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/waste3d/vod-platform/config"
)

// MemoryPath selects a private in-memory sqlite database.
const MemoryPath = ":memory:"

// Open connects to the configured database. SQLite connections always run with
// foreign keys enforced so restrict-on-delete holds there too.
func Open(cfg config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), gormConfig())
		if err != nil {
			return nil, err
		}
		return db, pool(db, 10)
	case "sqlite":
		if cfg.SQLitePath == MemoryPath {
			return OpenMemory()
		}
		db, err := gorm.Open(sqlite.Open(SQLiteDSN(cfg.SQLitePath)), gormConfig())
		if err != nil {
			return nil, err
		}
		return db, pool(db, 1)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.DBDriver)
	}
}

// OpenMemory opens a fresh, uniquely named in-memory sqlite database. The data lives
// as long as the returned handle keeps its single connection open.
func OpenMemory() (*gorm.DB, error) {
	dsn := SQLiteDSN(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return db, pool(db, 1)
}

// SQLiteDSN appends the foreign key pragma to a sqlite path or URI.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

func gormConfig() *gorm.Config {
	return &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}
}

func pool(db *gorm.DB, maxOpen int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return nil
}

package kv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// DefaultSQLiteFile is the database file name used when no path is configured.
const DefaultSQLiteFile = "dayplan.db"

// slot is one row of the slots table.
type slot struct {
	Key       string `gorm:"column:slot_key;primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}

func (slot) TableName() string { return "slots" }

// SQLite stores slots in a single table of a SQLite database.
type SQLite struct {
	db *gorm.DB
}

// NewSQLite opens (or creates) the database at dsn and migrates the slots table.
func NewSQLite(dsn string, l *log.Logger) (*SQLite, error) {
	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}

	dbLogger := logger.Discard
	if l != nil {
		dbLogger = logger.New(l, logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		})
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, wrapErr("open", dsn, err)
	}
	if err := db.AutoMigrate(&slot{}); err != nil {
		return nil, wrapErr("migrate", dsn, err)
	}
	return &SQLite{db: db}, nil
}

// Get implements Store.
func (s *SQLite) Get(key string) ([]byte, bool, error) {
	var row slot
	err := s.db.Where("slot_key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, wrapErr("read", key, err)
	}
	return row.Value, true, nil
}

// Set implements Store.
func (s *SQLite) Set(key string, value []byte) error {
	row := slot{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return wrapErr("write", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ensureDirForSQLite creates the parent directory of a file DSN.
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}

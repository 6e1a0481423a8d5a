package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
)

// SQLiteService owns the per-project pipeline database. The file lives at
// {project}/pipeline/project.db and is created, with all tables and triggers,
// on first access.
type SQLiteService struct {
	db   *gorm.DB
	path string
	log  *logger.Logger
}

// ProjectDBPath returns the conventional database location for a project root.
func ProjectDBPath(projectRoot string) string {
	return filepath.Join(projectRoot, "pipeline", "project.db")
}

func NewSQLiteService(dbPath string, logg *logger.Logger) (*SQLiteService, error) {
	serviceLog := logg.With("service", "SQLiteService")

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create pipeline dir: %w", err)
	}

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite db %s: %w", dbPath, err)
	}

	// Single connection: sqlite serializes writers anyway, and one writer
	// avoids SQLITE_BUSY churn from gorm's default pool.
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("access sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.Exec(`PRAGMA foreign_keys = ON;`).Error; err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return &SQLiteService{db: gdb, path: dbPath, log: serviceLog}, nil
}

func (s *SQLiteService) DB() *gorm.DB { return s.db }

func (s *SQLiteService) Path() string { return s.path }

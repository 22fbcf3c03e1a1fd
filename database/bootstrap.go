package database

import (
	"fmt"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"swc/config"
	"swc/entities"
	"swc/logging"
)

// Models lists every table in foreign key dependency order, parents first.
func Models() []any {
	return []any{
		&entities.Technique{},
		&entities.DesignTemplate{},
		&entities.MaintenanceTemplate{},
		&entities.Material{},
		&entities.Site{},
		&entities.SiteTechnique{},
		&entities.Design{},
		&entities.DesignLayer{},
		&entities.BOQ{},
		&entities.BOQItem{},
		&entities.Metric{},
		&entities.CostRecord{},
		&entities.ReferenceDocument{},
		&entities.ReferenceChunk{},
	}
}

// Open connects to SQLite or PostgreSQL according to cfg. It does not migrate.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger:         logging.NewGormLogger(log, 200*time.Millisecond),
		TranslateError: true,
	}

	switch cfg.Driver {
	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.DSN), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.MaxOpenConns > 0 {
			sqlDB, err := db.DB()
			if err != nil {
				return nil, err
			}
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		return db, nil
	case "sqlite", "":
		return OpenSQLite(cfg.Path, gcfg)
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

// OpenSQLite opens path with foreign keys on and a single pooled connection,
// so concurrent writers wait in the pool instead of failing with SQLITE_BUSY.
func OpenSQLite(path string, gcfg *gorm.Config) (*gorm.DB, error) {
	if gcfg == nil {
		gcfg = &gorm.Config{TranslateError: true}
	}
	db, err := gorm.Open(sqlite.Open(sqliteDSN(path)), gcfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Migrate creates or updates every table. On SQLite it first makes sure
// foreign key enforcement is on for the connection.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" {
		if err := ensureForeignKeys(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func ensureForeignKeys(db *gorm.DB) error {
	var on int
	if err := db.Raw(`PRAGMA foreign_keys`).Scan(&on).Error; err != nil {
		return fmt.Errorf("read foreign_keys pragma: %w", err)
	}
	if on == 1 {
		return nil
	}
	if err := db.Exec(`PRAGMA foreign_keys = ON`).Error; err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := db.Raw(`PRAGMA foreign_keys`).Scan(&on).Error; err != nil {
		return err
	}
	if on != 1 {
		return fmt.Errorf("sqlite foreign key enforcement is unavailable")
	}
	return nil
}

// ForeignKeysEnabled reports the pragma state; tests and health use it.
func ForeignKeysEnabled(db *gorm.DB) (bool, error) {
	if db.Dialector.Name() != "sqlite" {
		return true, nil
	}
	var on int
	if err := db.Raw(`PRAGMA foreign_keys`).Scan(&on).Error; err != nil {
		return false, err
	}
	return on == 1, nil
}

package testutil

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/wayfarelabs/wayfare-backend/internal/pkg/logger"
	"github.com/wayfarelabs/wayfare-backend/internal/types"
)

var errMissingDSN = errors.New("missing TEST_POSTGRES_DSN")

var (
	dbOnce sync.Once
	db     *gorm.DB
	dbErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("development")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		dsn := os.Getenv("TEST_POSTGRES_DSN")
		if dsn == "" {
			dbErr = errMissingDSN
			return
		}

		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			TranslateError:                           true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			dbErr = err
			return
		}

		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			dbErr = err
			return
		}

		if err := autoMigrateAll(db); err != nil {
			dbErr = err
			return
		}
	})

	if errors.Is(dbErr, errMissingDSN) {
		tb.Skip("set TEST_POSTGRES_DSN to run repo integration tests")
	}
	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return db
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func autoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&types.User{},
		&types.SafetyProfile{},
		&types.Trip{},
		&types.Itinerary{},
		&types.ItineraryDay{},
		&types.Activity{},
		&types.SafetyReport{},
		&types.SafetySection{},
	); err != nil {
		return err
	}

	// Match production: ON DELETE CASCADE foreign keys, since repo deletes
	// rely on the database removing children.
	fks := []struct {
		table, name, column, refTable string
	}{
		{"safety_profile", "fk_safety_profile_user_id", "user_id", "user"},
		{"trip", "fk_trip_user_id", "user_id", "user"},
		{"itinerary", "fk_itinerary_trip_id", "trip_id", "trip"},
		{"itinerary_day", "fk_itinerary_day_itinerary_id", "itinerary_id", "itinerary"},
		{"activity", "fk_activity_day_id", "day_id", "itinerary_day"},
		{"safety_report", "fk_safety_report_trip_id", "trip_id", "trip"},
		{"safety_section", "fk_safety_section_report_id", "report_id", "safety_report"},
	}
	for _, fk := range fks {
		stmt := fmt.Sprintf(`
      DO $$ BEGIN
        IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
          ALTER TABLE %q ADD CONSTRAINT %q
          FOREIGN KEY (%q) REFERENCES %q("id") ON DELETE CASCADE;
        END IF;
      END $$;`, fk.name, fk.table, fk.name, fk.column, fk.refTable)
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

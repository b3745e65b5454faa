package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wayfarelabs/wayfare-backend/internal/pkg/logger"
	"github.com/wayfarelabs/wayfare-backend/internal/types"
	"github.com/wayfarelabs/wayfare-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "wayfare", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.SafetyProfile{},
		&types.Trip{},
		&types.Itinerary{},
		&types.ItineraryDay{},
		&types.Activity{},
		&types.SafetyReport{},
		&types.SafetySection{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	s.log.Info("Configuring foreign key relationships for postgres tables...")
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
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", fk.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

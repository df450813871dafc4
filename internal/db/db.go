package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bossofclean/cleaner-scheduler/internal/config"
	"github.com/bossofclean/cleaner-scheduler/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsProduction() {
		level = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(level),
		NowFunc:     func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	log.Info("database connected",
		zap.Int("max_open_conns", cfg.DBMaxOpenConns),
		zap.Int("max_idle_conns", cfg.DBMaxIdleConns),
	)

	return db, nil
}

// ======================================================
// MIGRATIONS
// ======================================================

// bookingsNoOverlap is the storage-level guarantee that two confirmed
// bookings of one cleaner never overlap. Ranges are half-open.
const bookingsNoOverlap = `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap'
	) THEN
		ALTER TABLE bookings
			ADD CONSTRAINT bookings_no_overlap
			EXCLUDE USING gist (
				cleaner_id WITH =,
				tsrange(starts_at, ends_at, '[)') WITH &&
			)
			WHERE (status = 'confirmed');
	END IF;
END
$$;`

const weeklyRangeCheck = `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint WHERE conname = 'weekly_availability_range'
	) THEN
		ALTER TABLE weekly_availability_slots
			ADD CONSTRAINT weekly_availability_range
			CHECK (day_of_week BETWEEN 0 AND 6 AND start_time < end_time);
	END IF;
END
$$;`

// Migrate creates or updates the schema. It is safe to run repeatedly.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	// cleaner_id WITH = inside a gist index needs btree_gist.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("create btree_gist extension: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Cleaner{},
		&models.WeeklyAvailabilitySlot{},
		&models.BlockedDate{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for name, ddl := range map[string]string{
		"bookings_no_overlap":       bookingsNoOverlap,
		"weekly_availability_range": weeklyRangeCheck,
	} {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("add constraint %s: %w", name, err)
		}
	}

	log.Info("migrations applied")
	return nil
}

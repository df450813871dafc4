package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bossofclean/cleaner-scheduler/internal/models"
	"github.com/bossofclean/cleaner-scheduler/internal/usecase/schedule"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

func (r *ScheduleGormRepository) GetCleaner(
	ctx context.Context,
	id uuid.UUID,
) (*models.Cleaner, error) {
	return findCleaner(r.db.WithContext(ctx), id)
}

// --------------------------------------------------
// Weekly rules
// --------------------------------------------------

func (r *ScheduleGormRepository) ListWeekly(
	ctx context.Context,
	cleanerID uuid.UUID,
) ([]models.WeeklyAvailabilitySlot, error) {

	var rows []models.WeeklyAvailabilitySlot
	if err := r.db.WithContext(ctx).
		Where("cleaner_id = ?", cleanerID).
		Order("day_of_week ASC, start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list weekly availability: %w", err)
	}
	return rows, nil
}

func (r *ScheduleGormRepository) ReplaceWeeklyAvailability(
	ctx context.Context,
	cleanerID uuid.UUID,
	rows []models.WeeklyAvailabilitySlot,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCleaner(tx, cleanerID); err != nil {
			return err
		}

		if err := tx.
			Where("cleaner_id = ?", cleanerID).
			Delete(&models.WeeklyAvailabilitySlot{}).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})

	return mapWriteError("replace weekly availability", err)
}

// --------------------------------------------------
// Blocked dates
// --------------------------------------------------

func (r *ScheduleGormRepository) AddBlockedDate(
	ctx context.Context,
	bd *models.BlockedDate,
) (bool, error) {

	db := r.db.WithContext(ctx)

	res := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cleaner_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(bd)
	if res.Error != nil {
		return false, fmt.Errorf("add blocked date: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	if err := db.
		Where("cleaner_id = ? AND date = ?", bd.CleanerID, bd.Date).
		First(bd).Error; err != nil {
		return false, fmt.Errorf("load blocked date: %w", err)
	}
	return false, nil
}

func (r *ScheduleGormRepository) RemoveBlockedDate(
	ctx context.Context,
	cleanerID uuid.UUID,
	date models.Date,
) error {

	res := r.db.WithContext(ctx).
		Where("cleaner_id = ? AND date = ?", cleanerID, date).
		Delete(&models.BlockedDate{})
	if res.Error != nil {
		return fmt.Errorf("remove blocked date: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return schedule.ErrBlockedDateNotFound
	}
	return nil
}

func (r *ScheduleGormRepository) ListBlockedDates(
	ctx context.Context,
	cleanerID uuid.UUID,
	from *models.Date,
) ([]models.BlockedDate, error) {

	q := r.db.WithContext(ctx).Where("cleaner_id = ?", cleanerID)
	if from != nil {
		q = q.Where("date >= ?", *from)
	}

	var rows []models.BlockedDate
	if err := q.Order("date ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list blocked dates: %w", err)
	}
	return rows, nil
}

func (r *ScheduleGormRepository) PurgeBlockedDatesBefore(
	ctx context.Context,
	date models.Date,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("date < ?", date).
		Delete(&models.BlockedDate{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge blocked dates: %w", res.Error)
	}
	return res.RowsAffected, nil
}

var _ schedule.Repository = (*ScheduleGormRepository)(nil)

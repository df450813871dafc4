package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/bossofclean/cleaner-scheduler/internal/domain/booking"
	"github.com/bossofclean/cleaner-scheduler/internal/models"
)

func findCleaner(db *gorm.DB, id uuid.UUID) (*models.Cleaner, error) {
	var c models.Cleaner
	if err := db.Where("id = ? AND active", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCleanerNotFound
		}
		return nil, fmt.Errorf("get cleaner: %w", err)
	}
	return &c, nil
}

// lockCleaner takes the cleaner row FOR UPDATE, serializing every write to
// that cleaner's calendar for the rest of tx.
func lockCleaner(tx *gorm.DB, id uuid.UUID) error {
	var c models.Cleaner
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", id).
		First(&c).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCleanerNotFound
		}
		return fmt.Errorf("lock cleaner: %w", err)
	}
	return nil
}

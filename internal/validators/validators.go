package validators

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domain "github.com/bossofclean/cleaner-scheduler/internal/domain/booking"
	"github.com/bossofclean/cleaner-scheduler/internal/models"
)

// IsClock reports whether s is a wall-clock time such as "09:30".
// "24:00" is accepted since it can close a weekly rule.
func IsClock(s string) bool {
	_, err := domain.ParseClock(s)
	return err == nil
}

// IsDate reports whether s is an ISO calendar date.
func IsDate(s string) bool {
	_, err := models.ParseDate(s)
	return err == nil
}

func clockField(fl validator.FieldLevel) bool {
	return IsClock(fl.Field().String())
}

func dateField(fl validator.FieldLevel) bool {
	return IsDate(fl.Field().String())
}

// Register adds the "clock" and "date" tags to gin's binding validator.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("clock", clockField); err != nil {
		return fmt.Errorf("register clock: %w", err)
	}
	if err := v.RegisterValidation("date", dateField); err != nil {
		return fmt.Errorf("register date: %w", err)
	}
	return nil
}

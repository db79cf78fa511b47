package intake

import (
	"context"

	"gorm.io/gorm"

	"cdx-web-scan/entities"
)

type (
	IntakeRepository interface {
		CreateIntakeCall(ctx context.Context, call *entities.IntakeCall) error
		NextAttempt(ctx context.Context, scanID string) (int, error)
	}

	intakeRepository struct {
		db *gorm.DB
	}
)

func NewIntakeRepository(db *gorm.DB) IntakeRepository {
	return &intakeRepository{db: db}
}

func (r *intakeRepository) CreateIntakeCall(ctx context.Context, call *entities.IntakeCall) error {
	return r.db.WithContext(ctx).Create(call).Error
}

// NextAttempt numbers a new outbound attempt for one scan: one past the
// count of attempts already recorded.
func (r *intakeRepository) NextAttempt(ctx context.Context, scanID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.IntakeCall{}).
		Where("scan_id = ?", scanID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count) + 1, nil
}

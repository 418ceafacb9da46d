package holiday

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, h *Holiday) error
	FindInRange(ctx context.Context, start, end time.Time) ([]Holiday, error)
	FindRecurring(ctx context.Context) ([]Holiday, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

// FindInRange returns non-recurring holidays whose date falls inside the
// inclusive range.
func (r *repository) FindInRange(ctx context.Context, start, end time.Time) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Where("is_recurring = ?", false).
		Where("date BETWEEN ? AND ?", start, end).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) FindRecurring(ctx context.Context) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Where("is_recurring = ?", true).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

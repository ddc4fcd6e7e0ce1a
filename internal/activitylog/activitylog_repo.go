package activitylog

import (
	"context"

	"resto-ops/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=activitylog_repo.go -destination=mock/activitylog_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	FindRecent(ctx context.Context, restaurantID string, limit, offset int) ([]Entry, error)
	CountByRestaurant(ctx context.Context, restaurantID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindRecent(ctx context.Context, restaurantID string, limit, offset int) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(restaurantID)).
		Order("timestamp DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}

func (r *repository) CountByRestaurant(ctx context.Context, restaurantID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Entry{}).
		Scopes(tenant.Scope(restaurantID)).
		Count(&count).Error
	return count, err
}

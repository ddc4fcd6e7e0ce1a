package vacation

import (
	"context"
	"time"

	"resto-ops/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=vacation_repo.go -destination=mock/vacation_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, v *Vacation) error
	FindAllByRestaurant(ctx context.Context, restaurantID string) ([]Vacation, error)
	FindByID(ctx context.Context, restaurantID, id string) (*Vacation, error)
	Update(ctx context.Context, v *Vacation) error
	Delete(ctx context.Context, restaurantID, id string) error
	HasOverlappingPeriod(ctx context.Context, restaurantID, employeeID string, startDate, endDate time.Time, excludeID string) (bool, error)
	FindApprovedOverlapping(ctx context.Context, restaurantID string, from, to time.Time) ([]Vacation, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, v *Vacation) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) FindAllByRestaurant(ctx context.Context, restaurantID string) ([]Vacation, error) {
	var vacations []Vacation
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(restaurantID)).
		Order("start_date DESC").
		Find(&vacations).Error
	return vacations, err
}

func (r *repository) FindByID(ctx context.Context, restaurantID, id string) (*Vacation, error) {
	var v Vacation
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(restaurantID)).
		First(&v, "id = ?", id).Error
	return &v, err
}

func (r *repository) Update(ctx context.Context, v *Vacation) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repository) Delete(ctx context.Context, restaurantID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(restaurantID)).
		Delete(&Vacation{}, "id = ?", id).Error
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, restaurantID, employeeID string, startDate, endDate time.Time, excludeID string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Vacation{}).
		Scopes(tenant.Scope(restaurantID)).
		Where("employee_id = ?", employeeID).
		Where("status <> ?", StatusRejected).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

// FindApprovedOverlapping feeds the task advisor: every approved vacation
// touching the [from, to] window.
func (r *repository) FindApprovedOverlapping(ctx context.Context, restaurantID string, from, to time.Time) ([]Vacation, error) {
	var vacations []Vacation
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(restaurantID)).
		Where("status = ?", StatusApproved).
		Where("NOT (end_date < ? OR start_date > ?)", from, to).
		Order("start_date ASC").
		Find(&vacations).Error
	return vacations, err
}

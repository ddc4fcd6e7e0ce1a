package task

import (
	"context"

	"resto-ops/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=task_repo.go -destination=mock/task_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, t *Task) error
	FindAllByRestaurant(ctx context.Context, restaurantID string) ([]Task, error)
	FindByID(ctx context.Context, restaurantID, id string) (*Task, error)
	Update(ctx context.Context, t *Task) error
	UpdateBatch(ctx context.Context, tasks []Task) error
	Delete(ctx context.Context, restaurantID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindAllByRestaurant(ctx context.Context, restaurantID string) ([]Task, error) {
	var tasks []Task
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(restaurantID)).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *repository) FindByID(ctx context.Context, restaurantID, id string) (*Task, error) {
	var t Task
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(restaurantID)).
		First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) Update(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).
		Model(&Task{}).
		Where("id = ?", t.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(t).Error
}

// UpdateBatch applies a set of assignments in one transaction so a partial
// advisor application never lands.
func (r *repository) UpdateBatch(ctx context.Context, tasks []Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range tasks {
			if err := tx.Model(&Task{}).
				Where("id = ?", tasks[i].ID).
				Select("*").
				Omit("id", "created_at").
				Updates(&tasks[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) Delete(ctx context.Context, restaurantID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(restaurantID)).
		Delete(&Task{}, "id = ?", id).Error
}

package employee

import (
	"context"
	"database/sql"
	"errors"

	"resto-ops/internal/tenant"

	"gorm.io/gorm"
)

// errStaleVersion is returned by Update when the stored version no longer
// matches; the error mapper turns it into a conflict for the caller.
var errStaleVersion = errors.New("employee version is stale")

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAllByRestaurant(ctx context.Context, restaurantID string) ([]Employee, error)
	FindByPartition(ctx context.Context, restaurantID string, p Partition) ([]Employee, error)
	FindByID(ctx context.Context, restaurantID, id string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	HardDelete(ctx context.Context, restaurantID, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAllByRestaurant(ctx context.Context, restaurantID string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(restaurantID)).
		Order("name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByPartition(ctx context.Context, restaurantID string, p Partition) ([]Employee, error) {
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(restaurantID)).
		Order("name ASC")

	switch p {
	case PartitionArchived:
		q = q.Where("is_archived = ? AND is_deleted = ?", true, false)
	case PartitionTrashed:
		q = q.Where("is_deleted = ?", true)
	default:
		q = q.Where("is_archived = ? AND is_deleted = ?", false, false)
	}

	var employees []Employee
	err := q.Find(&employees).Error
	return employees, err
}

func (r *repository) FindByID(ctx context.Context, restaurantID, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(restaurantID)).
		First(&e, "id = ?", id).Error
	return &e, err
}

// Update persists the full record guarded by the optimistic version column.
// The in-memory version is bumped only when the write actually landed.
func (r *repository) Update(ctx context.Context, e *Employee) error {
	current := e.Version

	next := *e
	next.Version = current + 1

	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ? AND version = ?", e.ID, current).
		Select("*").
		Omit("id", "created_at").
		Updates(&next)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errStaleVersion
	}

	e.Version = current + 1
	return nil
}

func (r *repository) HardDelete(ctx context.Context, restaurantID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(restaurantID)).
		Unscoped().
		Delete(&Employee{}, "id = ?", id).Error
}

package vacation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func ParseStatus(v string) (Status, bool) {
	s := Status(v)
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return s, true
	}
	return "", false
}

type Vacation struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index:idx_vacations_restaurant_status"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index:idx_vacations_employee_dates"`

	StartDate time.Time `gorm:"type:date;not null;index:idx_vacations_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_vacations_employee_dates"`
	Reason    string    `gorm:"type:text"`

	Status          Status     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_vacations_restaurant_status"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason string     `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Vacation) TableName() string {
	return "vacations"
}

// Covers reports whether the vacation spans the given day.
func (v Vacation) Covers(day time.Time) bool {
	d := day.Truncate(24 * time.Hour)
	return !d.Before(v.StartDate) && !d.After(v.EndDate)
}

package task

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusTodo       Status = "À faire"
	StatusInProgress Status = "En cours"
	StatusDone       Status = "Terminée"
)

func ParseStatus(v string) (Status, bool) {
	s := Status(v)
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return s, true
	}
	return "", false
}

type Priority string

const (
	PriorityLow    Priority = "Basse"
	PriorityNormal Priority = "Normale"
	PriorityHigh   Priority = "Haute"
)

func ParsePriority(v string) (Priority, bool) {
	p := Priority(v)
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return p, true
	}
	return "", false
}

type Task struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index"`

	Title         string `gorm:"type:varchar(200);not null"`
	Description   string `gorm:"type:text"`
	RequiredSkill string `gorm:"type:varchar(100)"`

	Status   Status   `gorm:"type:varchar(20);not null;default:'À faire'"`
	Priority Priority `gorm:"type:varchar(20);not null;default:'Normale'"`

	AssignedTo       *uuid.UUID `gorm:"type:uuid;index"`
	AssignmentReason string     `gorm:"type:text"`

	DueDate *time.Time `gorm:"type:date"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Task) TableName() string {
	return "tasks"
}

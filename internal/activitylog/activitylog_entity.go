package activitylog

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies an activity entry. Closed set; unrecognized values
// are rejected before anything is written.
type Category string

const (
	CategoryEquipe    Category = "EQUIPE"
	CategorySOC       Category = "SOC"
	CategoryFormation Category = "FORMATION"
	CategorySystem    Category = "SYSTEM"
	CategoryRetard    Category = "RETARD"
)

func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryEquipe, CategorySOC, CategoryFormation, CategorySystem, CategoryRetard:
		return Category(s), true
	}
	return "", false
}

// Entry is an append-only audit record. Never updated or deleted through
// normal flow.
type Entry struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index:idx_activity_logs_restaurant_ts"`
	Timestamp    time.Time `gorm:"not null;index:idx_activity_logs_restaurant_ts,sort:desc"`
	ActorName    string    `gorm:"type:varchar(255);not null"`
	Action       string    `gorm:"type:varchar(100);not null"`
	Details      string    `gorm:"type:text"`
	Category     Category  `gorm:"type:varchar(20);not null"`
}

func (Entry) TableName() string {
	return "activity_logs"
}

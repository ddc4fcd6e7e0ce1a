package tenant

import "gorm.io/gorm"

// Scope restricts every query to one restaurant. Applied in all repositories.
func Scope(restaurantID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("restaurant_id = ?", restaurantID)
	}
}

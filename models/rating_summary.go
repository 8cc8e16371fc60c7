package models

import (
	"time"
)

// UserRatingSummary is the aggregate rating view for one user.
// The table is rebuilt atomically by the periodic refresh job rather than
// updated incrementally, so concurrent refreshes cannot corrupt it.
type UserRatingSummary struct {
	UserID        uint      `gorm:"primaryKey" json:"user_id"`
	AveragePoints float64   `gorm:"not null" json:"average_points"`
	RatingsCount  int64     `gorm:"not null" json:"ratings_count"`
	RefreshedAt   time.Time `gorm:"not null" json:"refreshed_at"`
}

// TableName specifies the table name for the UserRatingSummary model
func (UserRatingSummary) TableName() string {
	return "user_rating_summaries"
}

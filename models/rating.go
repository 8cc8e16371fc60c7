package models

import (
	"time"
)

// Rating represents a point rating one user gave another.
// A rater may rate a given user only once; re-rating replaces the points.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RaterID   uint      `gorm:"not null;uniqueIndex:idx_rater_rated" json:"rater_id"` // foreign key to users table
	Rater     User      `gorm:"foreignKey:RaterID" json:"-"`
	RatedID   uint      `gorm:"not null;uniqueIndex:idx_rater_rated" json:"rated_id"` // foreign key to users table
	Rated     User      `gorm:"foreignKey:RatedID" json:"-"`
	Points    int       `gorm:"not null;check:points >= 1 AND points <= 5" json:"points"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Rating model
func (Rating) TableName() string {
	return "ratings"
}

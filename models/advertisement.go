package models

import (
	"time"

	"gorm.io/gorm"
)

// Advertisement represents a listing posted by a user
type Advertisement struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	Title       string             `gorm:"not null" json:"title"`
	Description string             `gorm:"type:text" json:"description"`
	Price       float64            `gorm:"not null;check:price >= 0" json:"price"`
	Quantity    int                `gorm:"not null;check:quantity >= 0" json:"quantity"`
	IsClosed    bool               `gorm:"not null;default:false" json:"is_closed"`
	IsPromoted  bool               `gorm:"not null;default:false" json:"is_promoted"`
	CityID      uint               `gorm:"not null;index" json:"city_id"`
	City        City               `gorm:"foreignKey:CityID" json:"city"`
	TypeID      uint               `gorm:"not null;index" json:"type_id"`
	Type        AdvertisementType  `gorm:"foreignKey:TypeID" json:"type"`
	OwnerID     uint               `gorm:"not null;index" json:"owner_id"` // foreign key to users table
	Owner       User               `gorm:"foreignKey:OwnerID" json:"owner"`
	PhotoS3Key  *string            `json:"photo_s3_key,omitempty"`       // nullable, S3 key for uploaded photo
	PhotoURL    *string            `gorm:"-" json:"photo_url,omitempty"` // computed field, presigned URL for photo
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   gorm.DeletedAt     `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Advertisement model
func (Advertisement) TableName() string {
	return "advertisements"
}

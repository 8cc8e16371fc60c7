package models

import (
	"time"
)

// Message represents a direct message between two users, optionally scoped
// to one advertisement. Messages are immutable once created except for the
// IsRead flag, which only ever moves from false to true.
type Message struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	AdvertisementID *uint          `gorm:"index" json:"advertisement_id,omitempty"` // nullable, foreign key to advertisements table
	Advertisement   *Advertisement `gorm:"foreignKey:AdvertisementID" json:"-"`
	SenderID        uint           `gorm:"not null;index" json:"sender_id"`
	Sender          User           `gorm:"foreignKey:SenderID" json:"sender"`
	RecipientID     uint           `gorm:"not null;index" json:"recipient_id"`
	Recipient       User           `gorm:"foreignKey:RecipientID" json:"recipient"`
	Text            string         `gorm:"type:text;not null" json:"text"`
	IsRead          bool           `gorm:"not null;default:false" json:"is_read"`
	SentAt          time.Time      `gorm:"not null;index" json:"sent_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}

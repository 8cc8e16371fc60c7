package models

import (
	"time"
)

// Comment represents a threaded comment under an advertisement.
// A comment with no parent is a root; its root_comment_id equals its own id.
// Children point at the top of their thread via RootCommentID.
// Deleting a comment nulls the commenter and replaces the text, but keeps
// the row so that replies stay addressable.
type Comment struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	AdvertisementID uint          `gorm:"not null;index" json:"advertisement_id"` // foreign key to advertisements table
	Advertisement   Advertisement `gorm:"foreignKey:AdvertisementID" json:"-"`
	CommenterID     *uint         `gorm:"index" json:"commenter_id,omitempty"` // nullable, null means the comment was deleted
	Commenter       *User         `gorm:"foreignKey:CommenterID" json:"commenter,omitempty"`
	RootCommentID   *uint         `gorm:"index" json:"root_comment_id,omitempty"`
	ParentCommentID *uint         `gorm:"index" json:"parent_comment_id,omitempty"`
	Text            string        `gorm:"type:text;not null" json:"text"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// TableName specifies the table name for the Comment model
func (Comment) TableName() string {
	return "comments"
}

// IsDeleted reports whether the comment was soft-deleted
func (c *Comment) IsDeleted() bool {
	return c.CommenterID == nil
}

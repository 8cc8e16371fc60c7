package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/temirlan-b/baraholka-api/models"
)

// MessagePage describes one bounded page request over a conversation.
// Messages are totally ordered by (sent_at, id); the cursor pair addresses a
// position in that order and Before selects the side of it to fetch.
type MessagePage struct {
	FirstUserID     uint
	SecondUserID    uint
	AdvertisementID *uint
	Limit           int
	Before          bool
	CursorSentAt    *time.Time
	CursorMessageID *uint
}

// MessageRepository exposes typed queries over the messages table.
// Find methods return (nil, nil) when no row matches.
type MessageRepository interface {
	Create(message *models.Message) error
	FindByIDWithUsers(id uint) (*models.Message, error)
	FindPage(page MessagePage) ([]models.Message, error)
	ExistsBetween(userA, userB uint, advertisementID *uint) (bool, error)
	CountUnread(senderID, recipientID uint, advertisementID *uint) (int64, error)
	MarkAllRead(senderID, recipientID uint, advertisementID *uint) (int64, error)
	MarkReadUpTo(senderID, recipientID uint, advertisementID *uint, upTo time.Time, upToMessageID uint) (int64, error)
	WithTx(tx *gorm.DB) MessageRepository
}

// GormMessageRepository implements MessageRepository on top of GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a message repository bound to the given database handle
func NewMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormMessageRepository) WithTx(tx *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: tx}
}

// conversationQuery scopes a query to the conversation between two users.
// Conversation identity is order-independent; the advertisement scope
// distinguishes ad conversations from the plain direct-message one.
func (r *GormMessageRepository) conversationQuery(userA, userB uint, advertisementID *uint) *gorm.DB {
	q := r.db.Model(&models.Message{}).
		Where("((sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?))",
			userA, userB, userB, userA)
	if advertisementID != nil {
		q = q.Where("advertisement_id = ?", *advertisementID)
	} else {
		q = q.Where("advertisement_id IS NULL")
	}
	return q
}

// directedQuery scopes a query to messages flowing sender -> recipient
// within one conversation
func (r *GormMessageRepository) directedQuery(senderID, recipientID uint, advertisementID *uint) *gorm.DB {
	q := r.db.Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ?", senderID, recipientID)
	if advertisementID != nil {
		q = q.Where("advertisement_id = ?", *advertisementID)
	} else {
		q = q.Where("advertisement_id IS NULL")
	}
	return q
}

// Create inserts a new message
func (r *GormMessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// FindByIDWithUsers fetches a message with sender and recipient preloaded
func (r *GormMessageRepository) FindByIDWithUsers(id uint) (*models.Message, error) {
	var message models.Message
	err := r.db.Preload("Sender").Preload("Recipient").First(&message, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// FindPage fetches one page of a conversation. The returned slice is always
// in ascending (sent_at, id) order regardless of direction, so pages never
// reorder relative to each other. A Before request fetches the messages
// immediately preceding the cursor (or the latest page when no cursor is
// given); an after request fetches the ones following it.
func (r *GormMessageRepository) FindPage(page MessagePage) ([]models.Message, error) {
	q := r.conversationQuery(page.FirstUserID, page.SecondUserID, page.AdvertisementID).
		Preload("Sender").Preload("Recipient")

	if page.CursorSentAt != nil && page.CursorMessageID != nil {
		if page.Before {
			q = q.Where("(sent_at < ? OR (sent_at = ? AND id < ?))",
				*page.CursorSentAt, *page.CursorSentAt, *page.CursorMessageID)
		} else {
			q = q.Where("(sent_at > ? OR (sent_at = ? AND id > ?))",
				*page.CursorSentAt, *page.CursorSentAt, *page.CursorMessageID)
		}
	}

	limit := page.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var messages []models.Message
	if page.Before {
		// Fetch the closest messages below the cursor position, then restore
		// ascending order in memory.
		if err := q.Order("sent_at DESC, id DESC").Limit(limit).Find(&messages).Error; err != nil {
			return nil, err
		}
		for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
			messages[i], messages[j] = messages[j], messages[i]
		}
		return messages, nil
	}

	if err := q.Order("sent_at ASC, id ASC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// ExistsBetween reports whether any message exists between two users for
// the given conversation scope
func (r *GormMessageRepository) ExistsBetween(userA, userB uint, advertisementID *uint) (bool, error) {
	var count int64
	if err := r.conversationQuery(userA, userB, advertisementID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountUnread counts unread messages sent by senderID to recipientID in
// one conversation
func (r *GormMessageRepository) CountUnread(senderID, recipientID uint, advertisementID *uint) (int64, error) {
	var count int64
	err := r.directedQuery(senderID, recipientID, advertisementID).
		Where("is_read = ?", false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MarkAllRead marks every unread message sent by senderID to recipientID in
// one conversation as read. Returns the number of rows changed; already-read
// messages are untouched.
func (r *GormMessageRepository) MarkAllRead(senderID, recipientID uint, advertisementID *uint) (int64, error) {
	result := r.directedQuery(senderID, recipientID, advertisementID).
		Where("is_read = ?", false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// MarkReadUpTo marks messages sent by senderID to recipientID at or before
// the (upTo, upToMessageID) position as read. Idempotent: already-read rows
// are excluded from the update.
func (r *GormMessageRepository) MarkReadUpTo(senderID, recipientID uint, advertisementID *uint, upTo time.Time, upToMessageID uint) (int64, error) {
	result := r.directedQuery(senderID, recipientID, advertisementID).
		Where("(sent_at < ? OR (sent_at = ? AND id <= ?))", upTo, upTo, upToMessageID).
		Where("is_read = ?", false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

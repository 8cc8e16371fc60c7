package services

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/temirlan-b/baraholka-api/models"
	"github.com/temirlan-b/baraholka-api/repositories"
)

// ChatFilter describes one page request over a conversation from the
// current user's point of view. The cursor fields must be both present or
// both absent.
type ChatFilter struct {
	SecondUserID    uint
	AdvertisementID *uint
	Limit           int
	IsBefore        bool
	CursorSentAt    *time.Time
	CursorMessageID *uint
}

// ChatPage is one page of a conversation. UnreadCount is populated only on
// the first (cursorless) page request and is nil on subsequent pages.
type ChatPage struct {
	Messages    []models.Message
	UnreadCount *int64
}

// MessageService implements the conversation rules: who may message whom
// about an advertisement, reply-marks-read semantics, cursor-paginated chat
// history and read tracking.
type MessageService struct {
	db       *gorm.DB
	users    repositories.UserRepository
	ads      repositories.AdvertisementRepository
	messages repositories.MessageRepository
}

// NewMessageService creates a message service over the given database handle
func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{
		db:       db,
		users:    repositories.NewUserRepository(db),
		ads:      repositories.NewAdvertisementRepository(db),
		messages: repositories.NewMessageRepository(db),
	}
}

// Send validates and persists one message from sender to recipient.
//
// Rules, re-checked inside a single transaction so the prior-message check
// stays consistent with the insert:
//   - sender and recipient must differ;
//   - the recipient must exist;
//   - if an advertisement is given it must exist, one of the two parties
//     must own it, and the owner may not open the conversation;
//   - before the insert, every unread message from the recipient to the
//     sender in this conversation is marked read (replying implies the
//     sender has opened the chat).
func (s *MessageService) Send(senderID, recipientID uint, advertisementID *uint, text string) (*models.Message, error) {
	if senderID == recipientID {
		return nil, ErrSameUser
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrBlankMessage
	}

	var created models.Message
	err := s.db.Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		ads := s.ads.WithTx(tx)
		messages := s.messages.WithTx(tx)

		exists, err := users.ExistsByID(recipientID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrRecipientNotFound
		}

		if advertisementID != nil {
			ad, err := ads.FindByID(*advertisementID)
			if err != nil {
				return err
			}
			if ad == nil {
				return ErrAdvertisementNotFound
			}
			if ad.OwnerID != senderID && ad.OwnerID != recipientID {
				return ErrRecipientNotOwner
			}
			if ad.OwnerID == senderID {
				hasHistory, err := messages.ExistsBetween(senderID, recipientID, advertisementID)
				if err != nil {
					return err
				}
				if !hasHistory {
					return ErrOwnerMessageFirst
				}
			}
		}

		// Replying clears the counterpart's backlog from the sender's side
		// before the new message becomes visible.
		if _, err := messages.MarkAllRead(recipientID, senderID, advertisementID); err != nil {
			return err
		}

		created = models.Message{
			AdvertisementID: advertisementID,
			SenderID:        senderID,
			RecipientID:     recipientID,
			Text:            text,
			SentAt:          time.Now().UTC(),
		}
		return messages.Create(&created)
	})
	if err != nil {
		return nil, err
	}

	return s.messages.FindByIDWithUsers(created.ID)
}

// ListChat returns one page of the conversation between the current user and
// filter.SecondUserID, ascending by (sent_at, id). When no cursor is given
// the page additionally carries the current unread count for the caller.
func (s *MessageService) ListChat(currentUserID uint, filter ChatFilter) (*ChatPage, error) {
	hasSentAt := filter.CursorSentAt != nil
	hasMessageID := filter.CursorMessageID != nil
	if hasSentAt != hasMessageID {
		return nil, ErrCursorPair
	}
	if currentUserID == filter.SecondUserID {
		return nil, ErrSameUser
	}

	exists, err := s.users.ExistsByID(filter.SecondUserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRecipientNotFound
	}

	messages, err := s.messages.FindPage(repositories.MessagePage{
		FirstUserID:     currentUserID,
		SecondUserID:    filter.SecondUserID,
		AdvertisementID: filter.AdvertisementID,
		Limit:           filter.Limit,
		Before:          filter.IsBefore,
		CursorSentAt:    filter.CursorSentAt,
		CursorMessageID: filter.CursorMessageID,
	})
	if err != nil {
		return nil, err
	}

	page := &ChatPage{Messages: messages}
	if !hasSentAt {
		// First page only: count messages from the other party still unread
		// by the caller.
		count, err := s.messages.CountUnread(filter.SecondUserID, currentUserID, filter.AdvertisementID)
		if err != nil {
			return nil, err
		}
		page.UnreadCount = &count
	}
	return page, nil
}

// MarkReadUpTo marks all messages sent by secondUserID to the current user,
// at or before the (upTo, upToMessageID) position of the conversation order,
// as read. Idempotent: a second call with the same or an earlier cursor
// changes nothing.
func (s *MessageService) MarkReadUpTo(currentUserID, secondUserID uint, advertisementID *uint, upTo time.Time, upToMessageID uint) error {
	if currentUserID == secondUserID {
		return ErrSameUser
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		ads := s.ads.WithTx(tx)
		messages := s.messages.WithTx(tx)

		if advertisementID != nil {
			exists, err := ads.ExistsByID(*advertisementID)
			if err != nil {
				return err
			}
			if !exists {
				return ErrAdvertisementNotFound
			}
		}

		hasHistory, err := messages.ExistsBetween(currentUserID, secondUserID, advertisementID)
		if err != nil {
			return err
		}
		if !hasHistory {
			return ErrConversationNotFound
		}

		_, err = messages.MarkReadUpTo(secondUserID, currentUserID, advertisementID, upTo, upToMessageID)
		return err
	})
}

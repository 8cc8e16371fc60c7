package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/temirlan-b/baraholka-api/models"
	"github.com/temirlan-b/baraholka-api/repositories"
)

// DeletedCommentText replaces the body of a deleted comment. The row itself
// is kept so that replies stay addressable.
const DeletedCommentText = "[comment deleted]"

// CommentService implements the threaded comment tree under advertisements
type CommentService struct {
	db  *gorm.DB
	ads repositories.AdvertisementRepository
}

// NewCommentService creates a comment service over the given database handle
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{
		db:  db,
		ads: repositories.NewAdvertisementRepository(db),
	}
}

// Add creates a comment under an advertisement, optionally as a reply.
// A reply's parent must exist, belong to the same advertisement and not be
// deleted. The new comment's root is the parent's root (or the parent itself
// when the parent is a root); a new root points at its own id.
func (s *CommentService) Add(commenterID, advertisementID uint, parentCommentID *uint, text string) (*models.Comment, error) {
	var created models.Comment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.ads.WithTx(tx).ExistsByID(advertisementID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrAdvertisementNotFound
		}

		var rootID *uint
		if parentCommentID != nil {
			var parent models.Comment
			if err := tx.First(&parent, *parentCommentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrParentCommentNotFound
				}
				return err
			}
			if parent.AdvertisementID != advertisementID {
				return ErrParentAdMismatch
			}
			if parent.IsDeleted() {
				return ErrParentCommentDeleted
			}
			if parent.RootCommentID != nil {
				rootID = parent.RootCommentID
			} else {
				rootID = &parent.ID
			}
		}

		created = models.Comment{
			AdvertisementID: advertisementID,
			CommenterID:     &commenterID,
			RootCommentID:   rootID,
			ParentCommentID: parentCommentID,
			Text:            text,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		// A root anchors its own thread; the id is only known after insert.
		if created.RootCommentID == nil {
			created.RootCommentID = &created.ID
			if err := tx.Model(&created).Update("root_comment_id", created.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Commenter").First(&created, created.ID).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

// Get fetches a single comment by id
func (s *CommentService) Get(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.Preload("Commenter").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// ListByAdvertisement returns all comments under an advertisement ordered by
// thread root, then creation order, so replies group under their threads
func (s *CommentService) ListByAdvertisement(advertisementID uint) ([]models.Comment, error) {
	exists, err := s.ads.ExistsByID(advertisementID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrAdvertisementNotFound
	}

	var comments []models.Comment
	err = s.db.Preload("Commenter").
		Where("advertisement_id = ?", advertisementID).
		Order("root_comment_id ASC, created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Delete soft-deletes a comment: the commenter reference is nulled and the
// text replaced with a fixed marker, preserving the thread structure.
// Only the original commenter or an administrator may delete.
func (s *CommentService) Delete(id uint, actor *models.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCommentNotFound
			}
			return err
		}
		if comment.IsDeleted() {
			// Deleting twice is a no-op.
			return nil
		}
		if *comment.CommenterID != actor.ID && !actor.IsAdmin() {
			return ErrNotCommenter
		}

		return tx.Model(&comment).Updates(map[string]interface{}{
			"commenter_id": nil,
			"text":         DeletedCommentText,
		}).Error
	})
}

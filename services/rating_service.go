package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/temirlan-b/baraholka-api/models"
	"github.com/temirlan-b/baraholka-api/repositories"
)

// RatingService implements point ratings between users and the periodically
// refreshed aggregate view
type RatingService struct {
	db    *gorm.DB
	users repositories.UserRepository
}

// NewRatingService creates a rating service over the given database handle
func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{
		db:    db,
		users: repositories.NewUserRepository(db),
	}
}

// Rate records raterID's rating of ratedID. A repeat rating by the same
// rater replaces the previous points.
func (s *RatingService) Rate(raterID, ratedID uint, points int) (*models.Rating, error) {
	if raterID == ratedID {
		return nil, ErrSelfRating
	}
	if points < 1 || points > 5 {
		return nil, &ValidationError{Code: "INVALID_POINTS", Message: "Points must be between 1 and 5"}
	}

	var rating models.Rating
	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.users.WithTx(tx).ExistsByID(ratedID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrUserNotFound
		}

		err = tx.Where("rater_id = ? AND rated_id = ?", raterID, ratedID).First(&rating).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rating = models.Rating{RaterID: raterID, RatedID: ratedID, Points: points}
			return tx.Create(&rating).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&rating).Update("points", points).Error
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// Unrate removes raterID's rating of ratedID
func (s *RatingService) Unrate(raterID, ratedID uint) error {
	result := s.db.Where("rater_id = ? AND rated_id = ?", raterID, ratedID).Delete(&models.Rating{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRatingNotFound
	}
	return nil
}

// GetSummary returns the aggregated rating view for one user. A user with no
// ratings gets a zero-valued summary rather than an error.
func (s *RatingService) GetSummary(userID uint) (*models.UserRatingSummary, error) {
	exists, err := s.users.ExistsByID(userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	var summary models.UserRatingSummary
	err = s.db.Where("user_id = ?", userID).First(&summary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserRatingSummary{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// RefreshSummaries rebuilds the user_rating_summaries table from the ratings
// table. The rebuild is a delete-and-reinsert inside one transaction, so a
// concurrent refresh sees either the old view or the new one, never a mix.
// Safe to call at any time; invoked by the periodic job.
func (s *RatingService) RefreshSummaries() error {
	type aggregate struct {
		RatedID uint
		Average float64
		Count   int64
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var rows []aggregate
		err := tx.Model(&models.Rating{}).
			Select("rated_id, AVG(points) AS average, COUNT(*) AS count").
			Group("rated_id").
			Scan(&rows).Error
		if err != nil {
			return err
		}

		if err := tx.Where("1 = 1").Delete(&models.UserRatingSummary{}).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, row := range rows {
			summary := models.UserRatingSummary{
				UserID:        row.RatedID,
				AveragePoints: row.Average,
				RatingsCount:  row.Count,
				RefreshedAt:   now,
			}
			if err := tx.Create(&summary).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

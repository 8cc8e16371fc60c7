package services

import (
	"gorm.io/gorm"

	"github.com/temirlan-b/baraholka-api/models"
	"github.com/temirlan-b/baraholka-api/repositories"
)

// AdvertisementService implements the listing lifecycle: Open -> Closed with
// an orthogonal Promoted flag settable only while open. All transitions
// require the owner or an administrator and are re-validated inside a
// transaction at write time.
type AdvertisementService struct {
	db  *gorm.DB
	ads repositories.AdvertisementRepository
}

// NewAdvertisementService creates an advertisement service over the given database handle
func NewAdvertisementService(db *gorm.DB) *AdvertisementService {
	return &AdvertisementService{
		db:  db,
		ads: repositories.NewAdvertisementRepository(db),
	}
}

// transition loads the advertisement, checks ownership and applies fn to it
// inside one transaction
func (s *AdvertisementService) transition(id uint, actor *models.User, fn func(ad *models.Advertisement) error) (*models.Advertisement, error) {
	var updated *models.Advertisement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		ads := s.ads.WithTx(tx)

		ad, err := ads.FindByID(id)
		if err != nil {
			return err
		}
		if ad == nil {
			return ErrAdvertisementNotFound
		}
		if ad.OwnerID != actor.ID && !actor.IsAdmin() {
			return ErrNotOwner
		}
		if err := fn(ad); err != nil {
			return err
		}
		if err := ads.Save(ad); err != nil {
			return err
		}
		updated = ad
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Close moves an open advertisement to the closed state
func (s *AdvertisementService) Close(id uint, actor *models.User) (*models.Advertisement, error) {
	return s.transition(id, actor, func(ad *models.Advertisement) error {
		if ad.IsClosed {
			return ErrAdvertisementClosed
		}
		ad.IsClosed = true
		return nil
	})
}

// Promote sets the promoted flag on an open, not-yet-promoted advertisement
func (s *AdvertisementService) Promote(id uint, actor *models.User) (*models.Advertisement, error) {
	return s.transition(id, actor, func(ad *models.Advertisement) error {
		if ad.IsClosed {
			return ErrPromoteClosed
		}
		if ad.IsPromoted {
			return ErrAlreadyPromoted
		}
		ad.IsPromoted = true
		return nil
	})
}

// Reopen moves a closed advertisement back to the open state
func (s *AdvertisementService) Reopen(id uint, actor *models.User) (*models.Advertisement, error) {
	return s.transition(id, actor, func(ad *models.Advertisement) error {
		if !ad.IsClosed {
			return ErrAdvertisementNotClosed
		}
		ad.IsClosed = false
		return nil
	})
}

package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/temirlan-b/baraholka-api/models"
	"github.com/temirlan-b/baraholka-api/repositories"
)

// SaleService records completed sales against advertisements
type SaleService struct {
	db    *gorm.DB
	users repositories.UserRepository
	ads   repositories.AdvertisementRepository
}

// NewSaleService creates a sale service over the given database handle
func NewSaleService(db *gorm.DB) *SaleService {
	return &SaleService{
		db:    db,
		users: repositories.NewUserRepository(db),
		ads:   repositories.NewAdvertisementRepository(db),
	}
}

// Record registers a sale of quantity units of the advertisement to buyerID.
// Only the owner may record a sale, the advertisement must be open and the
// quantity must not exceed remaining stock. Stock is decremented and the
// advertisement closes automatically when it reaches zero.
func (s *SaleService) Record(sellerID, advertisementID, buyerID uint, quantity int) (*models.Sale, error) {
	if quantity <= 0 {
		return nil, &ValidationError{Code: "INVALID_QUANTITY", Message: "Quantity must be positive"}
	}
	if sellerID == buyerID {
		return nil, ErrSelfSale
	}

	var sale models.Sale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		ads := s.ads.WithTx(tx)

		exists, err := users.ExistsByID(buyerID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrBuyerNotFound
		}

		ad, err := ads.FindByID(advertisementID)
		if err != nil {
			return err
		}
		if ad == nil {
			return ErrAdvertisementNotFound
		}
		if ad.OwnerID != sellerID {
			return ErrNotOwner
		}
		if ad.IsClosed {
			return ErrAdvertisementClosed
		}
		if quantity > ad.Quantity {
			return ErrInsufficientQuantity
		}

		ad.Quantity -= quantity
		if ad.Quantity == 0 {
			ad.IsClosed = true
		}
		if err := ads.Save(ad); err != nil {
			return err
		}

		sale = models.Sale{
			AdvertisementID: advertisementID,
			SellerID:        sellerID,
			BuyerID:         buyerID,
			Quantity:        quantity,
			PricePerUnit:    ad.Price,
			SoldAt:          time.Now().UTC(),
		}
		return tx.Create(&sale).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Seller").Preload("Buyer").First(&sale, sale.ID).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// ListForUser returns sales where the user is seller or buyer, newest first
func (s *SaleService) ListForUser(userID uint) ([]models.Sale, error) {
	var sales []models.Sale
	err := s.db.Preload("Seller").Preload("Buyer").
		Where("seller_id = ? OR buyer_id = ?", userID, userID).
		Order("sold_at DESC").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

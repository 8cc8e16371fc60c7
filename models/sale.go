package models

import (
	"time"
)

// Sale records a completed sale against an advertisement
type Sale struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	AdvertisementID uint          `gorm:"not null;index" json:"advertisement_id"` // foreign key to advertisements table
	Advertisement   Advertisement `gorm:"foreignKey:AdvertisementID" json:"-"`
	SellerID        uint          `gorm:"not null;index" json:"seller_id"`
	Seller          User          `gorm:"foreignKey:SellerID" json:"seller"`
	BuyerID         uint          `gorm:"not null;index" json:"buyer_id"`
	Buyer           User          `gorm:"foreignKey:BuyerID" json:"buyer"`
	Quantity        int           `gorm:"not null;check:quantity > 0" json:"quantity"`
	PricePerUnit    float64       `gorm:"not null" json:"price_per_unit"`
	SoldAt          time.Time     `gorm:"not null" json:"sold_at"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// TableName specifies the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

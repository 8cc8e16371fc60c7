package models

// AdvertisementType is a reference entity categorizing advertisements
type AdvertisementType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// TableName specifies the table name for the AdvertisementType model
func (AdvertisementType) TableName() string {
	return "advertisement_types"
}

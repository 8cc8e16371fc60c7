package models

// City is a reference entity used to locate advertisements
type City struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// TableName specifies the table name for the City model
func (City) TableName() string {
	return "cities"
}

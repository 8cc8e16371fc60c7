package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/temirlan-b/baraholka-api/models"
)

// AdvertisementFilter narrows advertisement listings
type AdvertisementFilter struct {
	CityID   *uint
	TypeID   *uint
	MinPrice *float64
	MaxPrice *float64
	OpenOnly bool
	Limit    int
	Offset   int
}

// AdvertisementRepository exposes typed queries over the advertisements table.
// Find methods return (nil, nil) when no row matches.
type AdvertisementRepository interface {
	Create(ad *models.Advertisement) error
	Save(ad *models.Advertisement) error
	FindByID(id uint) (*models.Advertisement, error)
	FindByIDWithRelations(id uint) (*models.Advertisement, error)
	FindByFilter(f AdvertisementFilter) ([]models.Advertisement, error)
	ExistsByID(id uint) (bool, error)
	WithTx(tx *gorm.DB) AdvertisementRepository
}

// GormAdvertisementRepository implements AdvertisementRepository on top of GORM
type GormAdvertisementRepository struct {
	db *gorm.DB
}

// NewAdvertisementRepository creates an advertisement repository bound to the given database handle
func NewAdvertisementRepository(db *gorm.DB) *GormAdvertisementRepository {
	return &GormAdvertisementRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormAdvertisementRepository) WithTx(tx *gorm.DB) AdvertisementRepository {
	return &GormAdvertisementRepository{db: tx}
}

// Create inserts a new advertisement
func (r *GormAdvertisementRepository) Create(ad *models.Advertisement) error {
	return r.db.Create(ad).Error
}

// Save persists all fields of an existing advertisement
func (r *GormAdvertisementRepository) Save(ad *models.Advertisement) error {
	return r.db.Save(ad).Error
}

// FindByID fetches an advertisement by primary key
func (r *GormAdvertisementRepository) FindByID(id uint) (*models.Advertisement, error) {
	var ad models.Advertisement
	if err := r.db.First(&ad, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ad, nil
}

// FindByIDWithRelations fetches an advertisement with owner, city and type preloaded
func (r *GormAdvertisementRepository) FindByIDWithRelations(id uint) (*models.Advertisement, error) {
	var ad models.Advertisement
	err := r.db.Preload("Owner").Preload("City").Preload("Type").First(&ad, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ad, nil
}

// FindByFilter fetches advertisements matching the filter, promoted listings first
func (r *GormAdvertisementRepository) FindByFilter(f AdvertisementFilter) ([]models.Advertisement, error) {
	q := r.db.Model(&models.Advertisement{}).
		Preload("Owner").Preload("City").Preload("Type")

	if f.CityID != nil {
		q = q.Where("city_id = ?", *f.CityID)
	}
	if f.TypeID != nil {
		q = q.Where("type_id = ?", *f.TypeID)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.OpenOnly {
		q = q.Where("is_closed = ?", false)
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var ads []models.Advertisement
	err := q.Order("is_promoted DESC, created_at DESC").
		Limit(limit).
		Offset(f.Offset).
		Find(&ads).Error
	if err != nil {
		return nil, err
	}
	return ads, nil
}

// ExistsByID reports whether an advertisement with the given id exists
func (r *GormAdvertisementRepository) ExistsByID(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Advertisement{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

package repositories

import (
	"context"

	"dispensary-loyalty/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// dispensaryRepository implements DispensaryRepository interface
type dispensaryRepository struct {
	db *gorm.DB
}

// NewDispensaryRepository creates a new dispensary repository
func NewDispensaryRepository(db *gorm.DB) DispensaryRepository {
	return &dispensaryRepository{db: db}
}

// Create creates a new dispensary
func (r *dispensaryRepository) Create(ctx context.Context, dispensary *models.Dispensary) error {
	return r.db.WithContext(ctx).Create(dispensary).Error
}

// GetByID gets a dispensary by ID
func (r *dispensaryRepository) GetByID(ctx context.Context, id uint) (*models.Dispensary, error) {
	var dispensary models.Dispensary
	err := r.db.WithContext(ctx).First(&dispensary, id).Error
	if err != nil {
		return nil, err
	}
	return &dispensary, nil
}

// CountActive counts active dispensaries
func (r *dispensaryRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Dispensary{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// GetActiveAt gets the active dispensary at a stable offset (ordered by ID)
func (r *dispensaryRepository) GetActiveAt(ctx context.Context, offset int) (*models.Dispensary, error) {
	var dispensary models.Dispensary
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Offset(offset).
		First(&dispensary).Error
	if err != nil {
		return nil, err
	}
	return &dispensary, nil
}

// dealRepository implements DealRepository interface
type dealRepository struct {
	db *gorm.DB
}

// NewDealRepository creates a new deal repository
func NewDealRepository(db *gorm.DB) DealRepository {
	return &dealRepository{db: db}
}

// Create creates a new deal
func (r *dealRepository) Create(ctx context.Context, deal *models.Deal) error {
	return r.db.WithContext(ctx).Create(deal).Error
}

// GetByID gets a deal by ID
func (r *dealRepository) GetByID(ctx context.Context, id uint) (*models.Deal, error) {
	var deal models.Deal
	err := r.db.WithContext(ctx).First(&deal, id).Error
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

// ListByDispensary lists active deals for a dispensary, cheapest first
func (r *dealRepository) ListByDispensary(ctx context.Context, dispensaryID uint) ([]*models.Deal, error) {
	var deals []*models.Deal
	err := r.db.WithContext(ctx).
		Where("dispensary_id = ? AND is_active = ?", dispensaryID, true).
		Order("points ASC").
		Find(&deals).Error
	return deals, err
}

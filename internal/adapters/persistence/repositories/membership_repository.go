package repositories

import (
	"context"

	"dispensary-loyalty/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// membershipRepository implements MembershipRepository interface
type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

// Create inserts a membership and fails on a duplicate (user, dispensary)
func (r *membershipRepository) Create(ctx context.Context, membership *models.Membership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

// CreateIfAbsent inserts a membership unless one already exists for the
// same (user, dispensary). Returns true when a row was inserted.
func (r *membershipRepository) CreateIfAbsent(ctx context.Context, membership *models.Membership) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(membership)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetByID gets a membership by ID
func (r *membershipRepository) GetByID(ctx context.Context, id uint) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.WithContext(ctx).First(&membership, id).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// GetByUserAndDispensary gets the membership for a user at a dispensary
func (r *membershipRepository) GetByUserAndDispensary(ctx context.Context, userID, dispensaryID uint) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND dispensary_id = ?", userID, dispensaryID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// GetForUpdate reads and row-locks the membership for a user at a dispensary.
// Must run inside a transaction.
func (r *membershipRepository) GetForUpdate(ctx context.Context, userID, dispensaryID uint) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND dispensary_id = ?", userID, dispensaryID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// GetByIDForUpdate reads and row-locks a membership by ID.
// Must run inside a transaction.
func (r *membershipRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&membership, id).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// Update saves a membership
func (r *membershipRepository) Update(ctx context.Context, membership *models.Membership) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(membership).Error
}

// ListByUser lists all memberships of a user with their dispensary
func (r *membershipRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Membership, error) {
	var memberships []*models.Membership
	err := r.db.WithContext(ctx).
		Preload("Dispensary").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&memberships).Error
	return memberships, err
}

// GetLastVisitedByUser gets the membership the user visited most recently
func (r *membershipRepository) GetLastVisitedByUser(ctx context.Context, userID uint) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND last_visit_at IS NOT NULL", userID).
		Order("last_visit_at DESC").
		Order("id DESC").
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

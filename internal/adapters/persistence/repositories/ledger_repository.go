package repositories

import (
	"context"

	"dispensary-loyalty/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// redemptionRepository implements RedemptionRepository interface
type redemptionRepository struct {
	db *gorm.DB
}

// NewRedemptionRepository creates a new redemption repository
func NewRedemptionRepository(db *gorm.DB) RedemptionRepository {
	return &redemptionRepository{db: db}
}

// Create appends a redemption
func (r *redemptionRepository) Create(ctx context.Context, redemption *models.Redemption) error {
	return r.db.WithContext(ctx).Create(redemption).Error
}

// ListByMembership lists every redemption of a membership, newest first
func (r *redemptionRepository) ListByMembership(ctx context.Context, membershipID uint) ([]*models.Redemption, error) {
	var redemptions []*models.Redemption
	err := r.db.WithContext(ctx).
		Where("membership_id = ?", membershipID).
		Order("redeemed_at DESC").
		Find(&redemptions).Error
	return redemptions, err
}

// PageByMembership lists redemptions of a membership with pagination
func (r *redemptionRepository) PageByMembership(ctx context.Context, membershipID uint, offset, limit int) ([]*models.Redemption, int64, error) {
	var redemptions []*models.Redemption
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Redemption{}).Where("membership_id = ?", membershipID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Deal").
		Where("membership_id = ?", membershipID).
		Order("redeemed_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&redemptions).Error
	if err != nil {
		return nil, 0, err
	}

	return redemptions, total, nil
}

// rewardNotificationRepository implements RewardNotificationRepository interface
type rewardNotificationRepository struct {
	db *gorm.DB
}

// NewRewardNotificationRepository creates a new reward notification repository
func NewRewardNotificationRepository(db *gorm.DB) RewardNotificationRepository {
	return &rewardNotificationRepository{db: db}
}

// Create appends a reward notification entry
func (r *rewardNotificationRepository) Create(ctx context.Context, notification *models.RewardNotification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// ListByUserAndDispensary lists the reward notifications sent to a user for a dispensary
func (r *rewardNotificationRepository) ListByUserAndDispensary(ctx context.Context, userID, dispensaryID uint) ([]*models.RewardNotification, error) {
	var notifications []*models.RewardNotification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND dispensary_id = ?", userID, dispensaryID).
		Order("created_at ASC").
		Find(&notifications).Error
	return notifications, err
}

// visitationRepository implements VisitationRepository interface
type visitationRepository struct {
	db *gorm.DB
}

// NewVisitationRepository creates a new visitation repository
func NewVisitationRepository(db *gorm.DB) VisitationRepository {
	return &visitationRepository{db: db}
}

// Create appends a visitation
func (r *visitationRepository) Create(ctx context.Context, visitation *models.Visitation) error {
	return r.db.WithContext(ctx).Create(visitation).Error
}

// CountByUserAndDispensary counts visits of a user at a dispensary
func (r *visitationRepository) CountByUserAndDispensary(ctx context.Context, userID, dispensaryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Visitation{}).
		Where("user_id = ? AND dispensary_id = ?", userID, dispensaryID).
		Count(&count).Error
	return count, err
}

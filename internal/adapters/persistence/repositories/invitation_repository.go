package repositories

import (
	"context"

	"dispensary-loyalty/internal/adapters/persistence/models"
	"dispensary-loyalty/internal/core/domain"

	"gorm.io/gorm"
)

// invitationRepository implements InvitationRepository interface
type invitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

// Create creates a new invitation
func (r *invitationRepository) Create(ctx context.Context, invitation *models.Invitation) error {
	return r.db.WithContext(ctx).Create(invitation).Error
}

// GetByID gets an invitation by ID
func (r *invitationRepository) GetByID(ctx context.Context, id uint) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.WithContext(ctx).First(&invitation, id).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// GetForInvitee gets an invitation by ID only if it was sent to inviteeID
func (r *invitationRepository) GetForInvitee(ctx context.Context, id, inviteeID uint) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.WithContext(ctx).
		Preload("Inviter").
		Preload("Invitee").
		Where("id = ? AND invitee_id = ?", id, inviteeID).
		First(&invitation).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// GetByPair gets the most recent invitation between an inviter and invitee
func (r *invitationRepository) GetByPair(ctx context.Context, inviterID, inviteeID uint) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.WithContext(ctx).
		Where("inviter_id = ? AND invitee_id = ?", inviterID, inviteeID).
		Order("id DESC").
		First(&invitation).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// Transition moves an invitation addressed to inviteeID from one state to
// another in a single conditional UPDATE. Returns false when the invitation
// was not in the from state, including when another writer got there first.
func (r *invitationRepository) Transition(ctx context.Context, id, inviteeID uint, from, to domain.InvitationState) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("id = ? AND invitee_id = ? AND state = ?", id, inviteeID, string(from)).
		Update("state", string(to))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ExistsAcceptedFromOther checks if inviteeID already accepted an
// invitation from anyone but inviterID
func (r *invitationRepository) ExistsAcceptedFromOther(ctx context.Context, inviteeID, inviterID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("invitee_id = ? AND inviter_id <> ? AND state = ?", inviteeID, inviterID, string(domain.InvitationAccepted)).
		Count(&count).Error
	return count > 0, err
}

// CountAcceptedByUser counts accepted invitations the user is part of,
// as either inviter or invitee
func (r *invitationRepository) CountAcceptedByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("state = ?", string(domain.InvitationAccepted)).
		Where("inviter_id = ? OR invitee_id = ?", userID, userID).
		Count(&count).Error
	return count, err
}

// ExistsPending checks if a pending invitation exists between two users
func (r *invitationRepository) ExistsPending(ctx context.Context, inviterID, inviteeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("inviter_id = ? AND invitee_id = ? AND state = ?", inviterID, inviteeID, string(domain.InvitationPending)).
		Count(&count).Error
	return count > 0, err
}

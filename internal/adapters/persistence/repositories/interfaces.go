package repositories

import (
	"context"

	"dispensary-loyalty/internal/adapters/persistence/models"
	"dispensary-loyalty/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*models.User, error)
	GetByMagicLink(ctx context.Context, magicLink string) (*models.User, error)
}

// DispensaryRepository defines dispensary repository interface
// Dispensaries are read-only to the loyalty workflows
type DispensaryRepository interface {
	Create(ctx context.Context, dispensary *models.Dispensary) error
	GetByID(ctx context.Context, id uint) (*models.Dispensary, error)
	CountActive(ctx context.Context) (int64, error)
	GetActiveAt(ctx context.Context, offset int) (*models.Dispensary, error)
}

// DealRepository defines deal repository interface
type DealRepository interface {
	Create(ctx context.Context, deal *models.Deal) error
	GetByID(ctx context.Context, id uint) (*models.Deal, error)
	ListByDispensary(ctx context.Context, dispensaryID uint) ([]*models.Deal, error)
}

// MembershipRepository defines membership repository interface
type MembershipRepository interface {
	Create(ctx context.Context, membership *models.Membership) error
	CreateIfAbsent(ctx context.Context, membership *models.Membership) (bool, error)
	GetByID(ctx context.Context, id uint) (*models.Membership, error)
	GetByUserAndDispensary(ctx context.Context, userID, dispensaryID uint) (*models.Membership, error)
	GetForUpdate(ctx context.Context, userID, dispensaryID uint) (*models.Membership, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Membership, error)
	Update(ctx context.Context, membership *models.Membership) error
	ListByUser(ctx context.Context, userID uint) ([]*models.Membership, error)
	GetLastVisitedByUser(ctx context.Context, userID uint) (*models.Membership, error)
}

// RedemptionRepository defines redemption repository interface (append-only)
type RedemptionRepository interface {
	Create(ctx context.Context, redemption *models.Redemption) error
	ListByMembership(ctx context.Context, membershipID uint) ([]*models.Redemption, error)
	PageByMembership(ctx context.Context, membershipID uint, offset, limit int) ([]*models.Redemption, int64, error)
}

// RewardNotificationRepository defines reward notification history interface
type RewardNotificationRepository interface {
	Create(ctx context.Context, notification *models.RewardNotification) error
	ListByUserAndDispensary(ctx context.Context, userID, dispensaryID uint) ([]*models.RewardNotification, error)
}

// VisitationRepository defines visitation log interface (append-only)
type VisitationRepository interface {
	Create(ctx context.Context, visitation *models.Visitation) error
	CountByUserAndDispensary(ctx context.Context, userID, dispensaryID uint) (int64, error)
}

// InvitationRepository defines invitation repository interface
type InvitationRepository interface {
	Create(ctx context.Context, invitation *models.Invitation) error
	GetByID(ctx context.Context, id uint) (*models.Invitation, error)
	GetForInvitee(ctx context.Context, id, inviteeID uint) (*models.Invitation, error)
	GetByPair(ctx context.Context, inviterID, inviteeID uint) (*models.Invitation, error)
	Transition(ctx context.Context, id, inviteeID uint, from, to domain.InvitationState) (bool, error)
	ExistsAcceptedFromOther(ctx context.Context, inviteeID, inviterID uint) (bool, error)
	CountAcceptedByUser(ctx context.Context, userID uint) (int64, error)
	ExistsPending(ctx context.Context, inviterID, inviteeID uint) (bool, error)
}

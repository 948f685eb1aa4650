package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the loyalty repositories over one connection or transaction
type Store struct {
	db *gorm.DB

	Users               UserRepository
	Dispensaries        DispensaryRepository
	Deals               DealRepository
	Memberships         MembershipRepository
	Redemptions         RedemptionRepository
	RewardNotifications RewardNotificationRepository
	Visitations         VisitationRepository
	Invitations         InvitationRepository
}

// NewStore creates a store bound to db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:                  db,
		Users:               NewUserRepository(db),
		Dispensaries:        NewDispensaryRepository(db),
		Deals:               NewDealRepository(db),
		Memberships:         NewMembershipRepository(db),
		Redemptions:         NewRedemptionRepository(db),
		RewardNotifications: NewRewardNotificationRepository(db),
		Visitations:         NewVisitationRepository(db),
		Invitations:         NewInvitationRepository(db),
	}
}

// Transaction runs fn with a store bound to a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// DB returns the underlying connection
func (s *Store) DB() *gorm.DB {
	return s.db
}

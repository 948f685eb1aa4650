package services

import (
	"context"
	"errors"
	"fmt"

	"dispensary-loyalty/internal/adapters/persistence/models"
	"dispensary-loyalty/internal/core/domain"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VisitService handles point accrual on visits and point spending on deals
type VisitService struct {
	memberships *MembershipService
}

// NewVisitService creates a new visit service
func NewVisitService(memberships *MembershipService) *VisitService {
	return &VisitService{memberships: memberships}
}

// RecordVisit awards visit points to the user's membership at a dispensary
// and tells the caller whether to prompt the user to invite a friend.
func (s *VisitService) RecordVisit(ctx context.Context, userID, dispensaryID uint) (*domain.VisitOutcome, error) {
	ms := s.memberships

	user, err := ms.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	dispensary, err := ms.directory.Get(ctx, dispensaryID)
	if err != nil {
		return nil, err
	}

	var (
		visitCount int64
		accepted   int64
	)
	membership, err := ms.withMembership(ctx, user, dispensary, lockOrCreate(userID, dispensaryID),
		func(ctx context.Context, t *membershipTx) error {
			now := ms.clock.Now()
			t.membership.AwardPoints(ms.rules.VisitPoints, dispensary.Tiers, now)
			if err := ms.save(ctx, t); err != nil {
				return err
			}
			t.onCommit(func(ctx context.Context) {
				ms.notifier.CreateVisit(ctx, user, dispensary, nil)
			})

			visit := &models.Visitation{UserID: userID, DispensaryID: dispensaryID, VisitedAt: now}
			if err := t.store.Visitations.Create(ctx, visit); err != nil {
				return fmt.Errorf("log visit: %w: %w", domain.ErrPersistFailure, err)
			}

			var err error
			if visitCount, err = t.store.Visitations.CountByUserAndDispensary(ctx, userID, dispensaryID); err != nil {
				return fmt.Errorf("count visits: %w: %w", domain.ErrPersistFailure, err)
			}
			if accepted, err = t.store.Invitations.CountAcceptedByUser(ctx, userID); err != nil {
				return fmt.Errorf("count friends: %w: %w", domain.ErrPersistFailure, err)
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	outcome := &domain.VisitOutcome{
		Membership:               membership,
		Tier:                     domain.EligibleTier(membership.Points, dispensary.Tiers),
		VisitCount:               visitCount,
		ShouldPromptInviteFriend: s.shouldPromptInviteFriend(visitCount, accepted),
	}

	ms.logger.Info("visit recorded",
		zap.Uint("user_id", userID),
		zap.Uint("dispensary_id", dispensaryID),
		zap.Int("points", membership.Points),
		zap.Int64("visits", visitCount),
		zap.Bool("prompt_invite", outcome.ShouldPromptInviteFriend),
	)
	return outcome, nil
}

// shouldPromptInviteFriend is true on the 2nd, 4th, ... visit up to the
// configured maximum, for users without any accepted referral
func (s *VisitService) shouldPromptInviteFriend(visitCount, acceptedInvitations int64) bool {
	if visitCount > int64(s.memberships.rules.InvitePromptMaxVisits) {
		return false
	}
	return visitCount%2 == 0 && acceptedInvitations == 0
}

// Redeem spends a membership's points on a deal. The balance change and the
// redemption row are written together or not at all.
func (s *VisitService) Redeem(ctx context.Context, membershipID, dealID uint) (*domain.Redemption, error) {
	ms := s.memberships

	current, err := ms.store.Memberships.GetByID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, err
	}
	deal, err := ms.store.Deals.GetByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDealNotFound
		}
		return nil, err
	}
	if deal.DispensaryID != current.DispensaryID {
		return nil, domain.ErrDealNotFound
	}

	user, err := ms.loadUser(ctx, current.UserID)
	if err != nil {
		return nil, err
	}
	dispensary, err := ms.directory.Get(ctx, current.DispensaryID)
	if err != nil {
		return nil, err
	}

	var redemption *models.Redemption
	_, err = ms.withMembership(ctx, user, dispensary, lockByID(membershipID),
		func(ctx context.Context, t *membershipTx) error {
			if err := t.membership.Deduct(deal.Points); err != nil {
				return err
			}
			if err := ms.save(ctx, t); err != nil {
				return err
			}

			redemption = &models.Redemption{
				MembershipID: membershipID,
				DealID:       deal.ID,
				DealPoints:   deal.Points,
				RedeemedAt:   ms.clock.Now(),
			}
			if err := t.store.Redemptions.Create(ctx, redemption); err != nil {
				return fmt.Errorf("create redemption: %w: %w", domain.ErrPersistFailure, err)
			}
			return nil
		})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientPoints) {
			ms.logger.Info("redemption refused",
				zap.Uint("membership_id", membershipID),
				zap.Uint("deal_id", dealID),
				zap.Int("deal_points", deal.Points),
			)
		}
		return nil, err
	}

	ms.logger.Info("deal redeemed",
		zap.Uint("membership_id", membershipID),
		zap.Uint("deal_id", dealID),
		zap.Int("deal_points", deal.Points),
	)
	result := redemption.ToDomain()
	return &result, nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"dispensary-loyalty/internal/adapters/persistence/models"
	"dispensary-loyalty/internal/adapters/persistence/repositories"
	"dispensary-loyalty/internal/core/domain"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReferralService drives the invitation lifecycle and the entitlements it grants
type ReferralService struct {
	memberships *MembershipService
	sms         SmsGateway
	catalog     MessageCatalog
}

// NewReferralService creates a new referral service
func NewReferralService(memberships *MembershipService, sms SmsGateway, catalog MessageCatalog) *ReferralService {
	return &ReferralService{
		memberships: memberships,
		sms:         sms,
		catalog:     catalog,
	}
}

// ReferralOutcome is the result of a referral signup
type ReferralOutcome struct {
	Invitation        *domain.Invitation `json:"invitation"`
	Dispensary        *domain.Dispensary `json:"dispensary"`
	InviterMembership *domain.Membership `json:"-"`
	InviteeMembership *domain.Membership `json:"-"`
}

// ResolveInviteLink finds the inviter behind an invite link
func (s *ReferralService) ResolveInviteLink(ctx context.Context, magicLink string) (*domain.User, error) {
	user, err := s.memberships.store.Users.GetByMagicLink(ctx, magicLink)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnresolvedUser
		}
		return nil, err
	}
	return user.ToDomain(), nil
}

// CreateInvitation records a pending invitation to an already registered user
func (s *ReferralService) CreateInvitation(ctx context.Context, inviterID, inviteeID uint) (*domain.Invitation, error) {
	if inviterID == inviteeID {
		return nil, domain.ErrSelfInvitation
	}
	ms := s.memberships
	if _, err := ms.loadUser(ctx, inviterID); err != nil {
		return nil, err
	}
	if _, err := ms.loadUser(ctx, inviteeID); err != nil {
		return nil, err
	}

	exists, err := ms.store.Invitations.ExistsPending(ctx, inviterID, inviteeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateInvitation
	}

	invitation := &models.Invitation{
		InviterID: inviterID,
		InviteeID: inviteeID,
		State:     string(domain.InvitationPending),
	}
	if err := ms.store.Invitations.Create(ctx, invitation); err != nil {
		return nil, fmt.Errorf("create invitation: %w: %w", domain.ErrPersistFailure, err)
	}
	return invitation.ToDomain(), nil
}

// AcceptSignupReferralByLink applies a referral for an invitee who signed
// up through the invite link magicLink
func (s *ReferralService) AcceptSignupReferralByLink(ctx context.Context, magicLink string, inviteeID uint) (*ReferralOutcome, error) {
	inviter, err := s.ResolveInviteLink(ctx, magicLink)
	if err != nil {
		return nil, err
	}
	return s.AcceptSignupReferral(ctx, inviter.ID, inviteeID)
}

// AcceptSignupReferral handles an invitee who just signed up through the
// inviter's link. Both users get the free-item entitlement messages at the
// inviter's last visited dispensary; no points change hands.
//
// An invitee already referred by someone else is rejected with
// ErrInvalidInvitationState. Repeating the call for the same pair reuses the
// same invitation and records.
//
// The inviter and invitee records are saved in separate transactions. If the
// invitee save fails the inviter's message stays in place and the error is
// returned.
func (s *ReferralService) AcceptSignupReferral(ctx context.Context, inviterID, inviteeID uint) (*ReferralOutcome, error) {
	if inviterID == inviteeID {
		return nil, domain.ErrSelfInvitation
	}
	ms := s.memberships

	inviter, err := ms.loadUser(ctx, inviterID)
	if err != nil {
		return nil, err
	}
	invitee, err := ms.loadUser(ctx, inviteeID)
	if err != nil {
		return nil, err
	}

	dispensary, err := ms.directory.LastVisitedOrRandom(ctx, inviterID)
	if err != nil {
		return nil, err
	}

	existing, err := ms.store.Memberships.GetByUserAndDispensary(ctx, inviteeID, dispensary.ID)
	switch {
	case err == nil:
		if referredByOther(existing.ToDomain(), inviterID) {
			return nil, domain.ErrInvalidInvitationState
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	invitation, err := s.acceptedInvitation(ctx, inviterID, inviteeID)
	if err != nil {
		return nil, err
	}

	inviterMembership, err := ms.withMembership(ctx, inviter, dispensary, lockOrCreate(inviterID, dispensary.ID),
		func(ctx context.Context, t *membershipTx) error {
			message := s.catalog.T("free_item.inviter", map[string]string{
				"friend":     invitee.Name,
				"dispensary": dispensary.Name,
			})
			t.membership.FreeItemMessage = &message
			if err := ms.save(ctx, t); err != nil {
				return err
			}
			t.onCommit(func(ctx context.Context) {
				ms.notifier.CreateInviteeSignedUp(ctx, inviter, dispensary, invitee)
			})
			return nil
		})
	if err != nil {
		return nil, err
	}

	inviteeMembership, err := ms.withMembership(ctx, invitee, dispensary, lockOrCreate(inviteeID, dispensary.ID),
		func(ctx context.Context, t *membershipTx) error {
			message := s.catalog.T("free_item.invitee", map[string]string{
				"friend": inviter.Name,
			})
			if referredByOther(t.membership, inviterID) {
				return domain.ErrInvalidInvitationState
			}
			referredBy := inviterID
			t.membership.GetsFreeItem = true
			t.membership.ReferredByUserID = &referredBy
			t.membership.FreeItemMessage = &message
			if err := ms.save(ctx, t); err != nil {
				return err
			}
			t.onCommit(func(ctx context.Context) {
				ms.notifier.CreateReferralFreeJoin(ctx, invitee, dispensary, inviter)
			})
			return nil
		})
	if err != nil {
		ms.logger.Error("referral left half-applied: inviter updated, invitee not",
			zap.Uint("inviter_id", inviterID),
			zap.Uint("invitee_id", inviteeID),
			zap.Uint("dispensary_id", dispensary.ID),
			zap.Error(err),
		)
		return nil, err
	}

	sms := s.catalog.T("sms.invitation_new_user_inviter", map[string]string{
		"dispensary": dispensary.Name,
		"friend":     invitee.Name,
	})
	if err := s.sms.SendTo(ctx, inviter.PhoneNumber, sms); err != nil {
		ms.logger.Warn("referral sms failed",
			zap.Uint("inviter_id", inviterID),
			zap.Error(err),
		)
	}

	ms.logger.Info("referral signup accepted",
		zap.Uint("invitation_id", invitation.ID),
		zap.Uint("inviter_id", inviterID),
		zap.Uint("invitee_id", inviteeID),
		zap.Uint("dispensary_id", dispensary.ID),
	)

	return &ReferralOutcome{
		Invitation:        invitation,
		Dispensary:        dispensary,
		InviterMembership: inviterMembership,
		InviteeMembership: inviteeMembership,
	}, nil
}

// acceptedInvitation returns the pair's invitation in ACCEPTED state,
// creating it if the pair has none. The invitee's user row is locked so
// concurrent referrals for one invitee apply one at a time.
func (s *ReferralService) acceptedInvitation(ctx context.Context, inviterID, inviteeID uint) (*domain.Invitation, error) {
	var accepted *models.Invitation
	err := s.memberships.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Users.GetByIDForUpdate(ctx, inviteeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}

		taken, err := tx.Invitations.ExistsAcceptedFromOther(ctx, inviteeID, inviterID)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrInvalidInvitationState
		}

		existing, err := tx.Invitations.GetByPair(ctx, inviterID, inviteeID)
		switch {
		case err == nil:
			from := domain.InvitationState(existing.State)
			if from != domain.InvitationAccepted {
				if _, err := tx.Invitations.Transition(ctx, existing.ID, inviteeID, from, domain.InvitationAccepted); err != nil {
					return fmt.Errorf("accept invitation: %w: %w", domain.ErrPersistFailure, err)
				}
				existing.State = string(domain.InvitationAccepted)
			}
			accepted = existing
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		accepted = &models.Invitation{
			InviterID: inviterID,
			InviteeID: inviteeID,
			State:     string(domain.InvitationAccepted),
		}
		if err := tx.Invitations.Create(ctx, accepted); err != nil {
			return fmt.Errorf("create invitation: %w: %w", domain.ErrPersistFailure, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accepted.ToDomain(), nil
}

func referredByOther(m *domain.Membership, inviterID uint) bool {
	return m.ReferredByUserID != nil && *m.ReferredByUserID != inviterID
}

// RespondToInvitation applies an already registered invitee's answer to a
// pending invitation. Accepting sends friendship notifications to both users.
// Only the response that moves the invitation out of PENDING succeeds.
func (s *ReferralService) RespondToInvitation(ctx context.Context, invitationID, respondingUserID uint, state string) (*domain.Invitation, error) {
	target, err := domain.ParseInvitationState(state)
	if err != nil {
		return nil, err
	}
	ms := s.memberships

	invitation, err := ms.store.Invitations.GetForInvitee(ctx, invitationID, respondingUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidInvitationState
		}
		return nil, err
	}
	if invitation.State != string(domain.InvitationPending) {
		return nil, domain.ErrInvalidInvitationState
	}

	var dispensary *domain.Dispensary
	if target == domain.InvitationAccepted {
		if dispensary, err = ms.directory.LastVisitedOrRandom(ctx, invitation.InviterID); err != nil {
			return nil, err
		}
	}

	moved, err := ms.store.Invitations.Transition(ctx, invitation.ID, respondingUserID, domain.InvitationPending, target)
	if err != nil {
		return nil, fmt.Errorf("update invitation: %w: %w", domain.ErrPersistFailure, err)
	}
	if !moved {
		return nil, domain.ErrInvalidInvitationState
	}
	invitation.State = string(target)

	if target == domain.InvitationAccepted {
		invitee, inviter := participant(invitation.Invitee, invitation.InviteeID), participant(invitation.Inviter, invitation.InviterID)
		ms.notifier.CreateBothFriendships(ctx, invitee, dispensary, inviter)
		ms.logger.Info("invitation accepted",
			zap.Uint("invitation_id", invitation.ID),
			zap.Uint("inviter_id", invitation.InviterID),
			zap.Uint("invitee_id", invitation.InviteeID),
			zap.Uint("dispensary_id", dispensary.ID),
		)
	}

	return invitation.ToDomain(), nil
}

func participant(user *models.User, id uint) *domain.User {
	if user == nil {
		return &domain.User{ID: id}
	}
	return user.ToDomain()
}

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

// MembershipService owns the membership record: lazy creation, locked
// read-modify-write, and the reward notification check on every save.
type MembershipService struct {
	store     *repositories.Store
	directory DispensaryDirectory
	notifier  NotificationService
	clock     Clock
	rules     LoyaltyRules
	logger    *zap.Logger
}

// NewMembershipService creates a new membership service
func NewMembershipService(
	store *repositories.Store,
	directory DispensaryDirectory,
	notifier NotificationService,
	clock Clock,
	rules LoyaltyRules,
	logger *zap.Logger,
) *MembershipService {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MembershipService{
		store:     store,
		directory: directory,
		notifier:  notifier,
		clock:     clock,
		rules:     rules,
		logger:    logger,
	}
}

// MembershipView is a membership with its tier flags
type MembershipView struct {
	ID                          uint               `json:"id"`
	UserID                      uint               `json:"user_id"`
	Dispensary                  *domain.Dispensary `json:"dispensary"`
	Points                      int                `json:"points"`
	PointsCap                   int                `json:"points_cap"`
	GetsFreeItem                bool               `json:"gets_free_item"`
	ReferredByUserID            *uint              `json:"referred_by_user_id,omitempty"`
	FreeItemMessage             *string            `json:"free_item_message,omitempty"`
	Tier                        domain.Tier        `json:"tier"`
	EnoughPointsForSmallReward  bool               `json:"enough_points_for_small_reward"`
	EnoughPointsForMediumReward bool               `json:"enough_points_for_medium_reward"`
	EnoughPointsForLargeReward  bool               `json:"enough_points_for_large_reward"`
	CapLimitReached             bool               `json:"cap_limit_reached"`
	LastVisitAt                 *string            `json:"last_visit_at,omitempty"`
}

// RedemptionView is a redemption with its deal title
type RedemptionView struct {
	ID         uint   `json:"id"`
	DealID     uint   `json:"deal_id"`
	DealTitle  string `json:"deal_title"`
	DealPoints int    `json:"deal_points"`
	RedeemedAt string `json:"redeemed_at"`
}

// membershipTx carries one locked membership through a transaction.
// Collaborator calls queued with onCommit run only after the commit.
type membershipTx struct {
	store      *repositories.Store
	row        *models.Membership
	membership *domain.Membership
	user       *domain.User
	dispensary *domain.Dispensary
	pending    []func(ctx context.Context)
}

func (t *membershipTx) onCommit(fn func(ctx context.Context)) {
	t.pending = append(t.pending, fn)
}

func (t *membershipTx) dispatch(ctx context.Context) {
	for _, fn := range t.pending {
		fn(ctx)
	}
}

// membershipLoader reads (and locks) the row a transaction works on
type membershipLoader func(ctx context.Context, tx *repositories.Store) (*models.Membership, error)

// lockOrCreate inserts an empty membership if the pair has none, then
// locks the row. A concurrent insert losing the unique-index race simply
// reads the winner's row.
func lockOrCreate(userID, dispensaryID uint) membershipLoader {
	return func(ctx context.Context, tx *repositories.Store) (*models.Membership, error) {
		fresh := &models.Membership{UserID: userID, DispensaryID: dispensaryID}
		if _, err := tx.Memberships.CreateIfAbsent(ctx, fresh); err != nil {
			return nil, fmt.Errorf("create membership: %w: %w", domain.ErrPersistFailure, err)
		}
		row, err := tx.Memberships.GetForUpdate(ctx, userID, dispensaryID)
		if err != nil {
			return nil, fmt.Errorf("lock membership: %w: %w", domain.ErrPersistFailure, err)
		}
		return row, nil
	}
}

// lockByID locks an existing membership
func lockByID(membershipID uint) membershipLoader {
	return func(ctx context.Context, tx *repositories.Store) (*models.Membership, error) {
		row, err := tx.Memberships.GetByIDForUpdate(ctx, membershipID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrMembershipNotFound
			}
			return nil, fmt.Errorf("lock membership: %w: %w", domain.ErrPersistFailure, err)
		}
		return row, nil
	}
}

// insertNew inserts a membership and refuses to merge with an existing one
func insertNew(row *models.Membership) membershipLoader {
	return func(ctx context.Context, tx *repositories.Store) (*models.Membership, error) {
		err := tx.Memberships.Create(ctx, row)
		if err == nil {
			return row, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateMembership
		}
		if _, lookupErr := tx.Memberships.GetByUserAndDispensary(ctx, row.UserID, row.DispensaryID); lookupErr == nil {
			return nil, domain.ErrDuplicateMembership
		}
		return nil, fmt.Errorf("create membership: %w: %w", domain.ErrPersistFailure, err)
	}
}

// withMembership runs fn against a locked membership in one transaction and
// dispatches the queued collaborator calls after commit.
func (s *MembershipService) withMembership(
	ctx context.Context,
	user *domain.User,
	dispensary *domain.Dispensary,
	load membershipLoader,
	fn func(ctx context.Context, t *membershipTx) error,
) (*domain.Membership, error) {
	var t *membershipTx
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		row, err := load(ctx, tx)
		if err != nil {
			return err
		}
		t = &membershipTx{
			store:      tx,
			row:        row,
			membership: row.ToDomain(),
			user:       user,
			dispensary: dispensary,
		}
		return fn(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	t.dispatch(ctx)
	return t.membership, nil
}

// save persists the membership and evaluates the reward notification
// policy against the saved balance. Every write of a membership goes
// through here.
func (s *MembershipService) save(ctx context.Context, t *membershipTx) error {
	t.row.Apply(t.membership)
	if err := t.store.Memberships.Update(ctx, t.row); err != nil {
		return fmt.Errorf("save membership: %w: %w", domain.ErrPersistFailure, err)
	}
	t.membership.UpdatedAt = t.row.UpdatedAt

	redemptionRows, err := t.store.Redemptions.ListByMembership(ctx, t.row.ID)
	if err != nil {
		return fmt.Errorf("load redemptions: %w: %w", domain.ErrPersistFailure, err)
	}
	noticeRows, err := t.store.RewardNotifications.ListByUserAndDispensary(ctx, t.row.UserID, t.row.DispensaryID)
	if err != nil {
		return fmt.Errorf("load reward notifications: %w: %w", domain.ErrPersistFailure, err)
	}

	redemptions := make([]domain.Redemption, len(redemptionRows))
	for i, r := range redemptionRows {
		redemptions[i] = r.ToDomain()
	}
	notices := make([]domain.RewardNotice, len(noticeRows))
	for i, n := range noticeRows {
		notices[i] = n.ToDomain()
	}

	tier, due := domain.RewardNotificationDue(t.membership.Points, t.dispensary.Tiers, redemptions, notices)
	if !due {
		return nil
	}

	notice := &models.RewardNotification{
		UserID:       t.row.UserID,
		DispensaryID: t.row.DispensaryID,
		Tier:         tier.String(),
		CreatedAt:    s.clock.Now(),
	}
	if err := t.store.RewardNotifications.Create(ctx, notice); err != nil {
		return fmt.Errorf("record reward notification: %w: %w", domain.ErrPersistFailure, err)
	}

	user, dispensary := t.user, t.dispensary
	t.onCommit(func(ctx context.Context) {
		s.notifyReward(ctx, tier, user, dispensary)
	})
	return nil
}

func (s *MembershipService) notifyReward(ctx context.Context, tier domain.Tier, user *domain.User, dispensary *domain.Dispensary) {
	s.logger.Info("reward tier reached",
		zap.Uint("user_id", user.ID),
		zap.Uint("dispensary_id", dispensary.ID),
		zap.Stringer("tier", tier),
	)
	switch tier {
	case domain.TierSmall:
		s.notifier.CreateSmallReward(ctx, user, dispensary, nil)
	case domain.TierMedium:
		s.notifier.CreateMediumReward(ctx, user, dispensary, nil)
	case domain.TierLarge:
		s.notifier.CreateLargeReward(ctx, user, dispensary, nil)
	}
}

// GetOrCreate returns the user's membership at a dispensary, creating an
// empty one if none exists
func (s *MembershipService) GetOrCreate(ctx context.Context, userID, dispensaryID uint) (*domain.Membership, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	dispensary, err := s.directory.Get(ctx, dispensaryID)
	if err != nil {
		return nil, err
	}

	return s.withMembership(ctx, user, dispensary, lockOrCreate(userID, dispensaryID),
		func(ctx context.Context, t *membershipTx) error { return nil })
}

// CreateForInStoreSignup creates the membership of a patient signing up at
// the counter with the first-time signup grant
func (s *MembershipService) CreateForInStoreSignup(ctx context.Context, userID, dispensaryID uint) (*domain.Membership, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	dispensary, err := s.directory.Get(ctx, dispensaryID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	row := &models.Membership{
		UserID:       userID,
		DispensaryID: dispensaryID,
		Points:       s.rules.FirstTimeSignUpPoints,
		LastVisitAt:  &now,
	}

	membership, err := s.withMembership(ctx, user, dispensary, insertNew(row),
		func(ctx context.Context, t *membershipTx) error {
			if err := s.save(ctx, t); err != nil {
				return err
			}
			t.onCommit(func(ctx context.Context) {
				s.notifier.CreateOnboarding(ctx, user, dispensary, nil)
				s.notifier.CreateVisit(ctx, user, dispensary, nil)
			})
			return nil
		})
	if err != nil {
		return nil, err
	}

	s.logger.Info("in-store signup",
		zap.Uint("user_id", userID),
		zap.Uint("dispensary_id", dispensaryID),
		zap.Int("points", membership.Points),
	)
	return membership, nil
}

// GetMembership gets the user's membership at a dispensary
func (s *MembershipService) GetMembership(ctx context.Context, userID, dispensaryID uint) (*MembershipView, error) {
	row, err := s.store.Memberships.GetByUserAndDispensary(ctx, userID, dispensaryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, err
	}
	dispensary, err := s.directory.Get(ctx, dispensaryID)
	if err != nil {
		return nil, err
	}
	return s.toView(row.ToDomain(), dispensary), nil
}

// GetMembershipByID gets a membership by ID
func (s *MembershipService) GetMembershipByID(ctx context.Context, membershipID uint) (*MembershipView, error) {
	row, err := s.store.Memberships.GetByID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, err
	}
	dispensary, err := s.directory.Get(ctx, row.DispensaryID)
	if err != nil {
		return nil, err
	}
	return s.toView(row.ToDomain(), dispensary), nil
}

// ListMemberships lists every membership of a user
func (s *MembershipService) ListMemberships(ctx context.Context, userID uint) ([]*MembershipView, error) {
	rows, err := s.store.Memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]*MembershipView, 0, len(rows))
	for _, row := range rows {
		if row.Dispensary == nil {
			continue
		}
		views = append(views, s.toView(row.ToDomain(), row.Dispensary.ToDomain()))
	}
	return views, nil
}

// ListRedemptions lists a membership's redemptions, newest first
func (s *MembershipService) ListRedemptions(ctx context.Context, membershipID uint, offset, limit int) ([]*RedemptionView, int64, error) {
	rows, total, err := s.store.Redemptions.PageByMembership(ctx, membershipID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*RedemptionView, len(rows))
	for i, r := range rows {
		views[i] = &RedemptionView{
			ID:         r.ID,
			DealID:     r.DealID,
			DealPoints: r.DealPoints,
			RedeemedAt: r.RedeemedAt.Format(timeLayout),
		}
		if r.Deal != nil {
			views[i].DealTitle = r.Deal.Title
		}
	}
	return views, total, nil
}

// ListDeals lists the active deals of a dispensary
func (s *MembershipService) ListDeals(ctx context.Context, dispensaryID uint) ([]*domain.Deal, error) {
	if _, err := s.directory.Get(ctx, dispensaryID); err != nil {
		return nil, err
	}
	rows, err := s.store.Deals.ListByDispensary(ctx, dispensaryID)
	if err != nil {
		return nil, err
	}

	deals := make([]*domain.Deal, len(rows))
	for i, d := range rows {
		deals[i] = d.ToDomain()
	}
	return deals, nil
}

const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

// toView derives tier flags from the balance. CapLimitReached asks whether
// one more capped point would overflow POINTS_CAP.
func (s *MembershipService) toView(m *domain.Membership, dispensary *domain.Dispensary) *MembershipView {
	tier := domain.EligibleTier(m.Points, dispensary.Tiers)
	view := &MembershipView{
		ID:                          m.ID,
		UserID:                      m.UserID,
		Dispensary:                  dispensary,
		Points:                      m.Points,
		PointsCap:                   m.PointsCap,
		GetsFreeItem:                m.GetsFreeItem,
		ReferredByUserID:            m.ReferredByUserID,
		FreeItemMessage:             m.FreeItemMessage,
		Tier:                        tier,
		EnoughPointsForSmallReward:  tier == domain.TierSmall,
		EnoughPointsForMediumReward: tier == domain.TierMedium,
		EnoughPointsForLargeReward:  tier == domain.TierLarge,
		CapLimitReached:             m.CapLimitReachedWith(1, s.rules.PointsCap),
	}
	if !m.LastVisitAt.IsZero() {
		lastVisitAt := m.LastVisitAt.Format(timeLayout)
		view.LastVisitAt = &lastVisitAt
	}
	return view
}

func (s *MembershipService) loadUser(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToDomain(), nil
}

package services

import (
	"context"
	"time"

	"dispensary-loyalty/internal/core/domain"
)

// Note: the loyalty workflows live in membership_service.go, visit_service.go
// and referral_service.go. Implementations of the collaborators below are in
// notification_service.go, sms_service.go and dispensary_directory.go.

// NotificationService delivers patient-facing notifications.
// Calls are fire-and-forget: implementations log their own failures.
type NotificationService interface {
	CreateOnboarding(ctx context.Context, user *domain.User, dispensary *domain.Dispensary, other *domain.User)
	CreateVisit(ctx context.Context, user *domain.User, dispensary *domain.Dispensary, other *domain.User)
	CreateSmallReward(ctx context.Context, user *domain.User, dispensary *domain.Dispensary, other *domain.User)
	CreateMediumReward(ctx context.Context, user *domain.User, dispensary *domain.Dispensary, other *domain.User)
	CreateLargeReward(ctx context.Context, user *domain.User, dispensary *domain.Dispensary, other *domain.User)
	CreateBothFriendships(ctx context.Context, user *domain.User, dispensary *domain.Dispensary, other *domain.User)
	CreateInviteeSignedUp(ctx context.Context, user *domain.User, dispensary *domain.Dispensary, other *domain.User)
	CreateReferralFreeJoin(ctx context.Context, user *domain.User, dispensary *domain.Dispensary, other *domain.User)
}

// SmsGateway sends text messages. Best effort, never retried.
type SmsGateway interface {
	SendTo(ctx context.Context, phoneNumber, message string) error
}

// DispensaryDirectory resolves dispensaries and their reward ladders
type DispensaryDirectory interface {
	Get(ctx context.Context, dispensaryID uint) (*domain.Dispensary, error)
	RewardTiers(ctx context.Context, dispensaryID uint) (domain.RewardTiers, error)
	LastVisitedOrRandom(ctx context.Context, userID uint) (*domain.Dispensary, error)
}

// MessageCatalog renders localized message templates
type MessageCatalog interface {
	T(key string, vars map[string]string) string
}

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock
type SystemClock struct{}

// Now returns the current time
func (SystemClock) Now() time.Time {
	return time.Now()
}

// LoyaltyRules holds the point values applied by the workflows
type LoyaltyRules struct {
	VisitPoints           int
	FirstTimeSignUpPoints int
	PointsCap             int
	InvitePromptMaxVisits int
}

// DefaultLoyaltyRules returns the program's standard point values
func DefaultLoyaltyRules() LoyaltyRules {
	return LoyaltyRules{
		VisitPoints:           domain.DefaultVisitPoints,
		FirstTimeSignUpPoints: domain.DefaultFirstTimeSignUpPoints,
		PointsCap:             domain.DefaultPointsCap,
		InvitePromptMaxVisits: domain.DefaultInvitePromptMaxVisits,
	}
}

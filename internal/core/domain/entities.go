package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RolePatient Role = "PATIENT"
	RoleStaff   Role = "STAFF"
	RoleAdmin   Role = "ADMIN"
)

// Default point values for loyalty events
const (
	DefaultVisitPoints           = 10
	DefaultFirstTimeSignUpPoints = 10
	DefaultPointsCap             = 28
	DefaultInvitePromptMaxVisits = 10
)

// User is the local projection of an identity-provider user
type User struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	MagicLink   string `json:"-"`
	Role        Role   `json:"role"`
}

// Dispensary represents a dispensary and its reward ladder
type Dispensary struct {
	ID    uint        `json:"id"`
	Name  string      `json:"name"`
	Tiers RewardTiers `json:"reward_tiers"`
}

// Membership is a patient's loyalty state at one dispensary
type Membership struct {
	ID               uint      `json:"id"`
	UserID           uint      `json:"user_id"`
	DispensaryID     uint      `json:"dispensary_id"`
	Points           int       `json:"points"`
	PointsCap        int       `json:"points_cap"`
	GetsFreeItem     bool      `json:"gets_free_item"`
	ReferredByUserID *uint     `json:"referred_by_user_id,omitempty"`
	FreeItemMessage  *string   `json:"free_item_message,omitempty"`
	LastVisitAt      time.Time `json:"last_visit_at"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// AwardPoints adds amount to the balance, saturating at the large reward
// threshold, and marks the membership as visited at now.
func (m *Membership) AwardPoints(amount int, tiers RewardTiers, now time.Time) {
	if m.Points+amount > tiers.Large {
		m.Points = tiers.Large
	} else {
		m.Points += amount
	}
	m.PointsCap = 0
	m.LastVisitAt = now
}

// Deduct removes amount from the balance
func (m *Membership) Deduct(amount int) error {
	if amount > m.Points {
		return ErrInsufficientPoints
	}
	m.Points -= amount
	return nil
}

// CapLimitReachedWith reports whether granting amount capped points would
// exceed the per-visit cap. Nothing in the ledger accrues PointsCap; it is
// only reset by AwardPoints. Callers that grant capped bonus points raise it
// themselves.
func (m *Membership) CapLimitReachedWith(amount, limit int) bool {
	return amount+m.PointsCap > limit
}

// Deal is a dispensary offer that costs points
type Deal struct {
	ID           uint   `json:"id"`
	DispensaryID uint   `json:"dispensary_id"`
	Title        string `json:"title"`
	Points       int    `json:"points"`
}

// Redemption is a claimed deal
type Redemption struct {
	ID           uint      `json:"id"`
	MembershipID uint      `json:"membership_id"`
	DealID       uint      `json:"deal_id"`
	DealPoints   int       `json:"deal_points"`
	RedeemedAt   time.Time `json:"redeemed_at"`
}

// RewardNotice records a tier-qualification notification sent to a user
type RewardNotice struct {
	Tier      Tier
	CreatedAt time.Time
}

// VisitOutcome is the result of recording a visit
type VisitOutcome struct {
	Membership               *Membership `json:"membership"`
	Tier                     Tier        `json:"tier"`
	VisitCount               int64       `json:"visit_count"`
	ShouldPromptInviteFriend bool        `json:"should_prompt_invite_friend"`
}

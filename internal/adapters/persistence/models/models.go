package models

import (
	"time"

	"dispensary-loyalty/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Identity projection
// ============================================================

// User represents users table (local projection of the identity provider)
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	PhoneNumber string         `gorm:"uniqueIndex;size:20;not null" json:"phone_number"`
	MagicLink   string         `gorm:"uniqueIndex;size:36;not null" json:"-"`
	Role        string         `gorm:"size:20;default:'PATIENT'" json:"role"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:          u.ID,
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		MagicLink:   u.MagicLink,
		Role:        domain.Role(u.Role),
	}
}

// ============================================================
// Dispensaries & deals (read-only to the loyalty core)
// ============================================================

// Dispensary represents dispensaries table
type Dispensary struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"size:100;not null" json:"name"`
	SmallRewardPoints  int       `gorm:"not null" json:"small_reward_points"`
	MediumRewardPoints int       `gorm:"not null" json:"medium_reward_points"`
	LargeRewardPoints  int       `gorm:"not null" json:"large_reward_points"`
	IsActive           bool      `gorm:"default:true" json:"is_active"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Dispensary) TableName() string {
	return "dispensaries"
}

func (d *Dispensary) RewardTiers() domain.RewardTiers {
	return domain.RewardTiers{
		Small:  d.SmallRewardPoints,
		Medium: d.MediumRewardPoints,
		Large:  d.LargeRewardPoints,
	}
}

func (d *Dispensary) ToDomain() *domain.Dispensary {
	return &domain.Dispensary{
		ID:    d.ID,
		Name:  d.Name,
		Tiers: d.RewardTiers(),
	}
}

// Deal represents deals table
type Deal struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	DispensaryID uint      `gorm:"not null;index" json:"dispensary_id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Points       int       `gorm:"not null" json:"points"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Deal) TableName() string {
	return "deals"
}

func (d *Deal) ToDomain() *domain.Deal {
	return &domain.Deal{
		ID:           d.ID,
		DispensaryID: d.DispensaryID,
		Title:        d.Title,
		Points:       d.Points,
	}
}

// ============================================================
// Loyalty ledger
// ============================================================

// Membership represents memberships table (one per user × dispensary)
type Membership struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"not null;uniqueIndex:idx_membership_user_dispensary" json:"user_id"`
	DispensaryID     uint       `gorm:"not null;uniqueIndex:idx_membership_user_dispensary;index" json:"dispensary_id"`
	Points           int        `gorm:"not null;default:0" json:"points"`
	PointsCap        int        `gorm:"not null;default:0" json:"points_cap"`
	GetsFreeItem     bool       `gorm:"not null;default:false" json:"gets_free_item"`
	ReferredByUserID *uint      `gorm:"index" json:"referred_by_user_id"`
	FreeItemMessage  *string    `gorm:"type:text" json:"free_item_message"`
	LastVisitAt      *time.Time `gorm:"precision:6;index" json:"last_visit_at"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Dispensary *Dispensary `gorm:"foreignKey:DispensaryID" json:"dispensary,omitempty"`
}

func (Membership) TableName() string {
	return "memberships"
}

func (m *Membership) ToDomain() *domain.Membership {
	var lastVisitAt time.Time
	if m.LastVisitAt != nil {
		lastVisitAt = *m.LastVisitAt
	}
	return &domain.Membership{
		ID:               m.ID,
		UserID:           m.UserID,
		DispensaryID:     m.DispensaryID,
		Points:           m.Points,
		PointsCap:        m.PointsCap,
		GetsFreeItem:     m.GetsFreeItem,
		ReferredByUserID: m.ReferredByUserID,
		FreeItemMessage:  m.FreeItemMessage,
		LastVisitAt:      lastVisitAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// Apply copies the mutable loyalty fields from a domain membership
func (m *Membership) Apply(d *domain.Membership) {
	m.Points = d.Points
	m.PointsCap = d.PointsCap
	m.GetsFreeItem = d.GetsFreeItem
	m.ReferredByUserID = d.ReferredByUserID
	m.FreeItemMessage = d.FreeItemMessage
	if !d.LastVisitAt.IsZero() {
		lastVisitAt := d.LastVisitAt
		m.LastVisitAt = &lastVisitAt
	}
}

func (r *RewardNotification) ToDomain() domain.RewardNotice {
	tier, _ := domain.ParseTier(r.Tier)
	return domain.RewardNotice{Tier: tier, CreatedAt: r.CreatedAt}
}

// Redemption represents redemptions table (append-only)
type Redemption struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	MembershipID uint      `gorm:"not null;index" json:"membership_id"`
	DealID       uint      `gorm:"not null;index" json:"deal_id"`
	DealPoints   int       `gorm:"not null" json:"deal_points"`
	RedeemedAt   time.Time `gorm:"precision:6;not null;index" json:"redeemed_at"`

	// Relations
	Deal *Deal `gorm:"foreignKey:DealID" json:"deal,omitempty"`
}

func (Redemption) TableName() string {
	return "redemptions"
}

func (r *Redemption) ToDomain() domain.Redemption {
	return domain.Redemption{
		ID:           r.ID,
		MembershipID: r.MembershipID,
		DealID:       r.DealID,
		DealPoints:   r.DealPoints,
		RedeemedAt:   r.RedeemedAt,
	}
}

// RewardNotification represents reward_notifications table: one row per
// tier-qualification notification emitted for a user at a dispensary
type RewardNotification struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index:idx_reward_notification_owner" json:"user_id"`
	DispensaryID uint      `gorm:"not null;index:idx_reward_notification_owner" json:"dispensary_id"`
	Tier         string    `gorm:"size:10;not null" json:"tier"`
	CreatedAt    time.Time `gorm:"precision:6;not null" json:"created_at"`
}

func (RewardNotification) TableName() string {
	return "reward_notifications"
}

// Visitation represents visitations table (append-only)
type Visitation struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index:idx_visitation_user_dispensary" json:"user_id"`
	DispensaryID uint      `gorm:"not null;index:idx_visitation_user_dispensary" json:"dispensary_id"`
	VisitedAt    time.Time `gorm:"precision:6;not null" json:"visited_at"`
}

func (Visitation) TableName() string {
	return "visitations"
}

// ============================================================
// Referrals
// ============================================================

// Invitation represents invitations table
type Invitation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	InviterID uint      `gorm:"not null;index" json:"inviter_id"`
	InviteeID uint      `gorm:"not null;index" json:"invitee_id"`
	State     string    `gorm:"size:20;not null;default:'PENDING'" json:"invitation_state"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Inviter *User `gorm:"foreignKey:InviterID" json:"inviter,omitempty"`
	Invitee *User `gorm:"foreignKey:InviteeID" json:"invitee,omitempty"`
}

func (Invitation) TableName() string {
	return "invitations"
}

func (i *Invitation) ToDomain() *domain.Invitation {
	return &domain.Invitation{
		ID:        i.ID,
		InviterID: i.InviterID,
		InviteeID: i.InviteeID,
		State:     domain.InvitationState(i.State),
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all loyalty tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Dispensary{},
		&Deal{},
		&Membership{},
		&Redemption{},
		&RewardNotification{},
		&Visitation{},
		&Invitation{},
	)
}

package domain

import "time"

// InvitationState is the lifecycle state of a referral invitation
type InvitationState string

const (
	InvitationPending  InvitationState = "PENDING"
	InvitationAccepted InvitationState = "ACCEPTED"
	InvitationDeclined InvitationState = "DECLINED"
	InvitationExpired  InvitationState = "EXPIRED"
)

// ParseInvitationState accepts only the recognized states
func ParseInvitationState(s string) (InvitationState, error) {
	switch st := InvitationState(s); st {
	case InvitationPending, InvitationAccepted, InvitationDeclined, InvitationExpired:
		return st, nil
	}
	return "", ErrInvalidInvitationState
}

// Invitation links an inviter to an invitee
type Invitation struct {
	ID        uint            `json:"id"`
	InviterID uint            `json:"inviter_id"`
	InviteeID uint            `json:"invitee_id"`
	State     InvitationState `json:"invitation_state"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

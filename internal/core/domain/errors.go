package domain

import "errors"

// Loyalty errors
var (
	ErrInsufficientPoints     = errors.New("insufficient points")
	ErrPersistFailure         = errors.New("persist failure")
	ErrDuplicateMembership    = errors.New("membership already exists for user at dispensary")
	ErrInvalidInvitationState = errors.New("invalid invitation state")
	ErrUnresolvedUser         = errors.New("invite link does not resolve to a user")
)

// Lookup errors
var (
	ErrMembershipNotFound = errors.New("membership not found")
	ErrDealNotFound       = errors.New("deal not found")
	ErrDispensaryNotFound = errors.New("dispensary not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoDispensaries     = errors.New("no dispensaries available")
)

// Validation errors
var (
	ErrInvalidRewardTiers  = errors.New("reward tiers must be ascending: small < medium < large")
	ErrSelfInvitation      = errors.New("users cannot invite themselves")
	ErrDuplicateInvitation = errors.New("a pending invitation already exists")
)

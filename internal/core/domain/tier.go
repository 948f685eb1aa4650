package domain

import "fmt"

// Tier is a reward level a balance qualifies for
type Tier int

const (
	TierNone Tier = iota
	TierSmall
	TierMedium
	TierLarge
)

// RewardTiers are a dispensary's three ascending point thresholds
type RewardTiers struct {
	Small  int `json:"small"`
	Medium int `json:"medium"`
	Large  int `json:"large"`
}

// Validate checks small < medium < large
func (t RewardTiers) Validate() error {
	if t.Small <= 0 || t.Small >= t.Medium || t.Medium >= t.Large {
		return fmt.Errorf("%w (got %d/%d/%d)", ErrInvalidRewardTiers, t.Small, t.Medium, t.Large)
	}
	return nil
}

// Threshold returns the point value of a tier, 0 for TierNone
func (t RewardTiers) Threshold(tier Tier) int {
	switch tier {
	case TierSmall:
		return t.Small
	case TierMedium:
		return t.Medium
	case TierLarge:
		return t.Large
	}
	return 0
}

// EligibleTier evaluates a balance against the reward ladder.
// Large requires an exact match with the ceiling; balances saturate there.
func EligibleTier(points int, tiers RewardTiers) Tier {
	switch {
	case points >= tiers.Small && points < tiers.Medium:
		return TierSmall
	case points >= tiers.Medium && points < tiers.Large:
		return TierMedium
	case points == tiers.Large:
		return TierLarge
	}
	return TierNone
}

// String returns the lowercase tier name used in storage and JSON
func (t Tier) String() string {
	switch t {
	case TierSmall:
		return "small"
	case TierMedium:
		return "medium"
	case TierLarge:
		return "large"
	}
	return "none"
}

// ParseTier is the inverse of Tier.String
func ParseTier(s string) (Tier, bool) {
	switch s {
	case "small":
		return TierSmall, true
	case "medium":
		return TierMedium, true
	case "large":
		return TierLarge, true
	case "none":
		return TierNone, true
	}
	return TierNone, false
}

// MarshalText implements encoding.TextMarshaler
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

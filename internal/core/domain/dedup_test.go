package domain

import (
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return t0.Add(time.Duration(minutes) * time.Minute)
}

func TestRewardNotificationDue(t *testing.T) {
	tests := []struct {
		name        string
		points      int
		redemptions []Redemption
		notices     []RewardNotice
		wantTier    Tier
		wantDue     bool
	}{
		{
			name:   "below small never notifies",
			points: 20,
		},
		{
			name:     "first small qualification",
			points:   30,
			wantTier: TierSmall,
			wantDue:  true,
		},
		{
			name:    "small already sent with no redemptions",
			points:  40,
			notices: []RewardNotice{{Tier: TierSmall, CreatedAt: at(0)}},
		},
		{
			name:     "medium not yet sent while small was",
			points:   90,
			notices:  []RewardNotice{{Tier: TierSmall, CreatedAt: at(0)}},
			wantTier: TierMedium,
			wantDue:  true,
		},
		{
			name:     "large exact ceiling",
			points:   150,
			wantTier: TierLarge,
			wantDue:  true,
		},
		{
			name:        "redemptions exist but none at the eligible tier price",
			points:      90,
			redemptions: []Redemption{{DealPoints: 30, RedeemedAt: at(5)}},
		},
		{
			name:        "tier redeemed, nothing sent since",
			points:      30,
			redemptions: []Redemption{{DealPoints: 30, RedeemedAt: at(5)}},
			notices:     []RewardNotice{{Tier: TierSmall, CreatedAt: at(1)}},
			wantTier:    TierSmall,
			wantDue:     true,
		},
		{
			name:        "tier redeemed and already re-notified",
			points:      30,
			redemptions: []Redemption{{DealPoints: 30, RedeemedAt: at(5)}},
			notices: []RewardNotice{
				{Tier: TierSmall, CreatedAt: at(1)},
				{Tier: TierSmall, CreatedAt: at(6)},
			},
		},
		{
			name:   "window bounded by the most recent matching redemption",
			points: 30,
			redemptions: []Redemption{
				{DealPoints: 30, RedeemedAt: at(5)},
				{DealPoints: 30, RedeemedAt: at(20)},
				{DealPoints: 90, RedeemedAt: at(30)},
			},
			notices:  []RewardNotice{{Tier: TierSmall, CreatedAt: at(10)}},
			wantTier: TierSmall,
			wantDue:  true,
		},
		{
			name:        "other tier notices do not close the window",
			points:      90,
			redemptions: []Redemption{{DealPoints: 90, RedeemedAt: at(5)}},
			notices:     []RewardNotice{{Tier: TierSmall, CreatedAt: at(6)}},
			wantTier:    TierMedium,
			wantDue:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, due := RewardNotificationDue(tt.points, testTiers, tt.redemptions, tt.notices)
			if due != tt.wantDue || tier != tt.wantTier {
				t.Errorf("RewardNotificationDue() = (%v, %v), want (%v, %v)", tier, due, tt.wantTier, tt.wantDue)
			}
		})
	}
}

// Replaying accruals against the recorded history never notifies the same
// tier twice without a redemption of that tier in between.
func TestRewardNotificationDueNoDuplicatesWithoutRedemption(t *testing.T) {
	var notices []RewardNotice
	points := 0
	for i := 0; i < 40; i++ {
		points += 10
		if points > testTiers.Large {
			points = testTiers.Large
		}
		if tier, due := RewardNotificationDue(points, testTiers, nil, notices); due {
			for _, n := range notices {
				if n.Tier == tier {
					t.Fatalf("tier %v notified twice", tier)
				}
			}
			notices = append(notices, RewardNotice{Tier: tier, CreatedAt: at(i)})
		}
	}
	if len(notices) != 3 {
		t.Fatalf("expected one notice per tier, got %d", len(notices))
	}
}

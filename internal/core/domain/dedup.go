package domain

// notificationOrder is the order tiers are checked in; the first match wins.
var notificationOrder = []Tier{TierSmall, TierMedium, TierLarge}

// RewardNotificationDue decides whether a "you qualify" notification should
// fire for a balance, given the membership's redemptions and the reward
// notifications already sent to the user at this dispensary.
//
// With no redemptions, a tier notifies at most once ever. Once anything has
// been redeemed, a tier only notifies again after a redemption priced at
// that tier, and only if nothing for the tier was sent since.
func RewardNotificationDue(points int, tiers RewardTiers, redemptions []Redemption, notices []RewardNotice) (Tier, bool) {
	eligible := EligibleTier(points, tiers)
	for _, tier := range notificationOrder {
		if tier != eligible || alreadyNotified(tier, tiers, redemptions, notices) {
			continue
		}
		return tier, true
	}
	return TierNone, false
}

// alreadyNotified reports whether the current qualification window for tier
// has been used up.
func alreadyNotified(tier Tier, tiers RewardTiers, redemptions []Redemption, notices []RewardNotice) bool {
	if len(redemptions) == 0 {
		return noticeEver(notices, tier)
	}
	last, ok := lastRedemptionAt(redemptions, tiers.Threshold(tier))
	if !ok {
		// no completed cycle at this price point yet
		return true
	}
	return noticeSince(notices, tier, last)
}

func lastRedemptionAt(redemptions []Redemption, dealPoints int) (Redemption, bool) {
	var (
		latest Redemption
		found  bool
	)
	for _, r := range redemptions {
		if r.DealPoints != dealPoints {
			continue
		}
		if !found || r.RedeemedAt.After(latest.RedeemedAt) {
			latest = r
			found = true
		}
	}
	return latest, found
}

func noticeSince(notices []RewardNotice, tier Tier, since Redemption) bool {
	for _, n := range notices {
		if n.Tier == tier && n.CreatedAt.After(since.RedeemedAt) {
			return true
		}
	}
	return false
}

func noticeEver(notices []RewardNotice, tier Tier) bool {
	for _, n := range notices {
		if n.Tier == tier {
			return true
		}
	}
	return false
}

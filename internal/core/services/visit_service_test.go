package services

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"dispensary-loyalty/internal/adapters/persistence/models"
	"dispensary-loyalty/internal/core/domain"
)

func TestThreeVisitsReachSmallTierOnce(t *testing.T) {
	f := newFixture(t)
	u := f.user("Ana")
	d := f.dispensary("Green Leaf")

	f.visit(u.ID, d.ID, 3)

	m := f.membership(u.ID, d.ID)
	if m.Points != 30 {
		t.Fatalf("points after 3 visits = %d, want 30", m.Points)
	}
	if got := f.notifier.count("small_reward"); got != 1 {
		t.Fatalf("small reward notifications = %d, want 1", got)
	}

	out, err := f.visits.RecordVisit(f.ctx, u.ID, d.ID)
	if err != nil {
		t.Fatalf("4th visit: %v", err)
	}
	if out.Membership.Points != 40 || out.Tier != domain.TierSmall {
		t.Errorf("4th visit = %d points / %s, want 40 / small", out.Membership.Points, out.Tier)
	}
	if got := f.notifier.count("small_reward"); got != 1 {
		t.Errorf("small reward notifications after 4th visit = %d, want 1", got)
	}
	if got := f.count(&models.RewardNotification{}, ""); got != 1 {
		t.Errorf("reward_notifications rows = %d, want 1", got)
	}
	if got := f.notifier.count("visit"); got != 4 {
		t.Errorf("visit notifications = %d, want 4", got)
	}
}

func TestRewardNotifiedBeforeVisitNotice(t *testing.T) {
	f := newFixture(t)
	u := f.user("Ana")
	d := f.dispensary("Green Leaf")

	f.visit(u.ID, d.ID, 3)

	want := []string{"visit", "visit", "small_reward", "visit"}
	if got := f.notifier.kinds(); !reflect.DeepEqual(got, want) {
		t.Errorf("notification order = %v, want %v", got, want)
	}
}

func TestVisitPointsSaturateAtLargeReward(t *testing.T) {
	f := newFixture(t)
	u := f.user("Ana")
	d := f.dispensary("Green Leaf")

	for i := 1; i <= 20; i++ {
		out, err := f.visits.RecordVisit(f.ctx, u.ID, d.ID)
		if err != nil {
			t.Fatalf("visit %d: %v", i, err)
		}
		if out.Membership.Points > 150 {
			t.Fatalf("visit %d: points = %d exceeds large reward", i, out.Membership.Points)
		}
		if out.Membership.PointsCap != 0 {
			t.Fatalf("visit %d: points cap = %d, want reset to 0", i, out.Membership.PointsCap)
		}
	}

	if m := f.membership(u.ID, d.ID); m.Points != 150 {
		t.Errorf("final points = %d, want 150", m.Points)
	}
	want := map[string]int{"small_reward": 1, "medium_reward": 1, "large_reward": 1}
	for kind, n := range want {
		if got := f.notifier.count(kind); got != n {
			t.Errorf("%s notifications = %d, want %d", kind, got, n)
		}
	}
}

func TestVisitPointsAreClampedNotRejected(t *testing.T) {
	f := newFixture(t)
	u := f.user("Ana")
	d := f.dispensary("Green Leaf")
	f.setPoints(u.ID, d.ID, 145)

	out, err := f.visits.RecordVisit(f.ctx, u.ID, d.ID)
	if err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}
	if out.Membership.Points != 150 || out.Tier != domain.TierLarge {
		t.Errorf("visit at 145 = %d / %s, want 150 / large", out.Membership.Points, out.Tier)
	}
}

func TestVisitCreatesMembershipLazily(t *testing.T) {
	f := newFixture(t)
	u := f.user("Ana")
	d := f.dispensary("Green Leaf")

	out, err := f.visits.RecordVisit(f.ctx, u.ID, d.ID)
	if err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}
	if out.Membership.Points != 10 || out.Membership.GetsFreeItem {
		t.Errorf("first visit membership = %+v", out.Membership)
	}
	if out.Membership.LastVisitAt.IsZero() {
		t.Error("last visit not set")
	}
	if got := f.count(&models.Visitation{}, "user_id = ?", u.ID); got != 1 {
		t.Errorf("visitations = %d, want 1", got)
	}
}

func TestVisitUnknownDispensary(t *testing.T) {
	f := newFixture(t)
	u := f.user("Ana")

	if _, err := f.visits.RecordVisit(f.ctx, u.ID, 999); !errors.Is(err, domain.ErrDispensaryNotFound) {
		t.Fatalf("err = %v, want ErrDispensaryNotFound", err)
	}
}

func TestInviteFriendPrompt(t *testing.T) {
	f := newFixture(t)
	u := f.user("Ana")
	d := f.dispensary("Green Leaf")

	for visit := 1; visit <= 12; visit++ {
		out, err := f.visits.RecordVisit(f.ctx, u.ID, d.ID)
		if err != nil {
			t.Fatalf("visit %d: %v", visit, err)
		}
		want := visit%2 == 0 && visit <= 10
		if out.ShouldPromptInviteFriend != want {
			t.Errorf("visit %d: prompt = %v, want %v", visit, out.ShouldPromptInviteFriend, want)
		}
		if out.VisitCount != int64(visit) {
			t.Errorf("visit %d: count = %d", visit, out.VisitCount)
		}
	}
}

func TestInviteFriendPromptSuppressedByAcceptedReferral(t *testing.T) {
	f := newFixture(t)
	u := f.user("Ana")
	friend := f.user("Ben")
	d := f.dispensary("Green Leaf")

	accepted := &models.Invitation{InviterID: friend.ID, InviteeID: u.ID, State: string(domain.InvitationAccepted)}
	if err := f.store.Invitations.Create(f.ctx, accepted); err != nil {
		t.Fatal(err)
	}

	f.visit(u.ID, d.ID, 1)
	out, err := f.visits.RecordVisit(f.ctx, u.ID, d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if out.ShouldPromptInviteFriend {
		t.Error("prompted a user who already has a referral connection")
	}
}

func TestInviteFriendPromptCountsVisitsPerDispensary(t *testing.T) {
	f := newFixture(t)
	u := f.user("Ana")
	a := f.dispensary("A")
	b := f.dispensary("B")

	f.visit(u.ID, a.ID, 1)
	out, err := f.visits.RecordVisit(f.ctx, u.ID, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if out.VisitCount != 1 || out.ShouldPromptInviteFriend {
		t.Errorf("first visit at B: count=%d prompt=%v, want 1 and false", out.VisitCount, out.ShouldPromptInviteFriend)
	}
}

func TestConcurrentVisitsKeepOneMembership(t *testing.T) {
	f := newFixture(t)
	u := f.user("Ana")
	d := f.dispensary("Green Leaf")

	const visits = 8
	var wg sync.WaitGroup
	errs := make(chan error, visits)
	for i := 0; i < visits; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.visits.RecordVisit(f.ctx, u.ID, d.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent visit: %v", err)
	}

	if got := f.count(&models.Membership{}, "user_id = ?", u.ID); got != 1 {
		t.Fatalf("memberships = %d, want 1", got)
	}
	if m := f.membership(u.ID, d.ID); m.Points != visits*10 {
		t.Errorf("points = %d, want %d", m.Points, visits*10)
	}
	if got := f.notifier.count("small_reward"); got != 1 {
		t.Errorf("small reward notifications = %d, want 1", got)
	}
}

func TestRedeemLargeReward(t *testing.T) {
	f := newFixture(t)
	u := f.user("Ana")
	d := f.dispensary("Green Leaf")
	deal := f.deal(d.ID, 150)
	membershipID := f.setPoints(u.ID, d.ID, 150)

	redemption, err := f.visits.Redeem(f.ctx, membershipID, deal.ID)
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if redemption.DealPoints != 150 || redemption.MembershipID != membershipID {
		t.Errorf("redemption = %+v", redemption)
	}

	view, err := f.memberships.GetMembership(f.ctx, u.ID, d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if view.Points != 0 {
		t.Errorf("points = %d, want 0", view.Points)
	}
	if view.EnoughPointsForLargeReward {
		t.Error("still reports enough points for large reward")
	}
	if got := f.count(&models.Redemption{}, "membership_id = ?", membershipID); got != 1 {
		t.Errorf("redemptions = %d, want 1", got)
	}
}

func TestRedeemInsufficientPoints(t *testing.T) {
	f := newFixture(t)
	u := f.user("Ana")
	d := f.dispensary("Green Leaf")
	deal := f.deal(d.ID, 30)
	membershipID := f.setPoints(u.ID, d.ID, 20)

	if _, err := f.visits.Redeem(f.ctx, membershipID, deal.ID); !errors.Is(err, domain.ErrInsufficientPoints) {
		t.Fatalf("err = %v, want ErrInsufficientPoints", err)
	}
	if m := f.membership(u.ID, d.ID); m.Points != 20 {
		t.Errorf("points = %d, want unchanged 20", m.Points)
	}
	if got := f.count(&models.Redemption{}, ""); got != 0 {
		t.Errorf("redemptions = %d, want 0", got)
	}
}

func TestRedeemIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	u := f.user("Ana")
	d := f.dispensary("Green Leaf")
	deal := f.deal(d.ID, 30)
	membershipID := f.setPoints(u.ID, d.ID, 100)

	f.failCreatesOn("redemptions")

	_, err := f.visits.Redeem(f.ctx, membershipID, deal.ID)
	if !errors.Is(err, domain.ErrPersistFailure) {
		t.Fatalf("err = %v, want ErrPersistFailure", err)
	}
	if m := f.membership(u.ID, d.ID); m.Points != 100 {
		t.Errorf("points = %d, want unchanged 100", m.Points)
	}
	if got := f.count(&models.Redemption{}, ""); got != 0 {
		t.Errorf("redemptions = %d, want 0", got)
	}
}

func TestRedeemDealFromAnotherDispensary(t *testing.T) {
	f := newFixture(t)
	u := f.user("Ana")
	a := f.dispensary("A")
	b := f.dispensary("B")
	deal := f.deal(b.ID, 30)
	membershipID := f.setPoints(u.ID, a.ID, 100)

	if _, err := f.visits.Redeem(f.ctx, membershipID, deal.ID); !errors.Is(err, domain.ErrDealNotFound) {
		t.Fatalf("err = %v, want ErrDealNotFound", err)
	}
}

func TestRedeemUnknownMembership(t *testing.T) {
	f := newFixture(t)
	d := f.dispensary("Green Leaf")
	deal := f.deal(d.ID, 30)

	if _, err := f.visits.Redeem(f.ctx, 404, deal.ID); !errors.Is(err, domain.ErrMembershipNotFound) {
		t.Fatalf("err = %v, want ErrMembershipNotFound", err)
	}
}

func TestSmallRewardRenotifiesAfterRedemption(t *testing.T) {
	f := newFixture(t)
	u := f.user("Ana")
	d := f.dispensary("Green Leaf")
	small := f.deal(d.ID, 30)

	f.visit(u.ID, d.ID, 3)
	m := f.membership(u.ID, d.ID)
	if _, err := f.visits.Redeem(f.ctx, m.ID, small.ID); err != nil {
		t.Fatalf("Redeem: %v", err)
	}

	f.visit(u.ID, d.ID, 3)
	if got := f.notifier.count("small_reward"); got != 2 {
		t.Errorf("small reward notifications = %d, want 2 (one per redemption cycle)", got)
	}

	f.visit(u.ID, d.ID, 1)
	if got := f.notifier.count("small_reward"); got != 2 {
		t.Errorf("small reward notifications after extra visit = %d, want 2", got)
	}
}

func TestNoRenotifyWithoutRedemptionAtTierPrice(t *testing.T) {
	f := newFixture(t)
	u := f.user("Ana")
	d := f.dispensary("Green Leaf")
	odd := f.deal(d.ID, 40)

	f.visit(u.ID, d.ID, 9) // 90: small then medium notified
	if got := f.notifier.kinds(); f.notifier.count("small_reward") != 1 || f.notifier.count("medium_reward") != 1 {
		t.Fatalf("notifications = %v, want one small and one medium", got)
	}

	m := f.membership(u.ID, d.ID)
	if _, err := f.visits.Redeem(f.ctx, m.ID, odd.ID); err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	f.notifier.reset()

	// 60 points: small tier again, but nothing was ever redeemed at 30
	f.visit(u.ID, d.ID, 1)
	if got := f.notifier.count("small_reward"); got != 0 {
		t.Errorf("small reward notifications = %d, want 0", got)
	}
}

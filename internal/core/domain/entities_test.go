package domain

import (
	"errors"
	"testing"
	"time"
)

func TestAwardPointsSaturatesAtLargeReward(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for start := 0; start <= testTiers.Large; start += 7 {
		for _, amount := range []int{0, 1, 10, 28, 200} {
			m := &Membership{Points: start, PointsCap: 5}
			m.AwardPoints(amount, testTiers, now)

			if m.Points > testTiers.Large {
				t.Fatalf("start=%d amount=%d: points %d exceed ceiling", start, amount, m.Points)
			}
			want := start + amount
			if want > testTiers.Large {
				want = testTiers.Large
			}
			if m.Points != want {
				t.Fatalf("start=%d amount=%d: points = %d, want %d", start, amount, m.Points, want)
			}
			if m.PointsCap != 0 {
				t.Fatalf("points cap not reset: %d", m.PointsCap)
			}
			if !m.LastVisitAt.Equal(now) {
				t.Fatalf("last visit not updated")
			}
		}
	}
}

func TestDeduct(t *testing.T) {
	m := &Membership{Points: 150}

	if err := m.Deduct(151); !errors.Is(err, ErrInsufficientPoints) {
		t.Fatalf("Deduct(151) error = %v, want ErrInsufficientPoints", err)
	}
	if m.Points != 150 {
		t.Fatalf("failed deduct changed balance to %d", m.Points)
	}

	if err := m.Deduct(150); err != nil {
		t.Fatalf("Deduct(150): %v", err)
	}
	if m.Points != 0 {
		t.Fatalf("points = %d, want 0", m.Points)
	}
}

func TestCapLimitReachedWith(t *testing.T) {
	m := &Membership{PointsCap: 20}
	if m.CapLimitReachedWith(8, DefaultPointsCap) {
		t.Error("20+8 should fit a cap of 28")
	}
	if !m.CapLimitReachedWith(9, DefaultPointsCap) {
		t.Error("20+9 should exceed a cap of 28")
	}
}

func TestParseInvitationState(t *testing.T) {
	for _, s := range []string{"PENDING", "ACCEPTED", "DECLINED", "EXPIRED"} {
		if _, err := ParseInvitationState(s); err != nil {
			t.Errorf("ParseInvitationState(%q): %v", s, err)
		}
	}
	for _, s := range []string{"", "accepted", "MAYBE"} {
		if _, err := ParseInvitationState(s); !errors.Is(err, ErrInvalidInvitationState) {
			t.Errorf("ParseInvitationState(%q) error = %v", s, err)
		}
	}
}

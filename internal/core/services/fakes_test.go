package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"dispensary-loyalty/internal/adapters/persistence/models"
	"dispensary-loyalty/internal/adapters/persistence/repositories"
	"dispensary-loyalty/internal/core/domain"
	"dispensary-loyalty/internal/pkg/testdb"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// notification is one recorded NotificationService call
type notification struct {
	Kind         string
	UserID       uint
	DispensaryID uint
	OtherID      uint
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []notification
}

func (n *recordingNotifier) record(kind string, user *domain.User, dispensary *domain.Dispensary, other *domain.User) {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := notification{Kind: kind, UserID: user.ID, DispensaryID: dispensary.ID}
	if other != nil {
		c.OtherID = other.ID
	}
	n.calls = append(n.calls, c)
}

func (n *recordingNotifier) CreateOnboarding(_ context.Context, u *domain.User, d *domain.Dispensary, o *domain.User) {
	n.record("onboarding", u, d, o)
}

func (n *recordingNotifier) CreateVisit(_ context.Context, u *domain.User, d *domain.Dispensary, o *domain.User) {
	n.record("visit", u, d, o)
}

func (n *recordingNotifier) CreateSmallReward(_ context.Context, u *domain.User, d *domain.Dispensary, o *domain.User) {
	n.record("small_reward", u, d, o)
}

func (n *recordingNotifier) CreateMediumReward(_ context.Context, u *domain.User, d *domain.Dispensary, o *domain.User) {
	n.record("medium_reward", u, d, o)
}

func (n *recordingNotifier) CreateLargeReward(_ context.Context, u *domain.User, d *domain.Dispensary, o *domain.User) {
	n.record("large_reward", u, d, o)
}

func (n *recordingNotifier) CreateBothFriendships(_ context.Context, u *domain.User, d *domain.Dispensary, o *domain.User) {
	n.record("both_friendships", u, d, o)
}

func (n *recordingNotifier) CreateInviteeSignedUp(_ context.Context, u *domain.User, d *domain.Dispensary, o *domain.User) {
	n.record("invitee_signed_up", u, d, o)
}

func (n *recordingNotifier) CreateReferralFreeJoin(_ context.Context, u *domain.User, d *domain.Dispensary, o *domain.User) {
	n.record("referral_free_join", u, d, o)
}

func (n *recordingNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.calls))
	for i, c := range n.calls {
		out[i] = c.Kind
	}
	return out
}

func (n *recordingNotifier) count(kind string) int {
	total := 0
	for _, k := range n.kinds() {
		if k == kind {
			total++
		}
	}
	return total
}

func (n *recordingNotifier) find(kind string) (notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, c := range n.calls {
		if c.Kind == kind {
			return c, true
		}
	}
	return notification{}, false
}

func (n *recordingNotifier) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = nil
}

type fakeSms struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeSms) SendTo(_ context.Context, phoneNumber, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, phoneNumber+": "+message)
	return f.err
}

// fakeCatalog renders "key|name=value,..." so tests can assert on inputs
type fakeCatalog struct{}

func (fakeCatalog) T(key string, vars map[string]string) string {
	names := make([]string, 0, len(vars))
	for k := range vars {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = k + "=" + vars[k]
	}
	return key + "|" + strings.Join(parts, ",")
}

// fakeClock advances one second on every reading
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type fixture struct {
	t           *testing.T
	ctx         context.Context
	db          *gorm.DB
	store       *repositories.Store
	notifier    *recordingNotifier
	sms         *fakeSms
	clock       *fakeClock
	directory   *StoreDirectory
	memberships *MembershipService
	visits      *VisitService
	referrals   *ReferralService
	phones      int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.Open(t)
	store := repositories.NewStore(db)
	f := &fixture{
		t:        t,
		ctx:      context.Background(),
		db:       db,
		store:    store,
		notifier: &recordingNotifier{},
		sms:      &fakeSms{},
		clock:    &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)},
	}
	f.directory = NewDispensaryDirectory(store)
	f.directory.pick = func(int) int { return 0 }
	f.memberships = NewMembershipService(store, f.directory, f.notifier, f.clock, DefaultLoyaltyRules(), nil)
	f.visits = NewVisitService(f.memberships)
	f.referrals = NewReferralService(f.memberships, f.sms, fakeCatalog{})
	return f
}

func (f *fixture) user(name string) *models.User {
	f.t.Helper()
	f.phones++
	u := &models.User{
		Name:        name,
		PhoneNumber: fmt.Sprintf("+1555%07d", f.phones),
		MagicLink:   uuid.NewString(),
		Role:        "PATIENT",
	}
	if err := f.store.Users.Create(f.ctx, u); err != nil {
		f.t.Fatalf("create user: %v", err)
	}
	return u
}

func (f *fixture) dispensary(name string) *models.Dispensary {
	f.t.Helper()
	d := &models.Dispensary{Name: name, SmallRewardPoints: 30, MediumRewardPoints: 90, LargeRewardPoints: 150, IsActive: true}
	if err := f.store.Dispensaries.Create(f.ctx, d); err != nil {
		f.t.Fatalf("create dispensary: %v", err)
	}
	return d
}

func (f *fixture) deal(dispensaryID uint, points int) *models.Deal {
	f.t.Helper()
	d := &models.Deal{DispensaryID: dispensaryID, Title: fmt.Sprintf("%d point deal", points), Points: points, IsActive: true}
	if err := f.store.Deals.Create(f.ctx, d); err != nil {
		f.t.Fatalf("create deal: %v", err)
	}
	return d
}

func (f *fixture) visit(userID, dispensaryID uint, times int) {
	f.t.Helper()
	for i := 0; i < times; i++ {
		if _, err := f.visits.RecordVisit(f.ctx, userID, dispensaryID); err != nil {
			f.t.Fatalf("visit %d: %v", i+1, err)
		}
	}
}

func (f *fixture) setPoints(userID, dispensaryID uint, points int) uint {
	f.t.Helper()
	m, err := f.memberships.GetOrCreate(f.ctx, userID, dispensaryID)
	if err != nil {
		f.t.Fatalf("GetOrCreate: %v", err)
	}
	if err := f.db.Model(&models.Membership{}).Where("id = ?", m.ID).Update("points", points).Error; err != nil {
		f.t.Fatalf("set points: %v", err)
	}
	return m.ID
}

func (f *fixture) membership(userID, dispensaryID uint) *models.Membership {
	f.t.Helper()
	m, err := f.store.Memberships.GetByUserAndDispensary(f.ctx, userID, dispensaryID)
	if err != nil {
		f.t.Fatalf("load membership: %v", err)
	}
	return m
}

func (f *fixture) count(model interface{}, query string, args ...interface{}) int64 {
	f.t.Helper()
	var n int64
	q := f.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		f.t.Fatalf("count: %v", err)
	}
	return n
}

// failCreatesOn makes every INSERT into table fail
func (f *fixture) failCreatesOn(table string) {
	f.t.Helper()
	err := f.db.Callback().Create().Before("gorm:create").Register("test:fail_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			tx.AddError(errors.New("simulated write failure"))
		}
	})
	if err != nil {
		f.t.Fatalf("register callback: %v", err)
	}
}

// failMembershipSavesFor makes every membership update for userID fail
func (f *fixture) failMembershipSavesFor(userID uint) {
	f.t.Helper()
	err := f.db.Callback().Update().Before("gorm:update").Register("test:fail_membership_save", func(tx *gorm.DB) {
		if m, ok := tx.Statement.Dest.(*models.Membership); ok && m.UserID == userID {
			tx.AddError(errors.New("simulated write failure"))
		}
	})
	if err != nil {
		f.t.Fatalf("register callback: %v", err)
	}
}

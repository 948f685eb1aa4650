package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dispensary-loyalty/internal/core/domain"

	"go.uber.org/zap"
)

const lineNotifyURL = "https://notify-api.line.me/api/notify"

// LineNotificationService renders loyalty notifications from the message
// catalog and pushes them to a LINE Notify channel
type LineNotificationService struct {
	token   string
	enabled bool
	catalog MessageCatalog
	client  *http.Client
	logger  *zap.Logger
	url     string
}

// NewLineNotificationService creates a new notification service.
// With an empty token notifications are only logged.
func NewLineNotificationService(token string, catalog MessageCatalog, logger *zap.Logger) *LineNotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LineNotificationService{
		token:   token,
		enabled: token != "",
		catalog: catalog,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
		url:     lineNotifyURL,
	}
}

// IsEnabled checks if notification is enabled
func (s *LineNotificationService) IsEnabled() bool {
	return s.enabled
}

// sendLineNotify sends a message via LINE Notify
func (s *LineNotificationService) sendLineNotify(ctx context.Context, message string) error {
	data := url.Values{}
	data.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("line notify: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// push renders key for user and delivers it. Failures are logged only.
func (s *LineNotificationService) push(ctx context.Context, kind, key string, user *domain.User, dispensary *domain.Dispensary, other *domain.User) {
	vars := map[string]string{
		"name":       user.Name,
		"dispensary": dispensary.Name,
	}
	if other != nil {
		vars["friend"] = other.Name
	}
	body := s.catalog.T(key, vars)
	message := fmt.Sprintf("\n📣 %s\n👤 %s (%s)\n🏪 %s\n\n%s", kind, user.Name, user.PhoneNumber, dispensary.Name, body)

	log := s.logger.With(
		zap.String("kind", kind),
		zap.Uint("user_id", user.ID),
		zap.Uint("dispensary_id", dispensary.ID),
	)
	if !s.enabled {
		log.Debug("notification (line notify disabled)", zap.String("message", body))
		return
	}
	if err := s.sendLineNotify(ctx, message); err != nil {
		log.Warn("notification delivery failed", zap.Error(err))
		return
	}
	log.Debug("notification sent")
}

// CreateOnboarding welcomes a new member
func (s *LineNotificationService) CreateOnboarding(ctx context.Context, user *domain.User, dispensary *domain.Dispensary, other *domain.User) {
	s.push(ctx, "onboarding", "notification.onboarding", user, dispensary, other)
}

// CreateVisit confirms a visit
func (s *LineNotificationService) CreateVisit(ctx context.Context, user *domain.User, dispensary *domain.Dispensary, other *domain.User) {
	s.push(ctx, "visit", "notification.visit", user, dispensary, other)
}

// CreateSmallReward announces the small reward tier
func (s *LineNotificationService) CreateSmallReward(ctx context.Context, user *domain.User, dispensary *domain.Dispensary, other *domain.User) {
	s.push(ctx, "small_reward", "notification.small_reward", user, dispensary, other)
}

// CreateMediumReward announces the medium reward tier
func (s *LineNotificationService) CreateMediumReward(ctx context.Context, user *domain.User, dispensary *domain.Dispensary, other *domain.User) {
	s.push(ctx, "medium_reward", "notification.medium_reward", user, dispensary, other)
}

// CreateLargeReward announces the large reward tier
func (s *LineNotificationService) CreateLargeReward(ctx context.Context, user *domain.User, dispensary *domain.Dispensary, other *domain.User) {
	s.push(ctx, "large_reward", "notification.large_reward", user, dispensary, other)
}

// CreateBothFriendships notifies both sides of an accepted invitation
func (s *LineNotificationService) CreateBothFriendships(ctx context.Context, user *domain.User, dispensary *domain.Dispensary, other *domain.User) {
	s.push(ctx, "friendship", "notification.friendship", user, dispensary, other)
	if other != nil {
		s.push(ctx, "friendship", "notification.friendship", other, dispensary, user)
	}
}

// CreateInviteeSignedUp tells an inviter their friend signed up
func (s *LineNotificationService) CreateInviteeSignedUp(ctx context.Context, user *domain.User, dispensary *domain.Dispensary, other *domain.User) {
	s.push(ctx, "invitee_signed_up", "notification.invitee_signed_up", user, dispensary, other)
}

// CreateReferralFreeJoin tells an invitee about their free item
func (s *LineNotificationService) CreateReferralFreeJoin(ctx context.Context, user *domain.User, dispensary *domain.Dispensary, other *domain.User) {
	s.push(ctx, "referral_free_join", "notification.referral_free_join", user, dispensary, other)
}

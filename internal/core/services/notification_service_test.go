package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"dispensary-loyalty/internal/core/domain"
)

type lineStub struct {
	mu       sync.Mutex
	messages []string
	auth     []string
	status   int
}

func (s *lineStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := r.ParseForm(); err == nil {
		s.messages = append(s.messages, r.PostForm.Get("message"))
	}
	s.auth = append(s.auth, r.Header.Get("Authorization"))
	if s.status != 0 {
		w.WriteHeader(s.status)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func newLineService(t *testing.T, token string, stub *lineStub) *LineNotificationService {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	s := NewLineNotificationService(token, fakeCatalog{}, nil)
	s.url = srv.URL
	return s
}

var (
	ana       = &domain.User{ID: 1, Name: "Ana", PhoneNumber: "+15550000001"}
	ben       = &domain.User{ID: 2, Name: "Ben", PhoneNumber: "+15550000002"}
	greenLeaf = &domain.Dispensary{ID: 7, Name: "Green Leaf"}
)

func TestLineNotificationRendersAndPushes(t *testing.T) {
	stub := &lineStub{}
	s := newLineService(t, "secret-token", stub)

	s.CreateSmallReward(context.Background(), ana, greenLeaf, nil)

	if len(stub.messages) != 1 {
		t.Fatalf("pushes = %d, want 1", len(stub.messages))
	}
	if stub.auth[0] != "Bearer secret-token" {
		t.Errorf("Authorization = %q", stub.auth[0])
	}
	msg := stub.messages[0]
	for _, want := range []string{"small_reward", "Ana", "+15550000001", "notification.small_reward|dispensary=Green Leaf,name=Ana"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestLineNotificationFriendshipReachesBothUsers(t *testing.T) {
	stub := &lineStub{}
	s := newLineService(t, "secret-token", stub)

	s.CreateBothFriendships(context.Background(), ben, greenLeaf, ana)

	if len(stub.messages) != 2 {
		t.Fatalf("pushes = %d, want 2", len(stub.messages))
	}
	if !strings.Contains(stub.messages[0], "friend=Ana,name=Ben") || !strings.Contains(stub.messages[1], "friend=Ben,name=Ana") {
		t.Errorf("messages = %q", stub.messages)
	}
}

func TestLineNotificationDisabledWithoutToken(t *testing.T) {
	stub := &lineStub{}
	s := newLineService(t, "", stub)
	if s.IsEnabled() {
		t.Fatal("enabled without token")
	}

	s.CreateVisit(context.Background(), ana, greenLeaf, nil)

	if len(stub.messages) != 0 {
		t.Errorf("pushes = %d, want 0", len(stub.messages))
	}
}

func TestLineNotificationFailureIsSwallowed(t *testing.T) {
	stub := &lineStub{status: http.StatusUnauthorized}
	s := newLineService(t, "bad-token", stub)

	// must not panic or block; failures are only logged
	s.CreateOnboarding(context.Background(), ana, greenLeaf, nil)

	if err := s.sendLineNotify(context.Background(), "x"); err == nil {
		t.Error("expected error for non-200 response")
	}
}

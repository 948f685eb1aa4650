package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dispensary-loyalty/internal/config"
	"dispensary-loyalty/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const secret = "middleware-test-secret"

func newApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(zap.NewNop())})
}

func status(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	return resp
}

func TestErrorHandler(t *testing.T) {
	app := newApp()
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.ErrTeapot })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })

	if got := status(t, app, httptest.NewRequest(http.MethodGet, "/teapot", nil)).StatusCode; got != fiber.StatusTeapot {
		t.Errorf("fiber error status = %d, want 418", got)
	}
	if got := status(t, app, httptest.NewRequest(http.MethodGet, "/boom", nil)).StatusCode; got != fiber.StatusInternalServerError {
		t.Errorf("plain error status = %d, want 500", got)
	}
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: secret}}
	app := newApp()
	app.Get("/me", AuthMiddleware(cfg), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": CurrentUserID(c)})
	})
	app.Get("/staff", AuthMiddleware(cfg), StaffOrAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	patient, err := jwt.GenerateAccessToken(7, "PATIENT", secret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	staff, err := jwt.GenerateAccessToken(8, "STAFF", secret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	expired, err := jwt.GenerateAccessToken(7, "PATIENT", secret, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		path   string
		header string
		cookie string
		want   int
	}{
		{name: "no token", path: "/me", want: fiber.StatusUnauthorized},
		{name: "garbage", path: "/me", header: "Bearer nope", want: fiber.StatusUnauthorized},
		{name: "expired", path: "/me", header: "Bearer " + expired, want: fiber.StatusUnauthorized},
		{name: "header", path: "/me", header: "Bearer " + patient, want: fiber.StatusOK},
		{name: "cookie", path: "/me", cookie: patient, want: fiber.StatusOK},
		{name: "patient on staff route", path: "/staff", header: "Bearer " + patient, want: fiber.StatusForbidden},
		{name: "staff on staff route", path: "/staff", header: "Bearer " + staff, want: fiber.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tt.cookie})
			}
			if got := status(t, app, req).StatusCode; got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCacheControlOnlyOnSuccessfulGets(t *testing.T) {
	app := newApp()
	app.Get("/ok", CacheControl(5*time.Minute), func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", CacheControl(5*time.Minute), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNotFound) })

	resp := status(t, app, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if got := resp.Header.Get(fiber.HeaderCacheControl); got != "public, max-age=300" {
		t.Errorf("Cache-Control = %q", got)
	}
	resp = status(t, app, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if got := resp.Header.Get(fiber.HeaderCacheControl); got != "" {
		t.Errorf("Cache-Control on 404 = %q, want empty", got)
	}
}

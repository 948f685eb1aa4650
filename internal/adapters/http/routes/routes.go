package routes

import (
	"time"

	"dispensary-loyalty/internal/adapters/http/handlers"
	"dispensary-loyalty/internal/adapters/http/middleware"
	"dispensary-loyalty/internal/adapters/persistence/repositories"
	"dispensary-loyalty/internal/config"
	"dispensary-loyalty/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Collaborators are the outbound services the loyalty core talks to
type Collaborators struct {
	Notifier services.NotificationService
	Sms      services.SmsGateway
	Catalog  services.MessageCatalog
	Clock    services.Clock
}

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, log *zap.Logger, collab Collaborators) {
	// Initialize repositories
	store := repositories.NewStore(db)

	// Initialize services
	rules := services.LoyaltyRules{
		VisitPoints:           cfg.Loyalty.VisitPoints,
		FirstTimeSignUpPoints: cfg.Loyalty.FirstTimeSignUpPoints,
		PointsCap:             cfg.Loyalty.PointsCap,
		InvitePromptMaxVisits: cfg.Loyalty.InvitePromptMaxVisits,
	}
	directory := services.NewDispensaryDirectory(store)
	membershipService := services.NewMembershipService(store, directory, collab.Notifier, collab.Clock, rules, log)
	visitService := services.NewVisitService(membershipService)
	referralService := services.NewReferralService(membershipService, collab.Sms, collab.Catalog)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.AppMode, pingDatabase(db))
	membershipHandler := handlers.NewMembershipHandler(membershipService, visitService, log)
	invitationHandler := handlers.NewInvitationHandler(referralService, log)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Invite links are shared outside the app
	app.Get("/invite/:link", middleware.InviteLinkRateLimiter(), invitationHandler.ResolveInviteLink)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupDispensaryRoutes(apiV1.Group("/dispensaries"), membershipHandler, cfg)
	setupMembershipRoutes(apiV1.Group("/memberships"), membershipHandler, cfg)
	setupInvitationRoutes(apiV1.Group("/invitations"), invitationHandler, cfg)
}

// setupDispensaryRoutes configures per-dispensary routes
func setupDispensaryRoutes(router fiber.Router, h *handlers.MembershipHandler, cfg *config.Config) {
	// Public
	router.Get("/:id/deals", middleware.CacheControl(5*time.Minute), h.ListDeals)

	// Authenticated
	auth := middleware.AuthMiddleware(cfg)
	router.Post("/:id/visits", auth, h.RecordVisit)
	router.Get("/:id/membership", auth, h.GetMembership)

	// Staff
	router.Post("/:id/signup", auth, middleware.StaffOrAdmin(), h.Signup)
}

// setupMembershipRoutes configures membership and redemption routes
func setupMembershipRoutes(router fiber.Router, h *handlers.MembershipHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))

	router.Get("/", h.ListMemberships)
	router.Get("/:id/redemptions", h.ListRedemptions)
	router.Post("/:id/redemptions", h.Redeem)
}

// setupInvitationRoutes configures referral routes
func setupInvitationRoutes(router fiber.Router, h *handlers.InvitationHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))

	router.Post("/", h.CreateInvitation)
	router.Post("/signup", h.SignupReferral)
	router.Patch("/:id", h.RespondToInvitation)
}

// pingDatabase returns a health check for db
func pingDatabase(db *gorm.DB) func() error {
	return func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	}
}

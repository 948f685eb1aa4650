package cli

import (
	"dispensary-loyalty/internal/adapters/persistence/repositories"
	"dispensary-loyalty/internal/config"
	"dispensary-loyalty/internal/core/services"
	"dispensary-loyalty/internal/pkg/i18n"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Environment opens the resources a command needs
type Environment interface {
	Open(cmd *cobra.Command) (*Runtime, error)
}

// Runtime is the wired service graph for one command invocation
type Runtime struct {
	Config      *config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	Memberships *services.MembershipService
	Visits      *services.VisitService
	close       func() error
}

// Close releases the database
func (r *Runtime) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// NewRuntime wires the services over db
func NewRuntime(cfg *config.Config, db *gorm.DB, log *zap.Logger) (*Runtime, error) {
	catalog, err := i18n.Load(cfg.Locale)
	if err != nil {
		return nil, err
	}

	store := repositories.NewStore(db)
	rules := services.LoyaltyRules{
		VisitPoints:           cfg.Loyalty.VisitPoints,
		FirstTimeSignUpPoints: cfg.Loyalty.FirstTimeSignUpPoints,
		PointsCap:             cfg.Loyalty.PointsCap,
		InvitePromptMaxVisits: cfg.Loyalty.InvitePromptMaxVisits,
	}
	notifier := services.NewLineNotificationService(cfg.Notify.LineToken, catalog, log.Named("notify"))
	memberships := services.NewMembershipService(store, services.NewDispensaryDirectory(store), notifier, nil, rules, log)

	return &Runtime{
		Config:      cfg,
		DB:          db,
		Log:         log,
		Memberships: memberships,
		Visits:      services.NewVisitService(memberships),
	}, nil
}

type configuredEnvironment struct{}

// ConfiguredEnvironment connects to the database named by the environment
func ConfiguredEnvironment() Environment {
	return configuredEnvironment{}
}

func (configuredEnvironment) Open(cmd *cobra.Command) (*Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	var log *zap.Logger
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log, err = zap.NewDevelopment()
	} else {
		log, err = config.NewLogger(cfg)
	}
	if err != nil {
		return nil, err
	}

	db, err := config.ConnectDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	rt, err := NewRuntime(cfg, db, log)
	if err != nil {
		_ = config.CloseDatabase(db)
		return nil, err
	}
	rt.close = func() error { return config.CloseDatabase(db) }
	return rt, nil
}

// withRuntime opens the environment for the duration of fn
func withRuntime(env Environment, cmd *cobra.Command, fn func(rt *Runtime) error) error {
	rt, err := env.Open(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(rt)
}

package config

import (
	"errors"

	"dispensary-loyalty/internal/adapters/persistence/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{db: db, log: log}
}

type seedDispensary struct {
	dispensary models.Dispensary
	deals      []models.Deal
}

var demoDispensaries = []seedDispensary{
	{
		dispensary: models.Dispensary{Name: "Green Leaf Collective", SmallRewardPoints: 30, MediumRewardPoints: 90, LargeRewardPoints: 150, IsActive: true},
		deals: []models.Deal{
			{Title: "Free pre-roll", Points: 30, IsActive: true},
			{Title: "Free eighth", Points: 90, IsActive: true},
			{Title: "Free quarter", Points: 150, IsActive: true},
		},
	},
	{
		dispensary: models.Dispensary{Name: "Harbor Wellness", SmallRewardPoints: 40, MediumRewardPoints: 100, LargeRewardPoints: 200, IsActive: true},
		deals: []models.Deal{
			{Title: "10% off edibles", Points: 40, IsActive: true},
			{Title: "Free vape cartridge", Points: 100, IsActive: true},
		},
	},
}

var demoUsers = []models.User{
	{Name: "Demo Patient", PhoneNumber: "+15550100001", Role: "PATIENT"},
	{Name: "Demo Friend", PhoneNumber: "+15550100002", Role: "PATIENT"},
	{Name: "Demo Budtender", PhoneNumber: "+15550100003", Role: "STAFF"},
}

// Run executes all seeders
func (s *Seeder) Run() error {
	s.log.Info("running database seeders")

	if err := s.seedDispensaries(); err != nil {
		return err
	}
	if err := s.seedUsers(); err != nil {
		return err
	}

	s.log.Info("database seeding completed")
	return nil
}

func (s *Seeder) seedDispensaries() error {
	for _, item := range demoDispensaries {
		d := item.dispensary
		var existing models.Dispensary
		err := s.db.Where("name = ?", d.Name).First(&existing).Error
		switch {
		case err == nil:
			continue
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if err := s.db.Create(&d).Error; err != nil {
			return err
		}
		for _, deal := range item.deals {
			deal.DispensaryID = d.ID
			if err := s.db.Create(&deal).Error; err != nil {
				return err
			}
		}
		s.log.Info("created dispensary", zap.String("name", d.Name), zap.Int("deals", len(item.deals)))
	}
	return nil
}

func (s *Seeder) seedUsers() error {
	for _, u := range demoUsers {
		var existing models.User
		err := s.db.Where("phone_number = ?", u.PhoneNumber).First(&existing).Error
		switch {
		case err == nil:
			continue
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		u.MagicLink = uuid.NewString()
		if err := s.db.Create(&u).Error; err != nil {
			return err
		}
		s.log.Info("created user", zap.String("name", u.Name), zap.String("role", u.Role), zap.String("magic_link", u.MagicLink))
	}
	return nil
}

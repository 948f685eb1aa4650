package config

import (
	"testing"

	"dispensary-loyalty/internal/adapters/persistence/models"
	"dispensary-loyalty/internal/pkg/testdb"
)

func TestSeederIsIdempotent(t *testing.T) {
	db := testdb.Open(t)
	s := NewSeeder(db, nil)

	for i := 0; i < 2; i++ {
		if err := s.Run(); err != nil {
			t.Fatalf("Run %d: %v", i+1, err)
		}
	}

	var dispensaries, deals, users int64
	db.Model(&models.Dispensary{}).Count(&dispensaries)
	db.Model(&models.Deal{}).Count(&deals)
	db.Model(&models.User{}).Count(&users)
	if dispensaries != 2 || deals != 5 || users != 3 {
		t.Errorf("seeded %d dispensaries, %d deals, %d users; want 2, 5, 3", dispensaries, deals, users)
	}

	var d models.Dispensary
	if err := db.Where("name = ?", "Green Leaf Collective").First(&d).Error; err != nil {
		t.Fatal(err)
	}
	if err := d.RewardTiers().Validate(); err != nil {
		t.Errorf("seeded tiers invalid: %v", err)
	}
}

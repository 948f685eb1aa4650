package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"dispensary-loyalty/internal/adapters/persistence/repositories"
	"dispensary-loyalty/internal/core/domain"

	"gorm.io/gorm"
)

// StoreDirectory resolves dispensaries from the database
type StoreDirectory struct {
	store *repositories.Store
	pick  func(n int) int
}

// NewDispensaryDirectory creates a directory backed by the store
func NewDispensaryDirectory(store *repositories.Store) *StoreDirectory {
	return &StoreDirectory{store: store, pick: rand.Intn}
}

// Get gets a dispensary with a validated reward ladder
func (d *StoreDirectory) Get(ctx context.Context, dispensaryID uint) (*domain.Dispensary, error) {
	row, err := d.store.Dispensaries.GetByID(ctx, dispensaryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDispensaryNotFound
		}
		return nil, err
	}

	dispensary := row.ToDomain()
	if err := dispensary.Tiers.Validate(); err != nil {
		return nil, fmt.Errorf("dispensary %d: %w", dispensaryID, err)
	}
	return dispensary, nil
}

// RewardTiers gets the reward ladder of a dispensary
func (d *StoreDirectory) RewardTiers(ctx context.Context, dispensaryID uint) (domain.RewardTiers, error) {
	dispensary, err := d.Get(ctx, dispensaryID)
	if err != nil {
		return domain.RewardTiers{}, err
	}
	return dispensary.Tiers, nil
}

// LastVisitedOrRandom returns the dispensary the user visited most recently,
// or any active dispensary if the user has never visited one
func (d *StoreDirectory) LastVisitedOrRandom(ctx context.Context, userID uint) (*domain.Dispensary, error) {
	last, err := d.store.Memberships.GetLastVisitedByUser(ctx, userID)
	switch {
	case err == nil:
		return d.Get(ctx, last.DispensaryID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	count, err := d.store.Dispensaries.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, domain.ErrNoDispensaries
	}

	row, err := d.store.Dispensaries.GetActiveAt(ctx, d.pick(int(count)))
	if err != nil {
		return nil, err
	}
	return d.Get(ctx, row.ID)
}

package repositories

import (
	"context"

	"dispensary-loyalty/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByIDForUpdate reads and row-locks a user. Referral writes for one
// invitee serialize on this lock. Must run inside a transaction.
func (r *userRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByMagicLink gets a user by their invite link token
func (r *userRepository) GetByMagicLink(ctx context.Context, magicLink string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("magic_link = ?", magicLink).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

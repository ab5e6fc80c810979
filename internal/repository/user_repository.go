package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"crm/internal/model"
	"crm/internal/result"
)

// UserRepository adds username lookup to the generic operations.
type UserRepository interface {
	Repository[model.User]
	GetByUsername(ctx context.Context, username string) result.Result[*model.User]
}

type userRepository struct {
	*GormRepository[model.User, *model.User]
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB, log zerolog.Logger) UserRepository {
	return &userRepository{
		GormRepository: NewRepository[model.User](db, log),
	}
}

// GetByUsername finds a user by exact username.
func (r *userRepository) GetByUsername(ctx context.Context, username string) result.Result[*model.User] {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return result.Failure[*model.User]("User with username " + username + " not found")
	}
	if err != nil {
		return result.Failure[*model.User](r.storageFailure(err, "get by username", uuid.Nil))
	}
	return result.Success(&user)
}

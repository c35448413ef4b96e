package repositories

import (
	"context"
	"errors"

	"salesproject-backend/apperr"
	"salesproject-backend/database"
	"salesproject-backend/models"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := database.Conn(ctx, r.db).First(&u, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %s not found", username)
		}
		return nil, apperr.Wrap(err, "find user")
	}
	return &u, nil
}

func (r *UserRepository) Save(ctx context.Context, u *models.User) error {
	return apperr.Wrap(database.Conn(ctx, r.db).Save(u).Error, "save user")
}

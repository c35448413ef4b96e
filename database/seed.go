package database

import (
	"errors"
	"strings"

	"salesproject-backend/models"

	zlog "github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SeedAdmin creates the bootstrap user when both username and password are set
// and no user with that name exists yet.
func SeedAdmin(db *gorm.DB, username, password string, roles []string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil
	}

	var existing models.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	user := models.User{Username: username, FirstName: username, Roles: roles}
	if err := user.SetPassword(password); err != nil {
		return err
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	zlog.Info().Str("username", username).Strs("roles", roles).Msg("seeded admin user")
	return nil
}

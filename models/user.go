package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// User is a credential-store entry. Roles are the granted authorities put into issued tokens.
type User struct {
	Username  string                      `json:"username" gorm:"primaryKey;size:100"`
	FirstName string                      `json:"first_name" gorm:"size:100"`
	LastName  string                      `json:"last_name" gorm:"size:100"`
	Email     string                      `json:"email" gorm:"size:140"`
	Password  []byte                      `json:"-" gorm:"not null"`
	Roles     datatypes.JSONSlice[string] `json:"roles"`
}

func (user *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	user.Password = hashedPassword
	return nil
}

func (user *User) ComparePassword(password string) error {
	return bcrypt.CompareHashAndPassword(user.Password, []byte(password))
}

// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

// User is a demo account. There is no user database; the service ships
// with a fixed set of credentials.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

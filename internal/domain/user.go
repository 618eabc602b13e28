package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           int32     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Email        string    `json:"email,omitempty"`
	Role         Role      `json:"role"`
	CreatedOn    time.Time `json:"created_on"`
}

// ProfileComplete reports whether the contact fields required for booking
// have been filled in. Accounts can be registered with username and password
// only; the rest must be completed before a rental can be created.
func (u *User) ProfileComplete() bool {
	return u.Name != "" && u.Phone != "" && u.Address != ""
}

package models

import "github.com/dmitrijs2005/localboost/internal/timex"

// User is the profile returned by GET /api/v1/auth/me. Name and Phone are
// nullable on the server side.
type User struct {
	ID        string          `json:"id"`
	Name      *string         `json:"name"`
	Email     string          `json:"email"`
	Phone     *string         `json:"phone"`
	CreatedAt timex.Timestamp `json:"created_at"`
}

// DisplayName falls back to the email when the profile has no name.
func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Email
}

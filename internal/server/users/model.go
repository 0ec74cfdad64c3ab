package users

import "time"

// User is a row of the users table. PasswordHash is nil for accounts that
// only ever signed in with Google.
type User struct {
	ID           string
	Email        string
	Phone        *string
	PasswordHash *string
	Name         *string
	GoogleID     *string
	CreatedAt    time.Time
}

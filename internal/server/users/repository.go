package users

import "context"

type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByGoogleIDOrEmail prefers a google_id match over an email match.
	GetByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*User, error)
	LinkGoogleID(ctx context.Context, userID, googleID string) error
}

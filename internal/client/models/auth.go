package models

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the signup payload.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// GoogleOAuthRequest exchanges a Google ID token for an API token.
type GoogleOAuthRequest struct {
	IDToken string `json:"id_token"`
}

const TokenTypeBearer = "bearer"

// TokenResponse is what register, login and google-oauth all return.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

package auth

import "github.com/google/uuid"

// RegisterRequest is the body accepted by the register endpoint.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
	LogonKey string `json:"logon_key" validate:"required"`
}

// RegisterResponse returns the identifier of the newly created account.
type RegisterResponse struct {
	ID uuid.UUID `json:"id"`
}

// LoginRequest is the body accepted by the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	LogonKey string `json:"logon_key" validate:"required"`
}

// LoginResponse carries the minted token pair. LoggedInAs echos the email
// the caller authenticated with.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	LoggedInAs   string `json:"logged_in_as"`
}

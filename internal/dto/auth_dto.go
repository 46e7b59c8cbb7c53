package dto

// SignupRequest represents the request to register a new account
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email" example:"dev@example.com"`
	Username string `json:"username" binding:"required,min=1,max=255" example:"dev"`
	Password string `json:"password" binding:"required" example:"s3cret"`
}

// LoginRequest represents the credentials exchanged for an access token
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"dev@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
}

package dto

import "github.com/SscSPs/vidtube_backend/internal/core/domain"

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ToLoginResponse builds the login payload from the user and the issued pair.
func ToLoginResponse(user *domain.User, pair *domain.TokenPair) LoginResponse {
	return LoginResponse{
		User:         ToUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
}

// ToRefreshTokenResponse builds the refresh payload from the rotated pair.
func ToRefreshTokenResponse(pair *domain.TokenPair) RefreshTokenResponse {
	return RefreshTokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}
}

package dto

// RegisterUserRequest is the multipart form of the registration endpoint.
// The avatar and coverImage files travel in the same form.
type RegisterUserRequest struct {
	Username string `form:"username" json:"username" binding:"required,notblank"`
	Email    string `form:"email" json:"email" binding:"required,notblank"`
	FullName string `form:"fullName" json:"fullName" binding:"required,notblank"`
	Password string `form:"password" json:"password" binding:"required,notblank"`
}

// LoginRequest carries the login credentials. Which identifiers are mandatory
// is decided by the login policy of the auth service.
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// RefreshTokenRequest is the optional body of the refresh endpoint; the cookie wins.
type RefreshTokenRequest struct {
	RefreshToken string `form:"refreshToken" json:"refreshToken"`
}

// ChangePasswordRequest defines the body of the change password endpoint.
type ChangePasswordRequest struct {
	OldPassword string `form:"oldPassword" json:"oldPassword" binding:"required"`
	NewPassword string `form:"newPassword" json:"newPassword" binding:"required,notblank"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
type UpdateAccountRequest struct {
	FullName string `form:"fullName" json:"fullName" binding:"required,notblank"`
	Email    string `form:"email" json:"email" binding:"required,notblank,email"`
}

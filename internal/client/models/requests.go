package models

// RegisterRequest carries the new-account form. Validation mirrors the
// backend's rules so obviously bad payloads never leave the client.
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
}

// UpdateProfileRequest carries a profile edit. All fields are optional;
// a password change requires the current password alongside the new one.
type UpdateProfileRequest struct {
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	Username        string `json:"username,omitempty"`
	AvatarImageID   string `json:"avatarImageId,omitempty"`
	CurrentPassword string `json:"currentPassword,omitempty"`
	NewPassword     string `json:"newPassword,omitempty" validate:"omitempty,min=8"`
}

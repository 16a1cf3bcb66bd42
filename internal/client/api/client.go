// Package api implements the HTTP JSON client for the Clea backend.
// It is the module's single network boundary: the session store, membership
// toggler, and routine builder all talk to the backend through the Client
// interface defined here.
package api

import (
	"context"

	"github.com/Amelia-Slapek/clea-client/internal/client/models"
)

// LoginResponse is the success payload of the login endpoint.
type LoginResponse struct {
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
	Message string       `json:"message,omitempty"`
}

// RegisterResponse is the payload of the registration endpoint. Successful
// registration does not authenticate; it commonly asks for email
// confirmation before the first login.
type RegisterResponse struct {
	Message              string `json:"message,omitempty"`
	RequiresVerification bool   `json:"requiresVerification,omitempty"`
	Email                string `json:"email,omitempty"`
}

// MessageResponse is the generic one-field payload used by the
// password-reset and verification endpoints.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
}

// MembershipResponse carries the authoritative membership sets returned by
// the favorite / saved-article / allergen endpoints. Only the set matching
// the mutated relationship is populated.
type MembershipResponse struct {
	FavoriteProducts []string `json:"favoriteProducts,omitempty"`
	SavedArticles    []string `json:"savedArticles,omitempty"`
	Allergies        []string `json:"allergies,omitempty"`
}

// LikeResponse carries the updated like aggregate for an article.
type LikeResponse struct {
	Likes int `json:"likes"`
}

// Client is the remote backend contract. All methods honor context
// cancellation. Transport failures are reported as ErrUnavailable, rejected
// tokens as ErrUnauthorized, and business-rule rejections as *Error; no
// method retries automatically.
type Client interface {
	// Auth lifecycle.
	VerifyToken(ctx context.Context, token string) error
	Login(ctx context.Context, login, password string) (*LoginResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*RegisterResponse, error)
	Profile(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, token string, req models.UpdateProfileRequest) (*models.User, error)

	// Email verification and password reset.
	ResendVerification(ctx context.Context, email string) (*MessageResponse, error)
	VerifyEmail(ctx context.Context, verificationToken string) (*MessageResponse, error)
	ForgotPassword(ctx context.Context, email string) (*MessageResponse, error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) (*MessageResponse, error)

	// Membership sets.
	AddFavorite(ctx context.Context, token, productID string) (*MembershipResponse, error)
	RemoveFavorite(ctx context.Context, token, productID string) (*MembershipResponse, error)
	AddSavedArticle(ctx context.Context, token, articleID string) (*MembershipResponse, error)
	RemoveSavedArticle(ctx context.Context, token, articleID string) (*MembershipResponse, error)
	AddAllergy(ctx context.Context, token, ingredientID string) (*MembershipResponse, error)
	RemoveAllergy(ctx context.Context, token, ingredientID string) (*MembershipResponse, error)

	// Article like aggregate.
	LikeArticle(ctx context.Context, token, articleID string) (*LikeResponse, error)
	UnlikeArticle(ctx context.Context, token, articleID string) (*LikeResponse, error)

	// Skincare routines and compatibility.
	CheckCompatibility(ctx context.Context, token string, productIDs []string) (*models.CompatibilityReport, error)
	ListRoutines(ctx context.Context, token string) ([]models.Routine, error)
	SaveRoutine(ctx context.Context, token string, routine models.Routine) (*models.Routine, error)
	DeleteRoutine(ctx context.Context, token, routineID string) error
}

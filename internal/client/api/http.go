package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Amelia-Slapek/clea-client/internal/client/models"
	"github.com/Amelia-Slapek/clea-client/internal/logging"
)

// HTTPClient is the production Client implementation over net/http.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for the backend at baseURL. The timeout
// applies per request; there are no automatic retries.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// errorBody is the JSON shape of a non-2xx response.
type errorBody struct {
	Message              string `json:"message"`
	RequiresVerification bool   `json:"requiresVerification"`
	Email                string `json:"email"`
}

// do performs one JSON round-trip. A nil body sends no payload; a nil out
// discards the response body. Transport failures map to ErrUnavailable and
// any non-2xx status to *Error (which matches ErrUnauthorized for 401/403).
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		if eb.Message == "" {
			eb.Message = http.StatusText(resp.StatusCode)
		}
		return &Error{
			Status:               resp.StatusCode,
			Message:              eb.Message,
			RequiresVerification: eb.RequiresVerification,
			Email:                eb.Email,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) VerifyToken(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodGet, "/api/auth/verify-token", token, nil, nil)
}

func (c *HTTPClient) Login(ctx context.Context, login, password string) (*LoginResponse, error) {
	req := map[string]string{"login": login, "password": password}
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Profile(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// updateProfileResponse wraps the updated user the backend returns after a
// profile edit.
type updateProfileResponse struct {
	Message string       `json:"message,omitempty"`
	User    *models.User `json:"user"`
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, token string, req models.UpdateProfileRequest) (*models.User, error) {
	var resp updateProfileResponse
	if err := c.do(ctx, http.MethodPut, "/api/auth/profile", token, req, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *HTTPClient) ResendVerification(ctx context.Context, email string) (*MessageResponse, error) {
	req := map[string]string{"email": email}
	var resp MessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/resend-verification", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) VerifyEmail(ctx context.Context, verificationToken string) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/verify-email/"+verificationToken, "", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) (*MessageResponse, error) {
	req := map[string]string{"email": email}
	var resp MessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/forgot-password", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, resetToken, newPassword string) (*MessageResponse, error) {
	req := map[string]string{"token": resetToken, "newPassword": newPassword}
	var resp MessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/reset-password", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) toggleMembership(ctx context.Context, method, path, token string) (*MembershipResponse, error) {
	var resp MembershipResponse
	if err := c.do(ctx, method, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) AddFavorite(ctx context.Context, token, productID string) (*MembershipResponse, error) {
	return c.toggleMembership(ctx, http.MethodPost, "/api/auth/favorites/"+productID, token)
}

func (c *HTTPClient) RemoveFavorite(ctx context.Context, token, productID string) (*MembershipResponse, error) {
	return c.toggleMembership(ctx, http.MethodDelete, "/api/auth/favorites/"+productID, token)
}

func (c *HTTPClient) AddSavedArticle(ctx context.Context, token, articleID string) (*MembershipResponse, error) {
	return c.toggleMembership(ctx, http.MethodPost, "/api/auth/saved-articles/"+articleID, token)
}

func (c *HTTPClient) RemoveSavedArticle(ctx context.Context, token, articleID string) (*MembershipResponse, error) {
	return c.toggleMembership(ctx, http.MethodDelete, "/api/auth/saved-articles/"+articleID, token)
}

func (c *HTTPClient) AddAllergy(ctx context.Context, token, ingredientID string) (*MembershipResponse, error) {
	return c.toggleMembership(ctx, http.MethodPost, "/api/auth/allergies/"+ingredientID, token)
}

func (c *HTTPClient) RemoveAllergy(ctx context.Context, token, ingredientID string) (*MembershipResponse, error) {
	return c.toggleMembership(ctx, http.MethodDelete, "/api/auth/allergies/"+ingredientID, token)
}

func (c *HTTPClient) LikeArticle(ctx context.Context, token, articleID string) (*LikeResponse, error) {
	var resp LikeResponse
	if err := c.do(ctx, http.MethodPost, "/api/articles/"+articleID+"/like", token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UnlikeArticle(ctx context.Context, token, articleID string) (*LikeResponse, error) {
	var resp LikeResponse
	if err := c.do(ctx, http.MethodPost, "/api/articles/"+articleID+"/unlike", token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) CheckCompatibility(ctx context.Context, token string, productIDs []string) (*models.CompatibilityReport, error) {
	req := map[string][]string{"productIds": productIDs}
	var report models.CompatibilityReport
	if err := c.do(ctx, http.MethodPost, "/api/products/check-compatibility", token, req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *HTTPClient) ListRoutines(ctx context.Context, token string) ([]models.Routine, error) {
	var routines []models.Routine
	if err := c.do(ctx, http.MethodGet, "/api/skincare-routines", token, nil, &routines); err != nil {
		return nil, err
	}
	return routines, nil
}

func (c *HTTPClient) SaveRoutine(ctx context.Context, token string, routine models.Routine) (*models.Routine, error) {
	method := http.MethodPost
	path := "/api/skincare-routines"
	if routine.ID != "" {
		method = http.MethodPut
		path += "/" + routine.ID
	}
	var saved models.Routine
	if err := c.do(ctx, method, path, token, routine, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *HTTPClient) DeleteRoutine(ctx context.Context, token, routineID string) error {
	return c.do(ctx, http.MethodDelete, "/api/skincare-routines/"+routineID, token, nil, nil)
}

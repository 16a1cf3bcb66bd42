// Package session owns the authentication lifecycle of the Clea client:
// restoring a persisted credential on startup, login/logout/register, and
// keeping the in-memory user, the durable credential record, and the
// remote profile coherent. The Store is the single writer of the durable
// record; everything else reads session state through it.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Amelia-Slapek/clea-client/internal/client/api"
	"github.com/Amelia-Slapek/clea-client/internal/client/models"
	"github.com/Amelia-Slapek/clea-client/internal/client/repositories/credentials"
	"github.com/Amelia-Slapek/clea-client/internal/logging"
)

// MsgConnectionError is the generic message surfaced whenever the backend
// cannot be reached. Transport details stay in the logs.
const MsgConnectionError = "could not connect to the server"

// Provider is the read/update surface consumers of session state depend
// on. Injecting it (instead of reaching for a process-wide singleton)
// keeps the membership and routine components testable with fakes.
type Provider interface {
	CurrentUser() *models.User
	Token() string
	IsAuthenticated() bool
	UpdateUser(ctx context.Context, user *models.User)
	Logout(ctx context.Context)
}

// Store is the session authority. All exported methods are safe for
// concurrent use; network calls run outside the state lock.
type Store struct {
	api      api.Client
	creds    credentials.Repository
	log      logging.Logger
	validate *validator.Validate

	mu       sync.Mutex
	user     *models.User
	token    string
	loading  bool
	restored bool
}

func NewStore(apiClient api.Client, creds credentials.Repository, log logging.Logger) *Store {
	return &Store{
		api:      apiClient,
		creds:    creds,
		log:      log.With("component", "session"),
		validate: validator.New(),
		loading:  true,
	}
}

// Restore loads the persisted credential pair and verifies the token
// against the backend. It runs exactly once per Store lifetime; repeated
// calls are no-ops. The policy is fail-closed: any doubt about the token
// (missing record, verification rejection, unreachable server) clears the
// session and the durable record rather than risking stale auth.
//
// On success the cached user snapshot is adopted as-is; the profile is not
// refetched at this point.
func (s *Store) Restore(ctx context.Context) {
	s.mu.Lock()
	if s.restored {
		s.mu.Unlock()
		return
	}
	s.restored = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	token, user, ok, err := s.creds.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to load stored credentials", "error", err)
	}
	if err != nil || !ok {
		s.Logout(ctx)
		return
	}

	if err := s.api.VerifyToken(ctx, token); err != nil {
		s.log.Warn(ctx, "stored token rejected, discarding session", "error", err)
		s.Logout(ctx)
		return
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()
	s.log.Info(ctx, "session restored", "user", user.Username)
}

// Login authenticates with a login-or-email identifier and password. On
// success the session adopts the returned token and user and persists
// both. On failure the session is left untouched and the result carries
// the server message, plus the requires-verification flag and email when
// the account exists but is unconfirmed.
func (s *Store) Login(ctx context.Context, login, password string) models.AuthResult {
	resp, err := s.api.Login(ctx, login, password)
	if err != nil {
		s.log.Warn(ctx, "login failed", "error", err)
		return failureResult(err)
	}

	s.mu.Lock()
	s.user = resp.User
	s.token = resp.Token
	s.mu.Unlock()

	if err := s.creds.Save(ctx, resp.Token, resp.User); err != nil {
		// The in-memory session stays valid; only restoration after a
		// process restart is affected.
		s.log.Error(ctx, "failed to persist credentials", "error", err)
	}
	s.log.Info(ctx, "logged in", "user", resp.User.Username)
	return models.OK(resp.Message)
}

// Register creates a new account. It never authenticates the caller:
// the backend requires email confirmation before the first login, so a
// succeeding result may still carry RequiresVerification.
func (s *Store) Register(ctx context.Context, req models.RegisterRequest) models.AuthResult {
	if err := s.validate.Struct(req); err != nil {
		return models.Failed(validationMessage(err))
	}

	resp, err := s.api.Register(ctx, req)
	if err != nil {
		s.log.Warn(ctx, "registration failed", "error", err)
		return failureResult(err)
	}
	return models.AuthResult{
		Success:              true,
		Message:              resp.Message,
		RequiresVerification: resp.RequiresVerification,
		Email:                resp.Email,
	}
}

// Logout clears the in-memory session and the durable record. No network
// call is made; calling it while already logged out is fine.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.creds.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear stored credentials", "error", err)
	}
}

// UpdateUser replaces the current user snapshot and re-persists the
// sanitized copy. The token is untouched. Components apply confirmed
// server responses (profile edits, membership-set changes) through here
// so nobody ever merges membership deltas by hand.
func (s *Store) UpdateUser(ctx context.Context, user *models.User) {
	s.mu.Lock()
	s.user = user.Clone()
	s.mu.Unlock()

	if err := s.creds.SaveUser(ctx, user); err != nil {
		s.log.Error(ctx, "failed to persist user snapshot", "error", err)
	}
}

// RefreshUserData refetches the canonical profile with the current token
// and applies it through the UpdateUser path. Without a token it is a
// success-shaped no-op. A rejected token forces a logout; any other
// failure leaves the session as it was.
func (s *Store) RefreshUserData(ctx context.Context) models.AuthResult {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()
	if token == "" {
		return models.OK("")
	}

	user, err := s.api.Profile(ctx, token)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			s.log.Warn(ctx, "token rejected on refresh, logging out")
			s.Logout(ctx)
			return models.Failed("session expired, please log in again")
		}
		s.log.Warn(ctx, "profile refresh failed", "error", err)
		return failureResult(err)
	}

	s.UpdateUser(ctx, user)
	return models.OK("")
}

// UpdateProfile sends a profile edit and, on success, applies the updated
// user returned by the backend.
func (s *Store) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) models.AuthResult {
	if err := s.validate.Struct(req); err != nil {
		return models.Failed(validationMessage(err))
	}

	s.mu.Lock()
	token := s.token
	s.mu.Unlock()
	if token == "" {
		return models.Failed("not logged in")
	}

	user, err := s.api.UpdateProfile(ctx, token, req)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			s.Logout(ctx)
			return models.Failed("session expired, please log in again")
		}
		return failureResult(err)
	}
	s.UpdateUser(ctx, user)
	return models.OK("profile updated")
}

// ForgotPassword requests a reset email. Session state is untouched.
func (s *Store) ForgotPassword(ctx context.Context, email string) models.AuthResult {
	return messageResult(s.api.ForgotPassword(ctx, email))
}

// ResetPassword completes a password reset with the emailed token.
func (s *Store) ResetPassword(ctx context.Context, resetToken, newPassword string) models.AuthResult {
	return messageResult(s.api.ResetPassword(ctx, resetToken, newPassword))
}

// ResendVerification asks the backend to resend the confirmation email.
func (s *Store) ResendVerification(ctx context.Context, email string) models.AuthResult {
	return messageResult(s.api.ResendVerification(ctx, email))
}

// VerifyEmail confirms an address with the emailed verification token.
func (s *Store) VerifyEmail(ctx context.Context, verificationToken string) models.AuthResult {
	return messageResult(s.api.VerifyEmail(ctx, verificationToken))
}

// CurrentUser returns a snapshot of the authenticated user, or nil.
func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.Clone()
}

// Token returns the current bearer credential, or "".
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated reports whether a user is logged in.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.token != ""
}

// Loading is true only while the initial restoration is still running.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func messageResult(resp *api.MessageResponse, err error) models.AuthResult {
	if err != nil {
		return failureResult(err)
	}
	return models.OK(resp.Message)
}

// failureResult maps an API error onto the caller-facing result contract.
func failureResult(err error) models.AuthResult {
	if errors.Is(err, api.ErrUnavailable) {
		return models.Failed(MsgConnectionError)
	}
	if apiErr, ok := api.AsAPIError(err); ok {
		return models.AuthResult{
			Success:              false,
			Message:              apiErr.Message,
			RequiresVerification: apiErr.RequiresVerification,
			Email:                apiErr.Email,
		}
	}
	return models.Failed(err.Error())
}

// validationMessage flattens validator output into one readable line.
func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	msg := ""
	for i, fe := range ve {
		if i > 0 {
			msg += "; "
		}
		switch fe.Tag() {
		case "required":
			msg += fe.Field() + " is required"
		case "email":
			msg += fe.Field() + " must be a valid email address"
		case "min":
			msg += fe.Field() + " must be at least " + fe.Param() + " characters"
		default:
			msg += fe.Field() + " is invalid"
		}
	}
	return msg
}

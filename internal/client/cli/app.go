package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/Amelia-Slapek/clea-client/internal/client/api"
	"github.com/Amelia-Slapek/clea-client/internal/client/config"
	"github.com/Amelia-Slapek/clea-client/internal/client/localdb"
	"github.com/Amelia-Slapek/clea-client/internal/client/membership"
	"github.com/Amelia-Slapek/clea-client/internal/client/models"
	"github.com/Amelia-Slapek/clea-client/internal/client/repositories/credentials"
	"github.com/Amelia-Slapek/clea-client/internal/client/routine"
	"github.com/Amelia-Slapek/clea-client/internal/client/session"
	"github.com/Amelia-Slapek/clea-client/internal/logging"
)

// sessionService is the slice of the session store the CLI uses.
type sessionService interface {
	Restore(ctx context.Context)
	Login(ctx context.Context, login, password string) models.AuthResult
	Register(ctx context.Context, req models.RegisterRequest) models.AuthResult
	Logout(ctx context.Context)
	RefreshUserData(ctx context.Context) models.AuthResult
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) models.AuthResult
	ForgotPassword(ctx context.Context, email string) models.AuthResult
	ResetPassword(ctx context.Context, resetToken, newPassword string) models.AuthResult
	ResendVerification(ctx context.Context, email string) models.AuthResult
	VerifyEmail(ctx context.Context, verificationToken string) models.AuthResult
	CurrentUser() *models.User
	IsAuthenticated() bool
}

// togglerService is the slice of the membership toggler the CLI uses.
type togglerService interface {
	Toggle(ctx context.Context, kind membership.Kind, entityID string) (bool, error)
	ToggleLike(ctx context.Context, articleID string, counter *membership.LikeCounter) (bool, error)
	IsLiked(articleID string) bool
}

// builderService is the slice of the routine builder the CLI uses.
type builderService interface {
	Add(productID string) bool
	Remove(productID string) bool
	ClearSelection()
	Load(routine models.Routine)
	Selection() []string
	Report() *models.CompatibilityReport
	Flush(ctx context.Context)
	Save(ctx context.Context, id, name, description, timeOfDay string) (*models.Routine, error)
	List(ctx context.Context) ([]models.Routine, error)
	Delete(ctx context.Context, routineID string) error
	Close()
}

// App wires the client components behind the REPL commands.
type App struct {
	config  *config.Config
	session sessionService
	toggler togglerService
	builder builderService
	reader  *bufio.Reader
	log     logging.Logger

	// Displayed like counts, one per article viewed this session.
	likeCounters map[string]*membership.LikeCounter

	closeDB func() error
}

// NewApp builds the full service graph: local cache database, HTTP API
// client, session store, toggler, and routine builder.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.New(os.Stderr, cfg.LogLevel)

	db, err := localdb.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	apiClient := api.NewHTTPClient(cfg.BackendBaseURL, cfg.RequestTimeout, log)
	creds := credentials.NewSQLiteRepository(db)
	sess := session.NewStore(apiClient, creds, log)

	return &App{
		config:       cfg,
		session:      sess,
		toggler:      membership.NewToggler(sess, apiClient, log),
		builder:      routine.NewBuilder(sess, apiClient, log, cfg.QuietPeriod),
		reader:       bufio.NewReader(os.Stdin),
		log:          log,
		likeCounters: make(map[string]*membership.LikeCounter),
		closeDB:      db.Close,
	}, nil
}

// Run restores the persisted session and hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.session.Restore(ctx)
	if u := a.session.CurrentUser(); u != nil {
		printlnFn("Welcome back,", u.Username)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// Close releases the builder's timer and the database handle.
func (a *App) Close() {
	a.builder.Close()
	if a.closeDB != nil {
		_ = a.closeDB()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) status() string {
	if u := a.session.CurrentUser(); u != nil {
		return "(" + u.Username + ")"
	}
	return ""
}

func (a *App) likeCounter(articleID string) *membership.LikeCounter {
	c, ok := a.likeCounters[articleID]
	if !ok {
		c = membership.NewLikeCounter(0)
		a.likeCounters[articleID] = c
	}
	return c
}

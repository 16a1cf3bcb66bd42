// Package routine implements the skincare-routine builder: a local,
// ordered product selection whose cross-product compatibility report is
// recomputed by the backend. Edits are frequent and the check is a
// network call, so recomputation is debounced on the trailing edge and
// stale responses are discarded by sequence number.
package routine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Amelia-Slapek/clea-client/internal/client/api"
	"github.com/Amelia-Slapek/clea-client/internal/client/models"
	"github.com/Amelia-Slapek/clea-client/internal/client/session"
	"github.com/Amelia-Slapek/clea-client/internal/logging"
)

// DefaultQuietPeriod is how long the selection must stay unchanged before
// a compatibility check fires.
const DefaultQuietPeriod = 500 * time.Millisecond

// ErrLoginRequired means routine persistence needs an authenticated
// session.
var ErrLoginRequired = errors.New("login required")

// Builder holds the product selection being assembled into a routine.
// Add and Remove are synchronous and local; each change restarts the
// debounce timer. Below two selected products compatibility is undefined:
// the report is cleared immediately and no check is scheduled.
type Builder struct {
	session  session.Provider
	api      api.Client
	log      logging.Logger
	quiet    time.Duration
	validate *validator.Validate

	mu        sync.Mutex
	selection []string
	report    *models.CompatibilityReport
	timer     *time.Timer
	seq       uint64 // latest issued check; responses with an older seq are stale
}

func NewBuilder(sess session.Provider, apiClient api.Client, log logging.Logger, quiet time.Duration) *Builder {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Builder{
		session:  sess,
		api:      apiClient,
		log:      log.With("component", "routine"),
		quiet:    quiet,
		validate: validator.New(),
	}
}

// Add appends a product to the selection. Duplicates are ignored; the
// return value reports whether the selection changed.
func (b *Builder) Add(productID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, id := range b.selection {
		if id == productID {
			return false
		}
	}
	b.selection = append(b.selection, productID)
	b.scheduleLocked()
	return true
}

// Remove deletes a product from the selection, keeping the order of the
// remaining steps.
func (b *Builder) Remove(productID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, id := range b.selection {
		if id == productID {
			b.selection = append(b.selection[:i], b.selection[i+1:]...)
			b.scheduleLocked()
			return true
		}
	}
	return false
}

// ClearSelection empties the selection and the report.
func (b *Builder) ClearSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selection = nil
	b.scheduleLocked()
}

// scheduleLocked (re)arms the debounce after a selection change. Callers
// hold b.mu. A sub-threshold selection cancels any pending check, clears
// the report synchronously, and invalidates in-flight responses.
func (b *Builder) scheduleLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	if len(b.selection) < 2 {
		b.report = nil
		b.seq++
		return
	}
	b.timer = time.AfterFunc(b.quiet, b.fire)
}

// fire runs when the quiet period elapses without further edits.
func (b *Builder) fire() {
	b.mu.Lock()
	b.timer = nil
	if len(b.selection) < 2 {
		b.mu.Unlock()
		return
	}
	token := b.session.Token()
	if token == "" || !b.session.IsAuthenticated() {
		b.mu.Unlock()
		return
	}
	b.seq++
	seq := b.seq
	ids := append([]string(nil), b.selection...)
	b.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	b.runCheck(ctx, seq, token, ids)
}

// runCheck performs the network call and applies the result only if no
// newer check has been issued meanwhile.
func (b *Builder) runCheck(ctx context.Context, seq uint64, token string, ids []string) {
	report, err := b.api.CheckCompatibility(ctx, token, ids)

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.seq {
		b.log.Debug(ctx, "discarding stale compatibility response", "seq", seq, "latest", b.seq)
		return
	}
	if err != nil {
		// Keep the last successful report; the selection UI shows no
		// error state for a failed recomputation.
		b.log.Warn(ctx, "compatibility check failed", "error", err)
		return
	}
	b.report = report
}

// Flush runs any pending check immediately instead of waiting out the
// quiet period. No-op when nothing is pending and the selection is below
// the threshold.
func (b *Builder) Flush(ctx context.Context) {
	b.mu.Lock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	if len(b.selection) < 2 {
		b.mu.Unlock()
		return
	}
	token := b.session.Token()
	if token == "" || !b.session.IsAuthenticated() {
		b.mu.Unlock()
		return
	}
	b.seq++
	seq := b.seq
	ids := append([]string(nil), b.selection...)
	b.mu.Unlock()

	b.runCheck(ctx, seq, token, ids)
}

// Close cancels any pending check.
func (b *Builder) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.seq++
}

// Selection returns a copy of the current product selection in step order.
func (b *Builder) Selection() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.selection...)
}

// Report returns the last applied compatibility report, or nil.
func (b *Builder) Report() *models.CompatibilityReport {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.report
}

// Save persists the current selection as a named routine. An empty ID
// creates a new routine; a non-empty one updates it.
func (b *Builder) Save(ctx context.Context, id, name, description, timeOfDay string) (*models.Routine, error) {
	token := b.session.Token()
	if token == "" || !b.session.IsAuthenticated() {
		return nil, ErrLoginRequired
	}

	routine := models.Routine{
		ID:          id,
		Name:        name,
		Description: description,
		TimeOfDay:   timeOfDay,
		ProductIDs:  b.Selection(),
	}
	if err := b.validate.Struct(routine); err != nil {
		return nil, err
	}
	return b.api.SaveRoutine(ctx, token, routine)
}

// List fetches the user's saved routines.
func (b *Builder) List(ctx context.Context) ([]models.Routine, error) {
	token := b.session.Token()
	if token == "" {
		return nil, ErrLoginRequired
	}
	return b.api.ListRoutines(ctx, token)
}

// Delete removes a saved routine.
func (b *Builder) Delete(ctx context.Context, routineID string) error {
	token := b.session.Token()
	if token == "" {
		return ErrLoginRequired
	}
	return b.api.DeleteRoutine(ctx, token, routineID)
}

// Load replaces the selection with a saved routine's products, for
// editing. The debounce runs as for any other selection change.
func (b *Builder) Load(routine models.Routine) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selection = append([]string(nil), routine.ProductIDs...)
	b.scheduleLocked()
}

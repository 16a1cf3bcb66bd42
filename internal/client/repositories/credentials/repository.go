// Package credentials persists the durable credential record: a bearer
// token and a sanitized user snapshot, kept as two string-keyed rows in
// the local cache database. The session store is the only writer; every
// other component sees credentials through the session, never through
// this package.
package credentials

import (
	"context"

	"github.com/Amelia-Slapek/clea-client/internal/client/models"
)

// Repository is the durable credential record.
//
// Absence of either the token or the user row means "no session": Load
// reports that as ok=false, not as an error. Clear is idempotent.
type Repository interface {
	Load(ctx context.Context) (token string, user *models.User, ok bool, err error)
	Save(ctx context.Context, token string, user *models.User) error
	SaveUser(ctx context.Context, user *models.User) error
	Clear(ctx context.Context) error
}

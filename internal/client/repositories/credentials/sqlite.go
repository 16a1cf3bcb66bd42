package credentials

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Amelia-Slapek/clea-client/internal/client/models"
	"github.com/Amelia-Slapek/clea-client/internal/dbx"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

// SQLiteRepository stores the credential record in the credentials table
// of the local cache database.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) get(ctx context.Context, q dbx.DBTX, key string) ([]byte, bool, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get credentials[%s]: %w", key, err)
	}
	return value, true, nil
}

func (r *SQLiteRepository) set(ctx context.Context, q dbx.DBTX, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set credentials[%s]: %w", key, err)
	}
	return nil
}

// Load reads the persisted token and user snapshot. If either row is
// missing the pair is treated as absent and ok is false.
func (r *SQLiteRepository) Load(ctx context.Context) (string, *models.User, bool, error) {
	token, found, err := r.get(ctx, r.db, keyToken)
	if err != nil || !found {
		return "", nil, false, err
	}

	raw, found, err := r.get(ctx, r.db, keyUser)
	if err != nil || !found {
		return "", nil, false, err
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return "", nil, false, fmt.Errorf("failed to decode stored user: %w", err)
	}
	return string(token), &user, true, nil
}

// Save writes the token and the sanitized user snapshot in one
// transaction, so a crash cannot leave a token without its user.
func (r *SQLiteRepository) Save(ctx context.Context, token string, user *models.User) error {
	raw, err := json.Marshal(models.Sanitize(user))
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := r.set(ctx, tx, keyToken, []byte(token)); err != nil {
			return err
		}
		return r.set(ctx, tx, keyUser, raw)
	})
}

// SaveUser re-persists only the sanitized snapshot, leaving the token row
// untouched.
func (r *SQLiteRepository) SaveUser(ctx context.Context, user *models.User) error {
	raw, err := json.Marshal(models.Sanitize(user))
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	return r.set(ctx, r.db, keyUser, raw)
}

// Clear deletes both rows. Safe to call when nothing is stored.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials`)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

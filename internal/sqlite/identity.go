package sqlite

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rpggio/recipebox/internal/repository"
)

// Identities implements repository.IdentityProvider for SQLite
type Identities struct {
	db *DB
}

// NewIdentities creates a new Identities provider
func NewIdentities(db *DB) *Identities {
	return &Identities{db: db}
}

// SignInWithToken resolves a pre-provisioned token to its user ID
func (i *Identities) SignInWithToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", repository.ErrUnauthorized
	}

	var uid string
	err := i.db.QueryRowContext(ctx,
		`SELECT uid FROM sign_in_tokens WHERE token_hash = ?`,
		hashToken(token)).Scan(&uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repository.ErrUnauthorized
		}
		return "", fmt.Errorf("failed to resolve token: %w", err)
	}

	if _, err := i.db.ExecContext(ctx,
		`UPDATE sign_in_tokens SET last_used = CURRENT_TIMESTAMP WHERE token_hash = ?`,
		hashToken(token)); err != nil {
		return "", fmt.Errorf("failed to record token use: %w", err)
	}
	if err := i.touch(ctx, uid); err != nil {
		return "", err
	}

	return uid, nil
}

// SignInAnonymously creates a fresh anonymous identity
func (i *Identities) SignInAnonymously(ctx context.Context) (string, error) {
	uid := uuid.NewString()
	_, err := i.db.ExecContext(ctx,
		`INSERT INTO identities (uid, anonymous, last_sign_in) VALUES (?, 1, CURRENT_TIMESTAMP)`,
		uid)
	if err != nil {
		return "", fmt.Errorf("failed to create anonymous identity: %w", err)
	}
	return uid, nil
}

// IssueToken provisions a sign-in token. An empty uid creates a new
// identity for the token. The plaintext token is returned only here.
func (i *Identities) IssueToken(ctx context.Context, uid, description string) (token string, tokenUID string, err error) {
	token, err = newToken()
	if err != nil {
		return "", "", err
	}

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if uid == "" {
		uid = uuid.NewString()
		if _, err := tx.ExecContext(ctx, `INSERT INTO identities (uid, anonymous) VALUES (?, 0)`, uid); err != nil {
			return "", "", fmt.Errorf("failed to create identity: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sign_in_tokens (token_hash, uid, description) VALUES (?, ?, ?)`,
		hashToken(token), uid, description)
	if err != nil {
		if isForeignKeyViolation(err) {
			return "", "", repository.ErrNotFound
		}
		return "", "", fmt.Errorf("failed to store token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", "", fmt.Errorf("failed to commit token: %w", err)
	}
	return token, uid, nil
}

func (i *Identities) touch(ctx context.Context, uid string) error {
	_, err := i.db.ExecContext(ctx,
		`UPDATE identities SET last_sign_in = CURRENT_TIMESTAMP WHERE uid = ?`, uid)
	if err != nil {
		return fmt.Errorf("failed to record sign-in: %w", err)
	}
	return nil
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

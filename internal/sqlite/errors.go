package sqlite

import (
	"context"
	"strings"

	"github.com/rpggio/recipebox/internal/domain/identity"
	"github.com/rpggio/recipebox/internal/repository"
)

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// authorize returns the caller's user ID, or ErrPermissionDenied when the
// request carries no identity.
func authorize(ctx context.Context) (string, error) {
	id, ok := identity.FromContext(ctx)
	if !ok || id.UID == "" {
		return "", repository.ErrPermissionDenied
	}
	return id.UID, nil
}

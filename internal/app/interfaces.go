package app

import (
	"context"

	"github.com/rpggio/recipebox/internal/domain/identity"
	"github.com/rpggio/recipebox/internal/domain/recipe"
)

// Authenticator signs the process in once.
type Authenticator interface {
	SignIn(ctx context.Context) (*identity.Identity, error)
	Status() identity.AuthStatus
}

// RecipeService dispatches recipe commands and opens live subscriptions.
type RecipeService interface {
	Create(ctx context.Context, scope string, rec recipe.Recipe) (string, error)
	Update(ctx context.Context, scope, id string, fields recipe.Fields) error
	Delete(ctx context.Context, scope, id string) error
	Subscribe(ctx context.Context, scope string) (*recipe.Subscription, error)
}

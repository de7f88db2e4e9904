package app

import (
	"maps"
	"slices"

	"github.com/rpggio/recipebox/internal/domain/identity"
	"github.com/rpggio/recipebox/internal/domain/navigation"
	"github.com/rpggio/recipebox/internal/domain/recipe"
)

// Form is the create or edit form of the current screen.
type Form struct {
	// RecordID is set once an edit form has been filled from its record.
	RecordID string             `json:"record_id,omitempty"`
	Draft    recipe.Draft       `json:"draft"`
	Errors   recipe.FieldErrors `json:"errors,omitempty"`
}

// State is everything the views render from.
type State struct {
	Recipes  []recipe.Recipe     `json:"recipes"`
	Loading  bool                `json:"loading"`
	Auth     identity.AuthStatus `json:"auth"`
	Identity *identity.Identity  `json:"identity,omitempty"`
	// BlockingError is an auth or subscription failure. It suppresses all CRUD.
	BlockingError string `json:"blocking_error,omitempty"`
	// CommandError is the last failed create, update or delete.
	CommandError string           `json:"command_error,omitempty"`
	Nav          navigation.State `json:"nav"`
	Form         Form             `json:"form"`
	InFlight     int              `json:"in_flight"`
}

func initialState() State {
	return State{
		Loading: true,
		Auth:    identity.StatusPending,
		Nav:     navigation.Initial(),
	}
}

// Recipe looks up a loaded recipe by ID.
func (s State) Recipe(id string) (recipe.Recipe, bool) {
	for _, r := range s.Recipes {
		if r.ID == id {
			return r, true
		}
	}
	return recipe.Recipe{}, false
}

func (s State) clone() State {
	out := s
	out.Recipes = slices.Clone(s.Recipes)
	out.Form.Errors = maps.Clone(s.Form.Errors)
	if s.Identity != nil {
		id := *s.Identity
		out.Identity = &id
	}
	return out
}

package mcp

import (
	"github.com/rpggio/recipebox/internal/app"
	"github.com/rpggio/recipebox/internal/domain/navigation"
)

// EmptyInput is the input of tools that take no arguments.
type EmptyInput struct{}

// NavigateInput is the input of the navigate tool.
type NavigateInput struct {
	Path string `json:"path" jsonschema:"location path: /, /create, /recipe/{id} or /edit/{id}"`
}

// RecipeIDInput identifies a recipe.
type RecipeIDInput struct {
	ID string `json:"id" jsonschema:"recipe id as shown in the list"`
}

// SetFieldInput changes one form field.
type SetFieldInput struct {
	Field string `json:"field" jsonschema:"form field: name, ingredients, instructions or rating"`
	Value string `json:"value" jsonschema:"new field text; ingredients are comma separated, rating is 1 to 5"`
}

// RecipeSummary is a listed recipe.
type RecipeSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

// ScreenResult describes the screen after a tool ran.
type ScreenResult struct {
	Screen        string            `json:"screen"`
	ResourceID    string            `json:"resource_id,omitempty"`
	Path          string            `json:"path"`
	Auth          string            `json:"auth"`
	UserID        string            `json:"user_id,omitempty"`
	Loading       bool              `json:"loading"`
	Recipes       []RecipeSummary   `json:"recipes"`
	FieldErrors   map[string]string `json:"field_errors,omitempty"`
	CommandError  string            `json:"command_error,omitempty"`
	BlockingError string            `json:"blocking_error,omitempty"`
	Pending       int               `json:"pending_commands"`
}

func screenResult(s app.State) ScreenResult {
	result := ScreenResult{
		Screen:        string(s.Nav.Screen),
		ResourceID:    s.Nav.ResourceID,
		Path:          navigation.Path(s.Nav),
		Auth:          string(s.Auth),
		Loading:       s.Loading,
		Recipes:       make([]RecipeSummary, 0, len(s.Recipes)),
		FieldErrors:   s.Form.Errors,
		CommandError:  s.CommandError,
		BlockingError: s.BlockingError,
		Pending:       s.InFlight,
	}
	if s.Identity != nil {
		result.UserID = s.Identity.UID
	}
	for _, r := range s.Recipes {
		if r.IsTransient() {
			continue
		}
		result.Recipes = append(result.Recipes, RecipeSummary{ID: r.ID, Name: r.Name, Rating: r.Rating})
	}
	return result
}

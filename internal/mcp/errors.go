package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/recipebox/internal/app"
	"github.com/rpggio/recipebox/internal/domain/navigation"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, navigation.ErrTerminal):
		return &APIError{Code: "PAGE_NOT_FOUND", Message: "current page does not exist", RecoveryHint: "Call go_home first"}
	case errors.Is(err, navigation.ErrMissingID):
		return &APIError{Code: "MISSING_ID", Message: "recipe id required"}
	case errors.Is(err, app.ErrNoForm):
		return &APIError{Code: "NO_FORM", Message: "no form on the current screen", RecoveryHint: "Call go_create or go_edit first"}
	case errors.Is(err, app.ErrUnknownField):
		return &APIError{Code: "UNKNOWN_FIELD", Message: err.Error(), RecoveryHint: "Use name, ingredients, instructions or rating"}
	case errors.Is(err, app.ErrStopped):
		return &APIError{Code: "UNAVAILABLE", Message: "recipe manager is shutting down"}
	default:
		return nil
	}
}

// toolError converts an error for return from a tool handler.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}

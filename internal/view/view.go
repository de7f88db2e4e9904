// Package view renders controller state as plain text screens.
package view

import (
	"fmt"
	"strings"

	"github.com/rpggio/recipebox/internal/app"
	"github.com/rpggio/recipebox/internal/domain/identity"
	"github.com/rpggio/recipebox/internal/domain/navigation"
	"github.com/rpggio/recipebox/internal/domain/recipe"
)

const (
	previewLength = 100
	ruleWidth     = 40
)

// Render draws the header and the screen for the current state.
func Render(s app.State) string {
	var b strings.Builder
	writeHeader(&b, s)

	switch {
	case s.BlockingError != "":
		fmt.Fprintf(&b, "Error: %s\n", s.BlockingError)
	case s.Loading || s.Auth == identity.StatusPending:
		b.WriteString("Loading recipes...\n")
	default:
		if s.CommandError != "" {
			fmt.Fprintf(&b, "! %s\n\n", s.CommandError)
		}
		writeScreen(&b, s)
	}

	return b.String()
}

// Stars draws a rating as filled and empty stars out of five.
func Stars(rating int) string {
	rating = max(0, min(rating, recipe.MaxRating))
	return strings.Repeat("★", rating) + strings.Repeat("☆", recipe.MaxRating-rating)
}

// Preview returns the opening of the instructions for the list screen.
func Preview(instructions string) string {
	runes := []rune(instructions)
	if len(runes) > previewLength {
		runes = runes[:previewLength]
	}
	return string(runes) + "..."
}

func writeHeader(b *strings.Builder, s app.State) {
	uid := "N/A"
	if s.Auth == identity.StatusAuthenticated && s.Identity != nil {
		uid = s.Identity.UID
	}
	fmt.Fprintf(b, "Recipe Manager\nUser: %s\n%s\n\n", uid, strings.Repeat("=", ruleWidth))
}

func writeScreen(b *strings.Builder, s app.State) {
	switch s.Nav.Screen {
	case navigation.ScreenList:
		writeList(b, s.Recipes)
	case navigation.ScreenCreate:
		writeForm(b, "New Recipe", s)
	case navigation.ScreenEdit:
		writeForm(b, "Edit Recipe", s)
	case navigation.ScreenDetail:
		writeDetail(b, s)
	default:
		b.WriteString("404 | Page not found\n")
	}
}

func writeList(b *strings.Builder, recipes []recipe.Recipe) {
	visible := make([]recipe.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if !r.IsTransient() {
			visible = append(visible, r)
		}
	}

	fmt.Fprintf(b, "My Recipes (Total: %d)\n\n", len(visible))
	if len(visible) == 0 {
		b.WriteString("No recipes yet. Create one to get started!\n")
		return
	}
	for i, r := range visible {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "[%s] %s\n    %s\n    %s\n", r.ID, r.Name, Stars(r.Rating), Preview(r.Instructions))
	}
}

func writeDetail(b *strings.Builder, s app.State) {
	rec, ok := s.Recipe(s.Nav.ResourceID)
	if !ok {
		b.WriteString("Recipe not found\n")
		return
	}

	fmt.Fprintf(b, "%s\n\nRating: %s\n\nIngredients\n", rec.Name, Stars(rec.Rating))
	for _, item := range rec.IngredientList() {
		fmt.Fprintf(b, "  - %s\n", item)
	}
	fmt.Fprintf(b, "\nInstructions\n%s\n", rec.Instructions)
}

func writeForm(b *strings.Builder, title string, s app.State) {
	d, errs := s.Form.Draft, s.Form.Errors
	fmt.Fprintf(b, "%s\n\n", title)
	writeField(b, "Name", d.Name, errs[recipe.FieldName])
	writeField(b, "Ingredients (comma separated)", d.Ingredients, errs[recipe.FieldIngredients])
	writeField(b, "Instructions", d.Instructions, errs[recipe.FieldInstructions])
	writeField(b, "Rating (1-5)", d.Rating, errs[recipe.FieldRating])
	if s.InFlight > 0 {
		b.WriteString("\nSaving...\n")
	}
}

func writeField(b *strings.Builder, label, value, fieldErr string) {
	fmt.Fprintf(b, "%s: %s\n", label, value)
	if fieldErr != "" {
		fmt.Fprintf(b, "  ! %s\n", fieldErr)
	}
}

package recipe

import (
	"strconv"
	"strings"

	"golang.org/x/text/message"
	"golang.org/x/text/unicode/norm"
)

// Rating bounds, inclusive
const (
	MinRating = 1
	MaxRating = 5
)

// Validate checks a draft and returns the normalized recipe, or the errors
// of every invalid field. English messages are used.
func Validate(d Draft) (Recipe, FieldErrors) {
	return ValidateWith(defaultPrinter, d)
}

// ValidateWith is Validate with messages rendered by p.
func ValidateWith(p *message.Printer, d Draft) (Recipe, FieldErrors) {
	errs := FieldErrors{}

	name := normalizeText(d.Name)
	if name == "" {
		errs[FieldName] = p.Sprintf(msgNameRequired)
	}
	ingredients := normalizeText(d.Ingredients)
	if ingredients == "" {
		errs[FieldIngredients] = p.Sprintf(msgIngredientsRequired)
	}
	instructions := normalizeText(d.Instructions)
	if instructions == "" {
		errs[FieldInstructions] = p.Sprintf(msgInstructionsRequired)
	}
	rating, err := strconv.Atoi(strings.TrimSpace(d.Rating))
	if err != nil || rating < MinRating || rating > MaxRating {
		errs[FieldRating] = p.Sprintf(msgRatingRange)
	}

	if len(errs) > 0 {
		return Recipe{}, errs
	}
	return Recipe{
		Name:         name,
		Ingredients:  ingredients,
		Instructions: instructions,
		Rating:       rating,
	}, nil
}

func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

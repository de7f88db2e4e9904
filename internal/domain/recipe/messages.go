package recipe

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	msgNameRequired         = "Recipe name is required."
	msgIngredientsRequired  = "Ingredients are required."
	msgInstructionsRequired = "Instructions are required."
	msgRatingRange          = "Rating must be between 1 and 5."
)

var spanishMessages = map[string]string{
	msgNameRequired:         "El nombre de la receta es obligatorio.",
	msgIngredientsRequired:  "Los ingredientes son obligatorios.",
	msgInstructionsRequired: "Las instrucciones son obligatorias.",
	msgRatingRange:          "La calificación debe estar entre 1 y 5.",
}

func init() {
	for key, msg := range spanishMessages {
		_ = message.SetString(language.Spanish, key, msg)
	}
}

var defaultPrinter = message.NewPrinter(language.English)

// NewPrinter returns a printer for validation messages in the given locale.
func NewPrinter(locale string) *message.Printer {
	if locale == "" {
		return defaultPrinter
	}
	return message.NewPrinter(language.Make(locale))
}

package recipe

import "strconv"

// ScopePath names the collection that holds every recipe of the application.
const ScopePath = "artifacts/recipe-manager-app/public/data/recipes"

// Form field names, shared by drafts, patches and field errors
const (
	FieldName         = "name"
	FieldIngredients  = "ingredients"
	FieldInstructions = "instructions"
	FieldRating       = "rating"
)

// DefaultRating pre-fills the rating of a new recipe form.
const DefaultRating = "3"

// Recipe is a persisted recipe. ID is assigned by the store on creation.
type Recipe struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	Rating       int    `json:"rating"`
}

// IsTransient reports whether the recipe has not been persisted yet.
func (r Recipe) IsTransient() bool {
	return r.ID == ""
}

// IngredientList returns the parsed ingredient list for display.
func (r Recipe) IngredientList() []string {
	return ParseIngredients(r.Ingredients)
}

func (r Recipe) data() map[string]any {
	return map[string]any{
		FieldName:         r.Name,
		FieldIngredients:  r.Ingredients,
		FieldInstructions: r.Instructions,
		FieldRating:       r.Rating,
	}
}

// Draft is raw, unvalidated form input. Rating holds the text as typed.
type Draft struct {
	Name         string `json:"name"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	Rating       string `json:"rating"`
}

// NewDraft returns the empty create form.
func NewDraft() Draft {
	return Draft{Rating: DefaultRating}
}

// DraftFromRecipe pre-fills an edit form.
func DraftFromRecipe(r Recipe) Draft {
	return Draft{
		Name:         r.Name,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Rating:       strconv.Itoa(r.Rating),
	}
}

// With returns a copy of the draft with one field replaced. It reports
// false for an unknown field name.
func (d Draft) With(field, value string) (Draft, bool) {
	switch field {
	case FieldName:
		d.Name = value
	case FieldIngredients:
		d.Ingredients = value
	case FieldInstructions:
		d.Instructions = value
	case FieldRating:
		d.Rating = value
	default:
		return d, false
	}
	return d, true
}

// Fields is a partial update. Nil fields are left untouched.
type Fields struct {
	Name         *string
	Ingredients  *string
	Instructions *string
	Rating       *int
}

// FieldsFromRecipe builds a patch replacing every editable field.
func FieldsFromRecipe(r Recipe) Fields {
	return Fields{
		Name:         &r.Name,
		Ingredients:  &r.Ingredients,
		Instructions: &r.Instructions,
		Rating:       &r.Rating,
	}
}

func (f Fields) data() map[string]any {
	data := make(map[string]any, 4)
	if f.Name != nil {
		data[FieldName] = *f.Name
	}
	if f.Ingredients != nil {
		data[FieldIngredients] = *f.Ingredients
	}
	if f.Instructions != nil {
		data[FieldInstructions] = *f.Instructions
	}
	if f.Rating != nil {
		data[FieldRating] = *f.Rating
	}
	return data
}

// FieldErrors maps a field name to a human-readable message.
type FieldErrors map[string]string

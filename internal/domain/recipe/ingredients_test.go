package recipe_test

import (
	"testing"

	"github.com/rpggio/recipebox/internal/domain/recipe"
	"github.com/stretchr/testify/require"
)

func TestParseIngredients(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"  flour ,, sugar  ", []string{"flour", "sugar"}},
		{"eggs", []string{"eggs"}},
		{"", []string{}},
		{" , ,", []string{}},
		{"b, a, c", []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, recipe.ParseIngredients(tt.in), "input %q", tt.in)
	}
}

package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		amount float64
		unit   string
		ok     bool
	}{
		{"attached unit", "250g", 250, "g", true},
		{"spaced unit", "2 cups", 2, "cups", true},
		{"decimal", "1.5 kg", 1.5, "kg", true},
		{"leading dot", ".5 tsp", 0.5, "tsp", true},
		{"surrounding spaces", "  3  pcs ", 3, "pcs", true},
		{"bare number", "4", 4, "", true},
		{"fraction keeps remainder", "1/2 cup", 1, "/2 cup", true},
		{"no number", "a pinch", 1, "a pinch", false},
		{"empty", "", 1, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, unit, ok := ParseQuantity(tt.text)
			assert.InDelta(t, tt.amount, amount, 1e-9)
			assert.Equal(t, tt.unit, unit)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "2.5 cups", FormatQuantity(2.5, "cups"))
	assert.Equal(t, "2", FormatQuantity(2.0, ""))
	assert.Equal(t, "3 g", FormatQuantity(2.96, "g"))
	assert.Equal(t, "1.3 kg", FormatQuantity(1.25, "kg"))
	assert.Equal(t, "0 g", FormatQuantity(-0.01, "g"))
	assert.Equal(t, "126.2 ml", FormatQuantity(126.24, "ml"))
}

func TestQuantityRoundTrip(t *testing.T) {
	inputs := []string{"250 g", "2 cups", "0.5 l", "12 pcs", "7.3 oz", "1"}

	for _, in := range inputs {
		amount, unit, ok := ParseQuantity(in)
		assert.True(t, ok, in)

		again, againUnit, ok := ParseQuantity(FormatQuantity(amount, unit))
		assert.True(t, ok, in)
		assert.InDelta(t, amount, again, 1e-9, in)
		assert.Equal(t, unit, againUnit, in)
	}
}

func TestIsGramUnit(t *testing.T) {
	for _, u := range []string{"g", "GR", " gramos ", "Grams"} {
		assert.True(t, isGramUnit(u), u)
	}
	for _, u := range []string{"kg", "cups", "", "gram"} {
		assert.False(t, isGramUnit(u), u)
	}
}

func TestToDiscreteUnitsIfKnown(t *testing.T) {
	tests := []struct {
		name  string
		grams float64
		want  string
	}{
		{"tomato", 200, "2 tomatoes"},
		{"Tomato", 100, "1 tomato"},
		{"ripe tomatoes", 360, "3 tomatoes"},
		{"cherry tomatoes", 40, "3 cherry tomatoes"},
		{"red onion", 220, "2 onions"},
		{"eggplant", 250, "1 eggplant"},
		{"eggs", 120, "3 eggs"},
		{"chicken breast", 250.7, "250 gr"},
		{"", 80, "80 gr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToDiscreteUnitsIfKnown(tt.name, tt.grams))
		})
	}
}

package nutrition

import (
	"fmt"
	"math"
	"strings"
)

// produceUnit is the average weight of one whole piece of produce.
type produceUnit struct {
	Name   string
	Plural string
	Grams  float64
}

func (u produceUnit) label(n int) string {
	if n <= 1 {
		return u.Name
	}
	if u.Plural != "" {
		return u.Plural
	}
	return u.Name + "s"
}

// produceUnits is scanned in order; the first substring match wins, so longer
// names that contain a shorter entry must come first.
var produceUnits = []produceUnit{
	{Name: "cherry tomato", Plural: "cherry tomatoes", Grams: 17},
	{Name: "tomato", Plural: "tomatoes", Grams: 120},
	{Name: "sweet potato", Plural: "sweet potatoes", Grams: 130},
	{Name: "potato", Plural: "potatoes", Grams: 170},
	{Name: "onion", Grams: 110},
	{Name: "carrot", Grams: 60},
	{Name: "apple", Grams: 180},
	{Name: "banana", Grams: 120},
	{Name: "avocado", Grams: 200},
	{Name: "cucumber", Grams: 300},
	{Name: "bell pepper", Grams: 150},
	{Name: "zucchini", Grams: 200},
	{Name: "lemon", Grams: 100},
	{Name: "orange", Grams: 130},
	{Name: "eggplant", Grams: 300},
	{Name: "egg", Grams: 50},
}

// lookupProduceUnit finds the produce entry whose name occurs in name.
func lookupProduceUnit(name string) (produceUnit, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return produceUnit{}, false
	}
	for _, u := range produceUnits {
		if strings.Contains(lower, u.Name) {
			return u, true
		}
	}
	return produceUnit{}, false
}

// ToDiscreteUnitsIfKnown renders a gram amount as whole pieces of produce when
// the ingredient name is in the produce table ("2 tomatoes"), and as whole
// grams ("200 gr") otherwise.
func ToDiscreteUnitsIfKnown(name string, grams float64) string {
	u, ok := lookupProduceUnit(name)
	if !ok {
		return fmt.Sprintf("%d gr", int(grams))
	}
	n := int(math.Ceil(grams / u.Grams))
	return fmt.Sprintf("%d %s", n, u.label(n))
}

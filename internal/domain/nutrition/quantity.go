package nutrition

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^\s*(\d*\.?\d+)`)

// ParseQuantity splits free-text quantity such as "250g" or "2 cups" into a
// numeric amount and the trimmed unit remainder. Text without a leading number
// yields (1, text, false); callers treat that as a multiplier of one.
func ParseQuantity(text string) (amount float64, unit string, ok bool) {
	loc := leadingNumber.FindStringSubmatchIndex(text)
	if loc == nil {
		return 1.0, text, false
	}
	value, err := strconv.ParseFloat(text[loc[2]:loc[3]], 64)
	if err != nil {
		return 1.0, text, false
	}
	return value, strings.TrimSpace(text[loc[1]:]), true
}

// FormatQuantity renders amount rounded to one decimal, dropping the decimal
// point for whole numbers, followed by the unit when there is one.
func FormatQuantity(amount float64, unit string) string {
	rounded := math.Round(amount*10) / 10
	if rounded == 0 {
		rounded = 0 // normalise -0
	}

	var number string
	if rounded == math.Trunc(rounded) {
		number = strconv.FormatFloat(rounded, 'f', 0, 64)
	} else {
		number = strconv.FormatFloat(rounded, 'f', 1, 64)
	}

	if unit == "" {
		return number
	}
	return number + " " + unit
}

// isGramUnit reports whether a parsed unit denotes grams.
func isGramUnit(unit string) bool {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "g", "gr", "gramos", "grams":
		return true
	}
	return false
}

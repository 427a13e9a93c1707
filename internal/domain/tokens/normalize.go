package tokens

import (
	"regexp"
	"strings"

	"github.com/fatih/camelcase"
)

// NormalizeProperty turns a React style key (backgroundColor) or a CSS
// property (Background-Color) into lower kebab-case (background-color).
func NormalizeProperty(name string) string {
	name = strings.TrimSpace(name)
	if strings.Contains(name, "-") {
		return strings.ToLower(name)
	}
	words := camelcase.Split(name)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "-")
}

var bareNumber = regexp.MustCompile(`^-?[0-9]*\.?[0-9]+$`)

// unitless lists properties React does not suffix with px.
var unitless = map[string]bool{
	"font-weight": true,
	"line-height": true,
	"opacity":     true,
	"z-index":     true,
	"flex":        true,
	"flex-grow":   true,
	"flex-shrink": true,
	"order":       true,
}

// NormalizeValue applies React's numeric style rule: bare numbers on
// length properties are pixels. Zero stays "0px" so it can match a token.
func NormalizeValue(property, value string) string {
	value = strings.TrimSpace(value)
	if bareNumber.MatchString(value) && !unitless[property] {
		return value + "px"
	}
	return value
}

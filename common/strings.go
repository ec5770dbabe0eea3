package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TitleCase upper-cases the first rune of every space-separated word.
// Registration stores display names this way.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func IsValidEmail(email string) bool {
	return len(email) > 3 && strings.Contains(email, "@")
}

// IsValidUserName accepts display names between 8 and 100 characters.
func IsValidUserName(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= 8 && n <= 100
}

// Package generator derives password candidates from seed words.
package generator

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Leetspeak limits for Variations. The substitution product is exponential
// in seed length, so only short seeds are expanded and output is capped.
const (
	LeetMaxSeedLength = 8
	LeetMaxVariants   = 50
)

// LeetTable maps a lower-cased letter to its look-alike substitutes.
var LeetTable = map[rune][]string{
	'a': {"@", "4", "A"},
	'b': {"8"},
	'e': {"3", "E"},
	'g': {"9"},
	'i': {"1", "!", "I"},
	'l': {"1", "L"},
	'o': {"0", "O"},
	's': {"$", "5", "S"},
	't': {"7", "T"},
}

// commonPatterns are glued to every case form as both prefix and suffix.
var commonPatterns = []string{
	"1", "12", "123", "1234", "12345", "123456", "01", "007", "69", "99",
	"000", "111", "!", "!!", "!@#", "@", "#", "123!", "1!", "@123",
	"1990", "2000", "2020", "2021", "2022", "2023", "2024", "2025",
}

var simpleSuffixes = []string{
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	"!", "@", "#", "$", "%", "*", "?",
}

// Capitalize upper-cases the first rune and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// CaseForms returns the seed followed by its lower, upper and capitalized forms.
func CaseForms(seed string) []string {
	forms := []string{seed}
	for _, form := range []string{strings.ToLower(seed), strings.ToUpper(seed), Capitalize(seed)} {
		if !slices.Contains(forms, form) {
			forms = append(forms, form)
		}
	}
	return forms
}

// Variations returns case forms, bounded leetspeak variants and simple
// numeric/symbol suffixes of seed. The result may contain duplicates.
func Variations(seed string) []string {
	if seed == "" {
		return nil
	}
	out := CaseForms(seed)
	out = append(out, LeetVariants(seed, LeetTable, LeetMaxSeedLength, LeetMaxVariants)...)
	for _, sfx := range simpleSuffixes {
		out = append(out, seed+sfx)
	}
	return out
}

// Patterns combines every case form of seed with the common pattern table,
// in suffix position first and then prefix position. The capitalized form
// goes first so that it wins the case-insensitive dedup downstream.
func Patterns(seed string) []string {
	if seed == "" {
		return nil
	}
	forms := []string{Capitalize(seed)}
	for _, form := range CaseForms(seed) {
		if !slices.Contains(forms, form) {
			forms = append(forms, form)
		}
	}
	out := make([]string, 0, len(forms)*len(commonPatterns)*2)
	for _, form := range forms {
		for _, p := range commonPatterns {
			out = append(out, form+p)
		}
		for _, p := range commonPatterns {
			out = append(out, p+form)
		}
	}
	return out
}

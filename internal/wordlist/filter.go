package wordlist

import "strings"

// FilterFunc returns true when a seed should be kept.
type FilterFunc func(string) bool

// FilterForCharset returns a seed filter for the named charset.
// Unknown or empty names keep everything.
func FilterForCharset(charset string) FilterFunc {
	switch strings.ToLower(charset) {
	case "ascii":
		return filterPrintableASCII
	default:
		return func(string) bool { return true }
	}
}

func filterPrintableASCII(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 0x20 || ch > 0x7e {
			return false
		}
	}
	return true
}

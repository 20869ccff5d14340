package generator

import (
	"iter"
	"strings"
)

var keyboardRows = []string{
	"1234567890",
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
}

var keyboardDiagonals = []string{
	"1qaz", "2wsx", "3edc", "4rfv", "5tgb",
	"6yhn", "7ujm", "8ik,", "9ol.", "0p;/",
}

var walkTrailings = []string{"123", "!", "!@", "!@#", "2024", "2023"}

// DefaultWalkLengths are the keyboard walk lengths used when none are given.
var DefaultWalkLengths = []int{3, 4, 5, 6}

var walkDecoration = strings.NewReplacer(",", "", ".", "", ";", "", "/", "")

// KeyboardWalks yields every contiguous run of each keyboard row and
// diagonal for the given lengths, with its reverse, capitalized and
// upper-case forms, each also followed by the trailing suffixes. Output is
// deduplicated case-insensitively within one call.
func KeyboardWalks(lengths []int) iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := map[string]struct{}{}
		emit := func(candidate string) bool {
			key := strings.ToLower(candidate)
			if _, ok := seen[key]; ok {
				return true
			}
			seen[key] = struct{}{}
			return yield(candidate)
		}

		lines := append(append([]string(nil), keyboardRows...), keyboardDiagonals...)
		for _, line := range lines {
			line = walkDecoration.Replace(line)
			for _, length := range lengths {
				if length <= 0 || length > len(line) {
					continue
				}
				for i := 0; i+length <= len(line); i++ {
					seq := line[i : i+length]
					for _, variant := range []string{seq, reverse(seq), Capitalize(seq), strings.ToUpper(seq)} {
						if !emit(variant) {
							return
						}
						for _, tail := range walkTrailings {
							if !emit(variant + tail) {
								return
							}
						}
					}
				}
			}
		}
	}
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

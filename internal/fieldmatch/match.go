package fieldmatch

import (
	"regexp"
	"strings"
)

var (
	nonAlphanumericChar = regexp.MustCompile(`[^a-z0-9 ]`)
	whitespaceRun       = regexp.MustCompile(`\s+`)
)

// minTokenLength is the length a word must exceed to count in the overlap pass.
const minTokenLength = 2

// Match maps a label onto a canonical key. The first pass accepts a synonym
// that equals or is contained in the cleaned label; the second pass counts
// fuzzy token overlaps. Table order breaks ties in both passes.
func Match(label string) (Key, bool) {
	cleaned := cleanForMatch(label)
	if cleaned == "" || cleaned == Unknown {
		return "", false
	}

	if key, ok := matchExact(cleaned); ok {
		return key, true
	}
	return matchPartial(cleaned)
}

func cleanForMatch(label string) string {
	cleaned := strings.ToLower(label)
	cleaned = nonAlphanumericChar.ReplaceAllString(cleaned, " ")
	cleaned = whitespaceRun.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

func matchExact(label string) (Key, bool) {
	for _, entry := range synonymTable {
		for _, synonym := range entry.synonyms {
			if label == synonym || strings.Contains(label, synonym) {
				return entry.key, true
			}
		}
	}
	return "", false
}

// matchPartial accepts two overlapping tokens, or a single-token synonym on a
// label of at most three significant tokens. Tokens overlap when either
// contains the other, so short tokens can match inside longer words.
func matchPartial(label string) (Key, bool) {
	labelTokens := significantTokens(label)
	for _, entry := range synonymTable {
		for _, synonym := range entry.synonyms {
			synonymTokens := significantTokens(synonym)

			matched := 0
			for _, st := range synonymTokens {
				for _, lt := range labelTokens {
					if strings.Contains(lt, st) || strings.Contains(st, lt) {
						matched++
						break
					}
				}
			}

			if matched >= 2 || (len(synonymTokens) == 1 && matched == 1 && len(labelTokens) <= 3) {
				return entry.key, true
			}
		}
	}
	return "", false
}

func significantTokens(s string) []string {
	var tokens []string
	for _, word := range strings.Split(s, " ") {
		if len(word) > minTokenLength {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

// Package identity normalizes business details into matching tokens used
// to verify that externally discovered profiles and listings actually
// refer to the audited business.
package identity

import (
	"regexp"
	"strings"

	"github.com/vizlens/vizlens/internal/core"
)

const minTokenLength = 4

var (
	legalSuffixes   = regexp.MustCompile(`\b(ltd|limited|inc|llc|company)\b`)
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9 ]`)
	whitespace      = regexp.MustCompile(`\s+`)
)

// Tokenize lowercases text, strips legal suffixes and punctuation, and
// returns words of at least four characters. When the text has multiple
// words the concatenation of all words is added as a compound token so
// that handles like "acmecorp" match "Acme Corp".
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	text = legalSuffixes.ReplaceAllString(text, " ")
	text = nonAlphanumeric.ReplaceAllString(text, " ")
	text = strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
	if text == "" {
		return nil
	}

	parts := strings.Split(text, " ")
	tokens := make([]string, 0, len(parts)+1)
	for _, part := range parts {
		if len(part) >= minTokenLength {
			tokens = append(tokens, part)
		}
	}
	if len(parts) > 1 {
		tokens = append(tokens, strings.Join(parts, ""))
	}
	return tokens
}

// BuildTokens unions tokens from the business name, description, city,
// country, and keywords. An empty result means "cannot verify"; callers
// decide whether to fall back to permissive behavior.
func BuildTokens(input *core.AuditInput) []string {
	if input == nil {
		return nil
	}

	sources := make([]string, 0, 5)
	if v := strings.TrimSpace(input.BusinessName); v != "" {
		sources = append(sources, v)
	}
	if v := strings.TrimSpace(input.Description); v != "" {
		sources = append(sources, v)
	}
	if v := input.City.Joined(); v != "" {
		sources = append(sources, v)
	}
	if v := input.Country.Joined(); v != "" {
		sources = append(sources, v)
	}
	if len(input.Keywords) > 0 {
		sources = append(sources, strings.Join(input.Keywords, " "))
	}

	seen := make(map[string]struct{})
	tokens := make([]string, 0)
	for _, text := range sources {
		for _, token := range Tokenize(text) {
			if token == "" {
				continue
			}
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// MatchesAny reports whether the lowercased haystack contains at least one
// token. An empty token set never matches.
func MatchesAny(haystack string, tokens []string) bool {
	haystack = strings.ToLower(haystack)
	if strings.TrimSpace(haystack) == "" {
		return false
	}
	for _, token := range tokens {
		if token != "" && strings.Contains(haystack, token) {
			return true
		}
	}
	return false
}

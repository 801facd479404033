package probe

import (
	"regexp"
	"sort"
	"strings"
)

var (
	tokenSplitRe  = regexp.MustCompile(`[^a-z0-9]+`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	tagStripRe    = regexp.MustCompile(`(?s)<(script|style)[^>]*>.*?</(script|style)>`)
	anyTagRe      = regexp.MustCompile(`<[^>]+>`)
	sentenceEndRe = regexp.MustCompile(`[.!?]\s+`)
)

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "with": true, "this": true,
	"that": true, "was": true, "were": true, "will": true, "would": true, "shall": true,
	"should": true, "can": true, "could": true, "has": true, "have": true, "had": true,
	"but": true, "not": true, "you": true, "your": true, "yours": true, "their": true,
	"there": true, "they": true, "them": true, "our": true, "ours": true, "his": true,
	"her": true, "hers": true, "its": true, "from": true, "into": true, "about": true,
	"after": true, "before": true, "over": true, "under": true, "again": true,
	"further": true, "then": true, "once": true, "here": true, "when": true,
	"where": true, "why": true, "how": true, "all": true, "any": true, "both": true,
	"each": true, "few": true, "more": true, "most": true, "other": true, "some": true,
	"such": true, "no": true, "nor": true, "only": true, "own": true, "same": true,
	"so": true, "than": true, "too": true, "very": true, "s": true, "t": true,
	"just": true, "don": true, "now": true,
}

// extractKeywords scores 1..ngram word sequences of the visible text by
// raw frequency and returns the top entries, most frequent first. Ties
// keep first-seen order.
func (r *Runner) extractKeywords(html string, ngram, top int) []Keyword {
	text := strings.ToLower(stripTags(html))
	text = whitespaceRe.ReplaceAllString(text, " ")
	if strings.TrimSpace(text) == "" {
		return []Keyword{}
	}

	raw := tokenSplitRe.Split(text, -1)
	tokens := make([]string, 0, len(raw))
	for _, token := range raw {
		if token == "" || stopWords[token] {
			continue
		}
		tokens = append(tokens, token)
	}

	scores := map[string]int{}
	order := []string{}
	for n := 1; n <= ngram; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			phrase := strings.Join(tokens[i:i+n], " ")
			if _, seen := scores[phrase]; !seen {
				order = append(order, phrase)
			}
			scores[phrase]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	if len(order) > top {
		order = order[:top]
	}

	result := make([]Keyword, 0, len(order))
	for id, phrase := range order {
		result = append(result, Keyword{ID: id, Ngram: phrase, Score: scores[phrase]})
	}
	return result
}

// summarizeText returns the first sentences of the stripped page text.
func summarizeText(html string, sentences int) string {
	text := strings.TrimSpace(whitespaceRe.ReplaceAllString(stripTags(html), " "))
	if text == "" {
		return ""
	}

	parts := splitSentences(text)
	if len(parts) > sentences {
		parts = parts[:sentences]
	}
	return strings.Join(parts, " ")
}

// splitSentences splits after terminal punctuation followed by spacing,
// keeping the punctuation with its sentence.
func splitSentences(text string) []string {
	indexes := sentenceEndRe.FindAllStringIndex(text, -1)
	parts := []string{}
	start := 0
	for _, match := range indexes {
		// match[0]+1 keeps the punctuation character.
		parts = append(parts, strings.TrimSpace(text[start:match[0]+1]))
		start = match[1]
	}
	if start < len(text) {
		parts = append(parts, strings.TrimSpace(text[start:]))
	}
	return parts
}

func stripTags(html string) string {
	if doc := parseDocument(html); doc != nil {
		doc.Find("script, style, noscript").Remove()
		return doc.Text()
	}
	cleaned := tagStripRe.ReplaceAllString(html, " ")
	return anyTagRe.ReplaceAllString(cleaned, " ")
}

package textutil

import (
	"regexp"
	"strings"
)

const maxKeywords = 5

// stopWords is a small fixed English stop-word list. Korean particles attach
// to the token itself, so no Korean list is kept.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"to": {}, "of": {}, "in": {}, "for": {}, "on": {}, "with": {}, "as": {},
	"by": {}, "at": {}, "and": {}, "or": {}, "but": {},
}

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	disallowedPattern = regexp.MustCompile(`[^a-zA-Z0-9가-힣\s.,!?'"]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	tokenPattern      = regexp.MustCompile(`[a-zA-Z가-힣]{3,}`)
)

// CleanText strips HTML tags, URLs, and special characters from upstream
// article text and collapses runs of whitespace. Partial or messy payloads
// are common; the cleaned form is what gets stored and analyzed.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = htmlTagPattern.ReplaceAllString(text, "")
	text = urlPattern.ReplaceAllString(text, "")
	text = disallowedPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// ExtractKeywords pulls up to 5 keyword tokens from the title and description
// of an article whose upstream did not supply any. Tokens are letter runs of
// length >= 3 (Latin or Hangul), lower-cased, stop-words removed, deduplicated
// in order of first appearance. Heuristic enrichment, not an NLP pipeline.
func ExtractKeywords(title, description string) []string {
	text := strings.ToLower(title + " " + description)

	seen := make(map[string]struct{})
	keywords := []string{}
	for _, token := range tokenPattern.FindAllString(text, -1) {
		if _, stop := stopWords[token]; stop {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		keywords = append(keywords, token)
		if len(keywords) == maxKeywords {
			break
		}
	}

	return keywords
}

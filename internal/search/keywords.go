package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Fixed English stopword set for keyword extraction.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {},
	"of": {}, "to": {}, "in": {}, "on": {}, "at": {},
	"for": {}, "with": {}, "by": {}, "from": {},
	"feat": {}, "ft": {},
}

// Title vocabularies for alternate-version detection. Matching is
// case-insensitive substring.
var (
	remixMarkers = []string{"remix", "bootleg", "edit)", "edit]", "vip mix", "club mix"}
	coverMarkers = []string{"cover", "acoustic version", "unplugged"}
)

// Normalize lowercases and trims a display string for comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Keywords tokenizes a display string: lowercase, split on whitespace, hyphen
// and underscore, strip non-alphanumeric runes (Unicode aware, so non-Latin
// scripts survive), drop single-rune tokens and stopwords.
func Keywords(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '_'
	})

	var out []string
	for _, field := range fields {
		var b strings.Builder
		for _, r := range field {
			if unicode.IsLetter(r) || unicode.IsNumber(r) {
				b.WriteRune(r)
			}
		}
		token := b.String()
		if utf8.RuneCountInString(token) < 2 {
			continue
		}
		if _, stop := stopwords[token]; stop {
			continue
		}
		out = append(out, token)
	}
	return out
}

// KeywordSet returns the keywords of s as a set.
func KeywordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, kw := range Keywords(s) {
		set[kw] = struct{}{}
	}
	return set
}

// KeywordsOverlap reports whether the two strings share at least one keyword.
func KeywordsOverlap(a, b string) bool {
	as := KeywordSet(a)
	for _, kw := range Keywords(b) {
		if _, ok := as[kw]; ok {
			return true
		}
	}
	return false
}

// ContainmentRatio returns the fraction of the smaller keyword set contained
// in the larger one, 0 when either side has no keywords.
func ContainmentRatio(a, b string) float64 {
	as, bs := KeywordSet(a), KeywordSet(b)
	if len(as) == 0 || len(bs) == 0 {
		return 0
	}

	small, large := as, bs
	if len(bs) < len(as) {
		small, large = bs, as
	}

	contained := 0
	for kw := range small {
		if _, ok := large[kw]; ok {
			contained++
		}
	}
	return float64(contained) / float64(len(small))
}

// IsLatin reports whether the string is pure ASCII/Latin script.
func IsLatin(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII && !unicode.Is(unicode.Latin, r) {
			return false
		}
	}
	return s != ""
}

// HasCJK reports whether the string contains CJK or Hangul runes.
func HasCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) ||
			unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}

// IsRemixTitle reports whether a title names an alternate cut (remix, edit,
// bootleg and similar).
func IsRemixTitle(title string) bool {
	return containsAnyFold(title, remixMarkers)
}

// IsCoverTitle reports whether a title names a cover or acoustic rendition.
func IsCoverTitle(title string) bool {
	return containsAnyFold(title, coverMarkers)
}

func containsAnyFold(s string, markers []string) bool {
	s = strings.ToLower(s)
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

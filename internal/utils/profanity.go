package utils

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// ProfanityFilter masks banned words with '*' runs of the same rune length.
// ASCII words match case-insensitively on word boundaries; anything else is
// matched as a plain substring.
type ProfanityFilter struct {
	patterns []*regexp.Regexp
}

// DefaultBannedWords is a small starter list, extended via PROFANITY_WORDS.
var DefaultBannedWords = []string{
	"fuck", "fucking", "fucker", "motherfucker", "shit", "bullshit",
	"bastard", "bitch", "dick", "cunt", "asshole", "dumbass", "jackass",
	"slut", "whore", "douche", "douchebag", "wanker", "twat", "prick",
	"arsehole", "bollocks", "dipshit", "shithead",
}

// NewProfanityFilter builds a filter from DefaultBannedWords plus extra.
func NewProfanityFilter(extra ...string) *ProfanityFilter {
	words := make([]string, 0, len(DefaultBannedWords)+len(extra))
	words = append(words, DefaultBannedWords...)
	words = append(words, extra...)

	uniq := make([]string, 0, len(words))
	seen := map[string]struct{}{}
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		uniq = append(uniq, w)
	}
	// longest first so "bullshit" wins over "shit"
	sort.Slice(uniq, func(i, j int) bool {
		return len([]rune(uniq[i])) > len([]rune(uniq[j]))
	})

	pats := make([]*regexp.Regexp, 0, len(uniq))
	for _, w := range uniq {
		pattern := regexp.QuoteMeta(w)
		if isASCIIWord(w) {
			pattern = `(?i)\b` + pattern + `\b`
		}
		pats = append(pats, regexp.MustCompile(pattern))
	}
	return &ProfanityFilter{patterns: pats}
}

// Mask returns s with every banned word replaced. A nil filter is a no-op.
func (pf *ProfanityFilter) Mask(s string) string {
	if pf == nil || len(pf.patterns) == 0 || s == "" {
		return s
	}
	out := s
	for _, re := range pf.patterns {
		out = re.ReplaceAllStringFunc(out, func(m string) string {
			return strings.Repeat("*", len([]rune(m)))
		})
	}
	return out
}

func isASCIIWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-') {
			return false
		}
	}
	return true
}

package keyword

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	maxDisplayRunes = 50
	truncatedRunes  = 47
)

// Set is the keyword list extracted from one analyzed CV (immutable value object).
type Set struct {
	cvID       string
	keywords   []string
	analyzedAt time.Time
}

// NewSet creates a Set. Blank keywords are dropped; duplicates are kept.
func NewSet(cvID string, keywords []string, analyzedAt time.Time) Set {
	kept := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			kept = append(kept, k)
		}
	}
	return Set{cvID: cvID, keywords: kept, analyzedAt: analyzedAt}
}

// CVID returns the identifier of the analyzed CV.
func (s Set) CVID() string { return s.cvID }

// Keywords returns a copy of the keywords in model order.
func (s Set) Keywords() []string {
	out := make([]string, len(s.keywords))
	copy(out, s.keywords)
	return out
}

// AnalyzedAt returns when the CV was analyzed.
func (s Set) AnalyzedAt() time.Time { return s.analyzedAt }

// IsEmpty reports whether the set carries no keywords.
func (s Set) IsEmpty() bool { return len(s.keywords) == 0 }

// CleanTitle trims, collapses whitespace and title-cases a keyword for display.
// Titles longer than 50 runes are cut to 47 runes plus "...".
func CleanTitle(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	s = cases.Title(language.English).String(s)
	if utf8.RuneCountInString(s) > maxDisplayRunes {
		r := []rune(s)
		s = string(r[:truncatedRunes]) + "..."
	}
	return s
}

// Display cleans keywords and removes case-insensitive duplicates, keeping first occurrence.
func Display(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		clean := CleanTitle(k)
		if clean == "" {
			continue
		}
		key := strings.ToLower(clean)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, clean)
	}
	return out
}

package match

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Strategy names the rule that produced a similarity score.
type Strategy string

// Scoring strategies in precedence order.
const (
	StrategyExact                Strategy = "exact"
	StrategyTitleContainsKeyword Strategy = "title_contains_keyword"
	StrategyKeywordContainsTitle Strategy = "keyword_contains_title"
	StrategyWordOverlap          Strategy = "word_overlap"
	// StrategyNone means no rule matched; the percentage is 0.
	StrategyNone Strategy = "none"
)

// Similarity is the outcome of comparing one job title with one keyword.
type Similarity struct {
	Percent  int
	Strategy Strategy
}

// Matched reports whether any rule produced a positive score.
func (s Similarity) Matched() bool { return s.Percent > 0 }

// Score compares a job title with a keyword, case-insensitively.
// The first qualifying rule wins: exact match, title contains keyword,
// keyword contains title, then partial word overlap.
func Score(jobTitle, keyword string) Similarity {
	title := normalize(jobTitle)
	kw := normalize(keyword)
	if title == "" || kw == "" {
		return Similarity{Strategy: StrategyNone}
	}

	if title == kw {
		return Similarity{Percent: 100, Strategy: StrategyExact}
	}

	titleLen := utf8.RuneCountInString(title)
	kwLen := utf8.RuneCountInString(kw)

	if strings.Contains(title, kw) {
		return Similarity{Percent: percent(kwLen, titleLen), Strategy: StrategyTitleContainsKeyword}
	}
	if strings.Contains(kw, title) {
		return Similarity{Percent: percent(titleLen, kwLen), Strategy: StrategyKeywordContainsTitle}
	}

	titleWords := strings.Fields(title)
	kwWords := strings.Fields(kw)

	overlapping := 0
	for _, tw := range titleWords {
		for _, kww := range kwWords {
			// Either direction counts: "dev" overlaps "developer" and vice versa.
			if strings.Contains(tw, kww) || strings.Contains(kww, tw) {
				overlapping++
				break
			}
		}
	}
	if overlapping == 0 {
		return Similarity{Strategy: StrategyNone}
	}

	return Similarity{
		Percent:  percent(overlapping, max(len(titleWords), len(kwWords))),
		Strategy: StrategyWordOverlap,
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

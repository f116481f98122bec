package match

import (
	"sort"

	"github.com/kailas-cloud/jobmatch/internal/domain/job"
)

// DefaultThreshold is the minimum percentage a job needs to be recommended.
const DefaultThreshold = 30

// Best returns the highest-scoring keyword for a title.
// Ties keep the keyword that appears first. ok is false when nothing matched.
func Best(title string, keywords []string) (best Similarity, keyword string, ok bool) {
	best = Similarity{Strategy: StrategyNone}
	for _, kw := range keywords {
		s := Score(title, kw)
		if s.Percent > best.Percent {
			best = s
			keyword = kw
		}
	}
	return best, keyword, best.Matched()
}

// Rank scores every job against every keyword, keeps each job's best keyword,
// drops jobs below threshold and sorts by percentage descending.
// A zero threshold keeps unmatched jobs with percentage 0 and no keyword.
// Equal percentages keep catalog order. Repeated job ids are ranked once.
// No keywords means no recommendations: the result is empty, never nil.
func Rank(jobs []job.Job, keywords []string, threshold int) []Result {
	results := make([]Result, 0)
	if len(keywords) == 0 {
		return results
	}

	seen := make(map[string]struct{}, len(jobs))
	for _, j := range jobs {
		if _, dup := seen[j.ID()]; dup {
			continue
		}
		seen[j.ID()] = struct{}{}

		best, kw, _ := Best(j.MatchTitle(), keywords)
		if best.Percent < threshold {
			continue
		}
		results = append(results, NewResult(j, best.Percent, kw, best.Strategy))
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].percent > results[b].percent
	})

	return results
}

package resolve

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// suggest picks the candidate closest to target for "did you mean" hints.
// Subsequence matches win; otherwise the nearest candidate by edit distance
// is offered when it is close enough to be plausible.
func suggest(target string, candidates []string) string {
	if target == "" || len(candidates) == 0 {
		return ""
	}
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)
	if ranks := fuzzy.RankFindNormalizedFold(target, sorted); len(ranks) > 0 {
		sort.Stable(ranks)
		return ranks[0].Target
	}
	lowered := strings.ToLower(target)
	best, bestDist := "", -1
	for _, c := range sorted {
		d := fuzzy.LevenshteinDistance(lowered, strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	limit := len(target) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist > limit {
		return ""
	}
	return best
}

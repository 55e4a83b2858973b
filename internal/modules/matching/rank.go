package matching

import "sort"

// Rank orders scored candidates by ascending score and keeps at most limit of
// them; a negative limit keeps all. Equal scores keep their input order. The
// input slice is not modified.
func Rank(scored []Recommendation, limit int) []Recommendation {
	out := make([]Recommendation, len(scored))
	copy(out, scored)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score < out[j].Score
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

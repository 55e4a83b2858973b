package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"carpool/internal/types"
)

func recs(pairs ...interface{}) []Recommendation {
	out := make([]Recommendation, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, Recommendation{CandidateID: types.ID(pairs[i].(string)), Score: pairs[i+1].(float64)})
	}
	return out
}

func ids(rs []Recommendation) []types.ID {
	out := make([]types.ID, len(rs))
	for i, r := range rs {
		out[i] = r.CandidateID
	}
	return out
}

func TestRank_AscendingAndStable(t *testing.T) {
	in := recs("a", 0.5, "b", 0.1, "c", 0.5, "d", 0.1, "e", 0.3)

	got := Rank(in, NoLimit)
	assert.Equal(t, []types.ID{"b", "d", "e", "a", "c"}, ids(got))
}

func TestRank_Truncates(t *testing.T) {
	in := recs("a", 0.4, "b", 0.3, "c", 0.2, "d", 0.1)

	assert.Equal(t, []types.ID{"d", "c"}, ids(Rank(in, 2)))
	assert.Len(t, Rank(in, 10), 4)
	assert.Empty(t, Rank(in, 0))
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	in := recs("a", 0.4, "b", 0.3)
	Rank(in, NoLimit)
	assert.Equal(t, []types.ID{"a", "b"}, ids(in))
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil, SidebarLimit))
}

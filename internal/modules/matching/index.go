package matching

import (
	"sort"

	"github.com/tidwall/rtree"

	"carpool/internal/modules/commuter"
	"carpool/internal/modules/location"
	"carpool/internal/types"
)

// indexMinPool is the pool size from which a bounded start-distance query
// goes through the R-tree instead of a full scan.
const indexMinPool = 64

// boxSlack widens search boxes so float rounding never drops a point that
// the exact distance rule would keep.
const boxSlack = 1e-9

// PoolIndex is an R-tree over the home coordinates of a candidate pool.
type PoolIndex struct {
	tree rtree.RTree
}

// NewPoolIndex indexes pool[i].Home under position i.
func NewPoolIndex(pool []commuter.Commuter) *PoolIndex {
	ix := &PoolIndex{}
	for i, c := range pool {
		p := [2]float64{c.Home.Lng, c.Home.Lat}
		ix.tree.Insert(p, p, i)
	}
	return ix
}

// Within returns, in ascending pool order, the positions whose home lies in
// the square circumscribing a circle of the given approximate-mile radius.
// The result is a superset of the positions within that distance.
func (ix *PoolIndex) Within(center types.Point, miles float64) []int {
	r := location.MilesToDegrees(miles) + boxSlack
	var hits []int
	ix.tree.Search(
		[2]float64{center.Lng - r, center.Lat - r},
		[2]float64{center.Lng + r, center.Lat + r},
		func(min, max [2]float64, data interface{}) bool {
			if i, ok := data.(int); ok {
				hits = append(hits, i)
			}
			return true
		},
	)
	sort.Ints(hits)
	return hits
}

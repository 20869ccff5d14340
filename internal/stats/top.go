package stats

import (
	"sort"

	"github.com/verte-zerg/crackle/internal/model"
)

// TopOrigins returns the n origins with the most attempts.
func TopOrigins(aggs []model.OriginAggregate, n int) []model.OriginAggregate {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	items := make([]model.OriginAggregate, len(aggs))
	copy(items, aggs)
	sort.Slice(items, func(i, j int) bool {
		if items[i].Attempts == items[j].Attempts {
			return items[i].Origin < items[j].Origin
		}
		return items[i].Attempts > items[j].Attempts
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}

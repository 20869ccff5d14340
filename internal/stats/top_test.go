package stats

import (
	"testing"

	"github.com/verte-zerg/crackle/internal/model"
)

func TestTopOrigins(t *testing.T) {
	aggs := []model.OriginAggregate{
		{Origin: "variation", Attempts: 4},
		{Origin: "dictionary", Attempts: 9},
		{Origin: "pattern", Attempts: 4},
	}
	top := TopOrigins(aggs, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 origins, got %d", len(top))
	}
	if top[0].Origin != "dictionary" || top[1].Origin != "pattern" {
		t.Fatalf("unexpected order: %v", top)
	}
	if aggs[0].Origin != "variation" {
		t.Fatalf("input slice was reordered")
	}
	if TopOrigins(aggs, 0) != nil {
		t.Fatalf("expected nil for n=0")
	}
}

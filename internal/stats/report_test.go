package stats

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/crackle/internal/model"
	"github.com/verte-zerg/crackle/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "crackle.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []string
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		id := fmt.Sprintf("session-%d", i)
		rec := model.SessionRecord{
			ID:             id,
			StartedAt:      start,
			EndedAt:        end,
			Algorithm:      "md5",
			Target:         "5f4dcc3b5aa765d61d8327deb882cf99",
			DictionaryPath: "dummy",
			Outcome:        "not-found",
			Attempts:       100,
			DurationMs:     end.Sub(start).Milliseconds(),
		}
		origins := []model.OriginCount{
			{Origin: "dictionary", Attempts: 60},
			{Origin: "variation", Attempts: 40},
		}
		if err := st.InsertSession(ctx, rec, origins); err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}

	cfg := model.HistoryConfig{
		Algorithm: "md5",
		Last:      2,
		Window:    1,
	}
	report, err := BuildReport(ctx, st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(report.Sessions))
	}
	if report.Sessions[0].SessionID != ids[1] || report.Sessions[1].SessionID != ids[2] {
		t.Fatalf("unexpected session ids: %+v", report.Sessions)
	}
	if len(report.WindowSessionIDs) != 1 || report.WindowSessionIDs[0] != ids[2] {
		t.Fatalf("unexpected window ids: %v", report.WindowSessionIDs)
	}
	var allDict, windowDict int64
	for _, agg := range report.OriginsAll {
		if agg.Origin == "dictionary" {
			allDict = agg.Attempts
		}
	}
	for _, agg := range report.OriginsWindow {
		if agg.Origin == "dictionary" {
			windowDict = agg.Attempts
		}
	}
	if allDict != 120 || windowDict != 60 {
		t.Fatalf("unexpected dictionary totals: all=%d window=%d", allDict, windowDict)
	}
}

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/crackle/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "crackle.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func insert(t *testing.T, st *Store, id string, offset time.Duration, algorithm, outcome, password string, origins []model.OriginCount) {
	t.Helper()
	start := time.Unix(0, 0).Add(offset)
	rec := model.SessionRecord{
		ID:             id,
		StartedAt:      start,
		EndedAt:        start.Add(2 * time.Second),
		Algorithm:      algorithm,
		Target:         "5F4DCC3B5AA765D61D8327DEB882CF99",
		DictionaryPath: "words.txt",
		Outcome:        outcome,
		Password:       password,
		Attempts:       42,
		DurationMs:     2000,
	}
	if err := st.InsertSession(context.Background(), rec, origins); err != nil {
		t.Fatalf("insert session %s: %v", id, err)
	}
}

func TestInsertAndListSessions(t *testing.T) {
	st := openTestStore(t)
	insert(t, st, "b", time.Minute, "md5", "found", "password", nil)
	insert(t, st, "a", 0, "sha1", "not-found", "", nil)

	sessions, err := st.ListSessions(context.Background(), model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].SessionID != "a" || sessions[1].SessionID != "b" {
		t.Fatalf("expected oldest first, got %+v", sessions)
	}
	if sessions[1].Password != "password" || sessions[1].Attempts != 42 {
		t.Fatalf("unexpected session: %+v", sessions[1])
	}

	filtered, err := st.ListSessions(context.Background(), model.HistoryConfig{Algorithm: "md5"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].SessionID != "b" {
		t.Fatalf("unexpected filtered sessions: %+v", filtered)
	}

	since := time.Unix(30, 0)
	recent, err := st.ListSessions(context.Background(), model.HistoryConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 1 || recent[0].SessionID != "b" {
		t.Fatalf("unexpected since sessions: %+v", recent)
	}
}

func TestListSessionsOrdersFractionalSeconds(t *testing.T) {
	st := openTestStore(t)
	insert(t, st, "later", 3500*time.Millisecond, "md5", "found", "password", nil)
	insert(t, st, "earlier", 3*time.Second, "md5", "not-found", "", nil)

	sessions, err := st.ListSessions(context.Background(), model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 2 || sessions[0].SessionID != "earlier" || sessions[1].SessionID != "later" {
		t.Fatalf("expected chronological order, got %+v", sessions)
	}
	if !sessions[1].EndedAt.Equal(time.Unix(5, 500_000_000)) {
		t.Fatalf("unexpected ended_at: %v", sessions[1].EndedAt)
	}

	since := time.Unix(5, 250_000_000)
	recent, err := st.ListSessions(context.Background(), model.HistoryConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 1 || recent[0].SessionID != "later" {
		t.Fatalf("unexpected since sessions: %+v", recent)
	}
}

func TestInsertSessionRequiresID(t *testing.T) {
	st := openTestStore(t)
	if err := st.InsertSession(context.Background(), model.SessionRecord{}, nil); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestInsertSessionDuplicateRollsBack(t *testing.T) {
	st := openTestStore(t)
	insert(t, st, "dup", 0, "md5", "found", "x", []model.OriginCount{{Origin: "dictionary", Attempts: 1}})
	rec := model.SessionRecord{ID: "dup", Algorithm: "md5"}
	if err := st.InsertSession(context.Background(), rec, []model.OriginCount{{Origin: "markov", Attempts: 9}}); err == nil {
		t.Fatalf("expected duplicate id error")
	}
	aggs, err := st.ListOriginAggregates(context.Background(), []string{"dup"})
	if err != nil {
		t.Fatalf("origin aggregates: %v", err)
	}
	if len(aggs) != 1 || aggs[0].Origin != "dictionary" {
		t.Fatalf("unexpected aggregates after rollback: %+v", aggs)
	}
}

func TestListOriginAggregates(t *testing.T) {
	st := openTestStore(t)
	insert(t, st, "s1", 0, "md5", "found", "x", []model.OriginCount{
		{Origin: "dictionary", Attempts: 10},
		{Origin: "variation", Attempts: 5},
	})
	insert(t, st, "s2", time.Minute, "md5", "not-found", "", []model.OriginCount{
		{Origin: "dictionary", Attempts: 7},
	})

	aggs, err := st.ListOriginAggregates(context.Background(), []string{"s1", "s2"})
	if err != nil {
		t.Fatalf("origin aggregates: %v", err)
	}
	byOrigin := map[string]model.OriginAggregate{}
	for _, agg := range aggs {
		byOrigin[agg.Origin] = agg
	}
	if got := byOrigin["dictionary"]; got.Attempts != 17 || got.Sessions != 2 {
		t.Fatalf("unexpected dictionary aggregate: %+v", got)
	}
	if got := byOrigin["variation"]; got.Attempts != 5 || got.Sessions != 1 {
		t.Fatalf("unexpected variation aggregate: %+v", got)
	}

	none, err := st.ListOriginAggregates(context.Background(), nil)
	if err != nil || none != nil {
		t.Fatalf("expected nil aggregates for no sessions, got %v %v", none, err)
	}
}

func TestFindCracked(t *testing.T) {
	st := openTestStore(t)
	insert(t, st, "s1", 0, "md5", "found", "password", nil)

	pw, ok, err := st.FindCracked(context.Background(), "md5", " 5f4dcc3b5aa765d61d8327deb882cf99 ")
	if err != nil {
		t.Fatalf("find cracked: %v", err)
	}
	if !ok || pw != "password" {
		t.Fatalf("expected cached password, got %q %v", pw, ok)
	}

	_, ok, err = st.FindCracked(context.Background(), "sha1", "5f4dcc3b5aa765d61d8327deb882cf99")
	if err != nil {
		t.Fatalf("find cracked: %v", err)
	}
	if ok {
		t.Fatalf("expected no match for other algorithm")
	}
}

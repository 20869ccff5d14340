package stats

import (
	"context"

	"github.com/verte-zerg/crackle/internal/model"
	"github.com/verte-zerg/crackle/internal/store"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Sessions         []model.SessionAggregate
	WindowSessionIDs []string
	OriginsAll       []model.OriginAggregate
	OriginsWindow    []model.OriginAggregate
}

// BuildReport loads and prepares data for history rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}

	allIDs := sessionIDs(sessions)
	windowIDs := lastSessionIDs(sessions, cfg.Window)
	originsAll, err := st.ListOriginAggregates(ctx, allIDs)
	if err != nil {
		return Report{}, err
	}
	originsWindow, err := st.ListOriginAggregates(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Sessions:         sessions,
		WindowSessionIDs: windowIDs,
		OriginsAll:       originsAll,
		OriginsWindow:    originsWindow,
	}, nil
}

func sessionIDs(sessions []model.SessionAggregate) []string {
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	return ids
}

func lastSessionIDs(sessions []model.SessionAggregate, window int) []string {
	if window <= 0 || len(sessions) <= window {
		return sessionIDs(sessions)
	}
	return sessionIDs(sessions[len(sessions)-window:])
}

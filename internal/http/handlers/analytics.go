package handlers

import (
	"errors"
	"net/http"

	"creatoriq/internal/domain"
)

// AnalyticsDashboard serves the newest seeded analytics snapshot.
func (a *App) AnalyticsDashboard(w http.ResponseWriter, r *http.Request) {
	snapshot, err := a.Analytics.Latest(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "Analytics not found")
			return
		}
		a.Logger.Error().Err(err).Msg("load analytics failed")
		a.error(w, http.StatusInternalServerError, "Failed to fetch analytics")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"followers":    snapshot.Followers,
		"engagement":   snapshot.Engagement,
		"bestPostTime": snapshot.BestPostTime,
	})
}

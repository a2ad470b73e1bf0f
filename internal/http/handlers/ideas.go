package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"creatoriq/internal/domain"
)

type generateIdeaRequest struct {
	Topic string `json:"topic" validate:"required"`
	Niche string `json:"niche" validate:"required"`
}

// ideaDTO is the wire shape of an idea record. isFetched/isFailed are the
// flags the web client polls on; status carries the same information for
// API consumers.
type ideaDTO struct {
	ID        string             `json:"id"`
	Topic     string             `json:"topic"`
	Niche     string             `json:"niche"`
	Status    domain.IdeaStatus  `json:"status"`
	IsFetched bool               `json:"isFetched"`
	IsFailed  bool               `json:"isFailed"`
	Idea      domain.IdeaContent `json:"idea"`
	CreatedAt time.Time          `json:"createdAt"`
}

func toIdeaDTO(idea *domain.Idea) ideaDTO {
	content := idea.Content
	if content.Hashtags == nil {
		content.Hashtags = []string{}
	}
	return ideaDTO{
		ID:        idea.ID,
		Topic:     idea.Topic,
		Niche:     idea.Niche,
		Status:    idea.Status,
		IsFetched: idea.Status == domain.IdeaStatusFulfilled,
		IsFailed:  idea.Status == domain.IdeaStatusFailed,
		Idea:      content,
		CreatedAt: idea.CreatedAt,
	}
}

// GenerateIdea accepts a topic/niche pair, persists a pending record, and
// returns 202 immediately; fulfillment happens in the background and the
// client polls GetIdeas until the record is terminal.
func (a *App) GenerateIdea(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "missing user context")
		return
	}
	var req generateIdeaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		a.error(w, http.StatusBadRequest, "Missing topic or niche")
		return
	}
	idea, err := a.Ideas.Submit(r.Context(), userID, req.Topic, req.Niche)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			a.error(w, http.StatusBadRequest, "Missing topic or niche")
			return
		}
		a.Logger.Error().Err(err).Msg("submit idea failed")
		a.error(w, http.StatusInternalServerError, "Failed to generate content idea")
		return
	}
	a.json(w, http.StatusAccepted, map[string]any{"data": toIdeaDTO(idea)})
}

// GetIdeas serves both poll reads (?id=<uuid>) and the owner's history
// listing, always scoped to the authenticated caller.
func (a *App) GetIdeas(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "missing user context")
		return
	}
	if id := r.URL.Query().Get("id"); id != "" {
		idea, err := a.Ideas.Get(r.Context(), id, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				a.error(w, http.StatusNotFound, "Idea not found")
				return
			}
			a.Logger.Error().Err(err).Str("idea_id", id).Msg("fetch idea failed")
			a.error(w, http.StatusInternalServerError, "Failed to fetch idea")
			return
		}
		a.json(w, http.StatusOK, map[string]any{"data": toIdeaDTO(idea)})
		return
	}

	ideas, err := a.Ideas.List(r.Context(), userID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list ideas failed")
		a.error(w, http.StatusInternalServerError, "Failed to fetch content ideas")
		return
	}
	items := make([]ideaDTO, 0, len(ideas))
	for i := range ideas {
		items = append(items, toIdeaDTO(&ideas[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"data": items})
}

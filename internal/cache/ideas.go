// Package cache provides the Redis-backed poll cache for terminal idea
// records. Everything here is best-effort: Redis being down degrades to
// plain Postgres reads, never to request failures.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"creatoriq/internal/domain"
)

// IdeaCache stores terminal idea records keyed by owner and id. Entries are
// written exactly once, when a record reaches a terminal state, so a hit is
// always safe to serve without revalidation.
type IdeaCache struct {
	client *redis.Client
	logger zerolog.Logger
	ttl    time.Duration
}

const defaultTTL = time.Hour

type cachedIdea struct {
	ID        string             `json:"id"`
	OwnerID   string             `json:"owner_id"`
	Topic     string             `json:"topic"`
	Niche     string             `json:"niche"`
	Status    domain.IdeaStatus  `json:"status"`
	Content   domain.IdeaContent `json:"content"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewIdeaCache constructs the cache. ttl <= 0 selects the default.
func NewIdeaCache(client *redis.Client, logger zerolog.Logger, ttl time.Duration) *IdeaCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &IdeaCache{client: client, logger: logger, ttl: ttl}
}

func ideaKey(ownerID, id string) string {
	return fmt.Sprintf("idea:%s:%s", ownerID, id)
}

// Get returns a cached terminal record, or ok=false on miss or error.
func (c *IdeaCache) Get(ctx context.Context, id, ownerID string) (*domain.Idea, bool) {
	raw, err := c.client.Get(ctx, ideaKey(ownerID, id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("idea_id", id).Msg("idea cache read failed")
		}
		return nil, false
	}
	var entry cachedIdea
	if err := json.Unmarshal(raw, &entry); err != nil {
		c.logger.Warn().Err(err).Str("idea_id", id).Msg("idea cache entry corrupt")
		return nil, false
	}
	return &domain.Idea{
		ID:        entry.ID,
		OwnerID:   entry.OwnerID,
		Topic:     entry.Topic,
		Niche:     entry.Niche,
		Status:    entry.Status,
		Content:   entry.Content,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}, true
}

// Set stores a terminal record. Non-terminal records are ignored so a stale
// pending snapshot can never mask a terminal state.
func (c *IdeaCache) Set(ctx context.Context, idea *domain.Idea) {
	if idea == nil || !idea.Status.Terminal() {
		return
	}
	entry := cachedIdea{
		ID:        idea.ID,
		OwnerID:   idea.OwnerID,
		Topic:     idea.Topic,
		Niche:     idea.Niche,
		Status:    idea.Status,
		Content:   idea.Content,
		CreatedAt: idea.CreatedAt,
		UpdatedAt: idea.UpdatedAt,
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		c.logger.Warn().Err(err).Str("idea_id", idea.ID).Msg("idea cache encode failed")
		return
	}
	if err := c.client.Set(ctx, ideaKey(idea.OwnerID, idea.ID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("idea_id", idea.ID).Msg("idea cache write failed")
	}
}

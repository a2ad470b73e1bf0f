// Package idea implements the generation orchestrator: request intake,
// detached background fulfillment, and owner-scoped poll reads.
package idea

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"creatoriq/internal/domain"
	"creatoriq/internal/providers/ideagen"
)

// TerminalCache holds terminal records close to the poll path. Both methods
// are best-effort; a miss or error falls through to the repository.
type TerminalCache interface {
	Get(ctx context.Context, id, ownerID string) (*domain.Idea, bool)
	Set(ctx context.Context, idea *domain.Idea)
}

// Options configures the orchestrator.
type Options struct {
	Repo            domain.IdeaRepository
	Generator       ideagen.Generator
	Cache           TerminalCache // optional
	Logger          zerolog.Logger
	ProviderTimeout time.Duration
}

// Service owns the write path for idea records after creation. Each submit
// creates one pending record and detaches exactly one fulfillment unit for
// it; no other writer touches that record's status or content fields.
type Service struct {
	repo            domain.IdeaRepository
	generator       ideagen.Generator
	cache           TerminalCache
	logger          zerolog.Logger
	providerTimeout time.Duration

	inflight sync.WaitGroup
}

const (
	defaultProviderTimeout = 60 * time.Second
	terminalWriteTimeout   = 10 * time.Second
)

// NewService constructs the orchestrator.
func NewService(opts Options) *Service {
	timeout := opts.ProviderTimeout
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	return &Service{
		repo:            opts.Repo,
		generator:       opts.Generator,
		cache:           opts.Cache,
		logger:          opts.Logger,
		providerTimeout: timeout,
	}
}

// Submit validates the input, creates a pending record, and schedules the
// background fulfillment unit. It returns as soon as the pending record is
// persisted; generation latency never blocks the caller.
func (s *Service) Submit(ctx context.Context, ownerID, topic, niche string) (*domain.Idea, error) {
	topic = strings.TrimSpace(topic)
	niche = strings.TrimSpace(niche)
	if topic == "" || niche == "" {
		return nil, domain.ErrInvalidArgument
	}

	created, err := s.repo.Create(ctx, ownerID, topic, niche)
	if err != nil {
		return nil, err
	}

	s.inflight.Add(1)
	go s.fulfill(*created)

	return created, nil
}

// fulfill is the background unit: one provider call, one terminal write.
// Its lifetime is decoupled from the originating request; nothing it does
// propagates to any caller. The provider call is bounded by the configured
// timeout so a hung provider cannot pin the record in pending forever.
func (s *Service) fulfill(idea domain.Idea) {
	defer s.inflight.Done()
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error().Any("panic", rec).Str("idea_id", idea.ID).Msg("idea fulfillment panicked")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.providerTimeout)
	defer cancel()

	content, err := s.generator.Generate(ctx, ideagen.Request{Topic: idea.Topic, Niche: idea.Niche})

	// The terminal write must not inherit the provider deadline: when the
	// call fails because that deadline expired, the record still has to
	// flip to failed.
	writeCtx, writeCancel := context.WithTimeout(context.WithoutCancel(ctx), terminalWriteTimeout)
	defer writeCancel()

	if err != nil {
		s.logger.Warn().Err(err).
			Str("idea_id", idea.ID).
			Str("owner_id", idea.OwnerID).
			Str("provider", s.generator.Name()).
			Msg("idea generation failed")
		if err := s.repo.MarkFailed(writeCtx, idea.ID); err != nil {
			// Record stays pending; clients see it via their poll budget.
			s.logger.Error().Err(err).Str("idea_id", idea.ID).Msg("failed to mark idea failed")
			return
		}
		s.primeCache(writeCtx, idea, domain.IdeaStatusFailed, domain.IdeaContent{})
		return
	}

	if err := s.repo.UpdateContent(writeCtx, idea.ID, *content); err != nil {
		s.logger.Error().Err(err).Str("idea_id", idea.ID).Msg("failed to store generated idea")
		return
	}
	s.logger.Info().
		Str("idea_id", idea.ID).
		Str("owner_id", idea.OwnerID).
		Str("provider", s.generator.Name()).
		Msg("idea fulfilled")
	s.primeCache(writeCtx, idea, domain.IdeaStatusFulfilled, *content)
}

func (s *Service) primeCache(ctx context.Context, idea domain.Idea, status domain.IdeaStatus, content domain.IdeaContent) {
	if s.cache == nil {
		return
	}
	idea.Status = status
	idea.Content = content
	idea.UpdatedAt = time.Now()
	s.cache.Set(ctx, &idea)
}

// Get returns the record for its owner, or domain.ErrNotFound when absent
// or owned by someone else. Terminal records are served from the cache when
// available since polling hammers this path.
func (s *Service) Get(ctx context.Context, id, ownerID string) (*domain.Idea, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, id, ownerID); ok {
			return cached, nil
		}
	}
	idea, err := s.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil && idea.Status.Terminal() {
		s.cache.Set(ctx, idea)
	}
	return idea, nil
}

// List returns all of the owner's records, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]domain.Idea, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Wait blocks until all in-flight fulfillment units finish. Used on
// shutdown so terminal writes are not cut off mid-flight.
func (s *Service) Wait() {
	s.inflight.Wait()
}

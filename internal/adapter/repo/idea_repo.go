package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"creatoriq/internal/domain"
)

// IdeaRepositoryPG implements domain.IdeaRepository backed by PostgreSQL.
type IdeaRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewIdeaRepository creates a new idea repository.
func NewIdeaRepository(pool *pgxpool.Pool) *IdeaRepositoryPG {
	return &IdeaRepositoryPG{pool: pool}
}

// Create inserts a pending record with empty content fields and returns it.
func (r *IdeaRepositoryPG) Create(ctx context.Context, ownerID, topic, niche string) (*domain.Idea, error) {
	query := `
INSERT INTO ideas (id, owner_id, topic, niche, status, reel_idea, hook, caption, hashtags)
VALUES ($1, $2, $3, $4, $5, '', '', '', '{}')
RETURNING id, owner_id, topic, niche, status, reel_idea, hook, caption, hashtags, created_at, updated_at;
`
	row := r.pool.QueryRow(ctx, query, uuid.NewString(), ownerID, topic, niche, domain.IdeaStatusPending)
	return scanIdea(row)
}

// UpdateContent writes the generated content and flips the record to
// fulfilled in one statement. The status guard keeps terminal records
// immutable even if called twice.
func (r *IdeaRepositoryPG) UpdateContent(ctx context.Context, id string, content domain.IdeaContent) error {
	query := `
UPDATE ideas
SET status = $2,
    reel_idea = $3,
    hook = $4,
    caption = $5,
    hashtags = $6,
    updated_at = NOW()
WHERE id = $1
  AND status = $7;
`
	tag, err := r.pool.Exec(ctx, query, id,
		domain.IdeaStatusFulfilled,
		content.ReelIdea,
		content.Hook,
		content.Caption,
		content.Hashtags,
		domain.IdeaStatusPending,
	)
	if err != nil {
		return fmt.Errorf("update idea content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkFailed flips a pending record to failed, leaving content fields empty.
func (r *IdeaRepositoryPG) MarkFailed(ctx context.Context, id string) error {
	query := `
UPDATE ideas
SET status = $2,
    updated_at = NOW()
WHERE id = $1
  AND status = $3;
`
	tag, err := r.pool.Exec(ctx, query, id, domain.IdeaStatusFailed, domain.IdeaStatusPending)
	if err != nil {
		return fmt.Errorf("mark idea failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID fetches a record scoped to its owner.
func (r *IdeaRepositoryPG) GetByID(ctx context.Context, id, ownerID string) (*domain.Idea, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, owner_id, topic, niche, status, reel_idea, hook, caption, hashtags, created_at, updated_at
FROM ideas
WHERE id = $1
  AND owner_id = $2;
`, id, ownerID)
	return scanIdea(row)
}

// ListByOwner returns the owner's records, newest first.
func (r *IdeaRepositoryPG) ListByOwner(ctx context.Context, ownerID string) ([]domain.Idea, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, owner_id, topic, niche, status, reel_idea, hook, caption, hashtags, created_at, updated_at
FROM ideas
WHERE owner_id = $1
ORDER BY created_at DESC;
`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ideas []domain.Idea
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		ideas = append(ideas, *idea)
	}
	return ideas, rows.Err()
}

func scanIdea(row pgx.Row) (*domain.Idea, error) {
	var idea domain.Idea
	if err := row.Scan(
		&idea.ID,
		&idea.OwnerID,
		&idea.Topic,
		&idea.Niche,
		&idea.Status,
		&idea.Content.ReelIdea,
		&idea.Content.Hook,
		&idea.Content.Caption,
		&idea.Content.Hashtags,
		&idea.CreatedAt,
		&idea.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &idea, nil
}

var _ domain.IdeaRepository = (*IdeaRepositoryPG)(nil)

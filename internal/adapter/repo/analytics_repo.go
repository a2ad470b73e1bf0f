package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"creatoriq/internal/domain"
)

// AnalyticsRepositoryPG implements domain.AnalyticsRepository using PostgreSQL.
// Engagement points are stored as JSONB since they are served back verbatim.
type AnalyticsRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository constructs the repository.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepositoryPG {
	return &AnalyticsRepositoryPG{pool: pool}
}

// Latest returns the newest snapshot.
func (r *AnalyticsRepositoryPG) Latest(ctx context.Context) (*domain.AnalyticsSnapshot, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, followers, engagement, best_post_time, created_at
FROM analytics
ORDER BY created_at DESC
LIMIT 1;
`)

	var snapshot domain.AnalyticsSnapshot
	var engagementBytes []byte
	if err := row.Scan(
		&snapshot.ID,
		&snapshot.Followers,
		&engagementBytes,
		&snapshot.BestPostTime,
		&snapshot.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(engagementBytes, &snapshot.Engagement); err != nil {
		return nil, fmt.Errorf("decode engagement: %w", err)
	}
	return &snapshot, nil
}

// Insert stores a snapshot; used by the seed tool.
func (r *AnalyticsRepositoryPG) Insert(ctx context.Context, snapshot *domain.AnalyticsSnapshot) error {
	engagementBytes, err := json.Marshal(snapshot.Engagement)
	if err != nil {
		return fmt.Errorf("encode engagement: %w", err)
	}
	id := snapshot.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO analytics (id, followers, engagement, best_post_time)
VALUES ($1, $2, $3, $4);
`, id, snapshot.Followers, engagementBytes, snapshot.BestPostTime)
	return err
}

var _ domain.AnalyticsRepository = (*AnalyticsRepositoryPG)(nil)

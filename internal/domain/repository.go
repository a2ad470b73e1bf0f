package domain

import "context"

// IdeaRepository defines persistence for idea records. Reads are always
// owner-scoped; terminal writes must leave content and status consistent
// per record (no cross-record coordination required).
type IdeaRepository interface {
	Create(ctx context.Context, ownerID, topic, niche string) (*Idea, error)
	UpdateContent(ctx context.Context, id string, content IdeaContent) error
	MarkFailed(ctx context.Context, id string) error
	GetByID(ctx context.Context, id, ownerID string) (*Idea, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Idea, error)
}

// UserRepository defines access methods for users.
type UserRepository interface {
	Create(ctx context.Context, email, name, passwordHash string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// AnalyticsRepository serves the seeded dashboard snapshot.
type AnalyticsRepository interface {
	Latest(ctx context.Context) (*AnalyticsSnapshot, error)
	Insert(ctx context.Context, snapshot *AnalyticsSnapshot) error
}

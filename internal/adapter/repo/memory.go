package repo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"creatoriq/internal/domain"
)

// MemoryIdeaRepository is an in-process domain.IdeaRepository used by tests
// and local development without Postgres. It mirrors the SQL adapter's
// semantics: owner-scoped reads and pending-only terminal writes.
type MemoryIdeaRepository struct {
	mu    sync.Mutex
	ideas map[string]*domain.Idea
	seq   int

	// CreateErr / UpdateErr force the corresponding operation to fail,
	// for exercising store-failure paths.
	CreateErr error
	UpdateErr error
}

// NewMemoryIdeaRepository constructs an empty store.
func NewMemoryIdeaRepository() *MemoryIdeaRepository {
	return &MemoryIdeaRepository{ideas: map[string]*domain.Idea{}}
}

func (m *MemoryIdeaRepository) Create(ctx context.Context, ownerID, topic, niche string) (*domain.Idea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.seq++
	now := time.Now().Add(time.Duration(m.seq) * time.Microsecond)
	idea := &domain.Idea{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Topic:     topic,
		Niche:     niche,
		Status:    domain.IdeaStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.ideas[idea.ID] = idea
	copied := *idea
	return &copied, nil
}

func (m *MemoryIdeaRepository) UpdateContent(ctx context.Context, id string, content domain.IdeaContent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	idea, ok := m.ideas[id]
	if !ok || idea.Status != domain.IdeaStatusPending {
		return domain.ErrNotFound
	}
	idea.Status = domain.IdeaStatusFulfilled
	idea.Content = content
	idea.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryIdeaRepository) MarkFailed(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	idea, ok := m.ideas[id]
	if !ok || idea.Status != domain.IdeaStatusPending {
		return domain.ErrNotFound
	}
	idea.Status = domain.IdeaStatusFailed
	idea.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryIdeaRepository) GetByID(ctx context.Context, id, ownerID string) (*domain.Idea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idea, ok := m.ideas[id]
	if !ok || idea.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	copied := *idea
	return &copied, nil
}

func (m *MemoryIdeaRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Idea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ideas []domain.Idea
	for _, idea := range m.ideas {
		if idea.OwnerID == ownerID {
			ideas = append(ideas, *idea)
		}
	}
	sort.Slice(ideas, func(i, j int) bool { return ideas[i].CreatedAt.After(ideas[j].CreatedAt) })
	return ideas, nil
}

// MemoryUserRepository is an in-process domain.UserRepository.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

// NewMemoryUserRepository constructs an empty store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: map[string]*domain.User{}}
}

func (m *MemoryUserRepository) Create(ctx context.Context, email, name, passwordHash string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = strings.ToLower(email)
	for _, u := range m.users {
		if u.Email == email {
			return nil, domain.ErrDuplicateUser
		}
	}
	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.users[user.ID] = user
	copied := *user
	return &copied, nil
}

func (m *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = strings.ToLower(email)
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

// MemoryAnalyticsRepository is an in-process domain.AnalyticsRepository.
type MemoryAnalyticsRepository struct {
	mu        sync.Mutex
	snapshots []domain.AnalyticsSnapshot
}

// NewMemoryAnalyticsRepository constructs an empty store.
func NewMemoryAnalyticsRepository() *MemoryAnalyticsRepository {
	return &MemoryAnalyticsRepository{}
}

func (m *MemoryAnalyticsRepository) Latest(ctx context.Context) (*domain.AnalyticsSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.snapshots) == 0 {
		return nil, domain.ErrNotFound
	}
	copied := m.snapshots[len(m.snapshots)-1]
	return &copied, nil
}

func (m *MemoryAnalyticsRepository) Insert(ctx context.Context, snapshot *domain.AnalyticsSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *snapshot
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	m.snapshots = append(m.snapshots, stored)
	return nil
}

var (
	_ domain.IdeaRepository      = (*MemoryIdeaRepository)(nil)
	_ domain.UserRepository      = (*MemoryUserRepository)(nil)
	_ domain.AnalyticsRepository = (*MemoryAnalyticsRepository)(nil)
)

package domain

import "time"

// IdeaStatus enumerates idea lifecycle states.
type IdeaStatus string

const (
	IdeaStatusPending   IdeaStatus = "pending"
	IdeaStatusFulfilled IdeaStatus = "fulfilled"
	IdeaStatusFailed    IdeaStatus = "failed"
)

// Terminal reports whether no further status transitions are possible.
func (s IdeaStatus) Terminal() bool {
	return s == IdeaStatusFulfilled || s == IdeaStatusFailed
}

// IdeaContent is the structured generation result. All fields are empty
// until the record reaches the fulfilled state.
type IdeaContent struct {
	ReelIdea string   `json:"reelIdea"`
	Hook     string   `json:"hook"`
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
}

// Empty reports whether no content has been written yet.
func (c IdeaContent) Empty() bool {
	return c.ReelIdea == "" && c.Hook == "" && c.Caption == "" && len(c.Hashtags) == 0
}

// Idea encapsulates one generation request and its eventual result.
// Topic and niche are immutable after creation; content is written exactly
// once, together with the flip to a terminal status.
type Idea struct {
	ID        string
	OwnerID   string
	Topic     string
	Niche     string
	Status    IdeaStatus
	Content   IdeaContent
	CreatedAt time.Time
	UpdatedAt time.Time
}

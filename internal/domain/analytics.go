package domain

import "time"

// EngagementPoint is one post's engagement sample in the dashboard series.
type EngagementPoint struct {
	Post     int `json:"post"`
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
}

// AnalyticsSnapshot is the seeded dashboard dataset. The service serves the
// newest snapshot as-is; nothing in the request path writes this table.
type AnalyticsSnapshot struct {
	ID           string
	Followers    []int
	Engagement   []EngagementPoint
	BestPostTime string
	CreatedAt    time.Time
}

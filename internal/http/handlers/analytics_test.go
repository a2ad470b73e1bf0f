package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"creatoriq/internal/domain"
)

func TestAnalyticsDashboard(t *testing.T) {
	ta := newIdeaTestApp(t, nil)

	rec := httptest.NewRecorder()
	ta.app.AnalyticsDashboard(rec, authedRequest(http.MethodGet, "/analytics", "", "user-1"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 before seeding", rec.Code)
	}

	snapshot := &domain.AnalyticsSnapshot{
		Followers: []int{1200, 1250, 1280},
		Engagement: []domain.EngagementPoint{
			{Post: 1, Likes: 320, Comments: 25},
			{Post: 2, Likes: 400, Comments: 40},
		},
		BestPostTime: "Wednesday 7 PM",
	}
	if err := ta.app.Analytics.Insert(context.Background(), snapshot); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	rec = httptest.NewRecorder()
	ta.app.AnalyticsDashboard(rec, authedRequest(http.MethodGet, "/analytics", "", "user-1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var out struct {
		Followers    []int                    `json:"followers"`
		Engagement   []domain.EngagementPoint `json:"engagement"`
		BestPostTime string                   `json:"bestPostTime"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !reflect.DeepEqual(out.Followers, snapshot.Followers) {
		t.Errorf("followers = %v", out.Followers)
	}
	if len(out.Engagement) != 2 || out.Engagement[1].Likes != 400 {
		t.Errorf("engagement = %+v", out.Engagement)
	}
	if out.BestPostTime != "Wednesday 7 PM" {
		t.Errorf("bestPostTime = %q", out.BestPostTime)
	}
}

package creatoriqsdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func pollTestServer(t *testing.T, pendingReads int64) (*httptest.Server, *int64) {
	t.Helper()
	var reads int64
	mux := http.NewServeMux()
	mux.HandleFunc("/idea", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") != "idea-1" {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Idea not found"})
			return
		}
		n := atomic.AddInt64(&reads, 1)
		record := Idea{
			ID:     "idea-1",
			Topic:  "street food",
			Niche:  "travel",
			Status: "pending",
		}
		if n > pendingReads {
			record.Status = "fulfilled"
			record.IsFetched = true
			record.Idea = IdeaContent{
				ReelIdea: "Midnight market food crawl",
				Hook:     "Everything here costs under two dollars",
				Caption:  "Trust the longest queue",
				Hashtags: []string{"#streetfood", "#nightmarket"},
			}
		}
		_ = json.NewEncoder(w).Encode(ideaEnvelope{Data: record})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &reads
}

func newPollClient(server *httptest.Server) *Client {
	c := New(server.URL)
	c.BearerToken = "test-token"
	c.PollAttempts = 5
	c.PollInterval = 5 * time.Millisecond
	return c
}

func TestPollIdeaUntilFulfilled(t *testing.T) {
	server, reads := pollTestServer(t, 2)
	c := newPollClient(server)

	got, err := c.PollIdea(context.Background(), "idea-1")
	if err != nil {
		t.Fatalf("PollIdea() error: %v", err)
	}
	if !got.IsFetched || got.Status != "fulfilled" {
		t.Fatalf("record = %+v", got)
	}
	if got.Idea.ReelIdea == "" || len(got.Idea.Hashtags) != 2 {
		t.Fatalf("content = %+v", got.Idea)
	}
	if *reads != 3 {
		t.Fatalf("server saw %d reads, want 3", *reads)
	}
}

func TestPollIdeaTimeout(t *testing.T) {
	server, reads := pollTestServer(t, 1_000_000)
	c := newPollClient(server)

	got, err := c.PollIdea(context.Background(), "idea-1")
	if !errors.Is(err, ErrPollTimeout) {
		t.Fatalf("PollIdea() error = %v, want ErrPollTimeout", err)
	}
	if got == nil || got.Status != "pending" {
		t.Fatalf("last record = %+v", got)
	}
	if *reads != int64(c.PollAttempts) {
		t.Fatalf("server saw %d reads, want %d", *reads, c.PollAttempts)
	}
}

func TestPollIdeaContextCancelled(t *testing.T) {
	server, _ := pollTestServer(t, 1_000_000)
	c := newPollClient(server)
	c.PollInterval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := c.PollIdea(ctx, "idea-1")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("PollIdea() error = %v, want context.Canceled", err)
	}
}

func TestPollIdeaStopsOnFailedRecord(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/idea", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ideaEnvelope{Data: Idea{
			ID:       "idea-1",
			Status:   "failed",
			IsFailed: true,
		}})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	c := newPollClient(server)

	got, err := c.PollIdea(context.Background(), "idea-1")
	if err != nil {
		t.Fatalf("PollIdea() error: %v", err)
	}
	if !got.IsFailed {
		t.Fatalf("record = %+v", got)
	}
}

func TestGenerateIdeaAndAPIErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/idea/generate-idea", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "missing token"})
			return
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req["topic"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Missing topic or niche"})
			return
		}
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(ideaEnvelope{Data: Idea{ID: "idea-9", Topic: req["topic"], Status: "pending"}})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	c := New(server.URL)
	if _, err := c.GenerateIdea(context.Background(), "street food", "travel"); err == nil {
		t.Fatal("expected auth error without token")
	}

	c.BearerToken = "test-token"
	got, err := c.GenerateIdea(context.Background(), "street food", "travel")
	if err != nil {
		t.Fatalf("GenerateIdea() error: %v", err)
	}
	if got.ID != "idea-9" || got.Terminal() {
		t.Fatalf("record = %+v", got)
	}

	if _, err := c.GenerateIdea(context.Background(), "", ""); err == nil {
		t.Fatal("expected validation error")
	} else if want := "Missing topic or niche"; !strings.Contains(err.Error(), want) {
		t.Fatalf("error = %v, want mention of %q", err, want)
	}
}

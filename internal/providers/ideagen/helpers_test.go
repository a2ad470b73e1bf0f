package ideagen

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"creatoriq/internal/domain"
)

func TestParseContent(t *testing.T) {
	valid := `{"reelIdea":"Day in the life of a street food vendor","hook":"POV: 5am at the night market","caption":"Follow for part two","hashtags":["#streetfood","#foodie","#travel"]}`

	cases := []struct {
		name    string
		raw     string
		wantErr error
		check   func(t *testing.T, got *domain.IdeaContent)
	}{
		{
			name: "plain json",
			raw:  valid,
			check: func(t *testing.T, got *domain.IdeaContent) {
				if got.ReelIdea != "Day in the life of a street food vendor" {
					t.Errorf("ReelIdea = %q", got.ReelIdea)
				}
				if want := []string{"#streetfood", "#foodie", "#travel"}; !reflect.DeepEqual(got.Hashtags, want) {
					t.Errorf("Hashtags = %v, want %v", got.Hashtags, want)
				}
			},
		},
		{
			name: "fenced json",
			raw:  "```json\n" + valid + "\n```",
			check: func(t *testing.T, got *domain.IdeaContent) {
				if got.Hook != "POV: 5am at the night market" {
					t.Errorf("Hook = %q", got.Hook)
				}
			},
		},
		{
			name: "json wrapped in prose",
			raw:  "Sure! Here is the idea:\n" + valid + "\nHope that helps.",
			check: func(t *testing.T, got *domain.IdeaContent) {
				if got.Caption != "Follow for part two" {
					t.Errorf("Caption = %q", got.Caption)
				}
			},
		},
		{
			name:    "not json at all",
			raw:     "I cannot answer that.",
			wantErr: domain.ErrProviderFailure,
		},
		{
			name:    "empty response",
			raw:     "   ",
			wantErr: domain.ErrEmptyContent,
		},
		{
			name:    "missing required field",
			raw:     `{"reelIdea":"x","hook":"","caption":"y","hashtags":["#a"]}`,
			wantErr: domain.ErrProviderFailure,
		},
		{
			name:    "no hashtags",
			raw:     `{"reelIdea":"x","hook":"h","caption":"y","hashtags":[]}`,
			wantErr: domain.ErrProviderFailure,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseContent(tc.raw)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("parseContent() error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseContent() error: %v", err)
			}
			tc.check(t, got)
		})
	}
}

func TestNormalizeHashtags(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "adds missing prefix",
			in:   []string{"travel", "#food"},
			want: []string{"#travel", "#food"},
		},
		{
			name: "drops blanks and bare hash",
			in:   []string{"", "  ", "#", "#ok"},
			want: []string{"#ok"},
		},
		{
			name: "dedupes case insensitively",
			in:   []string{"#Travel", "#travel", "travel"},
			want: []string{"#Travel"},
		},
		{
			name: "caps at five",
			in:   []string{"#a", "#b", "#c", "#d", "#e", "#f", "#g"},
			want: []string{"#a", "#b", "#c", "#d", "#e"},
		},
		{
			name: "empty input",
			in:   nil,
			want: nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeHashtags(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("normalizeHashtags(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestTrimCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "no fence", in: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "unclosed fence", in: "```json\n{\"a\":1}", want: `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := trimCodeFence(tc.in); got != tc.want {
				t.Fatalf("trimCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestBuildPromptMentionsTopicAndNiche(t *testing.T) {
	prompt := buildPrompt(Request{Topic: "street food tours", Niche: "travel"})
	for _, want := range []string{"street food tours", "travel", "reelIdea", "hashtags"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

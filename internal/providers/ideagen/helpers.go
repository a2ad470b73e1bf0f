package ideagen

import (
	"encoding/json"
	"fmt"
	"strings"

	"creatoriq/internal/domain"
)

const (
	openAIProviderName = "openai"
	geminiProviderName = "gemini"

	maxHashtags = 5
)

// parseContent decodes a model response into IdeaContent. Models wrap JSON
// in code fences or prose often enough that the payload is fragment-extracted
// before unmarshalling. Missing required fields are a parse failure, not a
// partial success.
func parseContent(raw string) (*domain.IdeaContent, error) {
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return nil, domain.ErrEmptyContent
	}
	var content domain.IdeaContent
	if err := json.Unmarshal([]byte(cleaned), &content); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	content.ReelIdea = strings.TrimSpace(content.ReelIdea)
	content.Hook = strings.TrimSpace(content.Hook)
	content.Caption = strings.TrimSpace(content.Caption)
	content.Hashtags = normalizeHashtags(content.Hashtags)
	if content.ReelIdea == "" || content.Hook == "" || content.Caption == "" || len(content.Hashtags) == 0 {
		return nil, fmt.Errorf("%w: incomplete idea payload", domain.ErrProviderFailure)
	}
	return &content, nil
}

func normalizeHashtags(tags []string) []string {
	seen := make(map[string]struct{})
	var result []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || tag == "#" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		lower := strings.ToLower(tag)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		result = append(result, tag)
		if len(result) == maxHashtags {
			break
		}
	}
	return result
}

func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = trimCodeFence(text)
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}

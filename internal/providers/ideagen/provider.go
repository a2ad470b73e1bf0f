package ideagen

import (
	"context"
	"fmt"
	"strings"

	"creatoriq/internal/domain"
)

// Request carries the caller-supplied inputs for one generation attempt.
type Request struct {
	Topic string
	Niche string
}

// Generator produces structured reel-idea content from a topic and niche.
// Implementations make exactly one provider call per Generate invocation;
// retry policy, if any, belongs to the caller.
type Generator interface {
	Generate(ctx context.Context, req Request) (*domain.IdeaContent, error)
	Name() string
}

// buildPrompt asks the model for one trending reel idea in a fixed JSON
// schema so the response can be parsed mechanically.
func buildPrompt(req Request) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "You are a content strategist. Suggest one trending Instagram reel idea for a creator in the %s niche based on the topic %q. ", req.Niche, req.Topic)
	sb.WriteString("Respond strictly with JSON matching this schema: ")
	sb.WriteString(`{"reelIdea":"full idea description with concept","hook":"opening hook to grab attention","caption":"Instagram caption text","hashtags":["#tag1","#tag2","#tag3","#tag4","#tag5"]}`)
	sb.WriteString(". Provide between 3 and 5 hashtags.")
	return sb.String()
}

package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gtstudio/internal/models"
)

// loremIpsum is the canned markdown body every demo answer is built from.
const loremIpsum = `# Demo Generator Lorem Ipsum Text

The answer is formatted in markdown

## Lorem Ipsum

Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor
incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud
exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat. Duis aute
irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur.`

// DemoGenerator produces canned lorem ipsum answers without calling any
// model. It keeps the studio usable in development and demos where no
// generation backend is configured.
type DemoGenerator struct{}

func NewDemoGenerator() *DemoGenerator { return &DemoGenerator{} }

// Generate assembles a demo answer: the lorem ipsum body, a reference list
// when documents are attached, the custom rules when given, and finally the
// question context wrapped around the whole thing.
func (g *DemoGenerator) Generate(ctx context.Context, req models.GenerateRequest) (models.GeneratedAnswer, error) {
	answer := loremIpsum

	if len(req.Documents) > 0 {
		var sb strings.Builder
		sb.WriteString(answer)
		sb.WriteString("\n\nReferences:\n")
		for i, doc := range req.Documents {
			title := doc.Title
			if title == "" {
				title = "Untitled Document"
			}
			fmt.Fprintf(&sb, "%d. %s\n", i+1, title)
		}
		answer = sb.String()
	}

	if req.CustomRules != "" {
		answer = fmt.Sprintf("Based on the following rules: %s\n\n%s", req.CustomRules, answer)
	}

	answer = fmt.Sprintf("Answer to the question: '%s'\n\n%s", req.Question, answer)

	promptTokens := len(req.Question)
	for _, doc := range req.Documents {
		promptTokens += len(doc.Content)
	}
	completionTokens := len(answer)

	return models.GeneratedAnswer{
		Answer: answer,
		Model:  "demo-model",
		TokenUsage: models.TokenUsage{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
		},
		FinishReason: "stop",
	}, nil
}

// Models lists the models the demo generator pretends to serve.
func (g *DemoGenerator) Models(ctx context.Context) ([]models.ModelInfo, error) {
	return []models.ModelInfo{
		{ID: "gpt-4", Name: "GPT-4", Description: "Most capable model, best for complex tasks"},
		{ID: "gpt-35-turbo", Name: "GPT-3.5 Turbo", Description: "Fast and cost-effective for simpler tasks"},
	}, nil
}

// Package generation provides the answer drafting backends.
package generation

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gtstudio/internal/models"
)

// Generator drafts an answer for a question from supporting documents and
// reports which models it can serve.
type Generator interface {
	Generate(ctx context.Context, req models.GenerateRequest) (models.GeneratedAnswer, error)
	Models(ctx context.Context) ([]models.ModelInfo, error)
}

// New builds the generator selected by the configuration.
func New(provider string) (Generator, error) {
	switch provider {
	case "demo":
		return NewDemoGenerator(), nil
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", provider)
	}
}

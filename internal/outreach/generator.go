package outreach

import (
	"context"
	"errors"
	"fmt"
)

// Completer sends a single prompt to a language model and returns its text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Generator struct {
	completer Completer
}

func NewGenerator(c Completer) (*Generator, error) {
	if c == nil {
		return nil, errors.New("outreach: completer is required")
	}
	return &Generator{completer: c}, nil
}

// Generate asks the model for an email and an SMS about the property.
// Request failures are returned as is; there is no retry.
func (g *Generator) Generate(ctx context.Context, f Facts) (Messages, error) {
	text, err := g.completer.Complete(ctx, BuildPrompt(f))
	if err != nil {
		return Messages{}, fmt.Errorf("generate outreach for %s: %w", f.Address, err)
	}
	return ParseResponse(text), nil
}

// Package tutor implements the learner-facing features. Every feature
// renders a prompt, asks the model for a completion and extracts a
// structured response from it.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/instructo/tutor/internal/extract"
	"github.com/instructo/tutor/internal/llm"
	"github.com/instructo/tutor/internal/metrics"
	"github.com/instructo/tutor/internal/prompt"
	"github.com/instructo/tutor/internal/schemas"
)

// ErrProvider marks failures of the completion call itself.
var ErrProvider = errors.New("llm provider error")

const DefaultAttempts = 2

type Service struct {
	llm      llm.Client
	log      *slog.Logger
	attempts int
}

type Option func(*Service)

// WithAttempts sets how many completions are requested before an
// unusable response is reported. Values below 1 are ignored.
func WithAttempts(n int) Option {
	return func(s *Service) {
		if n >= 1 {
			s.attempts = n
		}
	}
}

func NewService(client llm.Client, log *slog.Logger, opts ...Option) *Service {
	s := &Service{llm: client, log: log, attempts: DefaultAttempts}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// structured renders the named template, completes it and extracts a
// response of the given kind. Extraction failures are retried with a fresh
// completion; provider failures are returned immediately.
func (s *Service) structured(ctx context.Context, kind schemas.Kind, template string, vars map[string]string) (map[string]any, error) {
	schema, err := schemas.For(kind)
	if err != nil {
		return nil, err
	}
	text, err := prompt.Render(template, vars)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= s.attempts; attempt++ {
		raw, err := s.llm.Complete(ctx, prompt.System, text)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrProvider, err)
		}

		result, err := extract.Extract(raw, schema)
		if err == nil {
			metrics.ExtractionsTotal.WithLabelValues(string(kind), "success").Inc()
			return result, nil
		}

		errKind, _ := extract.KindOf(err)
		metrics.ExtractionsTotal.WithLabelValues(string(kind), string(errKind)).Inc()
		s.log.WarnContext(ctx, "unusable completion", "kind", kind, "attempt", attempt, "error", err, "length", len(raw))
		lastErr = err
	}
	return nil, lastErr
}

// Generate sends prompt to the model, wrapped in template when one is
// given, and returns the raw completion.
func (s *Service) Generate(ctx context.Context, text, template string) (string, error) {
	if template != "" {
		text = prompt.Build(template, map[string]string{"prompt": text})
	}
	out, err := s.llm.Complete(ctx, "", text)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrProvider, err)
	}
	return out, nil
}

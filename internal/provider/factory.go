// Package provider builds LLM clients by provider name.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/instructo/tutor/internal/anthropic"
	"github.com/instructo/tutor/internal/google"
	"github.com/instructo/tutor/internal/llm"
)

var (
	ErrUnsupported = errors.New("unsupported LLM type")
	ErrMissingKey  = errors.New("API key not configured")
)

// Options are the per-request overrides accepted by update_llm.
type Options struct {
	ModelName string `json:"model_name,omitempty"`
	APIKey    string `json:"api_key,omitempty"`
}

// Keys are the API keys from configuration, used when a request does not
// supply its own.
type Keys struct {
	Google    string
	Anthropic string
}

// Builder constructs a client for a provider.
type Builder func(ctx context.Context, apiKey, model string) (llm.Client, llm.Info, error)

type Factory struct {
	keys     Keys
	builders map[string]Builder
}

func NewFactory(keys Keys) *Factory {
	f := &Factory{keys: keys, builders: map[string]Builder{}}
	f.Register("gemini", buildGoogle)
	f.Register("google", buildGoogle)
	f.Register("anthropic", buildAnthropic)
	return f
}

// Register adds or replaces the builder for llmType.
func (f *Factory) Register(llmType string, b Builder) {
	f.builders[strings.ToLower(llmType)] = b
}

func (f *Factory) Create(ctx context.Context, llmType string, opts Options) (llm.Client, llm.Info, error) {
	llmType = strings.ToLower(strings.TrimSpace(llmType))
	build, ok := f.builders[llmType]
	if !ok {
		return nil, llm.Info{}, fmt.Errorf("%w: %s", ErrUnsupported, llmType)
	}

	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = f.defaultKey(llmType)
	}
	if apiKey == "" {
		return nil, llm.Info{}, fmt.Errorf("%w for %s", ErrMissingKey, llmType)
	}

	client, info, err := build(ctx, apiKey, opts.ModelName)
	if err != nil {
		return nil, llm.Info{}, fmt.Errorf("creating %s client: %w", llmType, err)
	}
	return client, info, nil
}

func (f *Factory) defaultKey(llmType string) string {
	switch llmType {
	case "gemini", "google":
		return f.keys.Google
	case "anthropic":
		return f.keys.Anthropic
	}
	return ""
}

func buildGoogle(ctx context.Context, apiKey, model string) (llm.Client, llm.Info, error) {
	c, err := google.NewClient(ctx, apiKey, google.Model(model))
	if err != nil {
		return nil, llm.Info{}, err
	}
	return c, c.Info(), nil
}

func buildAnthropic(_ context.Context, apiKey, model string) (llm.Client, llm.Info, error) {
	c := anthropic.NewClient(apiKey, anthropic.Model(model))
	return c, c.Info(), nil
}

package llm

import "context"

type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Info describes a configured client.
type Info struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

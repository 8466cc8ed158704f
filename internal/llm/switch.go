package llm

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/instructo/tutor/internal/metrics"
)

var ErrNoClient = errors.New("llm client not configured")

// Switch holds the active client. Swapping installs a new client for
// subsequent calls; calls already in flight finish on the client they
// started with.
type Switch struct {
	mu     sync.RWMutex
	client Client
	info   Info
}

func NewSwitch(client Client, info Info) *Switch {
	return &Switch{client: client, info: info}
}

func (s *Switch) Current() (Client, Info) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client, s.info
}

func (s *Switch) Info() Info {
	_, info := s.Current()
	return info
}

func (s *Switch) Swap(client Client, info Info) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = client
	s.info = info
}

func (s *Switch) Complete(ctx context.Context, system, prompt string) (string, error) {
	client, info := s.Current()
	if client == nil {
		return "", ErrNoClient
	}

	start := time.Now()
	text, err := client.Complete(ctx, system, prompt)
	result := "success"
	if err != nil {
		result = "error"
	}
	metrics.LLMCallDuration.WithLabelValues(info.Provider).Observe(time.Since(start).Seconds())
	metrics.LLMCallsTotal.WithLabelValues(info.Provider, result).Inc()
	return text, err
}

package tutor

import (
	"context"
	"fmt"

	"github.com/instructo/tutor/internal/schemas"
)

func (s *Service) ReviewCode(ctx context.Context, code, language string) (map[string]any, error) {
	review, err := s.structured(ctx, schemas.CodeReview, "code_review", map[string]string{
		"code":     code,
		"language": language,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to review code: %w", err)
	}
	return review, nil
}

func (s *Service) Chat(ctx context.Context, message string) (map[string]any, error) {
	resp, err := s.structured(ctx, schemas.ChatResponse, "chat", map[string]string{"message": message})
	if err != nil {
		return nil, fmt.Errorf("failed to generate chat response: %w", err)
	}
	return resp, nil
}

package tutor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/instructo/tutor/internal/extract"
	"github.com/instructo/tutor/internal/schemas"
)

// GenerateQuiz returns {language, total_questions, questions}.
func (s *Service) GenerateQuiz(ctx context.Context, language string) (map[string]any, error) {
	quiz, err := s.structured(ctx, schemas.Quiz, "quiz", map[string]string{"language": language})
	if err != nil {
		return nil, fmt.Errorf("failed to generate quiz: %w", err)
	}

	questions, ok := quiz["questions"].([]any)
	if !ok {
		return nil, fmt.Errorf("failed to generate quiz: %w", &extract.Error{
			Kind:    extract.KindSchema,
			Message: "questions is not a list",
		})
	}

	return map[string]any{
		"language":        language,
		"total_questions": len(questions),
		"questions":       questions,
	}, nil
}

func (s *Service) EvaluateQuiz(ctx context.Context, language string, responses []any) (map[string]any, error) {
	encoded, err := json.Marshal(responses)
	if err != nil {
		return nil, fmt.Errorf("encoding quiz responses: %w", err)
	}

	eval, err := s.structured(ctx, schemas.QuizEvaluation, "quiz_evaluation", map[string]string{
		"language":  language,
		"responses": string(encoded),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate quiz: %w", err)
	}
	return eval, nil
}

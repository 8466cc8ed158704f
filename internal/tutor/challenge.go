package tutor

import (
	"context"
	"fmt"

	"github.com/instructo/tutor/internal/extract"
	"github.com/instructo/tutor/internal/schemas"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultLanguage   = "Python"
	DefaultDifficulty = "moderate"
)

type ChallengeRequest struct {
	Objective   string
	Description string
	Language    string
	Difficulty  string
}

func (r ChallengeRequest) vars() map[string]string {
	language, difficulty := r.Language, r.Difficulty
	if language == "" {
		language = DefaultLanguage
	}
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}
	return map[string]string{
		"objective":   r.Objective,
		"description": r.Description,
		"language":    language,
		"difficulty":  difficulty,
	}
}

func (s *Service) IncompleteCode(ctx context.Context, req ChallengeRequest) (map[string]any, error) {
	out, err := s.structured(ctx, schemas.IncompleteCode, "incomplete_code", req.vars())
	if err != nil {
		return nil, fmt.Errorf("failed to generate incomplete code: %w", err)
	}
	return out, nil
}

func (s *Service) OutputChallenge(ctx context.Context, req ChallengeRequest) (map[string]any, error) {
	out, err := s.structured(ctx, schemas.OutputChallenge, "output_challenge", req.vars())
	if err != nil {
		return nil, fmt.Errorf("failed to generate output challenge: %w", err)
	}
	return out, nil
}

func (s *Service) ProblemChallenge(ctx context.Context, req ChallengeRequest) (map[string]any, error) {
	out, err := s.structured(ctx, schemas.ProblemChallenge, "problem_challenge", req.vars())
	if err != nil {
		return nil, fmt.Errorf("failed to generate problem-solving challenge: %w", err)
	}
	return out, nil
}

func (s *Service) SolutionGuidance(ctx context.Context, code, language, challengeType string) (map[string]any, error) {
	out, err := s.structured(ctx, schemas.SolutionGuidance, "solution_guidance", map[string]string{
		"code":           code,
		"language":       language,
		"challenge_type": challengeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate solution guidance: %w", err)
	}
	return out, nil
}

// IncompleteCodeWithReview generates an exercise and reviews its starter
// code, as the exercise page shows both.
func (s *Service) IncompleteCodeWithReview(ctx context.Context, req ChallengeRequest) (exercise, review map[string]any, err error) {
	exercise, err = s.IncompleteCode(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	code, ok := exercise["code"].(string)
	if !ok {
		return nil, nil, fmt.Errorf("failed to generate incomplete code: %w", &extract.Error{
			Kind:    extract.KindSchema,
			Message: "code is not a string",
		})
	}
	language, _ := exercise["language"].(string)
	if language == "" {
		language = req.vars()["language"]
	}

	review, err = s.ReviewCode(ctx, code, language)
	if err != nil {
		return nil, nil, err
	}
	return exercise, review, nil
}

// SubmitSolution reviews a submitted solution and produces guidance for it.
// Both requests run concurrently; the first failure cancels the other.
func (s *Service) SubmitSolution(ctx context.Context, code, language, challengeType string) (review, guidance map[string]any, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		review, err = s.ReviewCode(gctx, code, language)
		return err
	})
	g.Go(func() error {
		var err error
		guidance, err = s.SolutionGuidance(gctx, code, language, challengeType)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return review, guidance, nil
}

// Package schemas declares the response shape expected from the model for
// each feature. New shapes are added here as data.
package schemas

import (
	"fmt"

	"github.com/instructo/tutor/internal/extract"
)

type Kind string

const (
	Quiz             Kind = "quiz"
	QuizEvaluation   Kind = "quizEvaluation"
	CodeReview       Kind = "codeReview"
	ChatResponse     Kind = "chatResponse"
	IncompleteCode   Kind = "incompleteCode"
	OutputChallenge  Kind = "outputChallenge"
	ProblemChallenge Kind = "problemChallenge"
	SolutionGuidance Kind = "solutionGuidance"
)

var challengeDetails = extract.Fields("difficulty", "key_concepts")

var registry = map[Kind]extract.Schema{
	Quiz: extract.Fields("questions"),
	QuizEvaluation: extract.Fields(
		"total_questions", "correct_answers", "score_percentage", "skill_level", "detailed_feedback",
	),
	CodeReview: extract.Fields("overall_assessment", "detailed_review", "learning_resources"),
	ChatResponse: extract.Fields(
		"response_type", "main_points", "detailed_explanation", "learning_resources", "recommended_next_steps",
	),
	IncompleteCode: extract.Fields("language", "code", "missing_parts", "learning_goals"),
	OutputChallenge: extract.Fields(
		"language", "expected_output", "input_description", "challenge_details", "test_cases",
	).With("challenge_details", challengeDetails),
	ProblemChallenge: extract.Fields(
		"language", "problem_statement", "challenge_details", "input_specification", "output_specification", "example_cases",
	).With("challenge_details", challengeDetails),
	SolutionGuidance: extract.Fields("overall_assessment", "learning_insights", "alternative_approaches"),
}

func For(kind Kind) (extract.Schema, error) {
	s, ok := registry[kind]
	if !ok {
		return extract.Schema{}, fmt.Errorf("unknown response kind %q", kind)
	}
	return s, nil
}

// MustFor is For for kinds declared in this package.
func MustFor(kind Kind) extract.Schema {
	s, err := For(kind)
	if err != nil {
		panic(err)
	}
	return s
}

func Kinds() []Kind {
	return []Kind{
		Quiz, QuizEvaluation, CodeReview, ChatResponse,
		IncompleteCode, OutputChallenge, ProblemChallenge, SolutionGuidance,
	}
}

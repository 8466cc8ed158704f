package handlers

import (
	"log/slog"
	"net/http"

	"github.com/instructo/tutor/internal/tutor"
)

type TutorHandler struct {
	svc *tutor.Service
	log *slog.Logger
}

func NewTutorHandler(svc *tutor.Service, log *slog.Logger) *TutorHandler {
	return &TutorHandler{svc: svc, log: log}
}

type generateRequest struct {
	Prompt   string `json:"prompt"`
	Template string `json:"template"`
}

func (h *TutorHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decode(w, r, generateSchema, &req) {
		return
	}
	text, err := h.svc.Generate(r.Context(), req.Prompt, req.Template)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": text})
}

func (h *TutorHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	language := r.URL.Query().Get("language")
	if language == "" {
		writeError(w, http.StatusBadRequest, "Language parameter is required")
		return
	}
	quiz, err := h.svc.GenerateQuiz(r.Context(), language)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

type evaluateQuizRequest struct {
	Language  string `json:"language"`
	Responses []any  `json:"responses"`
}

func (h *TutorHandler) EvaluateQuiz(w http.ResponseWriter, r *http.Request) {
	var req evaluateQuizRequest
	if !decode(w, r, evaluateQuizSchema, &req) {
		return
	}
	eval, err := h.svc.EvaluateQuiz(r.Context(), req.Language, req.Responses)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, eval)
}

type reviewRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

func (h *TutorHandler) ReviewCode(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if !decode(w, r, reviewSchema, &req) {
		return
	}
	review, err := h.svc.ReviewCode(r.Context(), req.Code, req.Language)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *TutorHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decode(w, r, chatSchema, &req) {
		return
	}
	resp, err := h.svc.Chat(r.Context(), req.Message)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type challengeRequest struct {
	Objective   string `json:"objective"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Difficulty  string `json:"difficulty"`
}

func (c challengeRequest) toService() tutor.ChallengeRequest {
	return tutor.ChallengeRequest{
		Objective:   c.Objective,
		Description: c.Description,
		Language:    c.Language,
		Difficulty:  c.Difficulty,
	}
}

func (h *TutorHandler) IncompleteCode(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if !decode(w, r, challengeSchema, &req) {
		return
	}
	exercise, review, err := h.svc.IncompleteCodeWithReview(r.Context(), req.toService())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"incomplete_code": exercise,
		"initial_review":  review,
	})
}

func (h *TutorHandler) OutputChallenge(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if !decode(w, r, challengeSchema, &req) {
		return
	}
	out, err := h.svc.OutputChallenge(r.Context(), req.toService())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *TutorHandler) ProblemChallenge(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if !decode(w, r, challengeSchema, &req) {
		return
	}
	out, err := h.svc.ProblemChallenge(r.Context(), req.toService())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type submitSolutionRequest struct {
	Code          string `json:"code"`
	Language      string `json:"language"`
	ChallengeType string `json:"challenge_type"`
}

func (h *TutorHandler) SubmitSolution(w http.ResponseWriter, r *http.Request) {
	var req submitSolutionRequest
	if !decode(w, r, submitSolutionSchema, &req) {
		return
	}
	review, guidance, err := h.svc.SubmitSolution(r.Context(), req.Code, req.Language, req.ChallengeType)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"code_review": review,
		"guidance":    guidance,
	})
}

package handlers

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/instructo/tutor/internal/extract"
	"github.com/instructo/tutor/internal/tutor"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const maxBodyBytes = 1 << 20

//go:embed requests/*.json
var requestSchemas embed.FS

// requestSchema validates a request body and carries the message returned
// when validation fails.
type requestSchema struct {
	schema  *jsonschema.Schema
	message string
}

func mustCompile(name, message string) requestSchema {
	data, err := requestSchemas.ReadFile("requests/" + name + ".json")
	if err != nil {
		panic(fmt.Sprintf("reading request schema %s: %v", name, err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name+".json", bytes.NewReader(data)); err != nil {
		panic(fmt.Sprintf("adding request schema %s: %v", name, err))
	}
	compiled, err := compiler.Compile(name + ".json")
	if err != nil {
		panic(fmt.Sprintf("compiling request schema %s: %v", name, err))
	}
	return requestSchema{schema: compiled, message: message}
}

var (
	generateSchema       = mustCompile("generate", "Prompt is required")
	updateLLMSchema      = mustCompile("update_llm", "LLM type is required")
	evaluateQuizSchema   = mustCompile("evaluate_quiz", "Language and responses are required")
	reviewSchema         = mustCompile("review", "Code and language are required")
	chatSchema           = mustCompile("chat", "Message is required")
	challengeSchema      = mustCompile("challenge", "Objective and description are required")
	submitSolutionSchema = mustCompile("submit_solution", "Code, language, and challenge type are required")
)

// decode reads the body, validates it against rs and unmarshals it into
// dst. On failure it writes a 400 and returns false.
func decode(w http.ResponseWriter, r *http.Request, rs requestSchema, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, rs.message)
		return false
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		writeError(w, http.StatusBadRequest, rs.message)
		return false
	}
	if err := rs.schema.Validate(doc); err != nil {
		writeError(w, http.StatusBadRequest, rs.message)
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, rs.message)
		return false
	}
	return true
}

// statusFor maps a service error to an HTTP status. Unusable completions
// and provider failures are upstream problems.
func statusFor(err error) int {
	if _, ok := extract.KindOf(err); ok {
		return http.StatusBadGateway
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, tutor.ErrProvider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status := statusFor(err)
	log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "status", status, "error", err)
	writeError(w, status, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/instructo/tutor/internal/llm"
	"github.com/instructo/tutor/internal/metrics"
	"github.com/instructo/tutor/internal/provider"
)

type LLMHandler struct {
	sw      *llm.Switch
	factory *provider.Factory
	log     *slog.Logger
}

func NewLLMHandler(sw *llm.Switch, factory *provider.Factory, log *slog.Logger) *LLMHandler {
	return &LLMHandler{sw: sw, factory: factory, log: log}
}

type updateLLMRequest struct {
	LLMType string           `json:"llm_type"`
	Kwargs  provider.Options `json:"kwargs"`
}

// Update builds a client for the requested provider and makes it the
// active one.
func (h *LLMHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateLLMRequest
	if !decode(w, r, updateLLMSchema, &req) {
		return
	}

	client, info, err := h.factory.Create(r.Context(), req.LLMType, req.Kwargs)
	if err != nil {
		if errors.Is(err, provider.ErrUnsupported) || errors.Is(err, provider.ErrMissingKey) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.ErrorContext(r.Context(), "creating llm client", "llm_type", req.LLMType, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	previous := h.sw.Info()
	h.sw.Swap(client, info)
	metrics.ProviderSwaps.WithLabelValues(info.Provider).Inc()
	h.log.InfoContext(r.Context(), "llm swapped",
		"from_provider", previous.Provider, "from_model", previous.Model,
		"provider", info.Provider, "model", info.Model,
	)
	writeJSON(w, http.StatusOK, map[string]string{"message": "LLM updated to " + req.LLMType})
}

package health

import (
	"encoding/json"
	"net/http"

	"github.com/instructo/tutor/internal/llm"
)

type response struct {
	Status   string `json:"status"`
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
}

// Handler reports liveness and the active LLM. It does not call the
// provider.
func Handler(sw *llm.Switch) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client, info := sw.Current()
		resp := response{Status: "ok", Provider: info.Provider, Model: info.Model}
		status := http.StatusOK
		if client == nil {
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(resp)
	})
}

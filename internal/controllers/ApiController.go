package controllers

import (
	"net/http"
	"shoutd/internal/providers"
	"shoutd/internal/services"
	"strconv"

	json "github.com/goccy/go-json"
)

// ApiController serves read-only JSON views next to /metrics.
type ApiController struct {
	logger  providers.Logger
	service services.ShoutoutServiceInterface
}

func NewApiController(logger providers.Logger, service services.ShoutoutServiceInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
	}
}

func (ac *ApiController) writeJSON(w http.ResponseWriter, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		ac.logger.Errorf(providers.TypeRead, "Error encoding response: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) GetStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	ac.writeJSON(w, ac.service.Stats())
}

// GetRecent serves /recent?n=N with the same bounds as the chat command.
func (ac *ApiController) GetRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	n := defaultRecentCount
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxRecentCount {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		n = parsed
	}

	lines, err := ac.service.Recent(n)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.writeJSON(w, lines)
}

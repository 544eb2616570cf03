package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/akielkucki/digitalmarketplace/pkg/apierror"
)

// GuildsHandler is a thin pass-through to the separate guilds backend.
type GuildsHandler struct {
	baseURL string
	client  *http.Client
}

func NewGuildsHandler(baseURL string) *GuildsHandler {
	return &GuildsHandler{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (h *GuildsHandler) List(w http.ResponseWriter, r *http.Request) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, h.baseURL+"/api/guilds", nil)
	if err != nil {
		writeError(w, fmt.Errorf("build guilds request: %w", err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		writeError(w, apierror.New("UPSTREAM_ERROR", "failed to fetch guilds", "", http.StatusBadGateway))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Mirror the upstream status so the UI can react to it.
		writeError(w, apierror.New("UPSTREAM_ERROR", "failed to fetch guilds", "", resp.StatusCode))
		return
	}

	var data json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		writeError(w, apierror.New("UPSTREAM_ERROR", "invalid guilds response", "", http.StatusBadGateway))
		return
	}

	writeSuccess(w, http.StatusOK, data, nil)
}

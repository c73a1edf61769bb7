package render

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/modaria/modaria/backend-go/internal/remote"
)

const maxRenderBody = 20 << 20 // sketches arrive as data URLs

// Handler exposes the AI rendering service over HTTP.
type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// Generate handles POST /render. The request body is a render.Request; the
// response is the generated image with its description.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRenderBody)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.SketchImage == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "sketch image is required"})
		return
	}
	if req.ReferenceStrength < 0 || req.ReferenceStrength > 100 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reference strength must be between 0 and 100"})
		return
	}

	result, err := h.client.GenerateWithRetry(r.Context(), req, 3)
	if err != nil {
		var remoteErr *remote.Error
		switch {
		case errors.As(err, &remoteErr) && remoteErr.QuotaExhausted():
			writeJSON(w, http.StatusPaymentRequired, map[string]string{"error": "generation quota exhausted"})
		case errors.As(err, &remoteErr) && remoteErr.RateLimited():
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limited, try again later"})
		default:
			slog.Error("render failed", "error", err)
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "rendering failed"})
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

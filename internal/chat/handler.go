package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Vovarama1992/securesense-bridge/internal/httpx"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// HandleChat — POST /api/chat
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message string `json:"message"`
		Topic   string `json:"topic"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	resp, err := h.svc.Respond(r.Context(), Request{
		Message:    payload.Message,
		TopicLabel: payload.Topic,
	})
	if errors.Is(err, ErrNoMessage) {
		zerolog.Ctx(r.Context()).Error().Msg("[chat] no message provided")
		httpx.WriteError(w, http.StatusBadRequest, "No message provided")
		return
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("topic", payload.Topic).Msg("[chat] request failed")
		httpx.WriteError(w, http.StatusInternalServerError, "An error occurred while processing the request")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

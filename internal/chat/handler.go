package chat

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/karthikcsq/personalsite/internal/api"
)

// Handler serves POST /api/chat. The default response is a text/event-stream
// of {"content": ...} fragments terminated by [DONE]; ?stream=false (or an
// Accept header preferring application/json) returns the whole answer at once.
type Handler struct {
	svc      *Service
	validate *validator.Validate
}

// NewHandler creates a chat handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

type answerResponse struct {
	Answer string `json:"answer"`
}

type fragmentPayload struct {
	Content string `json:"content"`
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.HandleError(w, api.ErrBadRequest)
		return
	}

	if req.Empty() {
		api.HandleError(w, api.NewBadRequestError("message or conversation history is required"))
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		api.HandleError(w, api.NewBadRequestError("invalid conversation payload"))
		return
	}

	if wantsStream(r) {
		h.streamAnswer(w, r, &req)
		return
	}
	h.fullAnswer(w, r, &req)
}

func (h *Handler) fullAnswer(w http.ResponseWriter, r *http.Request, req *Request) {
	answer, err := h.svc.Answer(r.Context(), req)
	if err != nil {
		// Upstream cause goes to the log, never to the client.
		slog.Error("chat pipeline failed", "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(answerResponse{Answer: answer})
}

func (h *Handler) streamAnswer(w http.ResponseWriter, r *http.Request, req *Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.fullAnswer(w, r, req)
		return
	}

	// SSE headers are committed lazily on the first fragment, so pipeline
	// failures before any output can still return a JSON 500.
	started := false
	emit := func(fragment string) error {
		if fragment == "" {
			return nil
		}
		if !started {
			writeSSEHeaders(w)
			started = true
		}
		payload, err := json.Marshal(fragmentPayload{Content: fragment})
		if err != nil {
			// Malformed fragment: skip it, keep the stream alive.
			return nil
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	err := h.svc.Stream(r.Context(), req, emit)
	if err != nil && !started {
		slog.Error("chat pipeline failed", "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}
	if err != nil {
		// Mid-stream failure: already-sent fragments stand, but the stream
		// must still terminate deterministically.
		slog.Error("chat stream failed mid-response", "error", err)
	}

	if !started {
		writeSSEHeaders(w)
	}
	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}

func writeSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
}

func wantsStream(r *http.Request) bool {
	if r.URL.Query().Get("stream") == "false" {
		return false
	}
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/event-stream") {
		return false
	}
	return true
}

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pairmed/api/internal/core/ports"
)

type EventsHandler struct {
	feed ports.EventFeed
}

func NewEventsHandler(feed ports.EventFeed) *EventsHandler {
	return &EventsHandler{
		feed: feed,
	}
}

// Stream pushes invite/couple change events to the client as
// server-sent events. The subscription is torn down when the client
// disconnects.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	events, cancel, err := h.feed.Subscribe(r.Context())
	if err != nil {
		internalError(w, "event subscribe", err)
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-events:
			if !open {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}

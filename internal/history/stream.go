package history

import (
	"fmt"
	"net/http"
)

// StreamHandler pushes a "changed" server-sent event whenever the store's
// broadcaster fires. Bursts collapse into one event per pending read.
type StreamHandler struct {
	bus *Broadcaster
}

func NewStreamHandler(bus *Broadcaster) *StreamHandler {
	return &StreamHandler{bus: bus}
}

// ServeHTTP handles GET /api/history/stream.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.bus == nil {
		http.Error(w, "stream not ready", http.StatusServiceUnavailable)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "stream unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	signal := make(chan struct{}, 1)
	unsubscribe := h.bus.Subscribe(func() {
		select {
		case signal <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	_, _ = w.Write([]byte("event: ready\ndata: {}\n\n"))
	flusher.Flush()

	seq := 0
	for {
		select {
		case <-signal:
			seq++
			_, _ = fmt.Fprintf(w, "id: %d\nevent: changed\ndata: {}\n\n", seq)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

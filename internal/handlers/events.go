package handlers

import (
	"fmt"
	"net/http"
	"time"

	applog "banktrack/internal/log"
	"banktrack/models"
)

// Events streams record-set changes to the browser as Server-Sent Events.
// One subscription is opened per connection and released when the browser
// goes away. The event payload is a small summary; the board re-renders
// itself by re-fetching the partial.
func Events(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if bankStore == nil {
		applog.Debug(r.Context(), "events request without store")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	updates := make(chan int, 8)
	unsubscribe, err := bankStore.Subscribe(r.Context(), func(banks []models.Bank) {
		select {
		case updates <- len(banks):
		default:
			// A slow client misses intermediate sets; the next push carries
			// the full authoritative state anyway.
		}
	})
	if err != nil {
		applog.Error(r.Context(), "failed to open subscription", "error", err)
		http.Error(w, "unable to reach the record store", http.StatusServiceUnavailable)
		return
	}
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	applog.Debug(r.Context(), "event stream opened", "remote", r.RemoteAddr)

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			applog.Debug(r.Context(), "event stream closed", "remote", r.RemoteAddr)
			return
		case count := <-updates:
			if _, err := fmt.Fprintf(w, "event: pipeline\ndata: {\"banks\": %d}\n\n", count); err != nil {
				applog.Debug(r.Context(), "event stream write failed", "error", err)
				return
			}
			flusher.Flush()
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ":\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

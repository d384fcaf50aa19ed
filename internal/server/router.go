package server

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"banktrack/internal/handlers"
	applog "banktrack/internal/log"
)

// newRouter wires the HTTP routes. Page and write routes run inside the
// session middleware; the event stream and the health probe stay outside it
// so streaming responses are never buffered.
func newRouter(sessionManager *scs.SessionManager) http.Handler {
	pageMux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	pageMux.HandleFunc("/", handlers.Pipeline)
	pageMux.HandleFunc("/board", handlers.Board)
	pageMux.HandleFunc("/banks", handlers.BankResource)
	pageMux.HandleFunc("/banks/", handlers.BankResource)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handlers.Health)
	mux.HandleFunc("/events", handlers.Events)
	mux.Handle("/", sessionManager.LoadAndSave(pageMux))
	applog.Debug(context.Background(), "http routes registered")
	return mux
}

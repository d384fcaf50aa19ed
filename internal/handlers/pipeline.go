package handlers

import (
	"net/http"

	templpkg "github.com/a-h/templ"

	applog "banktrack/internal/log"
	"banktrack/internal/views/layout"
	"banktrack/internal/views/pages"
)

// Pipeline renders the tracker page: filter controls plus the live board.
func Pipeline(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	view, ok := loadView(w, r)
	if !ok {
		return
	}

	var component templpkg.Component
	if isHTMX(r) {
		component = pages.Pipeline(view)
	} else {
		component = layout.Base("Milk Bank Pipeline", pages.Pipeline(view))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render pipeline page", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Board renders the board partial; the controls form refreshes it on filter
// changes and on every store push.
func Board(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	view, ok := loadView(w, r)
	if !ok {
		return
	}
	renderBoard(w, r, view)
}

func loadView(w http.ResponseWriter, r *http.Request) (pages.PipelineView, bool) {
	if bankStore == nil {
		applog.Debug(r.Context(), "pipeline request without store")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return pages.PipelineView{}, false
	}

	banks, err := bankStore.Snapshot(r.Context())
	if err != nil {
		applog.Error(r.Context(), "failed to load record set", "error", err)
		http.Error(w, "unable to reach the record store", http.StatusServiceUnavailable)
		return pages.PipelineView{}, false
	}

	return resolveView(r, pages.NewPipelineView(banks, universeSize)), true
}

func renderBoard(w http.ResponseWriter, r *http.Request, view pages.PipelineView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Board(view).Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render board", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

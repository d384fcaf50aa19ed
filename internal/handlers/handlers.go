package handlers

import (
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"banktrack/internal/config"
	"banktrack/internal/store"
	"banktrack/internal/views/pages"
)

const (
	sessionFilterKey = "view:filter"
	sessionSortKey   = "view:sort"
)

var (
	sessionManager *scs.SessionManager
	bankStore      *store.Store
	universeSize   = config.DefaultUniverseSize
)

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(sm *scs.SessionManager, st *store.Store, universe int) {
	sessionManager = sm
	bankStore = st
	if universe > 0 {
		universeSize = universe
	} else {
		universeSize = config.DefaultUniverseSize
	}
}

// resolveView derives the per-request UI state: session-remembered filter and
// sort preferences, overridden by explicit query parameters, plus the
// transient search string and open add/edit form.
func resolveView(r *http.Request, view pages.PipelineView) pages.PipelineView {
	ctx := r.Context()

	if sessionManager != nil {
		if saved := sessionManager.GetString(ctx, sessionFilterKey); saved != "" {
			view.Filter = pages.NormalizeFilter(saved)
		}
		if saved := sessionManager.GetString(ctx, sessionSortKey); saved != "" {
			view.Sort = pages.NormalizeSort(saved)
		}
	}

	query := r.URL.Query()
	if query.Has("filter") {
		view.Filter = pages.NormalizeFilter(query.Get("filter"))
		if sessionManager != nil {
			sessionManager.Put(ctx, sessionFilterKey, view.Filter)
		}
	}
	if query.Has("sort") {
		view.Sort = pages.NormalizeSort(query.Get("sort"))
		if sessionManager != nil {
			sessionManager.Put(ctx, sessionSortKey, view.Sort)
		}
	}

	view.Query = strings.TrimSpace(query.Get("q"))
	view.EditingID = strings.TrimSpace(query.Get("edit"))
	view.ShowAddForm = query.Get("add") == "1"
	return view
}

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	applog "banktrack/internal/log"
	"banktrack/internal/store"
	"banktrack/internal/views/pages"
)

// BankResource handles the write operations for bank records: create on the
// collection, update and delete on a single record. Every successful write
// responds with the refreshed board; the store push fans the same change out
// to every other connected browser.
func BankResource(w http.ResponseWriter, r *http.Request) {
	if bankStore == nil {
		applog.Debug(r.Context(), "bank request without store")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/banks"), "/")

	if path == "" {
		if r.Method == http.MethodPost {
			createBank(w, r)
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if strings.Contains(path, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		updateBank(w, r, path)
	case http.MethodDelete:
		deleteBank(w, r, path)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func createBank(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid submission", http.StatusBadRequest)
		return
	}

	fields := fieldsFromForm(r)
	if fields.Name == "" {
		http.Error(w, "a bank name is required", http.StatusBadRequest)
		return
	}

	bank, err := bankStore.Create(r.Context(), fields)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	applog.Info(r.Context(), "bank created", "id", bank.ID, "name", bank.Name)
	respondAfterWrite(w, r)
}

func updateBank(w http.ResponseWriter, r *http.Request, id string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid submission", http.StatusBadRequest)
		return
	}

	bank, err := bankStore.Update(r.Context(), id, changesFromForm(r))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	applog.Info(r.Context(), "bank updated", "id", bank.ID)
	respondAfterWrite(w, r)
}

func deleteBank(w http.ResponseWriter, r *http.Request, id string) {
	if err := bankStore.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, err)
		return
	}

	applog.Info(r.Context(), "bank deleted", "id", id)
	respondAfterWrite(w, r)
}

// fieldsFromForm reads the add-form draft. The draft is committed verbatim;
// normalization happens in the store.
func fieldsFromForm(r *http.Request) store.Fields {
	return store.Fields{
		Name:            strings.TrimSpace(r.FormValue("name")),
		Location:        strings.TrimSpace(r.FormValue("location")),
		Contact:         strings.TrimSpace(r.FormValue("contact")),
		Email:           strings.TrimSpace(r.FormValue("email")),
		Phone:           strings.TrimSpace(r.FormValue("phone")),
		Stage:           r.FormValue("stage"),
		Notes:           r.FormValue("notes"),
		PasteurizerType: r.FormValue("pasteurizer_type"),
		VolumePotential: parseVolume(r.FormValue("volume_potential")),
		BottleSizes:     r.Form["bottle_sizes"],
		NextAction:      pages.ParseDate(r.FormValue("next_action")),
		LastContact:     pages.ParseDate(r.FormValue("last_contact")),
	}
}

// changesFromForm reads the edit-form draft. The form submits the full
// record, so every field is replaced on save.
func changesFromForm(r *http.Request) store.Changes {
	fields := fieldsFromForm(r)
	sizes := r.Form["bottle_sizes"]
	if sizes == nil {
		sizes = []string{}
	}
	return store.Changes{
		Name:            &fields.Name,
		Location:        &fields.Location,
		Contact:         &fields.Contact,
		Email:           &fields.Email,
		Phone:           &fields.Phone,
		Stage:           &fields.Stage,
		Notes:           &fields.Notes,
		PasteurizerType: &fields.PasteurizerType,
		VolumePotential: &fields.VolumePotential,
		BottleSizes:     sizes,
		NextAction:      store.DateChange{Set: true, Value: fields.NextAction},
		LastContact:     store.DateChange{Set: true, Value: fields.LastContact},
	}
}

func parseVolume(value string) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}

func respondAfterWrite(w http.ResponseWriter, r *http.Request) {
	if !isHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	view, ok := loadView(w, r)
	if !ok {
		return
	}
	renderBoard(w, r, view)
}

func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if store.IsNotFound(err) {
		applog.Debug(r.Context(), "write against vanished record", "error", err)
		http.Error(w, "the record no longer exists", http.StatusNotFound)
		return
	}
	applog.Error(r.Context(), "store write failed", "error", err)
	http.Error(w, "unable to write to the record store", http.StatusServiceUnavailable)
}

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/rpattn/datamask/internal/datamask"
	"github.com/rpattn/datamask/internal/domain"
	"github.com/rpattn/datamask/internal/middleware"
	"github.com/rpattn/datamask/internal/repository"
	"github.com/rpattn/datamask/internal/schema/validator"
	"github.com/rpattn/datamask/internal/session"
)

const maxBodyBytes = 4 << 20

// Handler exposes data mask sessions over HTTP
type Handler struct {
	sessions *session.Manager
	mux      *http.ServeMux
}

// NewHTTPHandler wires the session routes. Dashboard routes need the dashboard loader
// middleware; without it they answer 503.
func NewHTTPHandler(sessions *session.Manager) http.Handler {
	h := &Handler{sessions: sessions, mux: http.NewServeMux()}

	h.mux.HandleFunc("POST /api/sessions", h.createSession)
	h.mux.HandleFunc("DELETE /api/sessions/{sessionId}", h.deleteSession)
	h.mux.HandleFunc("GET /api/sessions/{sessionId}/datamask", h.getDataMask)
	h.mux.HandleFunc("GET /api/sessions/{sessionId}/names", h.getNames)
	h.mux.HandleFunc("POST /api/sessions/{sessionId}/actions", h.dispatchAction)
	h.mux.HandleFunc("POST /api/sessions/{sessionId}/dashboards/{dashboardId}/hydrate", h.hydrateFromDashboard)
	h.mux.HandleFunc("GET /api/dashboards", h.listDashboards)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type sessionResponse struct {
	SessionID uuid.UUID `json:"sessionId"`
	Revision  int64     `json:"revision"`
}

type snapshotResponse struct {
	SessionID uuid.UUID            `json:"sessionId"`
	Revision  int64                `json:"revision"`
	DataMask  domain.DataMaskState `json:"dataMask"`
}

type namesResponse struct {
	SessionID uuid.UUID         `json:"sessionId"`
	Revision  int64             `json:"revision"`
	Derived   map[string]string `json:"derived"`
	Stored    map[string]string `json:"stored"`
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	id, store := h.sessions.Create()
	writeJSON(w, http.StatusCreated, sessionResponse{SessionID: id, Revision: store.Snapshot().Revision})
}

func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := parseSessionID(w, r)
	if !ok {
		return
	}
	if err := h.sessions.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getDataMask(w http.ResponseWriter, r *http.Request) {
	id, store, ok := h.lookupStore(w, r)
	if !ok {
		return
	}
	writeSnapshot(w, id, store.Snapshot())
}

func (h *Handler) getNames(w http.ResponseWriter, r *http.Request) {
	id, store, ok := h.lookupStore(w, r)
	if !ok {
		return
	}
	snapshot := store.Snapshot()
	writeJSON(w, http.StatusOK, namesResponse{
		SessionID: id,
		Revision:  snapshot.Revision,
		Derived:   datamask.DisplayNames(snapshot.Filters, snapshot.DataMask),
		Stored:    datamask.StoredNames(snapshot.DataMask),
	})
}

func (h *Handler) dispatchAction(w http.ResponseWriter, r *http.Request) {
	id, store, ok := h.lookupStore(w, r)
	if !ok {
		return
	}

	body, err := readBody(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	action, err := datamask.DecodeAction(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid action: %v", err), http.StatusBadRequest)
		return
	}
	if hydrate, ok := action.(datamask.HydrateAction); ok {
		if err := validator.ValidateFilterConfiguration(hydrate.Data.DashboardInfo.Metadata.NativeFilterConfiguration); err != nil {
			http.Error(w, fmt.Sprintf("invalid filter configuration: %v", err), http.StatusBadRequest)
			return
		}
	}

	writeSnapshot(w, id, store.Dispatch(action))
}

func (h *Handler) hydrateFromDashboard(w http.ResponseWriter, r *http.Request) {
	id, store, ok := h.lookupStore(w, r)
	if !ok {
		return
	}

	dashboardID, err := strconv.ParseInt(r.PathValue("dashboardId"), 10, 64)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid dashboard id: %v", err), http.StatusBadRequest)
		return
	}

	loader := middleware.DashboardLoaderFromContext(r.Context())
	if loader == nil {
		http.Error(w, "dashboard source is not configured", http.StatusServiceUnavailable)
		return
	}

	body, err := readBody(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dataMask map[string]domain.DataMaskPatch
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &dataMask); err != nil {
			http.Error(w, fmt.Sprintf("invalid data mask: %v", err), http.StatusBadRequest)
			return
		}
	}

	dashboard, err := loader.Load(r.Context(), dashboardID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := validator.ValidateFilterConfiguration(dashboard.Metadata.NativeFilterConfiguration); err != nil {
		http.Error(w, fmt.Sprintf("dashboard %d has an invalid filter configuration: %v", dashboardID, err), http.StatusUnprocessableEntity)
		return
	}

	snapshot := store.Dispatch(datamask.HydrateAction{
		Data: domain.NewHydratePayload(dashboard.Metadata, dataMask),
	})
	writeSnapshot(w, id, snapshot)
}

func (h *Handler) listDashboards(w http.ResponseWriter, r *http.Request) {
	loader := middleware.DashboardLoaderFromContext(r.Context())
	if loader == nil {
		http.Error(w, "dashboard source is not configured", http.StatusServiceUnavailable)
		return
	}

	ids, err := parseIDList(r.URL.Query().Get("ids"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dashboards, err := loader.LoadMany(r.Context(), ids)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboards)
}

func (h *Handler) lookupStore(w http.ResponseWriter, r *http.Request) (uuid.UUID, *datamask.Store, bool) {
	id, ok := parseSessionID(w, r)
	if !ok {
		return uuid.Nil, nil, false
	}
	store, err := h.sessions.Get(id)
	if err != nil {
		writeError(w, err)
		return uuid.Nil, nil, false
	}
	return id, store, true
}

func parseSessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(r.PathValue("sessionId")))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid session id: %v", err), http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func parseIDList(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("ids is required")
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid dashboard id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}

func writeSnapshot(w http.ResponseWriter, id uuid.UUID, snapshot datamask.Snapshot) {
	writeJSON(w, http.StatusOK, snapshotResponse{
		SessionID: id,
		Revision:  snapshot.Revision,
		DataMask:  snapshot.DataMask,
	})
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, repository.ErrDashboardNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}

// Package api mounts the REST surface of the activities service. The wire
// contract is fixed: catalog reads return the raw name-to-record object,
// failures return {"detail": "..."} with 404/400 status codes.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mergington-hs/activities/internal/events"
	"github.com/mergington-hs/activities/internal/registry"
)

// activityRegistry is the slice of registry behavior the handlers need.
type activityRegistry interface {
	List() map[string]registry.Activity
	Signup(name, email string) error
	Enrolled(name string) int
}

type Handler struct {
	registry activityRegistry
	events   *events.Hub
}

func Register(mux *http.ServeMux, reg activityRegistry, eventsHub *events.Hub) {
	h := &Handler{registry: reg, events: eventsHub}
	mux.HandleFunc("GET /activities", h.listActivities)
	mux.HandleFunc("POST /activities/{activity}/signup", h.signup)
	mux.HandleFunc("GET /api/events", h.streamEvents)
}

func (h *Handler) emit(event events.Event) {
	if h == nil || h.events == nil {
		return
	}
	h.events.Publish(event)
}

func (h *Handler) listActivities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.List())
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	// The mux decodes path escapes, so "Chess%20Club" arrives as the
	// literal catalog key. Matching is exact; no trimming or case folding.
	name := r.PathValue("activity")

	query := r.URL.Query()
	if !query.Has("email") {
		writeDetail(w, http.StatusBadRequest, "email query parameter is required")
		return
	}
	// Any provided string is accepted verbatim; email format is not
	// validated.
	email := query.Get("email")

	if err := h.registry.Signup(name, email); err != nil {
		writeSignupError(w, err, name, email)
		return
	}

	h.emit(events.NewSignupEvent(name, email, h.registry.Enrolled(name)))

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("%s signed up for %s", email, name),
	})
}

func writeSignupError(w http.ResponseWriter, err error, name, email string) {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Activity not found")
	case errors.Is(err, registry.ErrAlreadyEnrolled):
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("%s is already signed up for %s", email, name))
	case errors.Is(err, registry.ErrFull):
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("%s is full", name))
	default:
		writeDetail(w, http.StatusInternalServerError, "signup failed")
	}
}

// streamEvents pushes hub events to the client as server-sent events. The
// front-end uses the feed to refresh the catalog after signups.
func (h *Handler) streamEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeDetail(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ch, unsubscribe := h.events.Subscribe(16)
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	if err := writeSSE(w, events.NewEvent(events.TypeReady, nil)); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-ch:
			if !open {
				return
			}
			if err := writeSSE(w, event); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeSSE(w io.Writer, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
	return err
}

// writeDetail reports a request failure in the service's error shape.
func writeDetail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"detail": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	if err := enc.Encode(payload); err != nil {
		slog.Error("json encode error", "err", err)
	}
}

package http

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"quiz-session-service/internal/app"
	"quiz-session-service/internal/domain"
)

// API exposes quiz sessions as JSON resources.
type API struct {
	service     *app.QuizService
	defaultBank string
}

func NewAPI(service *app.QuizService, defaultBank string) *API {
	return &API{service: service, defaultBank: defaultBank}
}

// Routes mounts the session endpoints on r.
func (a *API) Routes(r chi.Router) {
	r.Post("/sessions", a.startSession)
	r.Get("/sessions/{id}", a.getSession)
	r.Post("/sessions/{id}/actions", a.applyAction)
	r.Delete("/sessions/{id}", a.closeSession)
}

type startRequest struct {
	BankID string `json:"bankId"`
}

func (a *API) startSession(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	// an empty body starts the default bank
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.BankID == "" {
		req.BankID = a.defaultBank
	}

	view, err := a.service.Start(r.Context(), req.BankID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (a *API) getSession(w http.ResponseWriter, r *http.Request) {
	view, err := a.service.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *API) applyAction(w http.ResponseWriter, r *http.Request) {
	var action app.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	view, err := a.service.Apply(r.Context(), chi.URLParam(r, "id"), action)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *API) closeSession(w http.ResponseWriter, r *http.Request) {
	a.service.Close(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrBankNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnknownAction):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNoOptions), errors.Is(err, domain.ErrCorrectOptionCount):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("quiz api: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorPayload{Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/simonkvalheim/reducer-bank/internal/middleware"
	"github.com/simonkvalheim/reducer-bank/internal/model"
	"github.com/simonkvalheim/reducer-bank/internal/processor"
)

// Dispatcher owns the account state
type Dispatcher interface {
	State(ctx context.Context) (model.AccountState, error)
	Dispatch(ctx context.Context, action model.Action) (*processor.DispatchResult, error)
	ControlAction(control model.Control) (model.Action, error)
}

// ActionQueue accepts actions for asynchronous dispatch
type ActionQueue interface {
	PublishAction(ctx context.Context, req model.DispatchRequest) (uuid.UUID, error)
}

// AccountHandler handles HTTP requests for the account widget
type AccountHandler struct {
	dispatcher Dispatcher
	queue      ActionQueue // nil in sync mode
}

// NewAccountHandler creates a new AccountHandler.
// Pass a nil queue to dispatch actions synchronously.
func NewAccountHandler(dispatcher Dispatcher, queue ActionQueue) *AccountHandler {
	return &AccountHandler{dispatcher: dispatcher, queue: queue}
}

// RegisterRoutes sets up the account routes on the given router
func (h *AccountHandler) RegisterRoutes(r chi.Router) {
	r.Get("/state", h.GetState)
	r.Post("/actions", h.DispatchAction)
	r.Post("/controls/{control}", h.PressControl)
	r.Post("/dialog/dismiss", h.DismissDialog)
}

// GetState handles GET /state
// Returns the state with its error dialog and enabled controls
func (h *AccountHandler) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := h.dispatcher.State(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read state")
		return
	}

	writeJSON(w, http.StatusOK, state.View())
}

// DispatchAction handles POST /actions
func (h *AccountHandler) DispatchAction(w http.ResponseWriter, r *http.Request) {
	var req model.DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.dispatch(w, r, req.Action())
}

// PressControl handles POST /controls/{control}
func (h *AccountHandler) PressControl(w http.ResponseWriter, r *http.Request) {
	control := model.Control(chi.URLParam(r, "control"))

	action, err := h.dispatcher.ControlAction(control)
	if err != nil {
		writeDispatchError(w, err)
		return
	}

	h.dispatch(w, r, action)
}

// DismissDialog handles POST /dialog/dismiss
func (h *AccountHandler) DismissDialog(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, model.CloseError{})
}

// dispatch applies action and writes the DispatchResult.
// In async mode every action goes through the queue, so actions from all
// routes are applied in the order they were accepted, and 202 is returned.
func (h *AccountHandler) dispatch(w http.ResponseWriter, r *http.Request, action model.Action) {
	subject := middleware.GetSubject(r.Context())

	if h.queue != nil {
		id, err := h.queue.PublishAction(r.Context(), model.NewDispatchRequest(action))
		if err != nil {
			writeDispatchError(w, err)
			return
		}
		log.Printf("Queued action %s (type: %s, subject: %q)", id, action.Type(), subject)
		writeJSON(w, http.StatusAccepted, map[string]interface{}{
			"id":     id,
			"status": "queued",
		})
		return
	}

	result, err := h.dispatcher.Dispatch(r.Context(), action)
	if err != nil {
		writeDispatchError(w, err)
		return
	}
	result.Subject = subject

	writeJSON(w, http.StatusOK, result)
}

// writeDispatchError maps dispatch errors to HTTP status codes
func writeDispatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrControlDisabled):
		writeError(w, http.StatusConflict, model.ErrControlDisabled.Error())
	case errors.Is(err, model.ErrUnknownControl):
		writeError(w, http.StatusNotFound, model.ErrUnknownControl.Error())
	case errors.Is(err, model.ErrQueueUnavailable):
		log.Printf("Queue error: %v", err)
		writeError(w, http.StatusServiceUnavailable, model.ErrQueueUnavailable.Error())
	default:
		log.Printf("Dispatch error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to dispatch action")
	}
}

// Helper functions for HTTP responses

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

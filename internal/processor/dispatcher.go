package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/simonkvalheim/reducer-bank/internal/model"
)

// StateStore holds the current account state
type StateStore interface {
	Get(ctx context.Context) (model.AccountState, error)
	Update(ctx context.Context, fn func(model.AccountState) (model.AccountState, error)) (model.AccountState, error)
}

// DispatchResult describes one applied transition
type DispatchResult struct {
	ID           uuid.UUID          `json:"id"`
	Type         model.ActionType   `json:"type"`
	Previous     model.AccountState `json:"previous"`
	State        model.AccountState `json:"state"`
	Refusal      string             `json:"refusal,omitempty"` // set when the reducer refused the action
	Subject      string             `json:"subject,omitempty"` // who dispatched it, when authenticated
	DispatchedAt time.Time          `json:"dispatched_at"`
}

// Dispatcher owns the account state and applies actions to it one at a time
type Dispatcher struct {
	store           StateStore
	amounts         model.ControlAmounts
	enforceControls bool
}

// NewDispatcher creates a new Dispatcher.
// When enforceControls is set, actions whose widget button would be disabled
// are rejected with ErrControlDisabled before reaching the reducer.
func NewDispatcher(store StateStore, amounts model.ControlAmounts, enforceControls bool) *Dispatcher {
	return &Dispatcher{
		store:           store,
		amounts:         amounts,
		enforceControls: enforceControls,
	}
}

// State returns the current account state
func (d *Dispatcher) State(ctx context.Context) (model.AccountState, error) {
	return d.store.Get(ctx)
}

// Dispatch reduces the current state with action and replaces it wholesale
func (d *Dispatcher) Dispatch(ctx context.Context, action model.Action) (*DispatchResult, error) {
	var (
		previous model.AccountState
		refusal  string
	)

	next, err := d.store.Update(ctx, func(s model.AccountState) (model.AccountState, error) {
		previous = s
		if d.enforceControls && !s.Allows(action) {
			return s, model.ErrControlDisabled
		}
		refusal = Refusal(s, action)
		return Reduce(s, action), nil
	})
	if err != nil {
		return nil, fmt.Errorf("dispatch %s: %w", actionName(action), err)
	}

	return &DispatchResult{
		ID:           uuid.New(),
		Type:         actionType(action),
		Previous:     previous,
		State:        next,
		Refusal:      refusal,
		DispatchedAt: time.Now(),
	}, nil
}

// ControlAction returns the fixed action behind a widget button
func (d *Dispatcher) ControlAction(control model.Control) (model.Action, error) {
	return control.Action(d.amounts)
}

func actionType(a model.Action) model.ActionType {
	if a == nil {
		return ""
	}
	return a.Type()
}

func actionName(a model.Action) string {
	if t := actionType(a); t != "" {
		return string(t)
	}
	return "<nil>"
}

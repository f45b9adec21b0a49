package repository

import (
	"context"
	"sync"

	"github.com/simonkvalheim/reducer-bank/internal/model"
)

// StateRepository holds the single account state in memory.
// Nothing is persisted; a restart begins from the initial state.
type StateRepository struct {
	mu    sync.Mutex
	state model.AccountState
}

// NewStateRepository creates a new StateRepository holding the initial state
func NewStateRepository() *StateRepository {
	return &StateRepository{state: model.InitialState()}
}

// Get returns the current state
func (r *StateRepository) Get(ctx context.Context) (model.AccountState, error) {
	if err := ctx.Err(); err != nil {
		return model.AccountState{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, nil
}

// Update applies fn to the current state and stores its result.
// Calls are serialized, so each update sees the result of the previous one.
// If fn returns an error the stored state is left untouched.
func (r *StateRepository) Update(ctx context.Context, fn func(model.AccountState) (model.AccountState, error)) (model.AccountState, error) {
	if err := ctx.Err(); err != nil {
		return model.AccountState{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := fn(r.state)
	if err != nil {
		return r.state, err
	}

	r.state = next
	return next, nil
}

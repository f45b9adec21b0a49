package model

import "strings"

// ActionType names a kind of state transition
type ActionType string

const (
	ActionStart        ActionType = "start"
	ActionError        ActionType = "error"
	ActionCloseError   ActionType = "closeError"
	ActionOpenAccount  ActionType = "openAccount"
	ActionDeposit      ActionType = "deposit"
	ActionWithdraw     ActionType = "withdraw"
	ActionRequestLoan  ActionType = "requestLoan"
	ActionPayLoan      ActionType = "payLoan"
	ActionCloseAccount ActionType = "closeAccount"
)

// HasPayload reports whether actions of this type carry an amount
func (t ActionType) HasPayload() bool {
	switch t {
	case ActionDeposit, ActionWithdraw, ActionRequestLoan:
		return true
	}
	return false
}

// Known reports whether t is one of the recognized action types
func (t ActionType) Known() bool {
	switch t {
	case ActionStart, ActionError, ActionCloseError, ActionOpenAccount,
		ActionDeposit, ActionWithdraw, ActionRequestLoan, ActionPayLoan, ActionCloseAccount:
		return true
	}
	return false
}

// Action is a request to transition the account state.
// The set of implementations is closed to this package.
type Action interface {
	Type() ActionType
	action()
}

type (
	Start        struct{}
	Error        struct{}
	CloseError   struct{}
	OpenAccount  struct{}
	PayLoan      struct{}
	CloseAccount struct{}

	Deposit     struct{ Amount int64 }
	Withdraw    struct{ Amount int64 }
	RequestLoan struct{ Amount int64 }

	// Unknown is an action kind this package does not recognize
	Unknown struct{ Name string }
)

func (Start) Type() ActionType        { return ActionStart }
func (Error) Type() ActionType        { return ActionError }
func (CloseError) Type() ActionType   { return ActionCloseError }
func (OpenAccount) Type() ActionType  { return ActionOpenAccount }
func (Deposit) Type() ActionType      { return ActionDeposit }
func (Withdraw) Type() ActionType     { return ActionWithdraw }
func (RequestLoan) Type() ActionType  { return ActionRequestLoan }
func (PayLoan) Type() ActionType      { return ActionPayLoan }
func (CloseAccount) Type() ActionType { return ActionCloseAccount }
func (u Unknown) Type() ActionType    { return ActionType(u.Name) }

func (Start) action()        {}
func (Error) action()        {}
func (CloseError) action()   {}
func (OpenAccount) action()  {}
func (Deposit) action()      {}
func (Withdraw) action()     {}
func (RequestLoan) action()  {}
func (PayLoan) action()      {}
func (CloseAccount) action() {}
func (Unknown) action()      {}

// DispatchRequest is the payload for dispatching an action
type DispatchRequest struct {
	Type    ActionType `json:"type"`
	Payload *int64     `json:"payload,omitempty"`
}

// Validate checks if the dispatch request is well formed.
// Unrecognized types are accepted and dispatched as Unknown.
func (r DispatchRequest) Validate() error {
	if strings.TrimSpace(string(r.Type)) == "" {
		return ErrActionTypeRequired
	}
	if r.Type.HasPayload() && r.Payload == nil {
		return ErrPayloadRequired
	}
	if r.Type.Known() && !r.Type.HasPayload() && r.Payload != nil {
		return ErrUnexpectedPayload
	}
	return nil
}

// Action converts the request to its typed action. Call Validate first.
func (r DispatchRequest) Action() Action {
	var amount int64
	if r.Payload != nil {
		amount = *r.Payload
	}

	switch r.Type {
	case ActionStart:
		return Start{}
	case ActionError:
		return Error{}
	case ActionCloseError:
		return CloseError{}
	case ActionOpenAccount:
		return OpenAccount{}
	case ActionDeposit:
		return Deposit{Amount: amount}
	case ActionWithdraw:
		return Withdraw{Amount: amount}
	case ActionRequestLoan:
		return RequestLoan{Amount: amount}
	case ActionPayLoan:
		return PayLoan{}
	case ActionCloseAccount:
		return CloseAccount{}
	default:
		return Unknown{Name: string(r.Type)}
	}
}

// NewDispatchRequest builds the wire form of an action
func NewDispatchRequest(a Action) DispatchRequest {
	req := DispatchRequest{Type: a.Type()}
	var amount int64
	switch v := a.(type) {
	case Deposit:
		amount = v.Amount
	case Withdraw:
		amount = v.Amount
	case RequestLoan:
		amount = v.Amount
	default:
		return req
	}
	req.Payload = &amount
	return req
}

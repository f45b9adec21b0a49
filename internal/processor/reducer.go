package processor

import (
	"github.com/simonkvalheim/reducer-bank/internal/model"
)

// Reduce computes the next account state from the current state and an action.
// It is total: every action value, including nil and Unknown, yields a state.
// Refused actions are reported through ShowModal and ErrorMessage, never as Go errors.
//
// Reduce does not check IsActive. Gating actions on an open account is done by
// the Dispatcher, the same way the widget disables its buttons.
func Reduce(state model.AccountState, action model.Action) model.AccountState {
	if msg := Refusal(state, action); msg != "" {
		state.ShowModal = true
		state.ErrorMessage = msg
		return state
	}

	switch a := action.(type) {
	case model.Start:
		return model.InitialState()

	case model.Error:
		state.ShowModal = true

	case model.CloseError:
		state.ShowModal = false

	case model.OpenAccount:
		state.IsActive = true
		state.Balance = model.OpeningBalance

	case model.Deposit:
		state.Balance += a.Amount

	case model.Withdraw:
		// No floor: a negative balance blocks closing the account
		state.Balance -= a.Amount

	case model.RequestLoan:
		state.LoanActive = true
		state.Loan = a.Amount
		state.Balance += a.Amount

	case model.PayLoan:
		state.Balance -= state.Loan
		state.Loan = 0
		state.LoanActive = false

	case model.CloseAccount:
		return model.InitialState()
	}

	return state
}

// Refusal returns the dialog message Reduce would show for action, or ""
// when the action's precondition holds.
func Refusal(state model.AccountState, action model.Action) string {
	switch action.(type) {
	case model.Start, model.Error, model.CloseError, model.OpenAccount,
		model.Deposit, model.Withdraw:
		return ""
	case model.RequestLoan:
		if state.LoanActive {
			return model.MsgLoanOutstanding
		}
		return ""
	case model.PayLoan:
		if !state.LoanActive {
			return model.MsgNoActiveLoan
		}
		return ""
	case model.CloseAccount:
		if state.Balance != 0 {
			return model.MsgBalanceNotEmpty
		}
		return ""
	default:
		return model.MsgUnknownAction
	}
}

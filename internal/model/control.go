package model

// Control names an on-screen button of the account widget
type Control string

const (
	ControlOpenAccount  Control = "open-account"
	ControlDeposit      Control = "deposit"
	ControlWithdraw     Control = "withdraw"
	ControlRequestLoan  Control = "request-loan"
	ControlPayLoan      Control = "pay-loan"
	ControlCloseAccount Control = "close-account"
	ControlDismissError Control = "dismiss-error"
)

// ControlAmounts are the fixed payloads the widget sends with its buttons
type ControlAmounts struct {
	Deposit  int64
	Withdraw int64
	Loan     int64
}

// DefaultControlAmounts returns the payloads used by the original widget
func DefaultControlAmounts() ControlAmounts {
	return ControlAmounts{
		Deposit:  150,
		Withdraw: 50,
		Loan:     5000,
	}
}

// Action returns the action a control dispatches when pressed
func (c Control) Action(amounts ControlAmounts) (Action, error) {
	switch c {
	case ControlOpenAccount:
		return OpenAccount{}, nil
	case ControlDeposit:
		return Deposit{Amount: amounts.Deposit}, nil
	case ControlWithdraw:
		return Withdraw{Amount: amounts.Withdraw}, nil
	case ControlRequestLoan:
		return RequestLoan{Amount: amounts.Loan}, nil
	case ControlPayLoan:
		return PayLoan{}, nil
	case ControlCloseAccount:
		return CloseAccount{}, nil
	case ControlDismissError:
		return CloseError{}, nil
	default:
		return nil, ErrUnknownControl
	}
}

// Controls reports which widget buttons are enabled
type Controls struct {
	OpenAccount  bool `json:"open_account"`
	Deposit      bool `json:"deposit"`
	Withdraw     bool `json:"withdraw"`
	RequestLoan  bool `json:"request_loan"`
	PayLoan      bool `json:"pay_loan"`
	CloseAccount bool `json:"close_account"`
	DismissError bool `json:"dismiss_error"`
}

// Controls returns the enabled buttons for this state.
// Opening is only possible while closed; everything else needs an open account.
func (s AccountState) Controls() Controls {
	return Controls{
		OpenAccount:  !s.IsActive,
		Deposit:      s.IsActive,
		Withdraw:     s.IsActive,
		RequestLoan:  s.IsActive,
		PayLoan:      s.IsActive,
		CloseAccount: s.IsActive,
		DismissError: true,
	}
}

// Allows reports whether the control that dispatches a would be enabled.
// Start, Error, CloseError and unknown actions have no gating control.
func (s AccountState) Allows(a Action) bool {
	switch a.(type) {
	case OpenAccount:
		return !s.IsActive
	case Deposit, Withdraw, RequestLoan, PayLoan, CloseAccount:
		return s.IsActive
	default:
		return true
	}
}

// AccountView is the full rendering of the widget
type AccountView struct {
	State    AccountState `json:"state"`
	Dialog   ErrorDialog  `json:"dialog"`
	Controls Controls     `json:"controls"`
}

// View renders the state together with its dialog and controls
func (s AccountState) View() AccountView {
	return AccountView{
		State:    s,
		Dialog:   s.Dialog(),
		Controls: s.Controls(),
	}
}

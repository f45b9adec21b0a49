package model

import (
	"testing"
)

func TestInitialState(t *testing.T) {
	s := InitialState()
	if s != (AccountState{}) {
		t.Errorf("InitialState() = %+v, want zero value", s)
	}
	if s.IsActive || s.LoanActive || s.ShowModal {
		t.Error("InitialState() has a flag set")
	}
}

func TestAccountState_Dialog(t *testing.T) {
	tests := []struct {
		name  string
		state AccountState
		want  ErrorDialog
	}{
		{
			name:  "hidden with no message",
			state: AccountState{},
			want:  ErrorDialog{Visible: false, Title: "Error", Text: DefaultDialogText},
		},
		{
			name:  "visible with message",
			state: AccountState{ShowModal: true, ErrorMessage: MsgNoActiveLoan},
			want:  ErrorDialog{Visible: true, Title: "Error", Text: MsgNoActiveLoan},
		},
		{
			name:  "visible without message falls back",
			state: AccountState{ShowModal: true},
			want:  ErrorDialog{Visible: true, Title: "Error", Text: DefaultDialogText},
		},
		{
			name:  "hidden keeps stale message",
			state: AccountState{ErrorMessage: MsgLoanOutstanding},
			want:  ErrorDialog{Visible: false, Title: "Error", Text: MsgLoanOutstanding},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.state.Dialog()
			if got != tt.want {
				t.Errorf("Dialog() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAccountState_Controls(t *testing.T) {
	closed := AccountState{}.Controls()
	if !closed.OpenAccount || closed.Deposit || closed.Withdraw || closed.RequestLoan ||
		closed.PayLoan || closed.CloseAccount || !closed.DismissError {
		t.Errorf("Controls() for closed account = %+v", closed)
	}

	open := AccountState{IsActive: true, Balance: 500}.Controls()
	if open.OpenAccount || !open.Deposit || !open.Withdraw || !open.RequestLoan ||
		!open.PayLoan || !open.CloseAccount || !open.DismissError {
		t.Errorf("Controls() for open account = %+v", open)
	}
}

func TestAccountState_Allows(t *testing.T) {
	closed := AccountState{}
	open := AccountState{IsActive: true}

	tests := []struct {
		name       string
		action     Action
		wantClosed bool
		wantOpen   bool
	}{
		{"start", Start{}, true, true},
		{"error", Error{}, true, true},
		{"close error", CloseError{}, true, true},
		{"open account", OpenAccount{}, true, false},
		{"deposit", Deposit{Amount: 150}, false, true},
		{"withdraw", Withdraw{Amount: 50}, false, true},
		{"request loan", RequestLoan{Amount: 5000}, false, true},
		{"pay loan", PayLoan{}, false, true},
		{"close account", CloseAccount{}, false, true},
		{"unknown", Unknown{Name: "transfer"}, true, true},
		{"nil", nil, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := closed.Allows(tt.action); got != tt.wantClosed {
				t.Errorf("closed.Allows(%v) = %v, want %v", tt.action, got, tt.wantClosed)
			}
			if got := open.Allows(tt.action); got != tt.wantOpen {
				t.Errorf("open.Allows(%v) = %v, want %v", tt.action, got, tt.wantOpen)
			}
		})
	}
}

func TestControl_Action(t *testing.T) {
	amounts := DefaultControlAmounts()

	tests := []struct {
		control Control
		want    Action
		wantErr error
	}{
		{ControlOpenAccount, OpenAccount{}, nil},
		{ControlDeposit, Deposit{Amount: 150}, nil},
		{ControlWithdraw, Withdraw{Amount: 50}, nil},
		{ControlRequestLoan, RequestLoan{Amount: 5000}, nil},
		{ControlPayLoan, PayLoan{}, nil},
		{ControlCloseAccount, CloseAccount{}, nil},
		{ControlDismissError, CloseError{}, nil},
		{Control("transfer"), nil, ErrUnknownControl},
	}

	for _, tt := range tests {
		t.Run(string(tt.control), func(t *testing.T) {
			got, err := tt.control.Action(amounts)
			if err != tt.wantErr {
				t.Fatalf("Action() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Action() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestAccountState_View(t *testing.T) {
	s := AccountState{IsActive: true, Balance: 650, ShowModal: true, ErrorMessage: MsgNoActiveLoan}
	v := s.View()
	if v.State != s {
		t.Errorf("View().State = %+v, want %+v", v.State, s)
	}
	if !v.Dialog.Visible || v.Dialog.Text != MsgNoActiveLoan {
		t.Errorf("View().Dialog = %+v", v.Dialog)
	}
	if v.Controls.OpenAccount {
		t.Error("View().Controls.OpenAccount = true for open account")
	}
}

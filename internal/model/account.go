package model

// OpeningBalance is the minimum deposit credited when an account is opened
const OpeningBalance int64 = 500

// Messages shown in the error dialog when a guarded action is refused
const (
	MsgLoanOutstanding = "You must pay your loan first!"
	MsgNoActiveLoan    = "There is no active loan to pay off"
	MsgBalanceNotEmpty = "You're bank account must be empty before closing your account"
	MsgUnknownAction   = "Unknown action!"
)

// DefaultDialogText is displayed when the dialog opens without a message
const DefaultDialogText = "An error has occurred"

// AccountState is the complete state of the simulated account
type AccountState struct {
	Balance      int64  `json:"balance"`
	Loan         int64  `json:"loan"` // 0 = no outstanding loan
	ErrorMessage string `json:"error_message"`
	IsActive     bool   `json:"is_active"`
	LoanActive   bool   `json:"loan_active"`
	ShowModal    bool   `json:"show_modal"`
}

// InitialState returns the state of a freshly started, unopened account
func InitialState() AccountState {
	return AccountState{}
}

// ErrorDialog is the view of the modal error dialog
type ErrorDialog struct {
	Visible bool   `json:"visible"`
	Title   string `json:"title"`
	Text    string `json:"text"`
}

// Dialog returns the error dialog as it should currently be rendered.
// A stale ErrorMessage from an earlier refusal is shown again if the
// dialog is reopened without a new message.
func (s AccountState) Dialog() ErrorDialog {
	text := s.ErrorMessage
	if text == "" {
		text = DefaultDialogText
	}
	return ErrorDialog{
		Visible: s.ShowModal,
		Title:   "Error",
		Text:    text,
	}
}

package contract

import "time"

// Action names a lifecycle transition recorded in contract history.
type Action string

const (
	ActionTrialRenewed   Action = "TRIAL_RENEWED"
	ActionConvertedToCDD Action = "CONVERTED_TO_CDD"
	ActionConvertedToCDI Action = "CONVERTED_TO_CDI"
	ActionTerminated     Action = "TERMINATED"
)

// Event is produced by a lifecycle transition. It is persisted as contract
// history by the dispatcher; RaiseAlert asks the dispatcher to open an HR alert.
type Event struct {
	ID         string
	ContractID string
	EmployeeID string
	Action     Action
	FromState  State
	ToState    State
	Details    string
	ActorID    string
	RaiseAlert bool
	OccurredAt time.Time
}

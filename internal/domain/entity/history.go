package entity

import "time"

// History action types
const (
	ActionSubmit = "SUBMIT"
	ActionAccept = "ACCEPT"
	ActionRefuse = "REFUSE"
)

// BillHistory is one entry of a bill's audit trail
type BillHistory struct {
	ID             int64     `json:"id"`
	BillID         string    `json:"bill_id"`
	ActorEmail     string    `json:"actor_email"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	ActionType     string    `json:"action_type"`
	ActionData     string    `json:"action_data"`
	Timestamp      time.Time `json:"timestamp"`
}

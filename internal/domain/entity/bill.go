package entity

// Status is the review status of a bill
type Status string

// Bill status constants
const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRefused  Status = "refused"
)

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// IsKnown returns true for the three statuses the review queue displays
func (s Status) IsKnown() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRefused:
		return true
	default:
		return false
	}
}

// Bill is an expense record submitted by an employee.
// The JSON shape is the one persisted in the store's data field.
type Bill struct {
	ID           string  `json:"id,omitempty"`
	Email        string  `json:"email"`
	Type         string  `json:"type"`
	Name         string  `json:"name"`
	Amount       *int    `json:"amount"` // nil when the submitted amount was not numeric
	Date         string  `json:"date"`
	VAT          string  `json:"vat"`
	Pct          int     `json:"pct"`
	Commentary   string  `json:"commentary"`
	CommentAdmin string  `json:"commentAdmin,omitempty"`
	FileURL      *string `json:"fileUrl"`
	FileName     *string `json:"fileName"`
	Status       Status  `json:"status"`
}

// ProofURL returns the stored proof image URL, or an empty string when no file was uploaded
func (b *Bill) ProofURL() string {
	if b.FileURL == nil {
		return ""
	}
	return *b.FileURL
}

// IsPending returns true if the bill still awaits review
func (b *Bill) IsPending() bool {
	return b.Status == StatusPending
}

// ProofFile is a proof-of-purchase file selected by an employee
type ProofFile struct {
	Name    string
	Type    string // declared MIME type
	Content []byte
}

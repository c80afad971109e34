package service

import "github.com/garyjia/bill-review/internal/domain/entity"

// ReviewBoard is the transient UI state of one admin's review queue.
// It never touches the store and is not safe for concurrent use.
type ReviewBoard struct {
	selected string
	columns  map[entity.Status]bool
}

// NewReviewBoard creates a board with every column closed and no bill expanded
func NewReviewBoard() *ReviewBoard {
	return &ReviewBoard{columns: make(map[entity.Status]bool)}
}

// Expand opens the detail of a bill; only one bill is expanded at a time
func (r *ReviewBoard) Expand(b entity.Bill) {
	r.selected = b.ID
}

// Collapse closes the detail of a bill if it is the expanded one
func (r *ReviewBoard) Collapse(b entity.Bill) {
	if r.selected == b.ID {
		r.selected = ""
	}
}

// Toggle expands a collapsed bill or collapses an expanded one
func (r *ReviewBoard) Toggle(b entity.Bill) {
	if r.IsExpanded(b.ID) {
		r.Collapse(b)
		return
	}
	r.Expand(b)
}

// IsExpanded reports whether the bill's detail is open
func (r *ReviewBoard) IsExpanded(billID string) bool {
	return billID != "" && r.selected == billID
}

// Expanded returns the identifier of the expanded bill, or ""
func (r *ReviewBoard) Expanded() string {
	return r.selected
}

// ToggleColumn opens or closes a status column
func (r *ReviewBoard) ToggleColumn(status entity.Status) {
	r.columns[status] = !r.columns[status]
}

// IsColumnOpen reports whether a status column shows its bills
func (r *ReviewBoard) IsColumnOpen(status entity.Status) bool {
	return r.columns[status]
}

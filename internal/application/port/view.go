package port

import (
	"github.com/garyjia/bill-review/internal/domain/bill"
)

// Route tags understood by the host navigation
const (
	RouteLogin     = ""
	RouteBills     = "#employee/bills"
	RouteNewBill   = "#employee/bill/new"
	RouteDashboard = "#admin/dashboard"
)

// Navigator moves the user to another view; it is an opaque side effect for the core
type Navigator func(route string)

// FileInputView reflects the outcome of a proof file selection
type FileInputView interface {
	// AcceptFile marks the file input as holding a valid proof
	AcceptFile(fileName string)

	// RejectFile clears the file input and flags it as invalid
	RejectFile(reason string)
}

// BillRow is a bill prepared for the employee listing
type BillRow struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Amount      *int   `json:"amount"`
	Status      string `json:"status"`
	StatusLabel string `json:"statusLabel"`
	ProofURL    string `json:"proofUrl"`
}

// ListView renders the employee bill listing
type ListView interface {
	RenderBills(rows []BillRow)
	ShowError(message string)
}

// Column is one status column of the review queue
type Column struct {
	Status string `json:"status"`
	Header string `json:"header"`
	Count  int    `json:"count"`
}

// DashboardView renders the admin review queue
type DashboardView interface {
	RenderGroups(groups bill.Groups, columns []Column)
	ShowError(message string)
}

package http

import (
	"github.com/garyjia/bill-review/internal/application/port"
	"github.com/garyjia/bill-review/internal/domain/bill"
)

// JSON views collect what the services render so handlers can encode it

type fileInputView struct {
	Accepted bool   `json:"accepted"`
	FileName string `json:"fileName,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

func (v *fileInputView) AcceptFile(fileName string) {
	v.Accepted = true
	v.FileName = fileName
	v.Reason = ""
}

func (v *fileInputView) RejectFile(reason string) {
	v.Accepted = false
	v.FileName = ""
	v.Reason = reason
}

type listView struct {
	rows    []port.BillRow
	message string
}

func (v *listView) RenderBills(rows []port.BillRow) {
	v.rows = rows
}

func (v *listView) ShowError(message string) {
	v.message = message
}

type dashboardView struct {
	groups  bill.Groups
	columns []port.Column
	message string
}

func (v *dashboardView) RenderGroups(groups bill.Groups, columns []port.Column) {
	v.groups = groups
	v.columns = columns
}

func (v *dashboardView) ShowError(message string) {
	v.message = message
}

// routeRecorder captures the navigation requested by a service
type routeRecorder struct {
	route string
	calls int
}

func (r *routeRecorder) navigate(route string) {
	r.route = route
	r.calls++
}

package bill

import "github.com/garyjia/bill-review/internal/domain/entity"

// Groups partitions bills by review status
type Groups struct {
	Pending  []entity.Bill `json:"pending"`
	Accepted []entity.Bill `json:"accepted"`
	Refused  []entity.Bill `json:"refused"`
}

// Counts returns the group sizes used in the review queue headers
func (g Groups) Counts() map[entity.Status]int {
	return map[entity.Status]int{
		entity.StatusPending:  len(g.Pending),
		entity.StatusAccepted: len(g.Accepted),
		entity.StatusRefused:  len(g.Refused),
	}
}

// Get returns the group for a status, or nil for an unknown status
func (g Groups) Get(status entity.Status) []entity.Bill {
	switch status {
	case entity.StatusPending:
		return g.Pending
	case entity.StatusAccepted:
		return g.Accepted
	case entity.StatusRefused:
		return g.Refused
	default:
		return nil
	}
}

// FilterByStatus returns the bills whose status equals status, in input order
func FilterByStatus(bills []entity.Bill, status entity.Status) []entity.Bill {
	filtered := make([]entity.Bill, 0)
	for _, b := range bills {
		if b.Status == status {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// GroupByStatus splits bills into pending, accepted and refused.
// Bills with any other status are left out of every group.
func GroupByStatus(bills []entity.Bill) Groups {
	return Groups{
		Pending:  FilterByStatus(bills, entity.StatusPending),
		Accepted: FilterByStatus(bills, entity.StatusAccepted),
		Refused:  FilterByStatus(bills, entity.StatusRefused),
	}
}

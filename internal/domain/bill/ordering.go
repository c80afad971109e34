package bill

import (
	"slices"
	"strings"

	"github.com/garyjia/bill-review/internal/domain/entity"
)

// CompareDescendingByDate orders bills so that the most recent date comes first.
// Dates are compared as raw strings, which is chronological only for
// ISO-8601 dates; malformed dates sort by byte order and never fail.
// Dates are not validated on submission, so a malformed date such as
// "invalid date" sorts ahead of "2022-01-01".
func CompareDescendingByDate(a, b entity.Bill) int {
	return strings.Compare(b.Date, a.Date)
}

// SortDescendingByDate returns a copy of bills sorted most recent first.
// Bills with equal dates keep their relative order.
func SortDescendingByDate(bills []entity.Bill) []entity.Bill {
	sorted := slices.Clone(bills)
	slices.SortStableFunc(sorted, CompareDescendingByDate)
	return sorted
}

package bill

import (
	"fmt"
	"time"

	"github.com/garyjia/bill-review/internal/domain/entity"
)

var frenchMonths = [12]string{"Jan", "Fév", "Mar", "Avr", "Mai", "Jui", "Jui", "Aoû", "Sep", "Oct", "Nov", "Déc"}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// FormatDate renders an ISO date as a short French date, e.g. "2004-04-04" gives "4 Avr. 04"
func FormatDate(date string) (string, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, date)
		if err != nil {
			continue
		}
		year := fmt.Sprintf("%04d", t.Year())
		return fmt.Sprintf("%d %s. %s", t.Day(), frenchMonths[t.Month()-1], year[2:4]), nil
	}
	return "", fmt.Errorf("unparsable date: %q", date)
}

// FormatStatus returns the label shown for a status
func FormatStatus(status entity.Status) string {
	switch status {
	case entity.StatusPending:
		return "En attente"
	case entity.StatusAccepted:
		return "Accepté"
	case entity.StatusRefused:
		return "Refused"
	default:
		return string(status)
	}
}

// ColumnTitle returns the review queue header for a status
func ColumnTitle(status entity.Status) string {
	switch status {
	case entity.StatusPending:
		return "En attente"
	case entity.StatusAccepted:
		return "Validé"
	case entity.StatusRefused:
		return "Refusé"
	default:
		return string(status)
	}
}

// ColumnHeader returns the review queue header with its bill count, e.g. "En attente (1)"
func ColumnHeader(status entity.Status, count int) string {
	return fmt.Sprintf("%s (%d)", ColumnTitle(status), count)
}

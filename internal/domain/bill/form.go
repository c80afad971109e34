package bill

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/garyjia/bill-review/internal/domain/entity"
	"github.com/garyjia/bill-review/pkg/utils"
)

// DefaultPct is the VAT percentage used when the submitted value is missing or unusable
const DefaultPct = 20

// FormFields holds the raw values of the new bill form
type FormFields struct {
	Type       string `json:"type"`
	Name       string `json:"name"`
	Amount     string `json:"amount"`
	Date       string `json:"date"`
	VAT        string `json:"vat"`
	Pct        string `json:"pct"`
	Commentary string `json:"commentary"`
}

// BuildBill maps form fields to a new pending bill for the given submitter.
// fileURL and fileName come from a previous upload and may be nil.
func BuildBill(email string, form FormFields, fileURL, fileName *string) entity.Bill {
	pct := DefaultPct
	if p := ParseLeadingInt(form.Pct); p != nil && *p != 0 {
		pct = *p
	}

	return entity.Bill{
		Email:      email,
		Type:       form.Type,
		Name:       utils.SanitizeString(form.Name),
		Amount:     ParseLeadingInt(form.Amount),
		Date:       form.Date,
		VAT:        form.VAT,
		Pct:        pct,
		Commentary: utils.SanitizeString(form.Commentary),
		FileURL:    fileURL,
		FileName:   fileName,
		Status:     entity.StatusPending,
	}
}

// ParseLeadingInt parses the leading base-10 integer of s, ignoring leading
// whitespace and anything after the digits ("42.5" gives 42, "12abc" gives 12).
// It returns nil when s does not start with an integer or overflows int.
func ParseLeadingInt(s string) *int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return nil
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}
	return &n
}

package bill

import "github.com/garyjia/bill-review/internal/domain/entity"

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

// fixtureBills mirrors a review queue with one pending, one accepted and two refused bills
func fixtureBills() []entity.Bill {
	return []entity.Bill{
		{
			ID:       "47qAXb6fIm2zOKkLzMro",
			Email:    "a@a",
			Type:     "Hôtel et logement",
			Name:     "encore",
			Amount:   intPtr(400),
			Date:     "2004-04-04",
			VAT:      "80",
			Pct:      20,
			FileURL:  strPtr("https://test.storage.tld/v0/b/billable/preview-facture-free.jpg"),
			FileName: strPtr("preview-facture-free-201801-pdf-1.jpg"),
			Status:   entity.StatusPending,
		},
		{
			ID:           "BeKy5Mo4jkmdfPGYpTxZ",
			Email:        "a@a",
			Type:         "Transports",
			Name:         "test1",
			Amount:       intPtr(100),
			Date:         "2001-01-01",
			VAT:          "",
			Pct:          20,
			CommentAdmin: "ok",
			Status:       entity.StatusRefused,
		},
		{
			ID:           "UIUZtnPQvnbFnB0ozvJh",
			Email:        "a@a",
			Type:         "Services en ligne",
			Name:         "test3",
			Amount:       intPtr(300),
			Date:         "2003-03-03",
			VAT:          "60",
			Pct:          20,
			CommentAdmin: "bon bah d'accord",
			Status:       entity.StatusAccepted,
		},
		{
			ID:     "qcCK3SzECmaZAGRrHjaC",
			Email:  "a@a",
			Type:   "Restaurants et bars",
			Name:   "test2",
			Amount: intPtr(200),
			Date:   "2002-02-02",
			VAT:    "40",
			Pct:    20,
			Status: entity.StatusRefused,
		},
	}
}

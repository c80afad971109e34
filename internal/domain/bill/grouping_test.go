package bill

import (
	"testing"

	"github.com/garyjia/bill-review/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByStatus(t *testing.T) {
	t.Run("splits the fixture into 1 pending, 1 accepted and 2 refused", func(t *testing.T) {
		bills := fixtureBills()

		groups := GroupByStatus(bills)

		assert.Len(t, groups.Pending, 1)
		assert.Len(t, groups.Accepted, 1)
		assert.Len(t, groups.Refused, 2)

		union := map[string]bool{}
		for _, status := range []entity.Status{entity.StatusPending, entity.StatusAccepted, entity.StatusRefused} {
			for _, b := range groups.Get(status) {
				assert.Equal(t, status, b.Status)
				union[b.ID] = true
			}
		}
		require.Len(t, union, len(bills))
		for _, b := range bills {
			assert.True(t, union[b.ID], "bill %s missing from groups", b.ID)
		}
	})

	t.Run("empty input yields three empty groups", func(t *testing.T) {
		groups := GroupByStatus(nil)

		assert.NotNil(t, groups.Pending)
		assert.Empty(t, groups.Pending)
		assert.Empty(t, groups.Accepted)
		assert.Empty(t, groups.Refused)
	})

	t.Run("unknown statuses are excluded from every group", func(t *testing.T) {
		bills := append(fixtureBills(), entity.Bill{ID: "odd", Status: "archived"}, entity.Bill{ID: "blank"})

		groups := GroupByStatus(bills)

		total := len(groups.Pending) + len(groups.Accepted) + len(groups.Refused)
		assert.Equal(t, 4, total)
	})

	t.Run("counts match group lengths", func(t *testing.T) {
		groups := GroupByStatus(fixtureBills())

		counts := groups.Counts()
		assert.Equal(t, len(groups.Pending), counts[entity.StatusPending])
		assert.Equal(t, len(groups.Refused), counts[entity.StatusRefused])
		assert.Equal(t, len(groups.Accepted), counts[entity.StatusAccepted])
	})
}

func TestFilterByStatus_PreservesOrder(t *testing.T) {
	refused := FilterByStatus(fixtureBills(), entity.StatusRefused)

	assert.Equal(t, []string{"BeKy5Mo4jkmdfPGYpTxZ", "qcCK3SzECmaZAGRrHjaC"}, ids(refused))
}

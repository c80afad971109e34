package bill

import (
	"testing"

	"github.com/garyjia/bill-review/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2004-04-04", "4 Avr. 04"},
		{"2022-02-15", "15 Fév. 22"},
		{"2021-08-01", "1 Aoû. 21"},
		{"2020-12-31", "31 Déc. 20"},
		{"2023-07-14T10:00:00Z", "14 Jui. 23"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got, err := FormatDate(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("malformed date fails", func(t *testing.T) {
		_, err := FormatDate("invalid date")
		assert.Error(t, err)
	})
}

func TestFormatStatus(t *testing.T) {
	assert.Equal(t, "En attente", FormatStatus(entity.StatusPending))
	assert.Equal(t, "Accepté", FormatStatus(entity.StatusAccepted))
	assert.Equal(t, "Refused", FormatStatus(entity.StatusRefused))
	assert.Equal(t, "archived", FormatStatus("archived"))
}

func TestColumnHeader(t *testing.T) {
	assert.Equal(t, "En attente (1)", ColumnHeader(entity.StatusPending, 1))
	assert.Equal(t, "Refusé (2)", ColumnHeader(entity.StatusRefused, 2))
}

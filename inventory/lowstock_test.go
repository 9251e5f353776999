package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medidepot/medidepot/domain"
)

func TestLowStockReport(t *testing.T) {
	items := []domain.Item{
		{Name: "Gloves", CurrentStock: 60, MinStock: 5},
		{Name: "Gelbe Kanüle", CurrentStock: 5, MinStock: 5},
		{Name: "Syringes", CurrentStock: 6, MinStock: 5},
		{Name: "Optiskin", CurrentStock: 0, MinStock: 1},
		{Name: "Gauze", CurrentStock: -2, MinStock: 5},
	}

	assert.Equal(t, []LowStockEntry{
		{Name: "Gelbe Kanüle", Current: 5, Min: 5},
		{Name: "Optiskin", Current: 0, Min: 1},
		{Name: "Gauze", Current: -2, Min: 5},
	}, LowStockReport(items))
}

func TestLowStockReportNothingLow(t *testing.T) {
	assert.Empty(t, LowStockReport(nil))
	assert.Empty(t, LowStockReport([]domain.Item{{Name: "Gloves", CurrentStock: 6, MinStock: 5}}))
}

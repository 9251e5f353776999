package inventory

import "github.com/medidepot/medidepot/domain"

// LowStockEntry names one item at or below its reorder threshold.
type LowStockEntry struct {
	Name    string
	Current int
	Min     int
}

// LowStockReport lists the items whose stock is at or below min stock, in input order.
func LowStockReport(items []domain.Item) []LowStockEntry {
	var report []LowStockEntry
	for _, item := range items {
		if item.IsLow() {
			report = append(report, LowStockEntry{Name: item.Name, Current: item.CurrentStock, Min: item.MinStock})
		}
	}
	return report
}

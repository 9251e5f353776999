package domain

// DefaultMinStock is the reorder threshold assigned to items created through the add path.
const DefaultMinStock = 5

// Item is one stock-keeping unit of the practice supply.
//
// The col tags name the backing columns; changesetgen skips fields marked pk.
type Item struct {
	ID           int64  `col:"id,pk"`
	Name         string `col:"name"`
	CurrentStock int    `col:"current_stock"`
	MinStock     int    `col:"min_stock"`
	Unit         string `col:"unit"`
	Location     string `col:"location"`
	AddedDate    string `col:"date"`
	OwnerCode    string `col:"owner_code"`
}

// IsLow reports whether the item is at or below its reorder threshold.
func (i Item) IsLow() bool {
	return i.CurrentStock <= i.MinStock
}

package entity

// Product is a SKU tracked across every site. Append-mostly.
type Product struct {
	ID          int64
	SKU         string // unique
	Name        string
	UnitOfMeasure string
	Barcode     *string // unique if present
	Active      bool
}

package models

// ProductSection mirrors the numbered choices of the product browsing menu.
type ProductSection int

const (
	SectionTrending ProductSection = iota + 1
	SectionOnSale
	SectionMen
	SectionWomen
	SectionAccessories
)

type Product struct {
	ID           int64    `db:"id"`
	SKU          string   `db:"sku"`
	Name         string   `db:"name"`
	Category     string   `db:"category"`
	Price        *float64 `db:"price"`
	SalePrice    *float64 `db:"sale_price"`
	IsTrending   bool     `db:"is_trending"`
	IsOnSale     bool     `db:"is_on_sale"`
	Sizes        string   `db:"sizes"`
	Colors       string   `db:"colors"`
	Material     string   `db:"material"`
	Description  string   `db:"description"`
	StockQty     *int     `db:"stock_qty"`
	ShippingNote string   `db:"shipping_note"`
	ReturnNote   string   `db:"return_note"`
}

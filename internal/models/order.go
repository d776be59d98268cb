package models

import "time"

type Order struct {
	ID              int64      `db:"id"`
	CustomerID      int64      `db:"customer_id"`
	OrderNumber     string     `db:"order_number"`
	PlacedAt        time.Time  `db:"placed_at"`
	Status          string     `db:"status"`
	ShippingCarrier string     `db:"shipping_carrier"`
	TrackingNumber  string     `db:"tracking_number"`
	ETADate         *time.Time `db:"eta_date"`
}

type OrderItem struct {
	OrderID int64  `db:"order_id"`
	SKU     string `db:"sku"`
	Name    string `db:"name"`
	Qty     int    `db:"qty"`
}

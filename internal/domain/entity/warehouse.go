package entity

import "time"

// Warehouse bodega física donde se almacena stock.
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

package dto

// WarehouseRequest entrada para crear o actualizar una bodega.
type WarehouseRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// WarehouseResponse representación de una bodega.
type WarehouseResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

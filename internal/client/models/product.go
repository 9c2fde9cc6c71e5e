package models

// Product is one catalog entry of the merchant's shop.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageKey    string  `json:"image_key,omitempty"`
}

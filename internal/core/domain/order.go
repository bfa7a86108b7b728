package domain

import "time"

// Order is an immutable snapshot of a completed configuration, taken at
// submit time so later catalog edits never change a submitted price.
type Order struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Reference   string    `json:"reference" bson:"reference"`
	SessionID   string    `json:"-" bson:"session_id"`
	UserID      string    `json:"user_id" bson:"user_id"`
	ProductID   string    `json:"product_id" bson:"product_id"`
	ProductName string    `json:"product_name" bson:"product_name"`
	VariantID   string    `json:"variant_id" bson:"variant_id"`
	VariantName string    `json:"variant_name" bson:"variant_name"`
	ColorID     string    `json:"color_id" bson:"color_id"`
	ColorName   string    `json:"color_name" bson:"color_name"`
	Quantity    int       `json:"quantity" bson:"quantity"`
	UnitPrice   float64   `json:"unit_price" bson:"unit_price"`
	Total       float64   `json:"total" bson:"total"`
	SubmittedAt time.Time `json:"submitted_at" bson:"submitted_at"`
}

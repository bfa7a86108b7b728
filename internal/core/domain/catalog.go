package domain

// ProductVariant is a purchasable dimension of a product. For size variants
// Price is the absolute unit price; for color variants it is a delta applied
// on top of the size price and may be negative (discount).
type ProductVariant struct {
	ID        string  `json:"id" bson:"id"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Size      string  `json:"size,omitempty" bson:"size,omitempty"`
	ColorCode string  `json:"color_code,omitempty" bson:"color_code,omitempty"`
	InStock   *bool   `json:"in_stock,omitempty" bson:"in_stock,omitempty"`
}

// Product is a configurable catalog item.
type Product struct {
	ID          string           `json:"id" bson:"_id,omitempty"`
	Name        string           `json:"name" bson:"name"`
	Description string           `json:"description" bson:"description"`
	BasePrice   float64          `json:"base_price" bson:"base_price"`
	Variants    []ProductVariant `json:"variants" bson:"variants"`
	Colors      []ProductVariant `json:"colors" bson:"colors"`
}

// Variant looks up a size variant by id.
func (p *Product) Variant(id string) (*ProductVariant, bool) {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i], true
		}
	}
	return nil, false
}

// Color looks up a color variant by id.
func (p *Product) Color(id string) (*ProductVariant, bool) {
	for i := range p.Colors {
		if p.Colors[i].ID == id {
			return &p.Colors[i], true
		}
	}
	return nil, false
}

func boolPtr(b bool) *bool { return &b }

// DefaultCatalog is the seed fixture loaded into an empty catalog collection.
func DefaultCatalog() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Premium Office Desk",
			Description: "Ergonomic standing desk with premium finish",
			BasePrice:   1200,
			Variants: []ProductVariant{
				{ID: "101", Name: "Small (120cm)", Price: 1200, Size: "S", InStock: boolPtr(true)},
				{ID: "102", Name: "Medium (150cm)", Price: 1450, Size: "M", InStock: boolPtr(true)},
				{ID: "103", Name: "Large (180cm)", Price: 1700, Size: "L", InStock: boolPtr(true)},
			},
			Colors: []ProductVariant{
				{ID: "201", Name: "Natural Oak", Price: 0, ColorCode: "#D4A574"},
				{ID: "202", Name: "Walnut Brown", Price: 100, ColorCode: "#5D4037"},
				{ID: "203", Name: "Matte Black", Price: 150, ColorCode: "#212121"},
				{ID: "204", Name: "Pure White", Price: 50, ColorCode: "#FFFFFF"},
			},
		},
		{
			ID:          "2",
			Name:        "Executive Office Chair",
			Description: "Luxury ergonomic chair with lumbar support",
			BasePrice:   850,
			Variants: []ProductVariant{
				{ID: "104", Name: "Standard", Price: 850, InStock: boolPtr(true)},
				{ID: "105", Name: "Premium", Price: 1100, InStock: boolPtr(true)},
				{ID: "106", Name: "Executive", Price: 1450, InStock: boolPtr(false)},
			},
			Colors: []ProductVariant{
				{ID: "205", Name: "Black Leather", Price: 0, ColorCode: "#000000"},
				{ID: "206", Name: "Brown Leather", Price: 50, ColorCode: "#8B4513"},
				{ID: "207", Name: "Grey Fabric", Price: -100, ColorCode: "#808080"},
			},
		},
		{
			ID:          "3",
			Name:        "Custom Cabinet System",
			Description: "Modular storage solution for modern offices",
			BasePrice:   2200,
			Variants: []ProductVariant{
				{ID: "107", Name: "2-Door", Price: 2200, InStock: boolPtr(true)},
				{ID: "108", Name: "3-Door", Price: 2800, InStock: boolPtr(true)},
				{ID: "109", Name: "4-Door", Price: 3400, InStock: boolPtr(true)},
			},
			Colors: []ProductVariant{
				{ID: "208", Name: "Office White", Price: 0, ColorCode: "#F5F5F5"},
				{ID: "209", Name: "Graphite Grey", Price: 150, ColorCode: "#464646"},
				{ID: "210", Name: "Navy Blue", Price: 200, ColorCode: "#001F3F"},
			},
		},
	}
}

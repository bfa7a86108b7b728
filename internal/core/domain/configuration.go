package domain

// Step is one of the four ordered wizard states.
type Step string

const (
	StepProduct  Step = "product"
	StepSize     Step = "size"
	StepColor    Step = "color"
	StepQuantity Step = "quantity"
)

// stepOrder fixes the wizard sequence.
var stepOrder = []Step{StepProduct, StepSize, StepColor, StepQuantity}

const (
	MinQuantity = 1
	MaxQuantity = 1000
)

// Customization is an optional extra with a flat price, added once
// (quantity-independent).
type Customization struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Configuration is a user's in-progress selection. BaseVariantPrice preserves
// the size variant's own price so that color changes are always recomputed
// from scratch instead of compounding onto an already-merged price.
type Configuration struct {
	Product          *Product
	Variant          *ProductVariant
	BaseVariantPrice float64
	Color            *ProductVariant
	Quantity         int
	Step             Step
	Customizations   []Customization
}

// NewConfiguration returns an empty configuration at the product step.
func NewConfiguration() *Configuration {
	return &Configuration{Quantity: MinQuantity, Step: StepProduct}
}

// SelectProduct replaces the product and clears every downstream selection:
// variant, color, customizations. The wizard advances to the size step.
func (c *Configuration) SelectProduct(p *Product) {
	c.Product = p
	c.Variant = nil
	c.BaseVariantPrice = 0
	c.Color = nil
	c.Customizations = nil
	c.Quantity = MinQuantity
	c.Step = StepSize
}

// SelectVariant picks a size variant of the selected product.
func (c *Configuration) SelectVariant(v *ProductVariant) error {
	if c.Product == nil {
		return ErrNoProductSelected
	}
	picked := *v
	c.Variant = &picked
	c.BaseVariantPrice = v.Price
	if c.Color != nil {
		// re-apply the color delta onto the new base
		c.Variant.Price = c.BaseVariantPrice + c.Color.Price
	}
	return nil
}

// SelectColor picks a color variant. The effective variant price is always
// BaseVariantPrice + color delta, recomputed from scratch, so re-selecting a
// different color never accumulates previous deltas.
func (c *Configuration) SelectColor(color *ProductVariant) error {
	if c.Variant == nil {
		return ErrStepIncomplete
	}
	picked := *color
	c.Color = &picked
	c.Variant.Price = c.BaseVariantPrice + color.Price
	return nil
}

// SetQuantity clamps the quantity into [MinQuantity, MaxQuantity].
func (c *Configuration) SetQuantity(q int) {
	if q < MinQuantity {
		q = MinQuantity
	}
	if q > MaxQuantity {
		q = MaxQuantity
	}
	c.Quantity = q
}

// Total computes the configuration price:
//
//	total = (variant.price + color.price) × quantity + Σ customization.price
//
// where variant.price already carries the color delta. Zero while no size
// variant is selected.
func (c *Configuration) Total() float64 {
	if c.Variant == nil {
		return 0
	}
	total := c.Variant.Price * float64(c.Quantity)
	for _, cu := range c.Customizations {
		total += cu.Price
	}
	return total
}

// CanProceed reports whether the current step's required selection is made.
func (c *Configuration) CanProceed() bool {
	switch c.Step {
	case StepProduct:
		return c.Product != nil
	case StepSize:
		return c.Variant != nil
	case StepColor:
		return c.Color != nil
	case StepQuantity:
		return c.Quantity > 0
	default:
		return false
	}
}

// Next advances the wizard one step. Forward navigation is blocked until the
// current step's selection is made.
func (c *Configuration) Next() error {
	if !c.CanProceed() {
		return ErrStepIncomplete
	}
	for i, s := range stepOrder {
		if s == c.Step && i < len(stepOrder)-1 {
			c.Step = stepOrder[i+1]
			return nil
		}
	}
	return nil
}

// Back moves the wizard one step back. Unrestricted except at the first step.
func (c *Configuration) Back() {
	for i, s := range stepOrder {
		if s == c.Step && i > 0 {
			c.Step = stepOrder[i-1]
			return
		}
	}
}

// Complete reports whether every selection required for submission is made.
func (c *Configuration) Complete() bool {
	return c.Product != nil && c.Variant != nil && c.Color != nil && c.Quantity >= MinQuantity
}

// Reset discards every selection and returns the wizard to the product step.
func (c *Configuration) Reset() {
	*c = *NewConfiguration()
}

package domain

import (
	"errors"
	"testing"
)

func desk() *Product {
	products := DefaultCatalog()
	return &products[0]
}

func chair() *Product {
	products := DefaultCatalog()
	return &products[1]
}

func mustVariant(t *testing.T, p *Product, id string) *ProductVariant {
	t.Helper()
	v, ok := p.Variant(id)
	if !ok {
		t.Fatalf("variant %q not in product %q", id, p.ID)
	}
	return v
}

func mustColor(t *testing.T, p *Product, id string) *ProductVariant {
	t.Helper()
	c, ok := p.Color(id)
	if !ok {
		t.Fatalf("color %q not in product %q", id, p.ID)
	}
	return c
}

// ---------------------------------------------------------------------------
// Step sequencing
// ---------------------------------------------------------------------------

func TestConfiguration_StartsEmptyAtProductStep(t *testing.T) {
	cfg := NewConfiguration()

	if cfg.Step != StepProduct {
		t.Errorf("expected step %q, got %q", StepProduct, cfg.Step)
	}
	if cfg.Quantity != MinQuantity {
		t.Errorf("expected quantity %d, got %d", MinQuantity, cfg.Quantity)
	}
	if cfg.Total() != 0 {
		t.Errorf("empty configuration must price at 0, got %v", cfg.Total())
	}
}

func TestConfiguration_NextBlockedWithoutSelection(t *testing.T) {
	cfg := NewConfiguration()

	if err := cfg.Next(); !errors.Is(err, ErrStepIncomplete) {
		t.Errorf("expected ErrStepIncomplete, got %v", err)
	}
	if cfg.Step != StepProduct {
		t.Errorf("blocked Next must not advance, step is %q", cfg.Step)
	}
}

func TestConfiguration_NextAdvancesAfterSelection(t *testing.T) {
	cfg := NewConfiguration()
	p := desk()

	cfg.SelectProduct(p)
	if cfg.Step != StepSize {
		t.Fatalf("SelectProduct must land on %q, got %q", StepSize, cfg.Step)
	}

	if err := cfg.SelectVariant(mustVariant(t, p, "102")); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Next(); err != nil {
		t.Fatalf("Next after size selection: %v", err)
	}
	if cfg.Step != StepColor {
		t.Errorf("expected %q, got %q", StepColor, cfg.Step)
	}

	if err := cfg.SelectColor(mustColor(t, p, "202")); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Next(); err != nil {
		t.Fatalf("Next after color selection: %v", err)
	}
	if cfg.Step != StepQuantity {
		t.Errorf("expected %q, got %q", StepQuantity, cfg.Step)
	}

	// Last step: Next is a no-op, never an error.
	if err := cfg.Next(); err != nil {
		t.Errorf("Next at last step must not fail: %v", err)
	}
	if cfg.Step != StepQuantity {
		t.Errorf("Next at last step must stay, got %q", cfg.Step)
	}
}

func TestConfiguration_BackIsUnrestricted(t *testing.T) {
	cfg := NewConfiguration()
	cfg.SelectProduct(desk())

	cfg.Back()
	if cfg.Step != StepProduct {
		t.Errorf("expected %q, got %q", StepProduct, cfg.Step)
	}
	// Back at the first step stays put.
	cfg.Back()
	if cfg.Step != StepProduct {
		t.Errorf("Back at first step must stay, got %q", cfg.Step)
	}
}

func TestConfiguration_SelectVariantRequiresProduct(t *testing.T) {
	cfg := NewConfiguration()
	v := mustVariant(t, desk(), "101")

	if err := cfg.SelectVariant(v); !errors.Is(err, ErrNoProductSelected) {
		t.Errorf("expected ErrNoProductSelected, got %v", err)
	}
}

func TestConfiguration_SelectColorRequiresVariant(t *testing.T) {
	cfg := NewConfiguration()
	cfg.SelectProduct(desk())

	if err := cfg.SelectColor(mustColor(t, desk(), "201")); !errors.Is(err, ErrStepIncomplete) {
		t.Errorf("expected ErrStepIncomplete, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Product switching clears downstream state
// ---------------------------------------------------------------------------

func TestConfiguration_SelectProductClearsDownstream(t *testing.T) {
	cfg := NewConfiguration()
	p := desk()
	cfg.SelectProduct(p)
	_ = cfg.SelectVariant(mustVariant(t, p, "103"))
	_ = cfg.SelectColor(mustColor(t, p, "203"))
	cfg.SetQuantity(7)
	cfg.Customizations = []Customization{{ID: "c1", Name: "Engraving", Price: 25}}

	cfg.SelectProduct(chair())

	if cfg.Variant != nil || cfg.Color != nil || cfg.Customizations != nil {
		t.Error("switching product must clear variant, color and customizations")
	}
	if cfg.Quantity != MinQuantity {
		t.Errorf("switching product must reset quantity, got %d", cfg.Quantity)
	}
	if cfg.Step != StepSize {
		t.Errorf("switching product must land on %q, got %q", StepSize, cfg.Step)
	}
	if cfg.Total() != 0 {
		t.Errorf("cleared configuration must price at 0, got %v", cfg.Total())
	}
}

// ---------------------------------------------------------------------------
// Quantity clamping
// ---------------------------------------------------------------------------

func TestConfiguration_SetQuantityClamps(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, MinQuantity},
		{-5, MinQuantity},
		{1, 1},
		{500, 500},
		{MaxQuantity, MaxQuantity},
		{5000, MaxQuantity},
	}

	for _, tc := range cases {
		cfg := NewConfiguration()
		cfg.SetQuantity(tc.in)
		if cfg.Quantity != tc.want {
			t.Errorf("SetQuantity(%d): want %d, got %d", tc.in, tc.want, cfg.Quantity)
		}
	}
}

// ---------------------------------------------------------------------------
// Pricing
// ---------------------------------------------------------------------------

func TestConfiguration_TotalWithColorDeltaAndQuantity(t *testing.T) {
	cfg := NewConfiguration()
	p := desk()
	cfg.SelectProduct(p)
	_ = cfg.SelectVariant(mustVariant(t, p, "101")) // 1200
	_ = cfg.SelectColor(mustColor(t, p, "202"))     // +100
	cfg.SetQuantity(3)

	if got := cfg.Total(); got != 3900 {
		t.Errorf("total: want 3900, got %v", got)
	}
}

func TestConfiguration_NegativeColorDeltaDiscounts(t *testing.T) {
	cfg := NewConfiguration()
	p := chair()
	cfg.SelectProduct(p)
	_ = cfg.SelectVariant(mustVariant(t, p, "104")) // 850
	_ = cfg.SelectColor(mustColor(t, p, "207"))     // -100
	cfg.SetQuantity(2)

	if got := cfg.Total(); got != 1500 {
		t.Errorf("total: want 1500, got %v", got)
	}
}

func TestConfiguration_ColorReselectionRecomputesFromBase(t *testing.T) {
	cfg := NewConfiguration()
	p := desk()
	cfg.SelectProduct(p)
	_ = cfg.SelectVariant(mustVariant(t, p, "101")) // base 1200

	_ = cfg.SelectColor(mustColor(t, p, "203")) // +150
	if cfg.Variant.Price != 1350 {
		t.Fatalf("first color: want 1350, got %v", cfg.Variant.Price)
	}

	// A second selection must replace the delta, not stack onto it.
	_ = cfg.SelectColor(mustColor(t, p, "202")) // +100
	if cfg.Variant.Price != 1300 {
		t.Errorf("second color: want 1300, got %v", cfg.Variant.Price)
	}

	// Back to the free color restores the plain base price.
	_ = cfg.SelectColor(mustColor(t, p, "201")) // +0
	if cfg.Variant.Price != 1200 {
		t.Errorf("free color: want 1200, got %v", cfg.Variant.Price)
	}
}

func TestConfiguration_VariantReselectionKeepsColorDelta(t *testing.T) {
	cfg := NewConfiguration()
	p := desk()
	cfg.SelectProduct(p)
	_ = cfg.SelectVariant(mustVariant(t, p, "101")) // 1200
	_ = cfg.SelectColor(mustColor(t, p, "203"))     // +150

	_ = cfg.SelectVariant(mustVariant(t, p, "103")) // 1700
	if cfg.Variant.Price != 1850 {
		t.Errorf("new variant with kept color: want 1850, got %v", cfg.Variant.Price)
	}
}

func TestConfiguration_SelectionsDoNotMutateCatalog(t *testing.T) {
	cfg := NewConfiguration()
	p := desk()
	cfg.SelectProduct(p)
	v := mustVariant(t, p, "101")
	_ = cfg.SelectVariant(v)
	_ = cfg.SelectColor(mustColor(t, p, "203"))

	if v.Price != 1200 {
		t.Errorf("catalog variant mutated: %v", v.Price)
	}
}

func TestConfiguration_CustomizationsAddedOnce(t *testing.T) {
	cfg := NewConfiguration()
	p := desk()
	cfg.SelectProduct(p)
	_ = cfg.SelectVariant(mustVariant(t, p, "101")) // 1200
	_ = cfg.SelectColor(mustColor(t, p, "201"))     // +0
	cfg.SetQuantity(4)
	cfg.Customizations = []Customization{
		{ID: "c1", Name: "Engraving", Price: 25},
		{ID: "c2", Name: "Cable tray", Price: 60},
	}

	// customizations are flat, not multiplied by quantity
	if got := cfg.Total(); got != 4885 {
		t.Errorf("total: want 4885, got %v", got)
	}
}

// ---------------------------------------------------------------------------
// Completion and reset
// ---------------------------------------------------------------------------

func TestConfiguration_Complete(t *testing.T) {
	cfg := NewConfiguration()
	if cfg.Complete() {
		t.Error("empty configuration must not be complete")
	}

	p := desk()
	cfg.SelectProduct(p)
	if cfg.Complete() {
		t.Error("product alone must not be complete")
	}

	_ = cfg.SelectVariant(mustVariant(t, p, "101"))
	if cfg.Complete() {
		t.Error("missing color must not be complete")
	}

	_ = cfg.SelectColor(mustColor(t, p, "201"))
	if !cfg.Complete() {
		t.Error("product, variant, color and quantity must be complete")
	}
}

func TestConfiguration_Reset(t *testing.T) {
	cfg := NewConfiguration()
	p := desk()
	cfg.SelectProduct(p)
	_ = cfg.SelectVariant(mustVariant(t, p, "102"))
	_ = cfg.SelectColor(mustColor(t, p, "204"))
	cfg.SetQuantity(9)

	cfg.Reset()

	if cfg.Product != nil || cfg.Variant != nil || cfg.Color != nil {
		t.Error("reset must clear every selection")
	}
	if cfg.Step != StepProduct || cfg.Quantity != MinQuantity {
		t.Errorf("reset must return to step %q quantity %d, got %q/%d", StepProduct, MinQuantity, cfg.Step, cfg.Quantity)
	}
}

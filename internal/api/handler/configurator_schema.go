package handler

import (
	"strconv"

	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
	"github.com/premiumerp/dashboard-gateway/internal/core/ports"
)

type selectProductRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type selectVariantRequest struct {
	VariantID string `json:"variant_id" validate:"required"`
}

type selectColorRequest struct {
	ColorID string `json:"color_id" validate:"required"`
}

// quantityRequest accepts the quantity as a JSON number or string; anything
// non-numeric coerces to the minimum quantity.
type quantityRequest struct {
	Quantity any `json:"quantity"`
}

func (r quantityRequest) value() int {
	switch q := r.Quantity.(type) {
	case float64:
		// int(q) is undefined for out-of-range floats, so clamp first.
		if q > float64(domain.MaxQuantity) {
			return domain.MaxQuantity
		}
		if q < float64(domain.MinQuantity) {
			return domain.MinQuantity
		}
		return int(q)
	case string:
		n, err := strconv.Atoi(q)
		if err != nil {
			return domain.MinQuantity
		}
		return n
	default:
		return domain.MinQuantity
	}
}

type variantResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Size      string  `json:"size,omitempty"`
	ColorCode string  `json:"color_code,omitempty"`
	InStock   *bool   `json:"in_stock,omitempty"`
}

type configurationResponse struct {
	Step       string           `json:"step"`
	Product    *domain.Product  `json:"product,omitempty"`
	Variant    *variantResponse `json:"variant,omitempty"`
	Color      *variantResponse `json:"color,omitempty"`
	Quantity   int              `json:"quantity"`
	Total      float64          `json:"total"`
	CanProceed bool             `json:"can_proceed"`
	Complete   bool             `json:"complete"`
}

type submitResponse struct {
	Reference string `json:"reference"`
}

func toConfigurationResponse(v *ports.ConfigurationView) configurationResponse {
	return configurationResponse{
		Step:       string(v.Step),
		Product:    v.Product,
		Variant:    toVariantResponse(v.Variant),
		Color:      toVariantResponse(v.Color),
		Quantity:   v.Quantity,
		Total:      v.Total,
		CanProceed: v.CanProceed,
		Complete:   v.Complete,
	}
}

func toVariantResponse(v *domain.ProductVariant) *variantResponse {
	if v == nil {
		return nil
	}
	return &variantResponse{
		ID:        v.ID,
		Name:      v.Name,
		Price:     v.Price,
		Size:      v.Size,
		ColorCode: v.ColorCode,
		InStock:   v.InStock,
	}
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/premiumerp/dashboard-gateway/internal/core/ports"
)

// ConfiguratorHandler handles the wizard and catalog endpoints.
type ConfiguratorHandler struct {
	catalog      ports.CatalogRepository
	configurator ports.ConfiguratorService
}

func NewConfiguratorHandler(catalog ports.CatalogRepository, configurator ports.ConfiguratorService) *ConfiguratorHandler {
	return &ConfiguratorHandler{catalog: catalog, configurator: configurator}
}

// ListProducts returns the configurable catalog.
//
// @Summary      List configurable products
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Router       /v1/products [get]
func (h *ConfiguratorHandler) ListProducts(c echo.Context) error {
	products, err := h.catalog.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Data: products})
}

// Get returns the session's wizard state and current total.
//
// @Summary      Get the configuration wizard state
// @Tags         configurator
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Router       /v1/configurator [get]
func (h *ConfiguratorHandler) Get(c echo.Context) error {
	_, sid, err := ctxSession(c)
	if err != nil {
		return err
	}
	view, err := h.configurator.Get(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Data: toConfigurationResponse(view)})
}

// SelectProduct selects a product, clearing all downstream selections.
//
// @Summary      Select a product
// @Tags         configurator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      selectProductRequest  true  "Product selection"
// @Success      200   {object}  successResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/configurator/product [post]
func (h *ConfiguratorHandler) SelectProduct(c echo.Context) error {
	_, sid, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req selectProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	view, err := h.configurator.SelectProduct(c.Request().Context(), sid, req.ProductID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Data: toConfigurationResponse(view)})
}

// SelectVariant selects a size variant of the chosen product.
//
// @Summary      Select a size variant
// @Tags         configurator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      selectVariantRequest  true  "Variant selection"
// @Success      200   {object}  successResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/configurator/variant [post]
func (h *ConfiguratorHandler) SelectVariant(c echo.Context) error {
	_, sid, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req selectVariantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	view, err := h.configurator.SelectVariant(c.Request().Context(), sid, req.VariantID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Data: toConfigurationResponse(view)})
}

// SelectColor selects a color; the price is recomputed from the base variant
// price plus the color delta.
//
// @Summary      Select a color
// @Tags         configurator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      selectColorRequest  true  "Color selection"
// @Success      200   {object}  successResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/configurator/color [post]
func (h *ConfiguratorHandler) SelectColor(c echo.Context) error {
	_, sid, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req selectColorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	view, err := h.configurator.SelectColor(c.Request().Context(), sid, req.ColorID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Data: toConfigurationResponse(view)})
}

// SetQuantity stores the quantity, clamped to [1,1000]; non-numeric input
// coerces to 1.
//
// @Summary      Set the quantity
// @Tags         configurator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      quantityRequest  true  "Quantity"
// @Success      200   {object}  successResponse
// @Router       /v1/configurator/quantity [post]
func (h *ConfiguratorHandler) SetQuantity(c echo.Context) error {
	_, sid, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req quantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	view, err := h.configurator.SetQuantity(c.Request().Context(), sid, req.value())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Data: toConfigurationResponse(view)})
}

// Next advances the wizard; blocked until the current step's selection is made.
//
// @Summary      Advance the wizard one step
// @Tags         configurator
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/configurator/next [post]
func (h *ConfiguratorHandler) Next(c echo.Context) error {
	_, sid, err := ctxSession(c)
	if err != nil {
		return err
	}
	view, err := h.configurator.Next(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Data: toConfigurationResponse(view)})
}

// Back moves the wizard one step back.
//
// @Summary      Move the wizard one step back
// @Tags         configurator
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Router       /v1/configurator/back [post]
func (h *ConfiguratorHandler) Back(c echo.Context) error {
	_, sid, err := ctxSession(c)
	if err != nil {
		return err
	}
	view, err := h.configurator.Back(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Data: toConfigurationResponse(view)})
}

// Reset discards the wizard state.
//
// @Summary      Reset the configuration
// @Tags         configurator
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Router       /v1/configurator/reset [post]
func (h *ConfiguratorHandler) Reset(c echo.Context) error {
	_, sid, err := ctxSession(c)
	if err != nil {
		return err
	}
	view, err := h.configurator.Reset(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Data: toConfigurationResponse(view)})
}

// Submit snapshots the completed configuration as an order and enqueues it.
//
// @Summary      Submit the completed configuration
// @Tags         configurator
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  successResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/configurator/submit [post]
func (h *ConfiguratorHandler) Submit(c echo.Context) error {
	sess, sid, err := ctxSession(c)
	if err != nil {
		return err
	}

	var userID string
	if sess.User != nil {
		userID = sess.User.ID
	}

	reference, err := h.configurator.Submit(c.Request().Context(), sid, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusAccepted, successResponse{
		Success: true,
		Message: "configuration submitted",
		Data:    submitResponse{Reference: reference},
	})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
)

// DashboardHandler serves the dashboard shell as data: the menu filtered by
// the session's capability table, and the landing route for the primary role.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

type menuItem struct {
	Title    string     `json:"title"`
	Path     string     `json:"path,omitempty"`
	Badge    string     `json:"badge,omitempty"`
	Children []menuItem `json:"children,omitempty"`
}

type menuResponse struct {
	Role    string                 `json:"role,omitempty"`
	Landing string                 `json:"landing"`
	Can     map[domain.Action]bool `json:"can"`
	Menu    []menuItem             `json:"menu"`
}

// landingRoutes maps the primary role to its dashboard route; anything else
// lands on the customer dashboard.
var landingRoutes = map[string]string{
	domain.RoleSuperAdmin:     "/dashboard/super-admin",
	domain.RoleAdmin:          "/dashboard/admin",
	domain.RoleSalesOfficer:   "/dashboard/sales",
	domain.RoleProjectManager: "/dashboard/projects",
	domain.RoleCustomer:       "/dashboard/customer",
}

// Menu returns the permission-filtered sidebar and capability table.
//
// @Summary      Get the dashboard menu for the current session
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Router       /v1/dashboard/menu [get]
func (h *DashboardHandler) Menu(c echo.Context) error {
	sess, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	resp := menuResponse{
		Landing: "/dashboard/customer",
		Can:     sess.Capabilities(),
		Menu:    buildMenu(sess),
	}
	if role, ok := sess.PrimaryRole(); ok {
		resp.Role = role
		if landing, known := landingRoutes[role]; known {
			resp.Landing = landing
		}
	}

	return c.JSON(http.StatusOK, successResponse{Success: true, Data: resp})
}

// buildMenu filters the menu definition through the capability table. Every
// visibility decision goes through Session.Can so the sidebar and the route
// guards share one source of truth.
func buildMenu(sess domain.Session) []menuItem {
	var menu []menuItem

	menu = append(menu, menuItem{Title: "Dashboard", Path: "/dashboard"})

	if sess.Can(domain.ActionViewProducts) {
		products := menuItem{Title: "Products", Children: []menuItem{
			{Title: "All Products", Path: "/products"},
		}}
		if sess.Can(domain.ActionCreateProducts) {
			products.Children = append(products.Children, menuItem{Title: "Create Product", Path: "/products/create"})
		}
		menu = append(menu, products)
	}

	if sess.Can(domain.ActionViewConfigurations) || sess.Can(domain.ActionCreateConfigurations) {
		menu = append(menu, menuItem{Title: "Configurator", Path: "/configurator", Badge: "New"})
	}

	if sess.Can(domain.ActionViewOrders) {
		orders := menuItem{Title: "Orders", Children: []menuItem{
			{Title: "All Orders", Path: "/orders"},
		}}
		if sess.Can(domain.ActionCreateOrders) {
			orders.Children = append(orders.Children, menuItem{Title: "Create Order", Path: "/orders/create"})
		}
		menu = append(menu, orders)
	}

	if sess.Can(domain.ActionViewProjects) {
		menu = append(menu, menuItem{Title: "Projects", Path: "/projects"})
	}

	if sess.Can(domain.ActionViewUsers) {
		menu = append(menu, menuItem{Title: "Users", Path: "/users"})
	}

	if sess.Can(domain.ActionViewReports) {
		menu = append(menu, menuItem{Title: "Reports", Path: "/reports"})
	}

	if sess.Can(domain.ActionManageSettings) {
		menu = append(menu, menuItem{Title: "Settings", Path: "/settings"})
	}

	return menu
}

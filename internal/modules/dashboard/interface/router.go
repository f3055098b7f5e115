package transport

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	coupons "storeAdmin/internal/modules/coupons/domain"
	"storeAdmin/internal/modules/dashboard/application/usecase"
	"storeAdmin/internal/modules/dashboard/infrastructure"
	inventory "storeAdmin/internal/modules/inventory/domain"
	messages "storeAdmin/internal/modules/messages/domain"
	newsletter "storeAdmin/internal/modules/newsletter/domain"
	orders "storeAdmin/internal/modules/orders/domain"
	products "storeAdmin/internal/modules/products/domain"
	"storeAdmin/internal/shared/auth"
)

// Dependencies groups what the HTTP surface is built from.
type Dependencies struct {
	Validator auth.TokenValidator
	Hub       *infrastructure.Hub

	Auth       *usecase.AuthUseCase
	Products   *usecase.ProductsUseCase
	Orders     *usecase.OrdersUseCase
	Coupons    *usecase.CouponsUseCase
	Newsletter *usecase.NewsletterUseCase
	Messages   *usecase.MessagesUseCase
	Inventory  *usecase.InventoryUseCase
	Settings   *usecase.SettingsUseCase
	Summary    *usecase.SummaryUseCase

	CookieName     string
	SecureCookies  bool
	AllowedOrigins []string
}

// Register mounts the pages, the JSON API and the notifications websocket on e. Pages redirect
// to /login without a session; /api routes answer 401.
func Register(e *echo.Echo, deps Dependencies) {
	requireSession := auth.RequireSession(deps.Validator, auth.MiddlewareConfig{
		CookieName: deps.CookieName,
		LoginPath:  "/login",
		APIPrefix:  "/api/",
		Skip:       []string{"/register", "/api/auth/login", "/api/auth/register"},
	})

	authH := &authHandlers{auth: deps.Auth, hub: deps.Hub, cookieName: deps.CookieName, secure: deps.SecureCookies, now: time.Now}
	productH := &productHandlers{uc: deps.Products}
	viewH := &viewHandlers{
		orders:     deps.Orders,
		coupons:    deps.Coupons,
		newsletter: deps.Newsletter,
		messages:   deps.Messages,
		inventory:  deps.Inventory,
		settings:   deps.Settings,
		summary:    deps.Summary,
	}
	pageH := &pageHandlers{auth: deps.Auth, products: deps.Products, views: viewH}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"status": "ok", "connections": deps.Hub.Connected()})
	})
	e.GET("/ws/notifications", NewNotificationsWebsocketHandler(deps.Hub, deps.Validator, deps.CookieName, deps.AllowedOrigins))

	// Pages
	e.GET("/login", publicPage("login"))
	e.GET("/register", publicPage("register"))
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}, requireSession)
	e.GET("/dashboard", pageH.dashboard, requireSession)
	e.GET("/products", listPage[products.Product](pageH, "products", deps.Products, nil), requireSession)
	e.GET("/products/add-product", pageH.addProduct, requireSession)
	e.GET("/orders", listPage[orders.Order](pageH, "orders", deps.Orders, pageH.ordersExtra), requireSession)
	e.GET("/offers", listPage[coupons.Coupon](pageH, "offers", deps.Coupons, pageH.offersExtra), requireSession)
	e.GET("/newsletter", listPage[newsletter.Subscriber](pageH, "newsletter", deps.Newsletter, nil), requireSession)
	e.GET("/messages", listPage[messages.Message](pageH, "messages", deps.Messages, pageH.messagesExtra), requireSession)
	e.GET("/inventory", listPage[inventory.Item](pageH, "inventory", deps.Inventory, pageH.inventoryExtra), requireSession)
	e.GET("/settings", pageH.settingsPage, requireSession)

	// Auth
	e.POST("/api/auth/login", authH.login)
	e.POST("/api/auth/register", authH.register)

	api := e.Group("/api", requireSession)
	api.POST("/auth/logout", authH.logout)
	api.GET("/session", authH.state)
	api.GET("/summary", viewH.summaryData)

	registerListRoutes[products.Product](api, "/products", deps.Products)
	api.POST("/products", productH.create)
	api.GET("/products/:id/edit", productH.edit)
	api.PUT("/products/:id", productH.update)
	api.POST("/products/delete", productH.requestDelete)
	api.POST("/products/delete/confirm", productH.confirmDelete)
	api.DELETE("/products/delete", productH.cancelDelete)

	registerListRoutes[orders.Order](api, "/orders", deps.Orders)
	api.GET("/orders/status-counts", viewH.orderStatusCounts)
	api.POST("/orders/:id/detail", viewH.toggleOrderDetail)
	api.PUT("/orders/:id/status", viewH.updateOrderStatus)
	api.GET("/orders/:id/invoice", viewH.orderInvoice)

	registerListRoutes[coupons.Coupon](api, "/offers", deps.Coupons)
	api.GET("/offers/code", viewH.couponCode)
	api.POST("/offers", viewH.createCoupon)
	api.POST("/offers/:id/delete", viewH.requestCouponDelete)
	api.POST("/offers/delete/confirm", viewH.confirmCouponDelete)
	api.DELETE("/offers/delete", viewH.cancelCouponDelete)

	registerListRoutes[newsletter.Subscriber](api, "/newsletter", deps.Newsletter)
	api.POST("/newsletter/select-filtered", viewH.selectFilteredSubscribers)
	api.GET("/newsletter/export", viewH.exportSubscribers)

	registerListRoutes[messages.Message](api, "/messages", deps.Messages)
	api.GET("/messages/unread", viewH.unreadMessages)
	api.POST("/messages/:id/open", viewH.openMessage)
	api.DELETE("/messages/open", viewH.closeMessage)
	api.DELETE("/messages/:id", viewH.deleteMessage)

	registerListRoutes[inventory.Item](api, "/inventory", deps.Inventory)
	api.GET("/inventory/totals", viewH.inventoryTotals)
	api.POST("/inventory", viewH.addInventoryItem)
	api.DELETE("/inventory/:id", viewH.deleteInventoryItem)

	api.GET("/settings", viewH.getSettings)
	api.PUT("/settings", viewH.updateSettings)
}

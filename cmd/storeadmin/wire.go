package main

import (
	"fmt"
	"log/slog"

	"storeAdmin/internal/config"
	"storeAdmin/internal/modules/dashboard/application/handler"
	"storeAdmin/internal/modules/dashboard/application/usecase"
	"storeAdmin/internal/modules/dashboard/domain"
	"storeAdmin/internal/modules/dashboard/infrastructure"
	transport "storeAdmin/internal/modules/dashboard/interface"
	"storeAdmin/internal/shared/auth"
	"storeAdmin/internal/shared/normalization"
)

// app holds the wired dashboard: clients, hub and one use case per page.
type app struct {
	cfg       *config.Config
	validator *auth.JWTValidator
	hub       *infrastructure.Hub
	backend   *infrastructure.BackendHTTPClient
	broadcast *usecase.BroadcastUseCase
	sweeper   *usecase.IdleSweeper

	auth       *usecase.AuthUseCase
	products   *usecase.ProductsUseCase
	orders     *usecase.OrdersUseCase
	coupons    *usecase.CouponsUseCase
	newsletter *usecase.NewsletterUseCase
	messages   *usecase.MessagesUseCase
	inventory  *usecase.InventoryUseCase
	settings   *usecase.SettingsUseCase
	summary    *usecase.SummaryUseCase
}

func buildApp(cfg *config.Config) (*app, error) {
	validator, err := auth.NewJWTValidatorWithPublicKey(cfg.Security.JWTSecret, cfg.Security.JWTPublicKey)
	if err != nil {
		return nil, fmt.Errorf("jwt validator: %w", err)
	}
	hub := infrastructure.NewHub()
	backend := infrastructure.NewBackendHTTPClient(cfg.REST.BaseURL, cfg.REST.Timeout, nil)
	identity := infrastructure.NewIdentityHTTPClient(cfg.Identity.URL, cfg.Identity.APIKey, cfg.REST.Timeout, nil)
	broadcastUC := usecase.NewBroadcastUseCase(hub)
	sessions := usecase.NewSessionStore(cfg.Views.Currency)
	views := cfg.Views

	a := &app{
		cfg:        cfg,
		validator:  validator,
		hub:        hub,
		backend:    backend,
		broadcast:  broadcastUC,
		products:   usecase.NewProductsUseCase(backend, sessions, broadcastUC, views.PageSize(domain.ViewProducts)),
		orders:     usecase.NewOrdersUseCase(sessions, broadcastUC, infrastructure.NewInvoicePDF(""), views.PageSize(domain.ViewOrders)),
		coupons:    usecase.NewCouponsUseCase(backend, sessions, broadcastUC, views.PageSize(domain.ViewCoupons)),
		newsletter: usecase.NewNewsletterUseCase(backend, broadcastUC, views.PageSize(domain.ViewNewsletter)),
		messages:   usecase.NewMessagesUseCase(backend, sessions, broadcastUC, views.PageSize(domain.ViewMessages)),
		inventory:  usecase.NewInventoryUseCase(broadcastUC, views.PageSize(domain.ViewInventory)),
		settings:   usecase.NewSettingsUseCase(backend, sessions, broadcastUC),
		summary:    usecase.NewSummaryUseCase(backend),
	}
	a.auth = usecase.NewAuthUseCase(identity, validator, sessions,
		a.products, a.orders, a.coupons, a.newsletter, a.messages, a.inventory)
	a.sweeper = usecase.NewIdleSweeper(views.IdleTTL, sessions,
		a.products.Activity(), a.orders.Activity(), a.coupons.Activity(),
		a.newsletter.Activity(), a.messages.Activity(), a.inventory.Activity())
	return a, nil
}

// routes returns the HTTP dependencies of the dashboard.
func (a *app) routes() transport.Dependencies {
	return transport.Dependencies{
		Validator:      a.validator,
		Hub:            a.hub,
		Auth:           a.auth,
		Products:       a.products,
		Orders:         a.orders,
		Coupons:        a.coupons,
		Newsletter:     a.newsletter,
		Messages:       a.messages,
		Inventory:      a.inventory,
		Settings:       a.settings,
		Summary:        a.summary,
		CookieName:     a.cfg.Server.CookieName,
		SecureCookies:  a.cfg.Server.SecureCookies,
		AllowedOrigins: a.cfg.Server.AllowedOrigins,
	}
}

// changeHandlers registers one handler per configured Kafka topic and returns the topics.
func (a *app) changeHandlers(registry *infrastructure.HandlerRegistry) []string {
	appliers := map[string]handler.ChangeApplier{
		normalization.EntityProducts:    a.products,
		normalization.EntityCoupons:     a.coupons,
		normalization.EntitySubscribers: a.newsletter,
		normalization.EntityMessages:    a.messages,
	}
	topics := make([]string, 0)
	for entity, topicList := range a.cfg.Kafka.Topics {
		canonical := normalization.NormalizeEntity(entity)
		applier, ok := appliers[canonical]
		if !ok {
			slog.Warn("kafka topics ignored: entity has no live view", slog.String("entity", entity), slog.Any("topics", topicList))
			continue
		}
		for _, topic := range topicList {
			registry.Register(handler.NewEntityChangeHandler(canonical, topic, nil, applier, a.broadcast))
			topics = append(topics, topic)
		}
	}
	return topics
}

package transport

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"storeAdmin/internal/modules/dashboard/application/usecase"
	"storeAdmin/internal/modules/dashboard/domain"
	"storeAdmin/internal/shared/auth"
)

// pageModel is what a routed page receives: the session state plus the data it renders.
type pageModel struct {
	Page  string           `json:"page"`
	User  *pageUser        `json:"user,omitempty"`
	State *domain.AppState `json:"state,omitempty"`
	Data  any              `json:"data,omitempty"`
}

type pageUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type pageHandlers struct {
	auth     *usecase.AuthUseCase
	products *usecase.ProductsUseCase
	views    *viewHandlers
}

// publicPage serves the login and register pages.
func publicPage(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, pageModel{Page: name})
	}
}

// listPage mounts the view of a list page, refetching its records while keeping criteria.
func listPage[T any](p *pageHandlers, name string, view listView[T], extra func(context.Context, auth.Session) (any, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := sessionOf(c)
		if err != nil {
			return respondError(c, err)
		}
		page, err := view.Mount(c.Request().Context(), session)
		if err != nil {
			return respondError(c, err)
		}
		data := map[string]any{"list": page}
		if extra != nil {
			more, err := extra(c.Request().Context(), session)
			if err != nil {
				return respondError(c, err)
			}
			data["extra"] = more
		}
		return c.JSON(http.StatusOK, p.model(name, session, data))
	}
}

func (p *pageHandlers) dashboard(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	summary, err := p.views.summary.Execute(c.Request().Context(), session, c.QueryParam("filter"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p.model("dashboard", session, summary))
}

// addProduct serves the product form, prefilled when a product was picked for editing.
func (p *pageHandlers) addProduct(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	data := map[string]any{"mode": "create"}
	if editing := p.auth.State(session).EditingProductID; editing != "" && p.products.Mounted(session) {
		if form, err := p.products.Edit(session, editing); err == nil {
			data = map[string]any{"mode": "edit", "productId": editing, "form": form}
		}
	}
	return c.JSON(http.StatusOK, p.model("add-product", session, data))
}

func (p *pageHandlers) settingsPage(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	profile, err := p.views.settings.Get(c.Request().Context(), session)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p.model("settings", session, profile))
}

func (p *pageHandlers) ordersExtra(_ context.Context, session auth.Session) (any, error) {
	return p.views.orders.StatusCounts(session)
}

func (p *pageHandlers) messagesExtra(_ context.Context, session auth.Session) (any, error) {
	unread, err := p.views.messages.UnreadCount(session)
	return map[string]int{"unread": unread}, err
}

func (p *pageHandlers) inventoryExtra(_ context.Context, session auth.Session) (any, error) {
	return p.views.inventory.Totals(session)
}

func (p *pageHandlers) offersExtra(_ context.Context, _ auth.Session) (any, error) {
	return map[string]string{"suggestedCode": p.views.coupons.GenerateCode()}, nil
}

func (p *pageHandlers) model(name string, session auth.Session, data any) pageModel {
	state := p.auth.State(session)
	user := &pageUser{ID: session.UserID(), DisplayName: state.Profile.DisplayName, Email: state.Profile.Email}
	return pageModel{Page: name, User: user, State: &state, Data: data}
}

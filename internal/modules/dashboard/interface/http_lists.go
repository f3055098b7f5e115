package transport

import (
	"context"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"storeAdmin/internal/shared/auth"
	"storeAdmin/internal/shared/listengine"
)

// listView is the part of a list page use case the generic routes drive.
type listView[T any] interface {
	Mount(ctx context.Context, session auth.Session) (listengine.Page[T], error)
	Mounted(session auth.Session) bool
	Page(session auth.Session) (listengine.Page[T], error)
	Apply(session auth.Session, criteria listengine.Criteria) (listengine.Page[T], error)
	Refine(session auth.Session, values url.Values) (listengine.Page[T], error)
	GoToPage(session auth.Session, page int) (listengine.Page[T], error)
	NextPage(session auth.Session) (listengine.Page[T], error)
	PreviousPage(session auth.Session) (listengine.Page[T], error)
	ToggleSelect(session auth.Session, id string) (listengine.Page[T], error)
	ToggleSelectPage(session auth.Session) (listengine.Page[T], error)
	ClearSelection(session auth.Session) (listengine.Page[T], error)
	Unmount(session auth.Session)
}

type listRoutes[T any] struct {
	view listView[T]
}

type pageRequest struct {
	Page int `json:"page"`
}

// registerListRoutes exposes the search, sort, page and selection operations of a view:
//
//	GET    <path>                 current page; query parameters present refine the criteria
//	DELETE <path>                 unmount the view
//	POST   <path>/refresh         refetch from the backend keeping criteria
//	PUT    <path>/criteria        replace criteria from a JSON body
//	PUT    <path>/page            go to {"page": n}
//	POST   <path>/page/next       next page
//	POST   <path>/page/previous   previous page
//	POST   <path>/selection/:id   toggle one record
//	POST   <path>/select-page     toggle the visible page
//	DELETE <path>/selection       clear the selection
func registerListRoutes[T any](g *echo.Group, path string, view listView[T]) {
	r := listRoutes[T]{view: view}
	g.GET(path, r.list)
	g.DELETE(path, r.unmount)
	g.POST(path+"/refresh", r.refresh)
	g.PUT(path+"/criteria", r.apply)
	g.PUT(path+"/page", r.goToPage)
	g.POST(path+"/page/next", r.next)
	g.POST(path+"/page/previous", r.previous)
	g.POST(path+"/selection/:id", r.toggle)
	g.POST(path+"/select-page", r.togglePage)
	g.DELETE(path+"/selection", r.clear)
}

func (r listRoutes[T]) list(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := r.ensureMounted(c, session); err != nil {
		return respondError(c, err)
	}
	var page listengine.Page[T]
	if query := c.QueryParams(); len(query) > 0 {
		page, err = r.view.Refine(session, query)
	} else {
		page, err = r.view.Page(session)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (r listRoutes[T]) refresh(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	page, err := r.view.Mount(c.Request().Context(), session)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (r listRoutes[T]) apply(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	var criteria listengine.Criteria
	if err := c.Bind(&criteria); err != nil {
		return respondError(c, err)
	}
	if err := r.ensureMounted(c, session); err != nil {
		return respondError(c, err)
	}
	page, err := r.view.Apply(session, criteria)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (r listRoutes[T]) unmount(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	r.view.Unmount(session)
	return c.NoContent(http.StatusNoContent)
}

func (r listRoutes[T]) goToPage(c echo.Context) error {
	var req pageRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, err)
	}
	return r.mutate(c, func(session auth.Session) (listengine.Page[T], error) {
		return r.view.GoToPage(session, req.Page)
	})
}

func (r listRoutes[T]) next(c echo.Context) error {
	return r.mutate(c, r.view.NextPage)
}

func (r listRoutes[T]) previous(c echo.Context) error {
	return r.mutate(c, r.view.PreviousPage)
}

func (r listRoutes[T]) toggle(c echo.Context) error {
	return r.mutate(c, func(session auth.Session) (listengine.Page[T], error) {
		return r.view.ToggleSelect(session, c.Param("id"))
	})
}

func (r listRoutes[T]) togglePage(c echo.Context) error {
	return r.mutate(c, r.view.ToggleSelectPage)
}

func (r listRoutes[T]) clear(c echo.Context) error {
	return r.mutate(c, r.view.ClearSelection)
}

func (r listRoutes[T]) mutate(c echo.Context, fn func(auth.Session) (listengine.Page[T], error)) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	page, err := fn(session)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (r listRoutes[T]) ensureMounted(c echo.Context, session auth.Session) error {
	if r.view.Mounted(session) {
		return nil
	}
	_, err := r.view.Mount(c.Request().Context(), session)
	return err
}

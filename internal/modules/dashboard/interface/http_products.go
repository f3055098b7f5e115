package transport

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"storeAdmin/internal/modules/dashboard/application/usecase"
	products "storeAdmin/internal/modules/products/domain"
	"storeAdmin/internal/shared/httputil"
	"storeAdmin/internal/shared/normalization"
)

type productHandlers struct {
	uc *usecase.ProductsUseCase
}

type deleteRequest struct {
	IDs []string `json:"ids"`
}

func (h *productHandlers) create(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	form, err := bindProductForm(c)
	if err != nil {
		return respondError(c, err)
	}
	created, err := h.uc.Create(c.Request().Context(), session, form)
	if err != nil {
		return respondError(c, err)
	}
	if created == nil {
		return c.NoContent(http.StatusAccepted)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *productHandlers) edit(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	form, err := h.uc.Edit(session, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, form)
}

func (h *productHandlers) update(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	form, err := bindProductForm(c)
	if err != nil {
		return respondError(c, err)
	}
	updated, err := h.uc.Update(c.Request().Context(), session, c.Param("id"), form)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *productHandlers) requestDelete(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	var req deleteRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return respondError(c, err)
		}
	}
	pending, err := h.uc.RequestDelete(session, req.IDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, pending)
}

func (h *productHandlers) confirmDelete(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	deleted, err := h.uc.ConfirmDelete(c.Request().Context(), session)
	if err != nil {
		return respondError(c, err)
	}
	page, err := h.uc.Page(session)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted": deleted, "page": page})
}

func (h *productHandlers) cancelDelete(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	h.uc.CancelDelete(session)
	return c.NoContent(http.StatusNoContent)
}

// bindProductForm reads the add/edit product form from JSON or from a multipart body carrying
// product_images files.
func bindProductForm(c echo.Context) (products.ProductForm, error) {
	var form products.ProductForm
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		err := c.Bind(&form)
		return form, err
	}
	mf, err := c.MultipartForm()
	if err != nil {
		return form, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
	}
	value := func(key string) string {
		if values := mf.Value[key]; len(values) > 0 {
			return strings.TrimSpace(values[0])
		}
		return ""
	}
	form.Name = value("product_name")
	form.Description = value("product_description")
	form.Price = normalization.AsFloat64(value("product_price"))
	form.Discount = normalization.AsFloat64(value("product_discount"))
	form.DiscountType = value("product_discount_type")
	form.Stock = normalization.AsInt(value("product_stock"))
	form.Gender = value("gender")
	form.Categories = formList(mf, "product_categories")
	form.Sizes = formList(mf, "product_sizes")
	form.Colors = formList(mf, "product_colors")
	form.ExistingImages = formList(mf, "existing_images")
	for _, header := range mf.File["product_images"] {
		upload, err := httputil.ReadFileUpload(header)
		if err != nil {
			return form, err
		}
		form.NewImages = append(form.NewImages, upload)
	}
	return form, nil
}

// formList accepts repeated fields, a JSON array or a comma separated value.
func formList(mf *multipart.Form, key string) []string {
	values := mf.Value[key]
	switch len(values) {
	case 0:
		return nil
	case 1:
		return normalization.AsStringSlice(values[0])
	default:
		return normalization.AsStringSlice(values)
	}
}

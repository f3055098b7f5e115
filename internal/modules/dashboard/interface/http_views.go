package transport

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	coupons "storeAdmin/internal/modules/coupons/domain"
	"storeAdmin/internal/modules/dashboard/application/usecase"
	inventory "storeAdmin/internal/modules/inventory/domain"
	settings "storeAdmin/internal/modules/settings/domain"
	"storeAdmin/internal/shared/httputil"
)

type viewHandlers struct {
	orders     *usecase.OrdersUseCase
	coupons    *usecase.CouponsUseCase
	newsletter *usecase.NewsletterUseCase
	messages   *usecase.MessagesUseCase
	inventory  *usecase.InventoryUseCase
	settings   *usecase.SettingsUseCase
	summary    *usecase.SummaryUseCase
}

type statusRequest struct {
	Status string `json:"status" form:"status"`
}

func (h *viewHandlers) summaryData(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	summary, err := h.summary.Execute(c.Request().Context(), session, c.QueryParam("filter"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// Orders

func (h *viewHandlers) toggleOrderDetail(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	order, expanded, err := h.orders.ToggleDetail(session, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"order": order, "expanded": expanded})
}

func (h *viewHandlers) updateOrderStatus(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, err)
	}
	order, err := h.orders.UpdateStatus(c.Request().Context(), session, c.Param("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *viewHandlers) orderStatusCounts(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.ensureOrders(c); err != nil {
		return respondError(c, err)
	}
	counts, err := h.orders.StatusCounts(session)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, counts)
}

func (h *viewHandlers) orderInvoice(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.ensureOrders(c); err != nil {
		return respondError(c, err)
	}
	pdf, fileName, err := h.orders.Invoice(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return attachment(c, "application/pdf", fileName, pdf)
}

func (h *viewHandlers) ensureOrders(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return err
	}
	if h.orders.Mounted(session) {
		return nil
	}
	_, err = h.orders.Mount(c.Request().Context(), session)
	return err
}

// Offers

func (h *viewHandlers) createCoupon(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	var form coupons.CouponForm
	if err := c.Bind(&form); err != nil {
		return respondError(c, err)
	}
	created, err := h.coupons.Create(c.Request().Context(), session, form)
	if err != nil {
		return respondError(c, err)
	}
	if created == nil {
		return c.NoContent(http.StatusAccepted)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *viewHandlers) requestCouponDelete(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	pending, err := h.coupons.RequestDelete(session, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, pending)
}

func (h *viewHandlers) confirmCouponDelete(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	deleted, err := h.coupons.ConfirmDelete(c.Request().Context(), session)
	if err != nil {
		return respondError(c, err)
	}
	page, err := h.coupons.Page(session)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted": deleted, "page": page})
}

func (h *viewHandlers) cancelCouponDelete(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	h.coupons.CancelDelete(session)
	return c.NoContent(http.StatusNoContent)
}

func (h *viewHandlers) couponCode(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"code": h.coupons.GenerateCode()})
}

// Newsletter

func (h *viewHandlers) selectFilteredSubscribers(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	page, err := h.newsletter.ToggleSelectAllFiltered(session)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *viewHandlers) exportSubscribers(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	csv, count, err := h.newsletter.Export(c.Request().Context(), session)
	if err != nil {
		return respondError(c, err)
	}
	c.Response().Header().Set("X-Export-Count", fmt.Sprint(count))
	return attachment(c, "text/csv; charset=utf-8", "newsletter_emails.csv", csv)
}

// Messages

func (h *viewHandlers) unreadMessages(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	if !h.messages.Mounted(session) {
		if _, err := h.messages.Mount(c.Request().Context(), session); err != nil {
			return respondError(c, err)
		}
	}
	count, err := h.messages.UnreadCount(session)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"unread": count})
}

func (h *viewHandlers) openMessage(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	message, err := h.messages.Open(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, message)
}

func (h *viewHandlers) closeMessage(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	h.messages.Close(session)
	return c.NoContent(http.StatusNoContent)
}

func (h *viewHandlers) deleteMessage(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.messages.Delete(c.Request().Context(), session, c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Inventory

func (h *viewHandlers) addInventoryItem(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	var form inventory.ItemForm
	if err := c.Bind(&form); err != nil {
		return respondError(c, err)
	}
	if !h.inventory.Mounted(session) {
		if _, err := h.inventory.Mount(c.Request().Context(), session); err != nil {
			return respondError(c, err)
		}
	}
	item, err := h.inventory.Add(c.Request().Context(), session, form)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *viewHandlers) deleteInventoryItem(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.inventory.Delete(c.Request().Context(), session, c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *viewHandlers) inventoryTotals(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	if !h.inventory.Mounted(session) {
		if _, err := h.inventory.Mount(c.Request().Context(), session); err != nil {
			return respondError(c, err)
		}
	}
	totals, err := h.inventory.Totals(session)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, totals)
}

// Settings

func (h *viewHandlers) getSettings(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	profile, err := h.settings.Get(c.Request().Context(), session)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *viewHandlers) updateSettings(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	update, err := bindSettingsUpdate(c)
	if err != nil {
		return respondError(c, err)
	}
	saved, err := h.settings.Update(c.Request().Context(), session, update)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// bindSettingsUpdate reads the settings form from JSON or from a multipart body with an
// optional profile_image file.
func bindSettingsUpdate(c echo.Context) (settings.Update, error) {
	var update settings.Update
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		err := c.Bind(&update)
		return update, err
	}
	update.DisplayName = strings.TrimSpace(c.FormValue("display_name"))
	update.Email = strings.TrimSpace(c.FormValue("email"))
	update.PhoneNumber = strings.TrimSpace(c.FormValue("phone_number"))
	header, err := c.FormFile("profile_image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return update, nil
		}
		return update, echo.NewHTTPError(http.StatusBadRequest, "invalid profile image")
	}
	upload, err := httputil.ReadFileUpload(header)
	if err != nil {
		return update, err
	}
	update.ProfileImage = &upload
	return update, nil
}

func attachment(c echo.Context, contentType, fileName string, content []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return c.Blob(http.StatusOK, contentType, content)
}

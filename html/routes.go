package html

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"storefront.GO/api"
	"storefront.GO/core/notify"
	"storefront.GO/html/parts"
	"storefront.GO/model/entity"
	"storefront.GO/service/catalog"
)

// ProductSource loads a single product for the detail page.
type ProductSource interface {
	Product(ctx context.Context, id int64) (entity.Product, error)
}

// App is what the preview routes work on. The server hosts one catalog view, so
// every visitor sees the same state.
type App struct {
	AppName  string
	Catalog  *catalog.Controller
	Products ProductSource
	Toasts   *notify.Queue
	Logger   *logrus.Logger
}

func (a *App) toasts() []notify.Toast {
	if a.Toasts == nil {
		return nil
	}
	return a.Toasts.Active()
}

// RegisterCatalogRoutes registers the catalog pages. Actions apply the change,
// wait for the resulting fetch and redirect back to the listing.
func RegisterCatalogRoutes(e *echo.Echo, app *App) {
	e.GET("/", func(c echo.Context) error {
		data := NewPageData(app.AppName, app.Catalog.Snapshot(), app.toasts())
		return c.Render(http.StatusOK, "catalog.html", data)
	})

	e.POST("/filters", func(c echo.Context) error {
		q := catalog.DefaultQuery()
		q.Text = strings.TrimSpace(c.FormValue("text"))
		q.Category = c.FormValue("category")
		q.Brand = c.FormValue("brand")
		if v := c.FormValue("sort"); v != "" {
			opt, err := catalog.ParseSortOption(v)
			if err != nil {
				return httpError(err)
			}
			q.SortField, q.SortDirection = opt.Field, opt.Direction
		}
		q.PageSize = 0
		if v := c.FormValue("size"); v != "" {
			size, err := catalog.ParsePageSizeString(v)
			if err != nil {
				return httpError(err)
			}
			q.PageSize = size
		}
		if err := app.Catalog.SetQuery(q); err != nil {
			return httpError(err)
		}
		app.Catalog.Wait()
		return c.Redirect(http.StatusSeeOther, "/")
	})

	// Pages are 1-based in URLs.
	e.GET("/page/:n", func(c echo.Context) error {
		n, err := strconv.Atoi(c.Param("n"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid page")
		}
		if app.Catalog.ChangePage(n - 1) {
			app.Catalog.Wait()
		}
		return c.Redirect(http.StatusSeeOther, "/")
	})

	e.POST("/cart/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
		}
		qty, _ := strconv.Atoi(c.FormValue("quantity"))
		// failures already reached the toast queue
		_ = app.Catalog.AddToCart(c.Request().Context(), id, qty)
		back := "/"
		if ref := c.Request().Referer(); strings.Contains(ref, "/product/") {
			back = "/product/" + c.Param("id")
		}
		return c.Redirect(http.StatusSeeOther, back)
	})

	e.GET("/product/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
		}
		p, err := app.Products.Product(c.Request().Context(), id)
		if err != nil {
			if app.Logger != nil {
				app.Logger.WithError(err).WithField("product_id", id).Warn("product detail failed")
			}
			return httpError(err)
		}
		snap := app.Catalog.Snapshot()
		return c.Render(http.StatusOK, "product.html", map[string]interface{}{
			"Title":       p.Name + " - " + app.AppName,
			"AppName":     app.AppName,
			"CriticalCSS": template.CSS(parts.CriticalCSS()),
			"Product":     NewCard(p),
			"Description": p.Description,
			"CartCount":   snap.CartCount,
		})
	})

	e.GET("/healthz", func(c echo.Context) error {
		snap := app.Catalog.Snapshot()
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":      "ok",
			"fetchStatus": snap.Status.String(),
			"cartCount":   snap.CartCount,
		})
	})
}

// httpError maps catalog and backend errors to HTTP statuses.
func httpError(err error) error {
	var apiErr *api.Error
	switch {
	case errors.Is(err, catalog.ErrInvalidFilter), errors.Is(err, catalog.ErrInvalidPageSize):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.As(err, &apiErr):
		switch {
		case apiErr.Status == http.StatusNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		case apiErr.Kind == api.KindApplication:
			return echo.NewHTTPError(http.StatusUnprocessableEntity, apiErr.Error())
		default:
			return echo.NewHTTPError(http.StatusBadGateway, apiErr.Error())
		}
	}
	return err
}

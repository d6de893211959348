//go:build !cli
// +build !cli

package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"storefront.GO/config"
	"storefront.GO/core/notify"
	"storefront.GO/cron"
	"storefront.GO/cron/jobs"
	_ "storefront.GO/custom"
	"storefront.GO/html"
	"storefront.GO/service/catalog"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()
	cfg := config.AppConfig
	logger := config.NewLogger()

	// Initialize Redis
	config.InitRedis()
	logger.Info(config.PingRedis())

	client := config.NewAPIClient(logger, "")
	store, purge := config.NewOptionsStore()
	toasts := notify.NewQueue(notify.DefaultToastTTL)
	size, err := catalog.ParsePageSize(cfg.PageSize)
	if err != nil {
		logger.WithError(err).Warn("PAGE_SIZE ignored")
		size = catalog.DefaultPageSize
	}
	ctl := catalog.New(client,
		catalog.WithLogger(logger),
		catalog.WithNotifier(notify.Multi{toasts, notify.NewLogNotifier(logger)}),
		catalog.WithDebounceDelay(cfg.SearchDebounce),
		catalog.WithPageSize(size),
		catalog.WithMaxVisible(cfg.MaxVisiblePages),
		catalog.WithOptionsCache(store, cfg.OptionsCacheTTL),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.APITimeout)
	if err := ctl.Init(ctx); err != nil {
		logger.WithError(err).Warn("initial catalog load failed")
	}
	cancel()

	jobs.RegisterCartCount(ctl, cfg.CartRefreshSchedule, logger)
	jobs.RegisterOptionsRefresh(ctl, purge, cfg.OptionsRefreshSchedule, logger)
	scheduler, err := cron.StartCron(logger)
	if err != nil {
		logger.WithError(err).Fatal("cron failed to start")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			logger.WithField("path", c.Path()).Debugf("Request duration: %d ms", duration)
			return err
		}
	})

	// Register the template renderer
	t, err := html.NewTemplate()
	if err != nil {
		logger.WithError(err).Fatal("templates failed to parse")
	}
	e.Renderer = t
	for _, tmpl := range t.Templates.Templates() {
		logger.Debugf("Loaded template: %s", tmpl.Name())
	}

	app := &html.App{
		AppName:  cfg.AppName,
		Catalog:  ctl,
		Products: client,
		Toasts:   toasts,
		Logger:   logger,
	}
	html.RegisterCatalogRoutes(e, app)
	html.ApplyRoutes(e, app)

	fonts := []string{"banner", "big", "slant", "standard", "small", "doom", "larry3d", "puffy"}
	figure.NewFigure("Storefront", fonts[rand.Intn(len(fonts))], true).Print()
	logger.Infof("Catalog preview on :%s, backend %s", cfg.Port, client.BaseURL())

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := html.Serve(sigCtx, e, ":"+cfg.Port, logger); err != nil {
		logger.WithError(err).Error("server stopped")
	}
	<-scheduler.Stop().Done()
	ctl.Dispose()
	ctl.Wait()
}

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"storefront.GO/api"
	"storefront.GO/config"
	"storefront.GO/core/notify"
	"storefront.GO/service/catalog"
)

// session is what a command needs to talk to the backend.
type session struct {
	logger *logrus.Logger
	client *api.Client
	ctl    *catalog.Controller
	purge  func()
}

// newSession wires client, option cache and catalog controller. Toasts are
// printed to out.
func newSession(out io.Writer, opts ...catalog.Option) *session {
	config.LoadAppConfig()
	logger := config.NewLogger()
	if os.Getenv("LOG_LEVEL") == "" && !config.AppConfig.Debug {
		// stderr stays quiet for interactive use
		logger.SetLevel(logrus.WarnLevel)
	}
	config.InitRedis()
	logger.Debug(config.PingRedis())

	client := config.NewAPIClient(logger, apiBaseURL)
	store, purge := config.NewOptionsStore()
	size, err := catalog.ParsePageSize(config.AppConfig.PageSize)
	if err != nil {
		logger.WithError(err).Warn("PAGE_SIZE ignored")
		size = catalog.DefaultPageSize
	}

	base := []catalog.Option{
		catalog.WithLogger(logger),
		catalog.WithNotifier(notify.Multi{printNotifier(out), notify.NewLogNotifier(logger)}),
		catalog.WithDebounceDelay(config.AppConfig.SearchDebounce),
		catalog.WithPageSize(size),
		catalog.WithMaxVisible(config.AppConfig.MaxVisiblePages),
		catalog.WithOptionsCache(store, config.AppConfig.OptionsCacheTTL),
	}
	return &session{
		logger: logger,
		client: client,
		ctl:    catalog.New(client, append(base, opts...)...),
		purge:  purge,
	}
}

// close stops the controller and drops the process-local cache entries it wrote.
func (s *session) close() {
	s.ctl.Dispose()
	s.ctl.Wait()
	if s.purge != nil {
		s.purge()
	}
}

func printNotifier(out io.Writer) notify.Notifier {
	return notify.Func(func(message string, level notify.Level) {
		mark := "i"
		switch level {
		case notify.Success:
			mark = "+"
		case notify.Error:
			mark = "!"
		}
		fmt.Fprintf(out, "[%s] %s\n", mark, message)
	})
}

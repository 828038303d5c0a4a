package app

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/mizan/internal/common"
	"github.com/ternarybob/mizan/internal/handlers"
	"github.com/ternarybob/mizan/internal/interfaces"
	"github.com/ternarybob/mizan/internal/services/export"
	"github.com/ternarybob/mizan/internal/services/marketdata"
	"github.com/ternarybob/mizan/internal/services/scheduler"
	"github.com/ternarybob/mizan/internal/services/screening"
	"github.com/ternarybob/mizan/internal/yahoo"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	StockDataService interfaces.StockDataService
	ScreeningService interfaces.ScreeningService
	ExportService    *export.Service
	SchedulerService *scheduler.Service

	APIHandler      *handlers.APIHandler
	AnalysisHandler *handlers.AnalysisHandler
	PageHandler     *handlers.PageHandler
}

// New wires up the application services and handlers
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	client := yahoo.NewClient(
		yahoo.WithBaseURL(cfg.Provider.BaseURL),
		yahoo.WithUserAgent(cfg.Provider.UserAgent),
		yahoo.WithRateLimit(cfg.Provider.RateLimit),
		yahoo.WithHTTPClient(&http.Client{Timeout: cfg.Provider.RequestTimeout}),
		yahoo.WithLogger(logger),
	)

	marketDataService := marketdata.NewService(client, &cfg.Provider, &cfg.Cache, logger)
	a.StockDataService = marketDataService

	screeningService, err := screening.NewService(logger)
	if err != nil {
		return nil, err
	}
	a.ScreeningService = screeningService

	a.ExportService = export.NewService()
	a.SchedulerService = scheduler.NewService(marketDataService, logger)

	a.APIHandler = handlers.NewAPIHandler()
	a.AnalysisHandler = handlers.NewAnalysisHandler(a.StockDataService, a.ScreeningService, a.ExportService, logger)
	a.PageHandler = handlers.NewPageHandler(logger)

	logger.Info().
		Str("provider", cfg.Provider.BaseURL).
		Msg("Application services initialized")

	return a, nil
}

// Start launches background services
func (a *App) Start() error {
	return a.SchedulerService.Start(a.Config.Cache.SweepSchedule)
}

// Close stops background services
func (a *App) Close() error {
	a.SchedulerService.Stop()
	a.Logger.Info().Msg("Application services stopped")
	return nil
}

package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/ougirez/wagedash/internal/api/controller"
	"github.com/ougirez/wagedash/internal/pkg/constants"
	"github.com/ougirez/wagedash/internal/pkg/logger"
	"github.com/ougirez/wagedash/internal/service/wage"
	"github.com/spf13/viper"
)

type APIService struct {
	router      *echo.Echo
	wageService *wage.Service
}

func (svc *APIService) Serve(addr string) error {
	return svc.router.Start(addr)
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

// Handler exposes the router for tests and custom servers.
func (svc *APIService) Handler() *echo.Echo {
	return svc.router
}

func NewAPIService(wageService *wage.Service) *APIService {
	svc := &APIService{router: echo.New(), wageService: wageService}

	svc.router.HideBanner = true
	svc.router.HidePort = true
	svc.router.Logger.SetLevel(log.WARN)
	svc.router.JSONSerializer = NewSerializer()
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.HTTPErrorHandler = httpErrorHandler

	svc.router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:        uuid.NewString,
		RequestIDHandler: requestIDToContext,
	}))
	svc.router.Use(middleware.Logger())
	svc.router.Use(middleware.Recover())

	origins := viper.GetStringSlice(constants.ViperCORSOriginsKey)
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{echo.GET, echo.HEAD, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderContentType},
	}))

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(svc.wageService)

	api.GET("/health", cntrl.Health)
	api.GET("/selections", cntrl.GetSelections)

	api.GET("/heatmap", cntrl.GetHeatmap)
	api.GET("/timeseries", cntrl.GetTimeSeries)
	api.GET("/bubbles", cntrl.GetBubbles)
	api.GET("/bars", cntrl.GetBars)

	charts := api.Group("/charts")
	charts.GET("/heatmap", cntrl.GetHeatmapChart)
	charts.GET("/timeseries", cntrl.GetTimeSeriesChart)
	charts.GET("/bubbles", cntrl.GetBubblesChart)
	charts.GET("/bars", cntrl.GetBarsChart)

	api.GET("/export/:view", cntrl.ExportView)

	return svc
}

func requestIDToContext(c echo.Context, rid string) {
	req := c.Request()
	c.SetRequest(req.WithContext(logger.With(req.Context(), "request_id", rid)))
}

package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/domain/dto"
)

func (c *Controller) Health(ctx echo.Context) error {
	selections, err := c.service.Selections(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Regions: len(selections.Regions),
		Years:   len(selections.Years),
	})
}

func (c *Controller) GetSelections(ctx echo.Context) error {
	selections, err := c.service.Selections(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, selections)
}

func (c *Controller) GetHeatmap(ctx echo.Context) error {
	var req dto.HeatmapRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	view, err := c.service.Heatmap(ctx.Request().Context())
	if err != nil {
		return err
	}

	if !req.ShowTable {
		// shared with the memo, so strip rows on a copy
		resp := *view
		resp.Rows = nil
		return ctx.JSON(http.StatusOK, resp)
	}

	return ctx.JSON(http.StatusOK, view)
}

func (c *Controller) GetTimeSeries(ctx echo.Context) error {
	var req dto.TimeSeriesRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	view, err := c.service.TimeSeries(ctx.Request().Context(), req.Region, req.ShowTable)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, view)
}

func (c *Controller) GetBubbles(ctx echo.Context) error {
	view, err := c.service.Bubbles(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, view)
}

func (c *Controller) GetBars(ctx echo.Context) error {
	var req dto.BarsRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	view, err := c.service.Bars(ctx.Request().Context(), req.Year, domain.WageMetric(req.Metric))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, view)
}

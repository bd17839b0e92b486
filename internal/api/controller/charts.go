package controller

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/domain/dto"
	"github.com/ougirez/wagedash/internal/service/render"
)

const mimeImagePNG = "image/png"

func (c *Controller) GetHeatmapChart(ctx echo.Context) error {
	view, err := c.service.Heatmap(ctx.Request().Context())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err = render.Heatmap(&buf, view); err != nil {
		return err
	}

	return ctx.Blob(http.StatusOK, mimeImagePNG, buf.Bytes())
}

func (c *Controller) GetTimeSeriesChart(ctx echo.Context) error {
	var req dto.TimeSeriesRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	view, err := c.service.TimeSeries(ctx.Request().Context(), req.Region, false)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err = render.TimeSeries(&buf, view); err != nil {
		return err
	}

	return ctx.Blob(http.StatusOK, mimeImagePNG, buf.Bytes())
}

func (c *Controller) GetBubblesChart(ctx echo.Context) error {
	var req dto.BubblesRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	view, err := c.service.Bubbles(ctx.Request().Context())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err = render.Bubbles(&buf, view, req.Year); err != nil {
		return err
	}

	return ctx.Blob(http.StatusOK, mimeImagePNG, buf.Bytes())
}

func (c *Controller) GetBarsChart(ctx echo.Context) error {
	var req dto.BarsRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	view, err := c.service.Bars(ctx.Request().Context(), req.Year, domain.WageMetric(req.Metric))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err = render.Bars(&buf, view, req.Age); err != nil {
		return err
	}

	return ctx.Blob(http.StatusOK, mimeImagePNG, buf.Bytes())
}

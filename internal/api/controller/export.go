package controller

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/domain/dto"
	"github.com/ougirez/wagedash/internal/service/export"
	"github.com/ougirez/wagedash/internal/service/wage"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (c *Controller) ExportView(ctx echo.Context) error {
	var req dto.ExportRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	view, err := c.service.View(ctx.Request().Context(), req.View, wage.ViewParams{
		Region:    req.Region,
		Year:      req.Year,
		Metric:    domain.WageMetric(req.Metric),
		ShowTable: req.ShowTable,
	})
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err = export.XLSX(&buf, req.View, view); err != nil {
		return fmt.Errorf("export.XLSX: %w", err)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", req.View+".xlsx"))
	return ctx.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}

package dto

import "github.com/ougirez/wagedash/internal/domain"

type HeatmapRequest struct {
	ShowTable bool `query:"show_table"`
}

type TimeSeriesRequest struct {
	Region    string `query:"region" validate:"required"`
	ShowTable bool   `query:"show_table"`
}

// BubblesRequest selects the frame of the bubble chart image. Zero means the first year.
type BubblesRequest struct {
	Year domain.Year `query:"year" validate:"gte=0"`
}

type BarsRequest struct {
	Year   domain.Year `query:"year" validate:"required"`
	Metric string      `query:"metric" validate:"required,oneof=wage scheduled_salary bonus"`
	// Age selects the frame of the bar chart image. Empty means the first bracket.
	Age string `query:"age"`
}

// ExportRequest carries the parameters of whichever view is exported.
type ExportRequest struct {
	View      string      `param:"view" validate:"required,oneof=heatmap timeseries bubbles bars"`
	Region    string      `query:"region" validate:"required_if=View timeseries"`
	Year      domain.Year `query:"year" validate:"required_if=View bars"`
	Metric    string      `query:"metric" validate:"omitempty,oneof=wage scheduled_salary bonus"`
	ShowTable bool        `query:"show_table"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Regions int    `json:"regions"`
	Years   int    `json:"years"`
}

package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/logger"
	"github.com/ougirez/wagedash/internal/service/export"
	"github.com/ougirez/wagedash/internal/service/render"
	"github.com/ougirez/wagedash/internal/service/wage"
	"github.com/spf13/cobra"
)

const (
	formatXLSX = "xlsx"
	formatPNG  = "png"
)

var exportOpts struct {
	view      string
	format    string
	out       string
	region    string
	year      int
	metric    string
	frame     string
	showTable bool
}

// exportCmd renders one view to a file
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render one view to an XLSX or PNG file",
	Long: `Build a single view from the configured source and write it to a file.

Views: heatmap, timeseries (needs --region), bubbles, bars (needs --year and --metric).
--frame picks the bubble year or the bar age bracket of a PNG.`,
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportOpts.view, "view", "", "view to export")
	f.StringVar(&exportOpts.format, "format", formatXLSX, "output format: xlsx or png")
	f.StringVarP(&exportOpts.out, "out", "o", "", "output file")
	f.StringVar(&exportOpts.region, "region", "", "prefecture for the timeseries view")
	f.IntVar(&exportOpts.year, "year", 0, "year for the bars view")
	f.StringVar(&exportOpts.metric, "metric", string(domain.MetricWage), "metric for the bars view")
	f.StringVar(&exportOpts.frame, "frame", "", "animation frame of a png")
	f.BoolVar(&exportOpts.showTable, "show-table", false, "include the regional rows of the timeseries view")
	_ = exportCmd.MarkFlagRequired("view")
	_ = exportCmd.MarkFlagRequired("out")
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	defer logger.Sync()

	if !slices.Contains(domain.Views, exportOpts.view) {
		return fmt.Errorf("unknown view %q, want one of %v", exportOpts.view, domain.Views)
	}
	if exportOpts.format != formatXLSX && exportOpts.format != formatPNG {
		return fmt.Errorf("unknown format %q", exportOpts.format)
	}

	data, err := loadDataset(ctx)
	if err != nil {
		return err
	}

	view, err := newWageService(data).View(ctx, exportOpts.view, wage.ViewParams{
		Region:    exportOpts.region,
		Year:      exportOpts.year,
		Metric:    domain.WageMetric(exportOpts.metric),
		ShowTable: exportOpts.showTable,
	})
	if err != nil {
		return err
	}

	out, err := os.Create(exportOpts.out)
	if err != nil {
		return fmt.Errorf("os.Create: %w", err)
	}
	defer out.Close()

	switch exportOpts.format {
	case formatPNG:
		err = render.View(out, view, exportOpts.frame)
	default:
		err = export.XLSX(out, exportOpts.view, view)
	}
	if err != nil {
		return err
	}

	logger.Infof(ctx, "%s written to %s", exportOpts.view, exportOpts.out)
	return out.Close()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/constants"
	"github.com/ougirez/wagedash/internal/pkg/loader"
	"github.com/ougirez/wagedash/internal/pkg/logger"
	"github.com/ougirez/wagedash/internal/pkg/store"
	"github.com/ougirez/wagedash/internal/pkg/store/xpgx"
	"github.com/ougirez/wagedash/internal/service/render"
	"github.com/ougirez/wagedash/internal/service/wage"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "WAGEDASH"

func setDefaults(v *viper.Viper) {
	v.SetDefault(constants.ViperServerAddrKey, ":8080")
	v.SetDefault(constants.ViperCORSOriginsKey, []string{"http://localhost:3000"})
	v.SetDefault(constants.ViperLogLevelKey, "info")
	v.SetDefault(constants.ViperLogDevKey, false)
	v.SetDefault(constants.ViperSourceDriverKey, constants.SourceDriverCSV)

	v.SetDefault(constants.ViperNationalPathKey, "data/wage_national.csv")
	v.SetDefault(constants.ViperCategoryPathKey, "data/wage_category.csv")
	v.SetDefault(constants.ViperPrefecturePathKey, "data/wage_prefecture.csv")
	v.SetDefault(constants.ViperGeoPathKey, "data/pref_lat_lon.csv")
	v.SetDefault(constants.ViperWageEncodingKey, loader.DefaultWageEncoding)
	v.SetDefault(constants.ViperGeoEncodingKey, loader.DefaultGeoEncoding)

	v.SetDefault(constants.ViperHeatmapYearKey, wage.DefaultHeatmapYear)
	v.SetDefault(constants.ViperMemoEnabledKey, true)
	v.SetDefault(constants.ViperChartFontKey, "")
}

// initConfig fills the global viper from defaults, the optional config file
// and WAGEDASH_ prefixed env vars, then sets up the logger and the chart font.
// A .env file in the working directory is loaded into the environment first.
func initConfig(ctx context.Context, file string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("godotenv.Load: %w", err)
	}

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("configs")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("viper.ReadInConfig: %w", err)
		}
	}

	if err := logger.Init(viper.GetString(constants.ViperLogLevelKey), viper.GetBool(constants.ViperLogDevKey)); err != nil {
		return fmt.Errorf("logger.Init: %w", err)
	}
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Infof(ctx, "config loaded from %s", used)
	}

	if path := viper.GetString(constants.ViperChartFontKey); path != "" {
		if err := render.LoadFont(path); err != nil {
			return fmt.Errorf("render.LoadFont: %w", err)
		}
		logger.Infof(ctx, "chart font loaded from %s", path)
	}

	return nil
}

// loadDataset reads the dataset from the configured source. The database pool
// is only held for the duration of the load.
func loadDataset(ctx context.Context) (*domain.Dataset, error) {
	switch driver := viper.GetString(constants.ViperSourceDriverKey); driver {
	case constants.SourceDriverCSV:
		src := loader.NewCSVSource(loader.Config{
			NationalPath:   viper.GetString(constants.ViperNationalPathKey),
			CategoryPath:   viper.GetString(constants.ViperCategoryPathKey),
			PrefecturePath: viper.GetString(constants.ViperPrefecturePathKey),
			GeoPath:        viper.GetString(constants.ViperGeoPathKey),
			WageEncoding:   viper.GetString(constants.ViperWageEncodingKey),
			GeoEncoding:    viper.GetString(constants.ViperGeoEncodingKey),
		})
		return load(ctx, src)
	case constants.SourceDriverPostgres:
		pool, err := xpgx.Connect(ctx, viper.GetString(constants.ViperPostgresDSNKey))
		if err != nil {
			return nil, fmt.Errorf("xpgx.Connect: %w", err)
		}
		defer pool.Close()

		return load(ctx, store.NewStore(pool))
	default:
		return nil, fmt.Errorf("unknown source driver %q", driver)
	}
}

func load(ctx context.Context, src loader.Source) (*domain.Dataset, error) {
	data, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("src.Load: %w", err)
	}
	return data, nil
}

func newWageService(data *domain.Dataset) *wage.Service {
	return wage.NewService(data, wage.Options{
		HeatmapYear: viper.GetInt(constants.ViperHeatmapYearKey),
		Memo:        viper.GetBool(constants.ViperMemoEnabledKey),
	})
}

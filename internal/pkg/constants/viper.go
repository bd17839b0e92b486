package constants

const (
	ViperServerAddrKey   = "server.addr"
	ViperCORSOriginsKey  = "server.cors_allow_origins"
	ViperLogLevelKey     = "log.level"
	ViperLogDevKey       = "log.development"
	ViperSourceDriverKey = "source.driver"
	ViperPostgresDSNKey  = "postgres.dsn"

	ViperNationalPathKey   = "data.national.path"
	ViperCategoryPathKey   = "data.category.path"
	ViperPrefecturePathKey = "data.prefecture.path"
	ViperGeoPathKey        = "data.geo.path"
	ViperWageEncodingKey   = "data.wage_encoding"
	ViperGeoEncodingKey    = "data.geo_encoding"

	ViperHeatmapYearKey = "pipeline.heatmap_year"
	ViperMemoEnabledKey = "pipeline.memo"

	ViperChartFontKey = "render.font"
)

const (
	SourceDriverCSV      = "csv"
	SourceDriverPostgres = "postgres"
)

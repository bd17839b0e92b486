package domain

// Rendering hints of the prefecture heatmap.
const (
	HeatmapOpacity   = 0.4
	HeatmapThreshold = 0.3
)

// Fixed axis domains of the bubble chart. They keep frames comparable across years.
const (
	BubbleXMin    = 150.0
	BubbleXMax    = 700.0
	BubbleYMin    = 0.0
	BubbleYMax    = 150.0
	BubbleSizeMax = 38
)

// BarHeadroom is added to the largest bar to get the upper x bound.
const BarHeadroom = 50.0

const (
	BarChartWidth  = 800
	BarChartHeight = 500
	// BarOrientation marks the industry bars as horizontal.
	BarOrientation = "h"
)

// View names shared by the API routes and the export command.
const (
	ViewHeatmap    = "heatmap"
	ViewTimeSeries = "timeseries"
	ViewBubbles    = "bubbles"
	ViewBars       = "bars"
)

var Views = []string{ViewHeatmap, ViewTimeSeries, ViewBubbles, ViewBars}

// Tabular is implemented by every view. Table returns a header and the rows
// under it, one value per header column.
type Tabular interface {
	Table() ([]string, [][]any)
}

type ViewState struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Zoom      float64 `json:"zoom"`
	Pitch     float64 `json:"pitch"`
}

var DefaultViewState = ViewState{
	Longitude: 139.4130,
	Latitude:  35.4122,
	Zoom:      4,
	Pitch:     40.5,
}

type GeoWageRow struct {
	WageRecord
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	NormalizedWage float64 `json:"normalized_wage"`
}

type WeightedPoint struct {
	Lon    float64 `json:"lon"`
	Lat    float64 `json:"lat"`
	Weight float64 `json:"weight"`
}

type HeatmapLayer struct {
	Opacity   float64         `json:"opacity"`
	Threshold float64         `json:"threshold"`
	Points    []WeightedPoint `json:"points"`
}

type HeatmapView struct {
	Year     Year         `json:"year"`
	Rows     []GeoWageRow `json:"rows,omitempty"`
	Layer    HeatmapLayer `json:"layer"`
	View     ViewState    `json:"view"`
	Centroid GeoPoint     `json:"centroid"`
}

func (v *HeatmapView) Table() ([]string, [][]any) {
	header := []string{ColRegion, ColYear, ColAge, ColWage, ColScheduledSalary, ColBonus, ColLat, ColLon, ColNormalizedWage}
	rows := make([][]any, 0, len(v.Rows))
	for _, r := range v.Rows {
		rows = append(rows, []any{r.Region, r.Year, r.Age, r.Wage, r.ScheduledSalary, r.Bonus, r.Lat, r.Lon, r.NormalizedWage})
	}
	return header, rows
}

type TimeSeriesRow struct {
	Year         Year    `json:"year"`
	NationalWage float64 `json:"national_wage"`
	RegionalWage float64 `json:"regional_wage"`
}

type TimeSeriesView struct {
	Region       string          `json:"region"`
	Rows         []TimeSeriesRow `json:"rows"`
	RegionalRows []WageRecord    `json:"regional_rows,omitempty"`
}

func (v *TimeSeriesView) Table() ([]string, [][]any) {
	header := []string{ColYear, ColNationalWage, ColWage}
	rows := make([][]any, 0, len(v.Rows))
	for _, r := range v.Rows {
		rows = append(rows, []any{r.Year, r.NationalWage, r.RegionalWage})
	}
	return header, rows
}

type BubbleRow struct {
	Wage            float64 `json:"wage"`
	Bonus           float64 `json:"bonus"`
	ScheduledSalary float64 `json:"scheduled_salary"`
	Age             string  `json:"age"`
	Year            Year    `json:"year"`
}

type BubbleView struct {
	Rows    []BubbleRow `json:"rows"`
	XRange  [2]float64  `json:"x_range"`
	YRange  [2]float64  `json:"y_range"`
	SizeMax int         `json:"size_max"`
	Frames  []Year      `json:"frames"`
	Groups  []string    `json:"groups"`
}

// Frame returns the rows of one animation frame.
func (v *BubbleView) Frame(year Year) []BubbleRow {
	res := make([]BubbleRow, 0, len(v.Groups))
	for _, r := range v.Rows {
		if r.Year == year {
			res = append(res, r)
		}
	}
	return res
}

func (v *BubbleView) Table() ([]string, [][]any) {
	header := []string{ColWage, ColBonus, ColScheduledSalary, ColAge, ColYear}
	rows := make([][]any, 0, len(v.Rows))
	for _, r := range v.Rows {
		rows = append(rows, []any{r.Wage, r.Bonus, r.ScheduledSalary, r.Age, r.Year})
	}
	return header, rows
}

type BarView struct {
	Year        Year         `json:"year"`
	Metric      WageMetric   `json:"metric"`
	MetricLabel string       `json:"metric_label"`
	Rows        []WageRecord `json:"rows"`
	XRange      [2]float64   `json:"x_range"`
	Frames      []string     `json:"frames"`
	Orientation string       `json:"orientation"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
}

func (v *BarView) MaxX() float64 {
	return v.XRange[1]
}

// Frame returns the rows of one age bracket.
func (v *BarView) Frame(age string) []WageRecord {
	res := make([]WageRecord, 0)
	for _, r := range v.Rows {
		if r.Age == age {
			res = append(res, r)
		}
	}
	return res
}

func (v *BarView) Table() ([]string, [][]any) {
	header := []string{ColIndustry, ColAge, ColYear, ColWage, ColScheduledSalary, ColBonus}
	rows := make([][]any, 0, len(v.Rows))
	for _, r := range v.Rows {
		rows = append(rows, []any{r.Industry, r.Age, r.Year, r.Wage, r.ScheduledSalary, r.Bonus})
	}
	return header, rows
}

type MetricOption struct {
	Key   WageMetric `json:"key"`
	Label string     `json:"label"`
}

type Selections struct {
	Regions     []string       `json:"regions"`
	Years       []Year         `json:"years"`
	Metrics     []MetricOption `json:"metrics"`
	HeatmapYear Year           `json:"heatmap_year"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

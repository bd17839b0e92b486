package wage

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	tokyo    = "東京都"
	hokkaido = "北海道"
	osaka    = "大阪府"
	okinawa  = "沖縄県"

	age2024 = "20-24歳"
	age2529 = "25-29歳"
)

func rec(region string, year domain.Year, age string, wage, scheduled, bonus float64) domain.WageRecord {
	return domain.WageRecord{Region: region, Year: year, Age: age, Wage: wage, ScheduledSalary: scheduled, Bonus: bonus}
}

func industryRec(industry string, year domain.Year, age string, wage, scheduled, bonus float64) domain.WageRecord {
	r := rec("全国", year, age, wage, scheduled, bonus)
	r.Industry = industry
	return r
}

func testDataset() *domain.Dataset {
	return &domain.Dataset{
		National: []domain.WageRecord{
			rec("全国", 2015, domain.AgeAll, 300, 250, 50),
			rec("全国", 2015, age2024, 210, 190, 18),
			rec("全国", 2018, domain.AgeAll, 308, 255, 53),
			rec("全国", 2019, domain.AgeAll, 310, 256, 54),
			rec("全国", 2019, age2024, 220, 200, 20),
			rec("全国", 2019, age2529, 260, 230, 40),
		},
		Category: []domain.WageRecord{
			industryRec("建設業", 2018, domain.AgeAll, 330, 270, 60),
			industryRec("建設業", 2019, domain.AgeAll, 340, 280, 60),
			industryRec("製造業", 2019, domain.AgeAll, 320, 260, 60),
			industryRec("建設業", 2019, age2024, 230, 210, 20),
			industryRec("製造業", 2019, age2024, 225.5, 205, 20.5),
		},
		Prefecture: []domain.WageRecord{
			rec(tokyo, 2015, domain.AgeAll, 300, 250, 50),
			rec(tokyo, 2019, domain.AgeAll, 350, 290, 60),
			rec(tokyo, 2019, age2024, 240, 215, 25),
			rec(hokkaido, 2019, domain.AgeAll, 280, 240, 40),
			rec(hokkaido, 2018, domain.AgeAll, 275, 238, 37),
			rec(osaka, 2019, domain.AgeAll, 320, 270, 50),
			rec(osaka, 2021, domain.AgeAll, 330, 275, 55),
			rec(okinawa, 2019, domain.AgeAll, 250, 220, 30),
		},
		Geo: []domain.GeoPoint{
			{Region: tokyo, Lat: 35.4, Lon: 139.4},
			{Region: hokkaido, Lat: 43.06, Lon: 141.35},
			{Region: osaka, Lat: 34.69, Lon: 135.52},
			{Region: "京都府", Lat: 35.02, Lon: 135.76},
		},
	}
}

func TestBuildHeatmap(t *testing.T) {
	view, err := BuildHeatmap(testDataset(), 2019)
	require.NoError(t, err)

	// okinawa has no coordinates and kyoto has no wages: both drop out of the join
	require.Len(t, view.Rows, 3)
	assert.Equal(t, []string{tokyo, hokkaido, osaka}, []string{view.Rows[0].Region, view.Rows[1].Region, view.Rows[2].Region})

	tokyoRow := view.Rows[0]
	assert.Equal(t, 350.0, tokyoRow.Wage)
	assert.Equal(t, 1.0, tokyoRow.NormalizedWage)
	assert.Equal(t, 35.4, tokyoRow.Lat)
	assert.Equal(t, 139.4, tokyoRow.Lon)
	assert.Equal(t, 2019, tokyoRow.Year)

	assert.Equal(t, 0.0, view.Rows[1].NormalizedWage)
	assert.InDelta(t, 40.0/70.0, view.Rows[2].NormalizedWage, 1e-12)

	for _, r := range view.Rows {
		assert.GreaterOrEqual(t, r.NormalizedWage, 0.0)
		assert.LessOrEqual(t, r.NormalizedWage, 1.0)
	}

	require.Len(t, view.Layer.Points, 3)
	assert.Equal(t, domain.WeightedPoint{Lon: 139.4, Lat: 35.4, Weight: 1}, view.Layer.Points[0])
	assert.Equal(t, domain.HeatmapOpacity, view.Layer.Opacity)
	assert.Equal(t, domain.HeatmapThreshold, view.Layer.Threshold)
	assert.Equal(t, domain.DefaultViewState, view.View)

	assert.InDelta(t, 37.7, view.Centroid.Lat, 1.5)
	assert.InDelta(t, 138.8, view.Centroid.Lon, 1.5)
}

func TestBuildHeatmapSingleRegion(t *testing.T) {
	data := &domain.Dataset{
		Prefecture: []domain.WageRecord{
			rec(tokyo, 2015, domain.AgeAll, 300, 250, 50),
			rec(tokyo, 2019, domain.AgeAll, 350, 290, 60),
		},
		Geo: []domain.GeoPoint{{Region: tokyo, Lat: 35.4, Lon: 139.4}},
	}

	view, err := BuildHeatmap(data, 2019)
	require.NoError(t, err)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, 350.0, view.Rows[0].Wage)
	// a single row has no spread, so it normalizes to zero
	assert.Equal(t, 0.0, view.Rows[0].NormalizedWage)
}

func TestBuildHeatmapEqualWages(t *testing.T) {
	data := testDataset()
	for i := range data.Prefecture {
		data.Prefecture[i].Wage = 300
	}

	view, err := BuildHeatmap(data, 2019)
	require.NoError(t, err)
	for _, r := range view.Rows {
		assert.Equal(t, 0.0, r.NormalizedWage)
	}
}

func TestBuildHeatmapErrors(t *testing.T) {
	t.Run("duplicate coordinates", func(t *testing.T) {
		data := testDataset()
		data.Geo = append(data.Geo, domain.GeoPoint{Region: tokyo, Lat: 35.6, Lon: 139.7})

		_, err := BuildHeatmap(data, 2019)
		assert.ErrorIs(t, err, constants.ErrJoinAmbiguity)
	})

	t.Run("duplicate wage rows", func(t *testing.T) {
		data := testDataset()
		data.Prefecture = append(data.Prefecture, rec(tokyo, 2019, domain.AgeAll, 351, 290, 61))

		_, err := BuildHeatmap(data, 2019)
		assert.ErrorIs(t, err, constants.ErrJoinAmbiguity)
	})

	t.Run("no rows for year", func(t *testing.T) {
		_, err := BuildHeatmap(testDataset(), 1990)
		assert.ErrorIs(t, err, constants.ErrEmptySelection)
	})
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, []float64{0, 0.5, 1}, normalize([]float64{100, 150, 200}))
	assert.Equal(t, []float64{0, 0}, normalize([]float64{7, 7}))
	assert.Empty(t, normalize(nil))
}

func TestBuildTimeSeries(t *testing.T) {
	data := testDataset()

	tests := []struct {
		name   string
		region string
		want   []domain.TimeSeriesRow
	}{
		{
			name:   "tokyo",
			region: tokyo,
			want: []domain.TimeSeriesRow{
				{Year: 2015, NationalWage: 300, RegionalWage: 300},
				{Year: 2019, NationalWage: 310, RegionalWage: 350},
			},
		},
		{
			name:   "sorted ascending",
			region: hokkaido,
			want: []domain.TimeSeriesRow{
				{Year: 2018, NationalWage: 308, RegionalWage: 275},
				{Year: 2019, NationalWage: 310, RegionalWage: 280},
			},
		},
		{
			name:   "years missing nationally are dropped",
			region: osaka,
			want: []domain.TimeSeriesRow{
				{Year: 2019, NationalWage: 310, RegionalWage: 320},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := BuildTimeSeries(data, tt.region, false)
			require.NoError(t, err)
			assert.Equal(t, tt.region, view.Region)
			assert.Equal(t, tt.want, view.Rows)
			assert.Nil(t, view.RegionalRows)
		})
	}
}

func TestBuildTimeSeriesShowTable(t *testing.T) {
	view, err := BuildTimeSeries(testDataset(), tokyo, true)
	require.NoError(t, err)

	require.Len(t, view.RegionalRows, 2)
	for _, r := range view.RegionalRows {
		assert.Equal(t, tokyo, r.Region)
		assert.True(t, r.IsAllAges())
	}
}

func TestBuildTimeSeriesErrors(t *testing.T) {
	t.Run("unknown region", func(t *testing.T) {
		_, err := BuildTimeSeries(testDataset(), "京都府", false)
		assert.ErrorIs(t, err, constants.ErrInvalidSelection)
	})

	t.Run("duplicate national year", func(t *testing.T) {
		data := testDataset()
		data.National = append(data.National, rec("全国", 2019, domain.AgeAll, 311, 256, 55))

		_, err := BuildTimeSeries(data, tokyo, false)
		assert.ErrorIs(t, err, constants.ErrJoinAmbiguity)
	})

	t.Run("duplicate regional year", func(t *testing.T) {
		data := testDataset()
		data.Prefecture = append(data.Prefecture, rec(tokyo, 2015, domain.AgeAll, 301, 250, 51))

		_, err := BuildTimeSeries(data, tokyo, false)
		assert.ErrorIs(t, err, constants.ErrJoinAmbiguity)
	})
}

func TestBuildBubbles(t *testing.T) {
	view := BuildBubbles(testDataset())

	require.Len(t, view.Rows, 3)
	for _, r := range view.Rows {
		assert.NotEqual(t, domain.AgeAll, r.Age)
	}
	assert.Equal(t, domain.BubbleRow{Wage: 210, Bonus: 18, ScheduledSalary: 190, Age: age2024, Year: 2015}, view.Rows[0])

	assert.Equal(t, [2]float64{150, 700}, view.XRange)
	assert.Equal(t, [2]float64{0, 150}, view.YRange)
	assert.Equal(t, 38, view.SizeMax)
	assert.Equal(t, []domain.Year{2015, 2019}, view.Frames)
	assert.Equal(t, []string{age2024, age2529}, view.Groups)

	assert.Len(t, view.Frame(2019), 2)
	assert.Empty(t, view.Frame(2018))
}

func TestBuildBars(t *testing.T) {
	data := testDataset()

	tests := []struct {
		metric domain.WageMetric
		maxX   float64
	}{
		{metric: domain.MetricWage, maxX: 340 + 50},
		{metric: domain.MetricScheduledSalary, maxX: 280 + 50},
		{metric: domain.MetricBonus, maxX: 60 + 50},
	}

	for _, tt := range tests {
		t.Run(string(tt.metric), func(t *testing.T) {
			view, err := BuildBars(data, 2019, tt.metric)
			require.NoError(t, err)

			require.Len(t, view.Rows, 4)
			for _, r := range view.Rows {
				assert.Equal(t, 2019, r.Year)
			}
			assert.Equal(t, tt.maxX, view.MaxX())
			assert.Equal(t, 0.0, view.XRange[0])
			assert.Equal(t, tt.metric.Label(), view.MetricLabel)
			assert.Equal(t, []string{domain.AgeAll, age2024}, view.Frames)
			assert.Len(t, view.Frame(age2024), 2)
		})
	}
}

func TestBuildBarsFractionalMax(t *testing.T) {
	data := testDataset()
	data.Category[1].Wage = 345.7

	view, err := BuildBars(data, 2019, domain.MetricWage)
	require.NoError(t, err)
	assert.Equal(t, 345.7+50, view.MaxX())
}

func TestBuildBarsErrors(t *testing.T) {
	_, err := BuildBars(testDataset(), 2020, domain.MetricWage)
	assert.ErrorIs(t, err, constants.ErrInvalidSelection)

	_, err = BuildBars(testDataset(), 2019, domain.WageMetric("overtime"))
	assert.ErrorIs(t, err, constants.ErrInvalidSelection)

	empty := testDataset()
	empty.Category = nil
	_, err = BuildBars(empty, 2019, domain.MetricWage)
	assert.ErrorIs(t, err, constants.ErrEmptySelection)
}

func TestBuildSelections(t *testing.T) {
	selections, err := BuildSelections(testDataset(), 2019)
	require.NoError(t, err)

	assert.Equal(t, []string{tokyo, hokkaido, osaka, okinawa}, selections.Regions)
	assert.Equal(t, []domain.Year{2018, 2019}, selections.Years)
	assert.Equal(t, 2019, selections.HeatmapYear)
	require.Len(t, selections.Metrics, 3)
	assert.Equal(t, domain.MetricOption{Key: domain.MetricWage, Label: domain.ColWage}, selections.Metrics[0])
}

func TestBuildSelectionsEmpty(t *testing.T) {
	data := testDataset()
	data.Category = nil

	_, err := BuildSelections(data, 2019)
	assert.ErrorIs(t, err, constants.ErrEmptySelection)

	_, err = BuildSelections(&domain.Dataset{}, 2019)
	assert.ErrorIs(t, err, constants.ErrEmptySelection)
}

func TestBuildersAreIdempotent(t *testing.T) {
	data := testDataset()

	marshal := func(v any) []byte {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		return b
	}

	h1, err := BuildHeatmap(data, 2019)
	require.NoError(t, err)
	h2, err := BuildHeatmap(data, 2019)
	require.NoError(t, err)
	assert.Equal(t, marshal(h1), marshal(h2))

	t1, err := BuildTimeSeries(data, hokkaido, true)
	require.NoError(t, err)
	t2, err := BuildTimeSeries(data, hokkaido, true)
	require.NoError(t, err)
	assert.Equal(t, marshal(t1), marshal(t2))

	b1, err := BuildBars(data, 2019, domain.MetricBonus)
	require.NoError(t, err)
	b2, err := BuildBars(data, 2019, domain.MetricBonus)
	require.NoError(t, err)
	assert.Equal(t, marshal(b1), marshal(b2))

	assert.Equal(t, marshal(BuildBubbles(data)), marshal(BuildBubbles(data)))
}

func TestServiceMemo(t *testing.T) {
	ctx := context.Background()
	svc := NewService(testDataset(), Options{Memo: true})

	var (
		wg    sync.WaitGroup
		views = make([]*domain.TimeSeriesView, 8)
	)
	for i := range views {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			view, err := svc.TimeSeries(ctx, tokyo, false)
			assert.NoError(t, err)
			views[i] = view
		}(i)
	}
	wg.Wait()

	for _, v := range views[1:] {
		assert.Same(t, views[0], v)
	}

	_, err := svc.TimeSeries(ctx, "京都府", false)
	assert.ErrorIs(t, err, constants.ErrInvalidSelection)
	assert.Equal(t, 1, svc.memo.size())
}

func TestServiceWithoutMemo(t *testing.T) {
	ctx := context.Background()
	svc := NewService(testDataset(), Options{})
	assert.Nil(t, svc.memo)

	h1, err := svc.Heatmap(ctx)
	require.NoError(t, err)
	h2, err := svc.Heatmap(ctx)
	require.NoError(t, err)

	assert.NotSame(t, h1, h2)
	assert.Equal(t, h1, h2)
	assert.Equal(t, DefaultHeatmapYear, h1.Year)
}

func TestServiceBars(t *testing.T) {
	svc := NewService(testDataset(), Options{Memo: true})

	view, err := svc.Bars(context.Background(), 2018, domain.MetricWage)
	require.NoError(t, err)
	assert.Equal(t, 380.0, view.MaxX())

	selections, err := svc.Selections(context.Background())
	require.NoError(t, err)
	assert.Contains(t, selections.Years, view.Year)
}

func TestServiceView(t *testing.T) {
	svc := NewService(testDataset(), Options{})
	ctx := context.Background()

	tests := []struct {
		name   string
		params ViewParams
		want   any
	}{
		{name: domain.ViewHeatmap, want: &domain.HeatmapView{}},
		{name: domain.ViewTimeSeries, params: ViewParams{Region: tokyo}, want: &domain.TimeSeriesView{}},
		{name: domain.ViewBubbles, want: &domain.BubbleView{}},
		{name: domain.ViewBars, params: ViewParams{Year: 2019, Metric: domain.MetricBonus}, want: &domain.BarView{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := svc.View(ctx, tt.name, tt.params)
			require.NoError(t, err)
			assert.IsType(t, tt.want, view)
		})
	}

	_, err := svc.View(ctx, "map", ViewParams{})
	assert.ErrorIs(t, err, constants.ErrBadRequest)

	view, err := svc.View(ctx, domain.ViewTimeSeries, ViewParams{Region: "火星"})
	assert.ErrorIs(t, err, constants.ErrInvalidSelection)
	assert.Nil(t, view)
}

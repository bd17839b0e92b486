package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
)

const (
	wageHeader     = "都道府県コード,都道府県名,集計年,年齢,一人当たり賃金（万円）,所定内給与額（万円）,年間賞与その他特別給与額（万円）\n"
	categoryHeader = "都道府県名,集計年,産業大分類名,年齢,一人当たり賃金（万円）,所定内給与額（万円）,年間賞与その他特別給与額（万円）\n"
)

func writeFile(t *testing.T, dir, name, content string, sjis bool) string {
	t.Helper()

	data := []byte(content)
	if sjis {
		var err error
		data, err = japanese.ShiftJIS.NewEncoder().Bytes(data)
		require.NoError(t, err)
	}

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadTableShiftJIS(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pref.csv", wageHeader+
		"13,東京都,2019,年齢計,350.5,300.1,50.4\n"+
		"13,東京都,2019,20-24歳,220,200,20\n", true)

	df, err := ReadTable(path, "shift_jis")
	require.NoError(t, err)

	records, dropped, err := WageRecords(df, false)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, records, 2)
	assert.Equal(t, domain.WageRecord{
		Region:          "東京都",
		Year:            2019,
		Age:             domain.AgeAll,
		Wage:            350.5,
		ScheduledSalary: 300.1,
		Bonus:           50.4,
	}, records[0])
	assert.Equal(t, "20-24歳", records[1].Age)
	assert.Equal(t, 220.0, records[1].Wage)
}

func TestReadTableErrors(t *testing.T) {
	dir := t.TempDir()
	sjisPath := writeFile(t, dir, "sjis.csv", wageHeader+"13,東京都,2019,年齢計,350,300,50\n", true)

	tests := []struct {
		name     string
		path     string
		encoding string
		want     error
	}{
		{name: "missing file", path: filepath.Join(dir, "nope.csv"), encoding: "shift_jis", want: constants.ErrIO},
		{name: "wrong encoding", path: sjisPath, encoding: "utf-8", want: constants.ErrDecode},
		{name: "unknown encoding", path: sjisPath, encoding: "klingon", want: constants.ErrDecode},
		{name: "header only", path: writeFile(t, dir, "empty.csv", wageHeader, false), encoding: "utf-8", want: constants.ErrSchema},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTable(tt.path, tt.encoding)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadTableStripsBOM(t *testing.T) {
	path := writeFile(t, t.TempDir(), "geo.csv", "\ufeffpref_name,lat,lon\n東京都,35.4,139.4\n", false)

	df, err := ReadTable(path, "utf-8")
	require.NoError(t, err)

	points, err := GeoPoints(df)
	require.NoError(t, err)
	assert.Equal(t, []domain.GeoPoint{{Region: "東京都", Lat: 35.4, Lon: 139.4}}, points)
}

func TestWageRecordsMissingColumn(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cat.csv", wageHeader+"13,東京都,2019,年齢計,350,300,50\n", false)
	df, err := ReadTable(path, "utf-8")
	require.NoError(t, err)

	_, _, err = WageRecords(df, true)
	assert.ErrorIs(t, err, constants.ErrSchema)
	assert.Contains(t, err.Error(), domain.ColIndustry)
}

func TestWageRecordsDropsMalformedRows(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pref.csv", wageHeader+
		"13,東京都,2019,年齢計,350,300,50\n"+
		"13,東京都,unknown,年齢計,351,300,50\n"+
		"13,東京都,2018,年齢計,-,300,50\n"+
		"13,東京都,2017,年齢計,340,290,50\n", false)
	df, err := ReadTable(path, "utf-8")
	require.NoError(t, err)

	records, dropped, err := WageRecords(df, false)
	require.NoError(t, err)
	assert.Equal(t, 2, dropped)
	require.Len(t, records, 2)
	assert.Equal(t, 2019, records[0].Year)
	assert.Equal(t, 2017, records[1].Year)
}

func TestGeoPointsAcceptsRenamedHeader(t *testing.T) {
	path := writeFile(t, t.TempDir(), "geo.csv", "都道府県名,lat,lon\n北海道,43.06,141.35\n", false)
	df, err := ReadTable(path, "utf-8")
	require.NoError(t, err)

	points, err := GeoPoints(df)
	require.NoError(t, err)
	assert.Equal(t, "北海道", points[0].Region)
}

func writeDataset(t *testing.T, geo string) Config {
	t.Helper()
	dir := t.TempDir()

	return Config{
		NationalPath: writeFile(t, dir, "national.csv", wageHeader+
			"0,全国,2018,年齢計,300,250,50\n"+
			"0,全国,2019,年齢計,310,255,55\n"+
			"0,全国,2019,20-24歳,220,200,20\n", true),
		CategoryPath: writeFile(t, dir, "category.csv", categoryHeader+
			"全国,2019,建設業,年齢計,330,270,60\n"+
			"全国,2019,製造業,年齢計,320,260,60\n", true),
		PrefecturePath: writeFile(t, dir, "pref.csv", wageHeader+
			"13,東京都,2019,年齢計,350,300,50\n"+
			"1,北海道,2019,年齢計,280,240,40\n", true),
		GeoPath: writeFile(t, dir, "geo.csv", geo, false),
	}
}

func TestCSVSourceLoad(t *testing.T) {
	cfg := writeDataset(t, "pref_name,lat,lon\n東京都,35.4,139.4\n北海道,43.06,141.35\n")

	dataset, err := NewCSVSource(cfg).Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, dataset.National, 3)
	assert.Len(t, dataset.Category, 2)
	assert.Equal(t, "建設業", dataset.Category[0].Industry)
	assert.Len(t, dataset.Prefecture, 2)
	assert.Len(t, dataset.Geo, 2)
}

func TestCSVSourceLoadInvalidCoordinates(t *testing.T) {
	cfg := writeDataset(t, "pref_name,lat,lon\n東京都,135.4,139.4\n")

	_, err := NewCSVSource(cfg).Load(context.Background())
	assert.ErrorIs(t, err, constants.ErrSchema)
}

func TestCSVSourceLoadMissingFile(t *testing.T) {
	cfg := writeDataset(t, "pref_name,lat,lon\n東京都,35.4,139.4\n")
	cfg.CategoryPath = filepath.Join(t.TempDir(), "missing.csv")

	_, err := NewCSVSource(cfg).Load(context.Background())
	assert.ErrorIs(t, err, constants.ErrIO)
}

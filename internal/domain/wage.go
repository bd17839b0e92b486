package domain

import (
	"fmt"

	"github.com/golang/geo/s2"
)

type Year = int

// AgeAll marks the aggregate row across every age bracket.
const AgeAll = "年齢計"

// Source column headers of the RESAS wage tables.
const (
	ColRegion          = "都道府県名"
	ColYear            = "集計年"
	ColAge             = "年齢"
	ColWage            = "一人当たり賃金（万円）"
	ColScheduledSalary = "所定内給与額（万円）"
	ColBonus           = "年間賞与その他特別給与額（万円）"
	ColIndustry        = "産業大分類名"
	ColNationalWage    = "全国_一人当たり賃金（万円）"
	ColNormalizedWage  = "一人当たりの賃金（相対値）"

	ColGeoRegion = "pref_name"
	ColLat       = "lat"
	ColLon       = "lon"
)

type WageRecord struct {
	Region          string  `db:"region_name" json:"region"`
	Year            Year    `db:"year" json:"year"`
	Age             string  `db:"age" json:"age"`
	Wage            float64 `db:"wage" json:"wage"`
	ScheduledSalary float64 `db:"scheduled_salary" json:"scheduled_salary"`
	Bonus           float64 `db:"bonus" json:"bonus"`
	Industry        string  `db:"industry" json:"industry,omitempty"`
}

func (r WageRecord) IsAllAges() bool {
	return r.Age == AgeAll
}

// Metric returns the value of the given wage metric.
func (r WageRecord) Metric(m WageMetric) float64 {
	switch m {
	case MetricScheduledSalary:
		return r.ScheduledSalary
	case MetricBonus:
		return r.Bonus
	default:
		return r.Wage
	}
}

type GeoPoint struct {
	Region string  `db:"region_name" json:"region"`
	Lat    float64 `db:"lat" json:"lat"`
	Lon    float64 `db:"lon" json:"lon"`
}

func (p GeoPoint) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(p.Lat, p.Lon)
}

func (p GeoPoint) Valid() bool {
	return p.LatLng().IsValid()
}

type WageMetric string

const (
	MetricWage            WageMetric = "wage"
	MetricScheduledSalary WageMetric = "scheduled_salary"
	MetricBonus           WageMetric = "bonus"
)

var Metrics = []WageMetric{MetricWage, MetricScheduledSalary, MetricBonus}

func (m WageMetric) Valid() bool {
	switch m {
	case MetricWage, MetricScheduledSalary, MetricBonus:
		return true
	}
	return false
}

// Label is the source column header the metric is read from.
func (m WageMetric) Label() string {
	switch m {
	case MetricScheduledSalary:
		return ColScheduledSalary
	case MetricBonus:
		return ColBonus
	default:
		return ColWage
	}
}

// Dataset holds the raw tables. It is built once at startup and never mutated.
type Dataset struct {
	National   []WageRecord
	Category   []WageRecord
	Prefecture []WageRecord
	Geo        []GeoPoint
}

func NewDataset(national, category, prefecture []WageRecord, geo []GeoPoint) (*Dataset, error) {
	for _, p := range geo {
		if !p.Valid() {
			return nil, fmt.Errorf("invalid coordinates for %s: lat-%f, lon-%f", p.Region, p.Lat, p.Lon)
		}
	}

	return &Dataset{
		National:   national,
		Category:   category,
		Prefecture: prefecture,
		Geo:        geo,
	}, nil
}

package render

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/ougirez/wagedash/internal/domain"
	"github.com/wcharczuk/go-chart/v2"
)

// fontSample must be drawable by a font passed to LoadFont.
const fontSample = "東京都" + domain.AgeAll + "建設業" + domain.ColWage

var (
	faceMu sync.RWMutex
	face   *truetype.Font
)

// LoadFont parses a TrueType font (or the first face of a collection) and makes
// every following chart use it. The face has to cover Japanese text.
func LoadFont(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("os.ReadFile: %w", err)
	}

	f, err := truetype.Parse(raw)
	if err != nil {
		return fmt.Errorf("truetype.Parse: %w", err)
	}
	if !covers(f, fontSample) {
		return fmt.Errorf("font %s has no glyphs for %q", path, fontSample)
	}

	SetFont(f)
	return nil
}

// SetFont switches the chart face. nil restores the go-chart default, which
// only draws Latin text, so labels are romanized.
func SetFont(f *truetype.Font) {
	faceMu.Lock()
	defer faceMu.Unlock()
	face = f
}

func currentFont() (*truetype.Font, error) {
	faceMu.RLock()
	f := face
	faceMu.RUnlock()

	if f != nil {
		return f, nil
	}
	f, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("chart.GetDefaultFont: %w", err)
	}
	return f, nil
}

func covers(f *truetype.Font, s string) bool {
	for _, r := range s {
		if f.Index(r) == 0 {
			return false
		}
	}
	return true
}

// labeler renders chart text with font, romanizing what font cannot draw.
type labeler struct {
	font *truetype.Font
}

func newLabeler() (labeler, error) {
	f, err := currentFont()
	if err != nil {
		return labeler{}, err
	}
	return labeler{font: f}, nil
}

func (l labeler) text(s string) string {
	if covers(l.font, s) {
		return s
	}
	if r, ok := romaji[s]; ok {
		return r
	}
	if r, ok := romanizeAge(s); ok {
		return r
	}

	return strings.Map(func(r rune) rune {
		if l.font.Index(r) == 0 {
			return '?'
		}
		return r
	}, s)
}

// romanizeAge turns census age brackets like "20-24歳" and "70歳～" into
// "20-24" and "70+".
func romanizeAge(s string) (string, bool) {
	if !strings.Contains(s, "歳") {
		return "", false
	}
	out := strings.NewReplacer("歳", "", "～", "+", "〜", "+", "~", "+").Replace(s)
	for _, r := range out {
		if (r < '0' || r > '9') && r != '-' && r != '+' {
			return "", false
		}
	}
	return out, true
}

var romaji = map[string]string{
	domain.AgeAll:             "All ages",
	domain.ColRegion:          "Prefecture",
	domain.ColYear:            "Year",
	domain.ColAge:             "Age",
	domain.ColWage:            "Wage per person (10k JPY)",
	domain.ColScheduledSalary: "Scheduled salary (10k JPY)",
	domain.ColBonus:           "Annual bonus (10k JPY)",
	domain.ColIndustry:        "Industry",
	domain.ColNationalWage:    "National wage per person (10k JPY)",
	domain.ColNormalizedWage:  "Relative wage per person",

	"全国": "Japan",

	"北海道":  "Hokkaido",
	"青森県":  "Aomori",
	"岩手県":  "Iwate",
	"宮城県":  "Miyagi",
	"秋田県":  "Akita",
	"山形県":  "Yamagata",
	"福島県":  "Fukushima",
	"茨城県":  "Ibaraki",
	"栃木県":  "Tochigi",
	"群馬県":  "Gunma",
	"埼玉県":  "Saitama",
	"千葉県":  "Chiba",
	"東京都":  "Tokyo",
	"神奈川県": "Kanagawa",
	"新潟県":  "Niigata",
	"富山県":  "Toyama",
	"石川県":  "Ishikawa",
	"福井県":  "Fukui",
	"山梨県":  "Yamanashi",
	"長野県":  "Nagano",
	"岐阜県":  "Gifu",
	"静岡県":  "Shizuoka",
	"愛知県":  "Aichi",
	"三重県":  "Mie",
	"滋賀県":  "Shiga",
	"京都府":  "Kyoto",
	"大阪府":  "Osaka",
	"兵庫県":  "Hyogo",
	"奈良県":  "Nara",
	"和歌山県": "Wakayama",
	"鳥取県":  "Tottori",
	"島根県":  "Shimane",
	"岡山県":  "Okayama",
	"広島県":  "Hiroshima",
	"山口県":  "Yamaguchi",
	"徳島県":  "Tokushima",
	"香川県":  "Kagawa",
	"愛媛県":  "Ehime",
	"高知県":  "Kochi",
	"福岡県":  "Fukuoka",
	"佐賀県":  "Saga",
	"長崎県":  "Nagasaki",
	"熊本県":  "Kumamoto",
	"大分県":  "Oita",
	"宮崎県":  "Miyazaki",
	"鹿児島県": "Kagoshima",
	"沖縄県":  "Okinawa",

	"全産業":               "All industries",
	"鉱業，採石業，砂利採取業":      "Mining and quarrying",
	"建設業":               "Construction",
	"製造業":               "Manufacturing",
	"電気・ガス・熱供給・水道業":     "Electricity, gas, heat and water",
	"情報通信業":             "Information and communications",
	"運輸業，郵便業":           "Transport and postal",
	"卸売業，小売業":           "Wholesale and retail",
	"金融業，保険業":           "Finance and insurance",
	"不動産業，物品賃貸業":        "Real estate and leasing",
	"学術研究，専門・技術サービス業":   "Scientific and technical services",
	"宿泊業，飲食サービス業":       "Accommodation and food services",
	"生活関連サービス業，娯楽業":     "Living services and amusement",
	"教育，学習支援業":          "Education",
	"医療，福祉":             "Medical and welfare",
	"複合サービス事業":          "Compound services",
	"サービス業（他に分類されないもの）": "Other services",
}

package domain

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	inventory "storeAdmin/internal/modules/inventory/domain"
	orders "storeAdmin/internal/modules/orders/domain"
)

// TimeFilter selects the chart series shown on the dashboard.
type TimeFilter string

const (
	FilterWeek  TimeFilter = "week"
	FilterMonth TimeFilter = "month"
	FilterYear  TimeFilter = "year"
)

// ErrUnknownTimeFilter is returned for filters other than week, month or year.
var ErrUnknownTimeFilter = errors.New("unknown time filter")

// ParseTimeFilter accepts week, month or year. Empty input selects week.
func ParseTimeFilter(raw string) (TimeFilter, error) {
	switch filter := TimeFilter(strings.ToLower(strings.TrimSpace(raw))); filter {
	case "":
		return FilterWeek, nil
	case FilterWeek, FilterMonth, FilterYear:
		return filter, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTimeFilter, raw)
	}
}

// ChartSeries is one sales and orders series with its axis labels.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Sales  []float64 `json:"sales"`
	Orders []int     `json:"orders"`
}

// TopProduct is a best seller shown in the products chart.
type TopProduct struct {
	Name    string  `json:"name"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

// Charts is the sales reporting data behind the dashboard cards.
type Charts struct {
	Revenue         float64                    `json:"revenue"`
	PreviousRevenue float64                    `json:"previousRevenue"`
	Growth          float64                    `json:"growth"`
	Series          map[TimeFilter]ChartSeries `json:"series"`
	TopProducts     []TopProduct               `json:"topProducts"`
}

//go:embed fixtures/charts.json
var chartsFixture []byte

// LoadCharts decodes the bundled reporting data.
func LoadCharts() (Charts, error) {
	var charts Charts
	if err := json.Unmarshal(chartsFixture, &charts); err != nil {
		return Charts{}, fmt.Errorf("decode charts fixture: %w", err)
	}
	return charts, nil
}

// Summary is everything the dashboard page shows.
type Summary struct {
	Filter          TimeFilter            `json:"filter"`
	Revenue         float64               `json:"revenue"`
	PreviousRevenue float64               `json:"previousRevenue"`
	Growth          float64               `json:"growth"`
	Series          ChartSeries           `json:"series"`
	TopProducts     []TopProduct          `json:"topProducts"`
	Products        int                   `json:"totalProducts"`
	OutOfStock      int                   `json:"outOfStockProducts"`
	Coupons         int                   `json:"activeCoupons"`
	Subscribers     int                   `json:"subscribers"`
	UnreadMessages  int                   `json:"unreadMessages"`
	Orders          int                   `json:"totalOrders"`
	OrderStatuses   map[orders.Status]int `json:"orderStatuses"`
	Inventory       inventory.Totals      `json:"inventory"`
	Partial         []string              `json:"partial,omitempty"`
}

// NewSummary seeds a summary for filter from the reporting data.
func NewSummary(charts Charts, filter TimeFilter) Summary {
	return Summary{
		Filter:          filter,
		Revenue:         charts.Revenue,
		PreviousRevenue: charts.PreviousRevenue,
		Growth:          charts.Growth,
		Series:          charts.Series[filter],
		TopProducts:     charts.TopProducts,
	}
}

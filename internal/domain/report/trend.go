// Package report computes trend projections over enriched shelf events.
// Every projection is recomputed from the full input; nothing is incremental.
package report

import (
	"github.com/shopspring/decimal"
)

// DefaultTopN is the truncation limit of the ranked projections
const DefaultTopN = 10

// DateLayout is the format of day buckets
const DateLayout = "2006-01-02"

// FrequencyEntry counts events for one group key
type FrequencyEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DailyCount counts events on one calendar day
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// RatioEntry compares restocked and empty events for one item
type RatioEntry struct {
	Name         string          `json:"name"`
	Restocked    int             `json:"restocked"`
	Empty        int             `json:"empty"`
	RestockShare decimal.Decimal `json:"restock_share"`
}

// Total returns restocked + empty
func (r RatioEntry) Total() int {
	return r.Restocked + r.Empty
}

// TrendSet holds the six trend projections
type TrendSet struct {
	EmptyData        []FrequencyEntry `json:"empty_data"`
	RestockedData    []FrequencyEntry `json:"restocked_data"`
	LowStockData     []FrequencyEntry `json:"low_stock_data"`
	AisleData        []FrequencyEntry `json:"aisle_data"`
	EventsOverTime   []DailyCount     `json:"events_over_time"`
	RestockEmptyData []RatioEntry     `json:"restock_empty_data"`
}

package report

import (
	"slices"
	"strings"

	"github.com/shelflog/backend/internal/domain/shelf"
	"github.com/shopspring/decimal"
)

// tally counts keys and remembers first-encountered order
type tally struct {
	order  []string
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string) {
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

// ranked returns entries by count descending, ties in first-encountered order
func (t *tally) ranked(topN int) []FrequencyEntry {
	out := make([]FrequencyEntry, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, FrequencyEntry{Name: k, Count: t.counts[k]})
	}
	slices.SortStableFunc(out, func(a, b FrequencyEntry) int {
		return b.Count - a.Count
	})
	return truncate(out, topN)
}

func truncate[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Aggregate computes the trend projections of events. It is pure and
// deterministic: the same input always yields the same TrendSet.
//
// Events whose item did not resolve only count towards EventsOverTime.
func Aggregate(events []shelf.EnrichedEvent, opts ...Option) TrendSet {
	o := newOptions(opts)

	byAction := map[shelf.Action]*tally{
		shelf.ActionEmpty:     newTally(),
		shelf.ActionRestocked: newTally(),
		shelf.ActionLowStock:  newTally(),
	}
	aisles := newTally()
	days := newTally()

	var ratioOrder []string
	ratios := make(map[string]*RatioEntry)

	for _, e := range events {
		days.add(e.CreatedAt.In(o.location).Format(DateLayout))

		if !e.ItemResolved {
			continue
		}
		if t, ok := byAction[e.Action]; ok {
			t.add(e.ItemName)
		}
		aisles.add(e.Aisle)

		if e.Action != shelf.ActionRestocked && e.Action != shelf.ActionEmpty {
			continue
		}
		r, ok := ratios[e.ItemName]
		if !ok {
			r = &RatioEntry{Name: e.ItemName}
			ratios[e.ItemName] = r
			ratioOrder = append(ratioOrder, e.ItemName)
		}
		if e.Action == shelf.ActionRestocked {
			r.Restocked++
		} else {
			r.Empty++
		}
	}

	return TrendSet{
		EmptyData:        byAction[shelf.ActionEmpty].ranked(o.topN),
		RestockedData:    byAction[shelf.ActionRestocked].ranked(o.topN),
		LowStockData:     byAction[shelf.ActionLowStock].ranked(o.topN),
		AisleData:        aisles.ranked(o.topN),
		EventsOverTime:   chronological(days),
		RestockEmptyData: rankRatios(ratioOrder, ratios, o.topN),
	}
}

// chronological lists every day bucket in ascending date order
func chronological(days *tally) []DailyCount {
	out := make([]DailyCount, 0, len(days.order))
	for _, d := range days.order {
		out = append(out, DailyCount{Date: d, Count: days.counts[d]})
	}
	slices.SortFunc(out, func(a, b DailyCount) int {
		return strings.Compare(a.Date, b.Date)
	})
	return out
}

func rankRatios(order []string, ratios map[string]*RatioEntry, topN int) []RatioEntry {
	out := make([]RatioEntry, 0, len(order))
	for _, name := range order {
		r := *ratios[name]
		r.RestockShare = decimal.NewFromInt(int64(r.Restocked)).
			DivRound(decimal.NewFromInt(int64(r.Total())), 2)
		out = append(out, r)
	}
	slices.SortStableFunc(out, func(a, b RatioEntry) int {
		return b.Total() - a.Total()
	})
	return truncate(out, topN)
}

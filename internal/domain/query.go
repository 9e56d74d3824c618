package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Filter selects which status group a collection view shows
type Filter string

const (
	// FilterAll shows the in-flight statuses, not literally everything
	FilterAll Filter = "alla"
	// FilterArchive shows the retired statuses
	FilterArchive Filter = "arkiv"
)

// matches reports whether a status belongs to the filter's group. A filter
// outside the two named groups is an exact status match.
func (f Filter) matches(s Status) bool {
	switch f {
	case FilterAll, "":
		return s.IsActive()
	case FilterArchive:
		return s.IsArchived()
	default:
		return s == Status(f)
	}
}

// QueryQuotes turns the raw fetched collection into the display list:
// nil records are dropped, every quote is hydrated and re-totalled, the
// filter group and case-insensitive search (customer name or id) are
// applied together, and the result is ordered by creation time, newest
// first. Quotes without events sort last. The input is never mutated.
func QueryQuotes(quotes []*Quote, filter Filter, search string) []Quote {
	needle := strings.ToLower(strings.TrimSpace(search))

	out := make([]Quote, 0, len(quotes))
	for _, q := range quotes {
		if q == nil {
			continue
		}
		c := q.Clone()
		c.Hydrate()
		c.Total = CalculateTotal(&c)
		if !filter.matches(c.Status) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(c.Customer), needle) &&
			!strings.Contains(strings.ToLower(c.ID), needle) {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FirstEventTime().After(out[j].FirstEventTime())
	})
	return out
}

// Summary describes a filtered view for the dashboard header
type Summary struct {
	Count      int     `json:"count"`
	TotalValue float64 `json:"totalValue"`
	Text       string  `json:"text"`
}

// Summarize builds the header line for a filtered view, e.g.
// "Visar 3 aktiva ärenden med ett totalt värde av 6 720,00 kr."
func Summarize(quotes []Quote, filter Filter) Summary {
	s := Summary{Count: len(quotes)}
	for i := range quotes {
		s.TotalValue += quotes[i].Total
	}
	if s.Count == 0 {
		s.Text = "Inga ärenden i denna vy."
		return s
	}

	unit := "ärenden"
	if s.Count == 1 {
		unit = "ärende"
	}
	qualifier := ""
	if filter == FilterAll || filter == "" {
		qualifier = "aktiva "
	}
	s.Text = fmt.Sprintf("Visar %d %s%s med ett totalt värde av %s.",
		s.Count, qualifier, unit, FormatSEK(s.TotalValue))
	return s
}

package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/technovapc/store-manager/internal/entity"
)

// ErrInvalidDateRange is returned when a custom range ends before it starts.
var ErrInvalidDateRange = errors.New("invalid date range: end must be after start")

// Granularity selects both the fetch window and the bucketing resolution.
type Granularity string

const (
	GranularityDay    Granularity = "day"
	GranularityWeek   Granularity = "week"
	GranularityMonth  Granularity = "month"
	GranularityYear   Granularity = "year"
	GranularityCustom Granularity = "custom"
)

// ParseGranularity maps the period query parameter to a granularity.
// An empty value defaults to month.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityDay, GranularityWeek, GranularityMonth, GranularityYear, GranularityCustom:
		return Granularity(s), nil
	case "":
		return GranularityMonth, nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// ResolvePeriod turns a granularity into the concrete [start, end) window
// and the immediately preceding window of equal span.
//
// The day window is midnight-anchored ("since local midnight"), not a
// rolling 24h window, and its previous period ends at 23:59:59.999 of the
// prior day. Week, month and year are rolling windows whose previous
// period shifts both endpoints back by the same calendar unit. These
// boundary rules are load-bearing for comparison math; do not normalize
// them.
func ResolvePeriod(g Granularity, now time.Time, customStart, customEnd *time.Time) (current, previous entity.TimeRange, err error) {
	switch g {
	case GranularityDay:
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		current = entity.TimeRange{From: midnight, To: now}
		prevStart := midnight.AddDate(0, 0, -1)
		prevEnd := time.Date(prevStart.Year(), prevStart.Month(), prevStart.Day(),
			23, 59, 59, int(999*time.Millisecond), prevStart.Location())
		previous = entity.TimeRange{From: prevStart, To: prevEnd}

	case GranularityWeek:
		current = entity.TimeRange{From: now.AddDate(0, 0, -7), To: now}
		previous = entity.TimeRange{From: now.AddDate(0, 0, -14), To: now.AddDate(0, 0, -7)}

	case GranularityMonth:
		current = entity.TimeRange{From: now.AddDate(0, -1, 0), To: now}
		previous = entity.TimeRange{From: current.From.AddDate(0, -1, 0), To: current.To.AddDate(0, -1, 0)}

	case GranularityYear:
		current = entity.TimeRange{From: now.AddDate(-1, 0, 0), To: now}
		previous = entity.TimeRange{From: current.From.AddDate(-1, 0, 0), To: current.To.AddDate(-1, 0, 0)}

	case GranularityCustom:
		start := now.AddDate(0, -1, 0)
		if customStart != nil {
			start = *customStart
		}
		end := now
		if customEnd != nil {
			end = *customEnd
		}
		if !end.After(start) {
			return entity.TimeRange{}, entity.TimeRange{}, ErrInvalidDateRange
		}
		span := end.Sub(start)
		current = entity.TimeRange{From: start, To: end}
		previous = entity.TimeRange{From: start.Add(-span), To: start}

	default:
		return entity.TimeRange{}, entity.TimeRange{}, fmt.Errorf("unknown granularity %q", g)
	}
	return current, previous, nil
}

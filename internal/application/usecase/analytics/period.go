package analytics

import (
	"strings"
	"time"

	"github.com/expense-tracker/backend/internal/domain/dateutil"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// Period selects the reporting window of a spending summary.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// ParsePeriod validates a period selector. An empty string selects the month.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodMonth, nil
	case PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return p, nil
	default:
		return "", domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidPeriod,
			"period must be one of: week, month, year, all",
			domainerror.ErrInvalidPeriod,
		)
	}
}

// Label returns the human-readable name of the period.
func (p Period) Label() string {
	switch p {
	case PeriodWeek:
		return "This Week"
	case PeriodMonth:
		return "This Month"
	case PeriodYear:
		return "This Year"
	default:
		return "All Time"
	}
}

// Bounds resolves the period against the reference date. The start is nil
// for PeriodAll.
func (p Period) Bounds(ref time.Time) (*time.Time, time.Time) {
	end := dateutil.Truncate(ref)

	var start time.Time
	switch p {
	case PeriodWeek:
		start = end.AddDate(0, 0, -7)
	case PeriodMonth:
		start = dateutil.FirstOfMonth(end)
	case PeriodYear:
		start = dateutil.StartOfYear(end)
	default:
		return nil, end
	}
	return &start, end
}

// DateRange is an inclusive calendar-date interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange parses two YYYY-MM-DD strings into a validated range.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}

	r := DateRange{Start: s, End: e}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// ParseDate parses a YYYY-MM-DD string, returning an analytics error when it
// is not well formed.
func ParseDate(s string) (time.Time, error) {
	d, err := dateutil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidDateFormat,
			"invalid date "+s+", expected YYYY-MM-DD",
			domainerror.ErrInvalidDateFormat,
		)
	}
	return d, nil
}

// Validate rejects ranges that start after they end. Ranges are never
// reordered or clamped.
func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return domainerror.NewAnalyticsError(
			domainerror.ErrCodeMissingComparisonPeriod,
			"both start and end dates are required",
			domainerror.ErrInvalidDateRange,
		)
	}
	if dateutil.Truncate(r.Start).After(dateutil.Truncate(r.End)) {
		return domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidDateRange,
			"start date "+dateutil.FormatDate(r.Start)+" is after end date "+dateutil.FormatDate(r.End),
			domainerror.ErrInvalidDateRange,
		)
	}
	return nil
}

func validateReferenceDate(ref time.Time) error {
	if ref.IsZero() {
		return domainerror.NewAnalyticsError(
			domainerror.ErrCodeMissingReferenceDate,
			"reference date is required",
			domainerror.ErrMissingReferenceDate,
		)
	}
	return nil
}

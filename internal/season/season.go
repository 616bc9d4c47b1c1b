// Package season resolves calendar dates to NFL season week numbers.
package season

import (
	"time"

	"pickline/internal/sanitize"
	"pickline/models"
)

const (
	// FirstWeek and LastWeek bound the regular season.
	FirstWeek = 1
	LastWeek  = 18
)

// Schedule is one season's week table plus the season-start anchor for the
// linear fallback. It is a plain value supplied by the caller, loaded once
// and read-only afterwards.
type Schedule struct {
	Year  int
	Weeks []models.WeekRange
}

// Default builds the standard 18-week schedule for a season year: week 1
// starts the first Thursday of September and each week runs Thursday through
// the following Wednesday.
func Default(year int) Schedule {
	start := firstThursdayOfSeptember(year)

	weeks := make([]models.WeekRange, 0, LastWeek)
	for w := FirstWeek; w <= LastWeek; w++ {
		ws := start.AddDate(0, 0, (w-1)*7)
		weeks = append(weeks, models.WeekRange{
			Week:  w,
			Start: ws,
			End:   ws.AddDate(0, 0, 6),
		})
	}
	return Schedule{Year: year, Weeks: weeks}
}

func firstThursdayOfSeptember(year int) time.Time {
	d := time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Thursday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// SeasonStart returns the first day of week 1.
func (s Schedule) SeasonStart() time.Time {
	if len(s.Weeks) == 0 {
		return time.Time{}
	}
	return s.Weeks[0].Start
}

// seasonEnd returns the last day of the final week.
func (s Schedule) seasonEnd() time.Time {
	if len(s.Weeks) == 0 {
		return time.Time{}
	}
	return s.Weeks[len(s.Weeks)-1].End
}

// WeekForDate scans the schedule table and returns the first week whose
// (start, end) range contains the date, inclusive on both ends.
func (s Schedule) WeekForDate(d time.Time) (int, bool) {
	day := d.Truncate(24 * time.Hour)
	for _, wr := range s.Weeks {
		if !day.Before(wr.Start) && !day.After(wr.End) {
			return wr.Week, true
		}
	}
	return 0, false
}

// EstimateWeek is the linear fallback: floor((date - seasonStart)/7) + 1,
// clamped to [1,18].
func (s Schedule) EstimateWeek(d time.Time) int {
	start := s.SeasonStart()
	if start.IsZero() {
		return FirstWeek
	}
	days := int(d.Sub(start).Hours() / 24)
	week := days/7 + 1
	if week < FirstWeek {
		return FirstWeek
	}
	if week > LastWeek {
		return LastWeek
	}
	return week
}

// PickWeek resolves the season week for a pick. Resolution order: the week
// stored on the pick, then the schedule table, then week 1 for dates outside
// the season bounds, then the linear estimate. It never fails: a malformed
// (zero) game date resolves to week 1.
func (s Schedule) PickWeek(p models.Pick) int {
	if p.Week >= FirstWeek && p.Week <= LastWeek {
		return p.Week
	}

	if p.GameDate.IsZero() {
		return FirstWeek
	}

	if week, ok := s.WeekForDate(p.GameDate); ok {
		return week
	}

	if p.GameDate.Before(s.SeasonStart()) || p.GameDate.After(s.seasonEnd()) {
		return FirstWeek
	}

	return s.EstimateWeek(p.GameDate)
}

// Window returns the expanded validation window for game dates: August 1 of
// the season year through March 31 of the following year, with the season
// start as the out-of-window fallback date.
func (s Schedule) Window() sanitize.SeasonWindow {
	return sanitize.SeasonWindow{
		Start:       time.Date(s.Year, time.August, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(s.Year+1, time.March, 31, 0, 0, 0, 0, time.UTC),
		SeasonStart: s.SeasonStart(),
	}
}

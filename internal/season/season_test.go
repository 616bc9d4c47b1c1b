package season

import (
	"testing"
	"time"

	"pickline/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDefaultSchedule(t *testing.T) {
	s := Default(2025)

	if got := s.SeasonStart(); !got.Equal(date(2025, time.September, 4)) {
		t.Errorf("season start = %v, want 2025-09-04 (first Thursday)", got)
	}
	if len(s.Weeks) != 18 {
		t.Fatalf("got %d weeks, want 18", len(s.Weeks))
	}
	last := s.Weeks[17]
	if last.Week != 18 {
		t.Errorf("last week number = %d, want 18", last.Week)
	}
	if want := date(2026, time.January, 7); !last.End.Equal(want) {
		t.Errorf("week 18 ends %v, want %v", last.End, want)
	}
}

func TestWeekForDate(t *testing.T) {
	s := Default(2025)

	tests := []struct {
		name  string
		date  time.Time
		want  int
		found bool
	}{
		{"first day of week 1", date(2025, time.September, 4), 1, true},
		{"last day of week 1", date(2025, time.September, 10), 1, true},
		{"first day of week 2", date(2025, time.September, 11), 2, true},
		{"mid-season sunday", date(2025, time.November, 9), 10, true},
		{"before the season", date(2025, time.July, 4), 0, false},
		{"after the season", date(2026, time.February, 1), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := s.WeekForDate(tt.date)
			if found != tt.found || got != tt.want {
				t.Errorf("WeekForDate(%v) = (%d, %v), want (%d, %v)", tt.date, got, found, tt.want, tt.found)
			}
		})
	}
}

func TestEstimateWeek(t *testing.T) {
	s := Default(2025)

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"season start is week 1", date(2025, time.September, 4), 1},
		{"six days in still week 1", date(2025, time.September, 10), 1},
		{"seven days in is week 2", date(2025, time.September, 11), 2},
		{"clamped low", date(2025, time.June, 1), 1},
		{"clamped high", date(2026, time.June, 1), 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.EstimateWeek(tt.date); got != tt.want {
				t.Errorf("EstimateWeek(%v) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestPickWeek(t *testing.T) {
	s := Default(2025)

	tests := []struct {
		name string
		pick models.Pick
		want int
	}{
		{
			name: "stored week wins",
			pick: models.Pick{Week: 7, GameDate: date(2025, time.September, 5)},
			want: 7,
		},
		{
			name: "schedule table resolves date",
			pick: models.Pick{GameDate: date(2025, time.November, 9)},
			want: 10,
		},
		{
			name: "date before season falls back to week 1",
			pick: models.Pick{GameDate: date(2025, time.April, 1)},
			want: 1,
		},
		{
			name: "date after season falls back to week 1",
			pick: models.Pick{GameDate: date(2026, time.May, 1)},
			want: 1,
		},
		{
			name: "zero date falls back to week 1",
			pick: models.Pick{},
			want: 1,
		},
		{
			name: "out-of-range stored week is ignored",
			pick: models.Pick{Week: 42, GameDate: date(2025, time.September, 12)},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.PickWeek(tt.pick); got != tt.want {
				t.Errorf("PickWeek = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	w := Default(2025).Window()

	if !w.Start.Equal(date(2025, time.August, 1)) {
		t.Errorf("window start = %v, want 2025-08-01", w.Start)
	}
	if !w.End.Equal(date(2026, time.March, 31)) {
		t.Errorf("window end = %v, want 2026-03-31", w.End)
	}
	if !w.SeasonStart.Equal(date(2025, time.September, 4)) {
		t.Errorf("window fallback = %v, want season start", w.SeasonStart)
	}
}

// Package stats rolls settled picks up into win/loss/push records, units,
// ROI and streaks. Aggregation is a pure fold over the snapshot of picks the
// caller passes in; it never raises and yields zero counts for missing data.
package stats

import (
	"math"
	"sort"
	"strings"

	"pickline/models"
)

// Aggregator holds the unit-accounting constants. Losses are charged a flat
// vigorish multiple of the bet size regardless of the stored odds; this
// mirrors the product's historical unit totals.
type Aggregator struct {
	BetSize float64
	Vig     float64
}

// New returns an aggregator with 1-unit bets and the standard -110 vig.
func New() Aggregator {
	return Aggregator{BetSize: 1, Vig: 1.1}
}

// Option narrows the aggregation scope.
type Option func(*scope)

type scope struct {
	week int
	team string
}

// ForWeek restricts aggregation to picks in one season week.
func ForWeek(week int) Option {
	return func(s *scope) { s.week = week }
}

// ForTeam restricts aggregation to picks where the named team plays on
// either side.
func ForTeam(team string) Option {
	return func(s *scope) { s.team = team }
}

// Aggregate computes the full roll-up for the given picks, optionally
// filtered to a week or a team. An empty collection yields all-zero counts
// and zero rates, never NaN.
func (a Aggregator) Aggregate(picks []models.Pick, opts ...Option) models.AggregateStats {
	var sc scope
	for _, opt := range opts {
		opt(&sc)
	}

	filtered := make([]models.Pick, 0, len(picks))
	for _, p := range picks {
		if sc.week != 0 && p.Week != sc.week {
			continue
		}
		if sc.team != "" && !p.Involves(sc.team) {
			continue
		}
		filtered = append(filtered, p)
	}

	out := models.AggregateStats{}
	for _, p := range filtered {
		tally(&out.Moneyline, p.Result)
		tally(&out.Spread, p.ATSResult)
		tally(&out.Total, p.OUResult)
	}
	out.Moneyline.WinRate = winRate(out.Moneyline)
	out.Spread.WinRate = winRate(out.Spread)
	out.Total.WinRate = winRate(out.Total)

	out.Units = a.units(filtered)
	out.ROI = a.roi(out)
	out.CurrentStreak = currentStreak(filtered)
	out.LongestStreak = longestStreak(filtered)
	return out
}

// WeeklyBreakdown aggregates per season week.
func (a Aggregator) WeeklyBreakdown(picks []models.Pick) map[int]models.AggregateStats {
	out := make(map[int]models.AggregateStats)
	for _, p := range picks {
		if _, done := out[p.Week]; done {
			continue
		}
		out[p.Week] = a.Aggregate(picks, ForWeek(p.Week))
	}
	return out
}

// TeamBreakdown aggregates per team, counting a pick for both sides.
func (a Aggregator) TeamBreakdown(picks []models.Pick) map[string]models.AggregateStats {
	out := make(map[string]models.AggregateStats)
	for _, p := range picks {
		for _, team := range []string{p.HomeTeam, p.AwayTeam} {
			key := strings.TrimSpace(team)
			if key == "" {
				continue
			}
			if _, done := out[key]; done {
				continue
			}
			out[key] = a.Aggregate(picks, ForTeam(key))
		}
	}
	return out
}

func tally(r *models.MarketRecord, result models.Result) {
	switch result {
	case models.ResultWin:
		r.Wins++
	case models.ResultLoss:
		r.Losses++
	case models.ResultPush:
		r.Pushes++
	}
}

// winRate is wins over decided games (pushes excluded), as a rounded
// percentage. Zero when nothing is decided.
func winRate(r models.MarketRecord) float64 {
	decided := r.Wins + r.Losses
	if decided == 0 {
		return 0
	}
	return math.Round(float64(r.Wins) / float64(decided) * 100)
}

// units sums the flat-vig unit outcomes across all three markets: a win
// pays +betSize, a loss costs betSize*vig, a push returns the stake.
func (a Aggregator) units(picks []models.Pick) float64 {
	total := 0.0
	for _, p := range picks {
		for _, r := range []models.Result{p.Result, p.ATSResult, p.OUResult} {
			switch r {
			case models.ResultWin:
				total += a.BetSize
			case models.ResultLoss:
				total -= a.BetSize * a.Vig
			}
		}
	}
	return total
}

func (a Aggregator) roi(s models.AggregateStats) float64 {
	decided := s.Moneyline.Decided() + s.Spread.Decided() + s.Total.Decided()
	if decided == 0 || a.BetSize == 0 {
		return 0
	}
	return s.Units / (float64(decided) * a.BetSize) * 100
}

// currentStreak counts consecutive moneyline wins walking picks most recent
// first; any non-win result ends the streak.
func currentStreak(picks []models.Pick) int {
	ordered := byGameDateDesc(picks)
	streak := 0
	for _, p := range ordered {
		if p.Result == "" || p.Result == models.ResultPending {
			continue
		}
		if p.Result != models.ResultWin {
			break
		}
		streak++
	}
	return streak
}

// longestStreak is a single forward pass tracking the longest run of
// consecutive wins. Losses reset the run; pushes do not.
func longestStreak(picks []models.Pick) int {
	ordered := byGameDateDesc(picks)
	longest, run := 0, 0
	for i := len(ordered) - 1; i >= 0; i-- {
		switch ordered[i].Result {
		case models.ResultWin:
			run++
			if run > longest {
				longest = run
			}
		case models.ResultLoss:
			run = 0
		}
	}
	return longest
}

func byGameDateDesc(picks []models.Pick) []models.Pick {
	ordered := make([]models.Pick, len(picks))
	copy(ordered, picks)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].GameDate.Equal(ordered[j].GameDate) {
			return ordered[i].GameDate.After(ordered[j].GameDate)
		}
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})
	return ordered
}

package stats

import (
	"math"
	"testing"
	"time"

	"pickline/models"
)

func day(n int) time.Time {
	return time.Date(2025, time.September, 4, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func mlPick(week int, gameDay int, result models.Result) models.Pick {
	return models.Pick{
		HomeTeam: "Bills",
		AwayTeam: "Chiefs",
		Week:     week,
		GameDate: day(gameDay),
		Result:   result,
	}
}

func TestAggregateEmpty(t *testing.T) {
	got := New().Aggregate(nil)

	for name, rec := range map[string]models.MarketRecord{
		"moneyline": got.Moneyline,
		"spread":    got.Spread,
		"total":     got.Total,
	} {
		if rec.Wins != 0 || rec.Losses != 0 || rec.Pushes != 0 {
			t.Errorf("%s record not zero: %+v", name, rec)
		}
		if rec.WinRate != 0 || math.IsNaN(rec.WinRate) {
			t.Errorf("%s win rate = %v, want 0", name, rec.WinRate)
		}
	}
	if got.Units != 0 || got.ROI != 0 || math.IsNaN(got.ROI) {
		t.Errorf("units/roi not zero: %v / %v", got.Units, got.ROI)
	}
	if got.CurrentStreak != 0 || got.LongestStreak != 0 {
		t.Errorf("streaks not zero: %d / %d", got.CurrentStreak, got.LongestStreak)
	}
}

func TestAggregateRecordsAndWinRate(t *testing.T) {
	picks := []models.Pick{
		mlPick(1, 0, models.ResultWin),
		mlPick(1, 1, models.ResultWin),
		mlPick(2, 7, models.ResultLoss),
		mlPick(2, 8, models.ResultPush),
		mlPick(3, 14, models.ResultPending),
	}

	got := New().Aggregate(picks)

	if got.Moneyline.Wins != 2 || got.Moneyline.Losses != 1 || got.Moneyline.Pushes != 1 {
		t.Errorf("moneyline record = %+v", got.Moneyline)
	}
	// 2 of 3 decided, pushes excluded: 66.67 rounds to 67.
	if got.Moneyline.WinRate != 67 {
		t.Errorf("win rate = %v, want 67", got.Moneyline.WinRate)
	}
}

func TestAggregateUnitsAndROI(t *testing.T) {
	picks := []models.Pick{
		mlPick(1, 0, models.ResultWin),
		mlPick(1, 1, models.ResultLoss),
		mlPick(2, 7, models.ResultPush),
	}

	got := New().Aggregate(picks)

	// +1 for the win, -1.1 for the loss, 0 for the push.
	if math.Abs(got.Units-(-0.1)) > 1e-9 {
		t.Errorf("units = %v, want -0.1", got.Units)
	}
	// Three decided results at 1 unit each.
	wantROI := -0.1 / 3 * 100
	if math.Abs(got.ROI-wantROI) > 1e-9 {
		t.Errorf("roi = %v, want %v", got.ROI, wantROI)
	}
}

func TestStreaks(t *testing.T) {
	// Chronological: W W L W W W P W (push must not reset the longest run).
	results := []models.Result{
		models.ResultWin, models.ResultWin, models.ResultLoss,
		models.ResultWin, models.ResultWin, models.ResultWin,
		models.ResultPush, models.ResultWin,
	}
	picks := make([]models.Pick, len(results))
	for i, r := range results {
		picks[i] = mlPick(1, i, r)
	}

	got := New().Aggregate(picks)

	// Most recent first: W, then the push ends the current streak.
	if got.CurrentStreak != 1 {
		t.Errorf("current streak = %d, want 1", got.CurrentStreak)
	}
	// W W W P W = 4 wins uninterrupted by a loss.
	if got.LongestStreak != 4 {
		t.Errorf("longest streak = %d, want 4", got.LongestStreak)
	}
}

func TestCurrentStreakSkipsPending(t *testing.T) {
	picks := []models.Pick{
		mlPick(1, 0, models.ResultWin),
		mlPick(1, 1, models.ResultWin),
		mlPick(2, 7, models.ResultPending),
	}
	got := New().Aggregate(picks)
	if got.CurrentStreak != 2 {
		t.Errorf("current streak = %d, want 2 (pending games ignored)", got.CurrentStreak)
	}
}

func TestScopeFilters(t *testing.T) {
	picks := []models.Pick{
		{HomeTeam: "Bills", AwayTeam: "Chiefs", Week: 1, GameDate: day(0), Result: models.ResultWin},
		{HomeTeam: "Jets", AwayTeam: "Dolphins", Week: 1, GameDate: day(1), Result: models.ResultLoss},
		{HomeTeam: "Eagles", AwayTeam: "Bills", Week: 2, GameDate: day(7), Result: models.ResultWin},
	}
	agg := New()

	week1 := agg.Aggregate(picks, ForWeek(1))
	if week1.Moneyline.Wins != 1 || week1.Moneyline.Losses != 1 {
		t.Errorf("week 1 record = %+v", week1.Moneyline)
	}

	bills := agg.Aggregate(picks, ForTeam("Bills"))
	if bills.Moneyline.Wins != 2 || bills.Moneyline.Losses != 0 {
		t.Errorf("bills record = %+v (should match home and away games)", bills.Moneyline)
	}
}

func TestBreakdowns(t *testing.T) {
	picks := []models.Pick{
		{HomeTeam: "Bills", AwayTeam: "Chiefs", Week: 1, GameDate: day(0), Result: models.ResultWin},
		{HomeTeam: "Jets", AwayTeam: "Dolphins", Week: 2, GameDate: day(7), Result: models.ResultLoss},
	}
	agg := New()

	weekly := agg.WeeklyBreakdown(picks)
	if len(weekly) != 2 {
		t.Fatalf("got %d weekly buckets, want 2", len(weekly))
	}
	if weekly[1].Moneyline.Wins != 1 {
		t.Errorf("week 1 bucket = %+v", weekly[1].Moneyline)
	}

	teams := agg.TeamBreakdown(picks)
	if len(teams) != 4 {
		t.Fatalf("got %d team buckets, want 4", len(teams))
	}
	if teams["Chiefs"].Moneyline.Wins != 1 {
		t.Errorf("chiefs bucket = %+v", teams["Chiefs"].Moneyline)
	}
}

func TestAggregateCountsAllMarkets(t *testing.T) {
	p := mlPick(1, 0, models.ResultWin)
	p.ATSResult = models.ResultLoss
	p.OUResult = models.ResultPush

	got := New().Aggregate([]models.Pick{p})

	if got.Spread.Losses != 1 {
		t.Errorf("spread record = %+v", got.Spread)
	}
	if got.Total.Pushes != 1 {
		t.Errorf("total record = %+v", got.Total)
	}
	// Win +1, spread loss -1.1, push 0.
	if math.Abs(got.Units-(-0.1)) > 1e-9 {
		t.Errorf("units = %v, want -0.1", got.Units)
	}
}

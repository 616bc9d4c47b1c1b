package outcome

import (
	"testing"

	"pickline/models"
)

func intP(v int) *int           { return &v }
func floatP(v float64) *float64 { return &v }

func basePick() models.Pick {
	return models.Pick{
		AwayTeam: "Chiefs",
		HomeTeam: "Bills",
	}
}

func TestResolveMoneyline(t *testing.T) {
	tests := []struct {
		name       string
		prediction string
		home, away *int
		want       models.Result
	}{
		{"predicted home team wins", "Bills win 27-20", intP(27), intP(20), models.ResultWin},
		{"predicted home team loses", "Bills win 27-20", intP(17), intP(20), models.ResultLoss},
		{"predicted away team wins", "Chiefs upset on the road", intP(17), intP(20), models.ResultWin},
		{"tie game is a push", "Bills win", intP(20), intP(20), models.ResultPush},
		{"missing scores stay pending", "Bills win", nil, nil, models.ResultPending},
		{"prediction names neither team", "take the points", intP(27), intP(20), models.ResultPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := basePick()
			p.Prediction = tt.prediction
			p.HomeScore, p.AwayScore = tt.home, tt.away
			if got := ResolveMoneyline(p); got != tt.want {
				t.Errorf("ResolveMoneyline = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveSpread(t *testing.T) {
	tests := []struct {
		name       string
		spread     *float64 // home line
		spreadPred string
		home, away int
		want       models.Result
	}{
		{"home favorite covers", floatP(-2.5), "Bills -2.5", 27, 20, models.ResultWin},
		{"home favorite fails to cover", floatP(-2.5), "Bills -2.5", 22, 20, models.ResultLoss},
		{"away dog covers on a close loss", floatP(-2.5), "Chiefs +2.5", 22, 20, models.ResultWin},
		{"landing on the number is a push", floatP(-3), "Bills -3", 23, 20, models.ResultPush},
		{"no line stays pending", nil, "Bills -2.5", 27, 20, models.ResultPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := basePick()
			p.Spread = tt.spread
			p.SpreadPrediction = tt.spreadPred
			p.HomeScore, p.AwayScore = intP(tt.home), intP(tt.away)
			if got := ResolveSpread(p); got != tt.want {
				t.Errorf("ResolveSpread = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveTotal(t *testing.T) {
	tests := []struct {
		name       string
		line       float64
		ouPred     string
		home, away int
		want       models.Result
	}{
		{"exactly on the line is a push", 45, "Over 45", 25, 20, models.ResultPush},
		{"over cashes one point above", 45, "Over 45", 26, 20, models.ResultWin},
		{"over loses one point below", 45, "Over 45", 24, 20, models.ResultLoss},
		{"under cashes below the line", 45, "Under 45", 24, 20, models.ResultWin},
		{"under loses above the line", 45, "Under 45", 26, 20, models.ResultLoss},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := basePick()
			p.OverUnder = floatP(tt.line)
			p.OUPrediction = tt.ouPred
			p.HomeScore, p.AwayScore = intP(tt.home), intP(tt.away)
			if got := ResolveTotal(p); got != tt.want {
				t.Errorf("ResolveTotal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveTotalMissingInputs(t *testing.T) {
	p := basePick()
	p.OUPrediction = "Over 45"
	if got := ResolveTotal(p); got != models.ResultPending {
		t.Errorf("missing scores should stay pending, got %s", got)
	}

	p.HomeScore, p.AwayScore = intP(20), intP(20)
	p.OverUnder = nil
	if got := ResolveTotal(p); got != models.ResultPending {
		t.Errorf("missing line should stay pending, got %s", got)
	}
}

func TestSettleFillsPendingOnly(t *testing.T) {
	p := basePick()
	p.Prediction = "Bills win 27-20"
	p.Spread = floatP(-2.5)
	p.SpreadPrediction = "Bills -2.5"
	p.OverUnder = floatP(45)
	p.OUPrediction = "Over 45"
	// An already-settled moneyline result must not be recomputed.
	p.Result = models.ResultLoss
	p.ATSResult = models.ResultPending
	p.OUResult = models.ResultPending

	Settle(&p, 27, 20)

	if p.Result != models.ResultLoss {
		t.Errorf("stored result was overwritten: %s", p.Result)
	}
	if p.ATSResult != models.ResultWin {
		t.Errorf("ats result = %s, want win", p.ATSResult)
	}
	if p.OUResult != models.ResultWin {
		t.Errorf("ou result = %s, want win", p.OUResult)
	}
	if p.HomeScore == nil || *p.HomeScore != 27 || p.AwayScore == nil || *p.AwayScore != 20 {
		t.Error("scores not applied")
	}
}

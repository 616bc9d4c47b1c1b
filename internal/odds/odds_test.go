package odds

import (
	"math"
	"testing"

	"pickline/models"
)

func TestImpliedProbability(t *testing.T) {
	tests := []struct {
		name     string
		american int
		want     float64
	}{
		{"standard favorite -110", -110, 0.5238},
		{"underdog +150", 150, 0.4},
		{"even money +100", 100, 0.5},
		{"even money -100", -100, 0.5},
		{"heavy favorite -200", -200, 0.6667},
		{"long shot +400", 400, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ImpliedProbability(tt.american)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("ImpliedProbability(%d) = %f, want %f", tt.american, got, tt.want)
			}
		})
	}
}

func TestImpliedProbabilityInvalid(t *testing.T) {
	for _, american := range []int{0, 50, -50, 99, -99} {
		if _, err := ImpliedProbability(american); err == nil {
			t.Errorf("ImpliedProbability(%d) expected error", american)
		}
	}
}

func TestEdge(t *testing.T) {
	got, err := Edge(60, -110)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-7.62) > 0.01 {
		t.Errorf("Edge(60, -110) = %f, want ~7.62", got)
	}
}

func floatP(v float64) *float64 { return &v }
func intP(v int) *int           { return &v }

func TestBestBetFor(t *testing.T) {
	th := DefaultThresholds()

	t.Run("moneyline with the biggest edge wins and gets a strong badge", func(t *testing.T) {
		p := models.Pick{
			MoneylineEdge: floatP(8),
			SpreadEdge:    floatP(3),
			OUEdge:        floatP(-1),
		}
		bet, ok := BestBetFor(p, th)
		if !ok {
			t.Fatal("expected a best bet")
		}
		if bet.Market != models.MarketMoneyline {
			t.Errorf("market = %s, want moneyline", bet.Market)
		}
		if bet.Badge != BadgeStrong {
			t.Errorf("badge = %s, want strong", bet.Badge)
		}
	})

	t.Run("all edges below the floor yield no best bet", func(t *testing.T) {
		p := models.Pick{
			MoneylineEdge: floatP(-2),
			OUEdge:        floatP(-0.5),
		}
		if _, ok := BestBetFor(p, th); ok {
			t.Error("expected no best bet")
		}
	})

	t.Run("no edges at all yield no best bet", func(t *testing.T) {
		if _, ok := BestBetFor(models.Pick{}, th); ok {
			t.Error("expected no best bet")
		}
	})
}

func TestBadgeBuckets(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		edge float64
		want string
	}{
		{7, BadgeStrong},
		{5, BadgeStrong},
		{4.9, BadgeModerate},
		{2, BadgeModerate},
		{1.9, BadgeWeak},
		{0.1, BadgeWeak},
	}
	for _, tt := range tests {
		if got := th.BadgeFor(tt.edge); got != tt.want {
			t.Errorf("BadgeFor(%v) = %s, want %s", tt.edge, got, tt.want)
		}
	}
}

func TestComputeEdges(t *testing.T) {
	p := models.Pick{
		AwayTeam:        "Chiefs",
		HomeTeam:        "Bills",
		Prediction:      "Bills win 27-20",
		HomeWinProb:     floatP(60),
		HomeOdds:        intP(-110),
		SpreadCoverProb: floatP(55),
		SpreadOdds:      intP(-110),
		OUPrediction:    "Over 47.5",
		TotalOverProb:   floatP(50),
		OverOdds:        intP(-110),
	}
	ComputeEdges(&p)

	if p.MoneylineEdge == nil || math.Abs(*p.MoneylineEdge-7.62) > 0.01 {
		t.Errorf("moneyline edge = %v, want ~7.62", p.MoneylineEdge)
	}
	if p.SpreadEdge == nil || math.Abs(*p.SpreadEdge-2.62) > 0.01 {
		t.Errorf("spread edge = %v, want ~2.62", p.SpreadEdge)
	}
	if p.OUEdge == nil || math.Abs(*p.OUEdge-(-2.38)) > 0.01 {
		t.Errorf("ou edge = %v, want ~-2.38", p.OUEdge)
	}
}

func TestComputeEdgesMissingInputs(t *testing.T) {
	p := models.Pick{
		AwayTeam:   "Chiefs",
		HomeTeam:   "Bills",
		Prediction: "Bills win",
		// Odds present but no model probability.
		HomeOdds: intP(-110),
	}
	ComputeEdges(&p)

	if p.MoneylineEdge != nil || p.SpreadEdge != nil || p.OUEdge != nil {
		t.Errorf("edges should stay nil when inputs are missing: %+v", p)
	}
}

func TestHeadlineBets(t *testing.T) {
	th := DefaultThresholds()
	picks := []models.Pick{
		{ID: "a", MoneylineEdge: floatP(8)},  // qualifies (>= 7)
		{ID: "b", MoneylineEdge: floatP(6)},  // strong badge but below headline
		{ID: "c", SpreadEdge: floatP(7)},     // exactly at the threshold
		{ID: "d"},                            // no edge
	}

	bets := HeadlineBets(picks, th)
	if len(bets) != 2 {
		t.Fatalf("got %d headline bets, want 2", len(bets))
	}
	if bets[0].Pick.ID != "a" || bets[1].Pick.ID != "c" {
		t.Errorf("unexpected selection: %s, %s", bets[0].Pick.ID, bets[1].Pick.ID)
	}
}

// Package odds converts American odds to implied probabilities and combines
// them with model probabilities to produce per-market edges.
package odds

import (
	"fmt"
	"strings"

	"pickline/models"
)

// ImpliedProbability converts American odds to implied probability.
// -110 → 0.5238, +150 → 0.40. Odds strictly between -100 and +100 are not
// valid American odds.
func ImpliedProbability(american int) (float64, error) {
	switch {
	case american <= -100:
		return float64(-american) / float64(-american+100), nil
	case american >= 100:
		return 100.0 / float64(american+100), nil
	default:
		return 0, fmt.Errorf("invalid American odds: %d", american)
	}
}

// Edge returns the model's advantage over the posted price in percentage
// points: model probability (percent) minus the odds-implied probability.
func Edge(modelProbPct float64, american int) (float64, error) {
	implied, err := ImpliedProbability(american)
	if err != nil {
		return 0, err
	}
	return modelProbPct - implied*100.0, nil
}

// Badge buckets for displaying edge strength.
const (
	BadgeStrong   = "strong"
	BadgeModerate = "moderate"
	BadgeWeak     = "weak"
)

const moderateEdgeFloor = 2.0

// Thresholds holds the configurable edge cutoffs. Badge and Headline are
// intentionally independent values; the source product used 5% for badges
// and 7% for the headline best-bets section.
type Thresholds struct {
	Badge    float64 // strong badge cutoff
	Headline float64 // headline best-bets cutoff
	Min      float64 // minimum edge for a pick to have a best bet at all
}

// DefaultThresholds returns the production defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{Badge: 5, Headline: 7, Min: 0}
}

// BadgeFor returns the display bucket for an edge value.
func (t Thresholds) BadgeFor(edge float64) string {
	switch {
	case edge >= t.Badge:
		return BadgeStrong
	case edge >= moderateEdgeFloor:
		return BadgeModerate
	default:
		return BadgeWeak
	}
}

// ComputeEdges fills the per-market edge fields of a pick from its stored
// model probabilities and posted odds. Markets missing either input keep a
// nil edge.
func ComputeEdges(p *models.Pick) {
	// Moneyline: the predicted side's model probability against that
	// side's odds.
	if _, home, ok := p.PredictedWinner(); ok {
		var prob *float64
		var line *int
		if home {
			prob, line = p.HomeWinProb, p.HomeOdds
		} else {
			prob, line = p.AwayWinProb, p.AwayOdds
		}
		if prob != nil && line != nil {
			if edge, err := Edge(*prob, *line); err == nil {
				p.MoneylineEdge = &edge
			}
		}
	}

	// Spread: cover probability against the spread price.
	if p.SpreadCoverProb != nil && p.SpreadOdds != nil {
		if edge, err := Edge(*p.SpreadCoverProb, *p.SpreadOdds); err == nil {
			p.SpreadEdge = &edge
		}
	}

	// Total: over or under probability against the matching price.
	ou := strings.ToLower(p.OUPrediction)
	switch {
	case strings.HasPrefix(ou, "over") && p.TotalOverProb != nil && p.OverOdds != nil:
		if edge, err := Edge(*p.TotalOverProb, *p.OverOdds); err == nil {
			p.OUEdge = &edge
		}
	case strings.HasPrefix(ou, "under") && p.TotalUnderProb != nil && p.UnderOdds != nil:
		if edge, err := Edge(*p.TotalUnderProb, *p.UnderOdds); err == nil {
			p.OUEdge = &edge
		}
	}
}

// BestBet is the single strongest market on a pick.
type BestBet struct {
	Market models.Market
	Edge   float64
	Badge  string
}

// BestBetFor selects the market with the maximum edge among markets that
// have one. A pick with no market edge at or above the minimum floor has no
// best bet.
func BestBetFor(p models.Pick, t Thresholds) (BestBet, bool) {
	best := BestBet{}
	found := false

	consider := func(market models.Market, edge *float64) {
		if edge == nil {
			return
		}
		if !found || *edge > best.Edge {
			best = BestBet{Market: market, Edge: *edge}
			found = true
		}
	}

	consider(models.MarketMoneyline, p.MoneylineEdge)
	consider(models.MarketSpread, p.SpreadEdge)
	consider(models.MarketTotal, p.OUEdge)

	if !found || best.Edge < t.Min {
		return BestBet{}, false
	}
	best.Badge = t.BadgeFor(best.Edge)
	return best, true
}

// HeadlineBet pairs a pick with its qualifying best bet.
type HeadlineBet struct {
	Pick models.Pick
	Bet  BestBet
}

// HeadlineBets filters picks down to those whose best bet clears the
// headline threshold.
func HeadlineBets(picks []models.Pick, t Thresholds) []HeadlineBet {
	var out []HeadlineBet
	for _, p := range picks {
		bet, ok := BestBetFor(p, t)
		if !ok || bet.Edge < t.Headline {
			continue
		}
		out = append(out, HeadlineBet{Pick: p, Bet: bet})
	}
	return out
}

// Package outcome derives win/loss/push settlement results from final
// scores and stored lines.
package outcome

import (
	"strings"

	"pickline/models"
)

// ResolveMoneyline compares the predicted side against the side with the
// higher final score. Equal scores are a push. Missing scores or an
// unrecognizable prediction leave the market pending.
func ResolveMoneyline(p models.Pick) models.Result {
	if p.HomeScore == nil || p.AwayScore == nil {
		return models.ResultPending
	}
	_, home, ok := p.PredictedWinner()
	if !ok {
		return models.ResultPending
	}

	switch {
	case *p.HomeScore == *p.AwayScore:
		return models.ResultPush
	case *p.HomeScore > *p.AwayScore:
		return winIf(home)
	default:
		return winIf(!home)
	}
}

// ResolveSpread adjusts the actual score differential by the stored home
// line. Landing exactly on the line is a push; otherwise the predicted side
// wins or loses on the adjusted margin.
func ResolveSpread(p models.Pick) models.Result {
	if p.HomeScore == nil || p.AwayScore == nil || p.Spread == nil {
		return models.ResultPending
	}
	home, ok := spreadSide(p)
	if !ok {
		return models.ResultPending
	}

	adjusted := float64(*p.HomeScore-*p.AwayScore) + *p.Spread
	switch {
	case adjusted == 0:
		return models.ResultPush
	case adjusted > 0:
		return winIf(home)
	default:
		return winIf(!home)
	}
}

// ResolveTotal compares the combined final score to the stored total line.
// Landing exactly on the line is a push.
func ResolveTotal(p models.Pick) models.Result {
	if p.HomeScore == nil || p.AwayScore == nil || p.OverUnder == nil {
		return models.ResultPending
	}

	ou := strings.ToLower(p.OUPrediction)
	over := strings.HasPrefix(ou, "over")
	if !over && !strings.HasPrefix(ou, "under") {
		return models.ResultPending
	}

	combined := float64(*p.HomeScore + *p.AwayScore)
	switch {
	case combined == *p.OverUnder:
		return models.ResultPush
	case combined > *p.OverUnder:
		return winIf(over)
	default:
		return winIf(!over)
	}
}

// Settle applies final scores to a pick and fills in any market result that
// is still pending. Stored results always take precedence: recomputation is
// only a fallback for markets that have scores but no result yet.
func Settle(p *models.Pick, homeScore, awayScore int) {
	p.HomeScore = &homeScore
	p.AwayScore = &awayScore

	if pending(p.Result) {
		p.Result = ResolveMoneyline(*p)
	}
	if pending(p.ATSResult) {
		p.ATSResult = ResolveSpread(*p)
	}
	if pending(p.OUResult) {
		p.OUResult = ResolveTotal(*p)
	}
}

// spreadSide reports which side the spread prediction backs, falling back to
// the primary prediction when the spread text names neither team.
func spreadSide(p models.Pick) (home bool, ok bool) {
	pred := strings.ToLower(p.SpreadPrediction)
	if p.HomeTeam != "" && strings.Contains(pred, strings.ToLower(p.HomeTeam)) {
		return true, true
	}
	if p.AwayTeam != "" && strings.Contains(pred, strings.ToLower(p.AwayTeam)) {
		return false, true
	}
	if _, home, ok := p.PredictedWinner(); ok {
		return home, true
	}
	return false, false
}

func pending(r models.Result) bool {
	return r == "" || r == models.ResultPending
}

func winIf(won bool) models.Result {
	if won {
		return models.ResultWin
	}
	return models.ResultLoss
}

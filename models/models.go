package models

import (
	"strings"
	"time"
)

// Market identifies one of the three bettable markets on a game.
type Market string

const (
	MarketMoneyline Market = "moneyline"
	MarketSpread    Market = "spread"
	MarketTotal     Market = "total"
)

// Result is the settlement outcome of a single market on a pick.
type Result string

const (
	ResultWin     Result = "win"
	ResultLoss    Result = "loss"
	ResultPush    Result = "push"
	ResultPending Result = "pending"
)

// PredictionDraft is the in-memory output of parsing one game block of
// agent text. Drafts are consumed immediately by validation and
// de-duplication and are never mutated after creation.
type PredictionDraft struct {
	AwayTeam   string    `json:"away_team"`
	HomeTeam   string    `json:"home_team"`
	Prediction string    `json:"prediction"`
	Confidence int       `json:"confidence"` // multiple of 10, 0-100
	Reasoning  string    `json:"reasoning"`
	GameDate   time.Time `json:"game_date"`
	Week       int       `json:"week"` // 1-18
}

// MatchupKey is the canonical "away @ home" string used for de-duplication.
func (d PredictionDraft) MatchupKey() string {
	return d.AwayTeam + " @ " + d.HomeTeam
}

// Pick is one persisted prediction for a single game across up to three
// markets. Result fields transition pending -> {win,loss,push} and are
// never reversed automatically.
type Pick struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	AwayTeam string    `json:"away_team"`
	HomeTeam string    `json:"home_team"`
	League   string    `json:"league"`
	GameDate time.Time `json:"game_date"`
	Week     int       `json:"week"`

	Prediction string `json:"prediction"`
	Confidence int    `json:"confidence"`
	Reasoning  string `json:"reasoning"`

	Spread           *float64 `json:"spread,omitempty"`     // home team line, negative = home favored
	OverUnder        *float64 `json:"over_under,omitempty"` // total points line
	SpreadPrediction string   `json:"spread_prediction,omitempty"`
	OUPrediction     string   `json:"ou_prediction,omitempty"` // "Over ..." / "Under ..."

	HomeScore *int `json:"home_score,omitempty"`
	AwayScore *int `json:"away_score,omitempty"`

	// American odds per side/market as posted at pick time.
	HomeOdds   *int `json:"home_odds,omitempty"`
	AwayOdds   *int `json:"away_odds,omitempty"`
	SpreadOdds *int `json:"spread_odds,omitempty"`
	OverOdds   *int `json:"over_odds,omitempty"`
	UnderOdds  *int `json:"under_odds,omitempty"`

	Result    Result `json:"result"`
	ATSResult Result `json:"ats_result"`
	OUResult  Result `json:"ou_result"`

	// Model probabilities in percent, when the agent supplied them.
	HomeWinProb     *float64 `json:"home_win_prob,omitempty"`
	AwayWinProb     *float64 `json:"away_win_prob,omitempty"`
	SpreadCoverProb *float64 `json:"spread_cover_prob,omitempty"`
	TotalOverProb   *float64 `json:"total_over_prob,omitempty"`
	TotalUnderProb  *float64 `json:"total_under_prob,omitempty"`

	PredictedHomeScore *float64 `json:"predicted_home_score,omitempty"`
	PredictedAwayScore *float64 `json:"predicted_away_score,omitempty"`

	// Edge per market in percentage points.
	MoneylineEdge *float64 `json:"moneyline_edge,omitempty"`
	SpreadEdge    *float64 `json:"spread_edge,omitempty"`
	OUEdge        *float64 `json:"ou_edge,omitempty"`
}

// MatchupKey is the canonical "away @ home" string used for de-duplication.
func (p Pick) MatchupKey() string {
	return p.AwayTeam + " @ " + p.HomeTeam
}

// PredictedWinner reports which side the primary prediction names.
// Team names are matched case-insensitively against the prediction text,
// home side first so "Bills over Chiefs" resolves to the home team when
// the Bills are hosting.
func (p Pick) PredictedWinner() (team string, home bool, ok bool) {
	pred := strings.ToLower(p.Prediction)
	if p.HomeTeam != "" && strings.Contains(pred, strings.ToLower(p.HomeTeam)) {
		return p.HomeTeam, true, true
	}
	if p.AwayTeam != "" && strings.Contains(pred, strings.ToLower(p.AwayTeam)) {
		return p.AwayTeam, false, true
	}
	return "", false, false
}

// Involves reports whether the named team plays on either side of the pick.
func (p Pick) Involves(team string) bool {
	return strings.EqualFold(p.HomeTeam, team) || strings.EqualFold(p.AwayTeam, team)
}

// WeekRange maps one season week to its calendar span, inclusive on both ends.
type WeekRange struct {
	Week  int
	Start time.Time
	End   time.Time
}

// MarketRecord holds settled counts for one market.
type MarketRecord struct {
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	Pushes  int     `json:"pushes"`
	WinRate float64 `json:"win_rate"` // percent, pushes excluded from the denominator
}

// Decided returns the number of non-pending results in the record.
func (r MarketRecord) Decided() int {
	return r.Wins + r.Losses + r.Pushes
}

// AggregateStats is the derived roll-up over a collection of settled picks.
// Recomputed on demand from the pick collection, never persisted.
type AggregateStats struct {
	Moneyline MarketRecord `json:"moneyline"`
	Spread    MarketRecord `json:"spread"`
	Total     MarketRecord `json:"total"`

	Units float64 `json:"units"`
	ROI   float64 `json:"roi"` // percent

	// Streaks follow the primary (moneyline) result.
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

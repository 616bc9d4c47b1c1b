// Package database implements the Postgres-backed pick store.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pickline/models"
)

// DB represents a database connection
type DB struct {
	*sql.DB
}

// ConnectionParams holds PostgreSQL connection parameters
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// New creates a new database connection
func New(params ConnectionParams) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// createTables creates the necessary tables if they don't exist. The unique
// index on (away_team, home_team, week) makes insertion the final duplicate
// guard, so two concurrent ingestions of the same blob cannot double-insert.
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS picks (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMP NOT NULL,
			away_team TEXT NOT NULL,
			home_team TEXT NOT NULL,
			league TEXT NOT NULL DEFAULT 'NFL',
			game_date DATE NOT NULL,
			week INT NOT NULL,
			prediction TEXT NOT NULL,
			confidence INT NOT NULL,
			reasoning TEXT NOT NULL DEFAULT '',
			spread DOUBLE PRECISION,
			over_under DOUBLE PRECISION,
			spread_prediction TEXT NOT NULL DEFAULT '',
			ou_prediction TEXT NOT NULL DEFAULT '',
			home_score INT,
			away_score INT,
			home_odds INT,
			away_odds INT,
			spread_odds INT,
			over_odds INT,
			under_odds INT,
			result TEXT NOT NULL DEFAULT 'pending',
			ats_result TEXT NOT NULL DEFAULT 'pending',
			ou_result TEXT NOT NULL DEFAULT 'pending',
			home_win_prob DOUBLE PRECISION,
			away_win_prob DOUBLE PRECISION,
			spread_cover_prob DOUBLE PRECISION,
			total_over_prob DOUBLE PRECISION,
			total_under_prob DOUBLE PRECISION,
			predicted_home_score DOUBLE PRECISION,
			predicted_away_score DOUBLE PRECISION,
			moneyline_edge DOUBLE PRECISION,
			spread_edge DOUBLE PRECISION,
			ou_edge DOUBLE PRECISION
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS picks_matchup_week_idx
		ON picks (away_team, home_team, week)
	`)
	return err
}

// CreatePick persists a new pick. It returns false when the matchup/week
// already exists.
func (db *DB) CreatePick(ctx context.Context, p *models.Pick) (bool, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO picks (
			id, created_at, away_team, home_team, league, game_date, week,
			prediction, confidence, reasoning,
			spread, over_under, spread_prediction, ou_prediction,
			home_odds, away_odds, spread_odds, over_odds, under_odds,
			result, ats_result, ou_result,
			home_win_prob, away_win_prob, spread_cover_prob,
			total_over_prob, total_under_prob,
			predicted_home_score, predicted_away_score
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19,
			$20, $21, $22, $23, $24, $25, $26, $27, $28, $29
		)
		ON CONFLICT (away_team, home_team, week) DO NOTHING
	`,
		p.ID, p.CreatedAt, p.AwayTeam, p.HomeTeam, p.League, p.GameDate, p.Week,
		p.Prediction, p.Confidence, p.Reasoning,
		nullFloat(p.Spread), nullFloat(p.OverUnder), p.SpreadPrediction, p.OUPrediction,
		nullInt(p.HomeOdds), nullInt(p.AwayOdds), nullInt(p.SpreadOdds), nullInt(p.OverOdds), nullInt(p.UnderOdds),
		string(orPending(p.Result)), string(orPending(p.ATSResult)), string(orPending(p.OUResult)),
		nullFloat(p.HomeWinProb), nullFloat(p.AwayWinProb), nullFloat(p.SpreadCoverProb),
		nullFloat(p.TotalOverProb), nullFloat(p.TotalUnderProb),
		nullFloat(p.PredictedHomeScore), nullFloat(p.PredictedAwayScore),
	)
	if err != nil {
		return false, err
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return inserted > 0, nil
}

const pickColumns = `
	id, created_at, away_team, home_team, league, game_date, week,
	prediction, confidence, reasoning,
	spread, over_under, spread_prediction, ou_prediction,
	home_score, away_score,
	home_odds, away_odds, spread_odds, over_odds, under_odds,
	result, ats_result, ou_result,
	home_win_prob, away_win_prob, spread_cover_prob,
	total_over_prob, total_under_prob,
	predicted_home_score, predicted_away_score,
	moneyline_edge, spread_edge, ou_edge
`

// GetPicks retrieves every pick, most recent game first.
func (db *DB) GetPicks(ctx context.Context) ([]models.Pick, error) {
	return db.queryPicks(ctx, `
		SELECT `+pickColumns+`
		FROM picks
		ORDER BY game_date DESC, created_at DESC
	`)
}

// GetPendingPicks retrieves picks with at least one unsettled market.
func (db *DB) GetPendingPicks(ctx context.Context) ([]models.Pick, error) {
	return db.queryPicks(ctx, `
		SELECT `+pickColumns+`
		FROM picks
		WHERE result = 'pending' OR ats_result = 'pending' OR ou_result = 'pending'
		ORDER BY game_date ASC
	`)
}

// UpdateResults writes final scores, settlement results and edges back to a
// pick.
func (db *DB) UpdateResults(ctx context.Context, p *models.Pick) error {
	_, err := db.ExecContext(ctx, `
		UPDATE picks
		SET home_score = $1, away_score = $2,
			result = $3, ats_result = $4, ou_result = $5,
			moneyline_edge = $6, spread_edge = $7, ou_edge = $8
		WHERE id = $9
	`,
		nullInt(p.HomeScore), nullInt(p.AwayScore),
		string(orPending(p.Result)), string(orPending(p.ATSResult)), string(orPending(p.OUResult)),
		nullFloat(p.MoneylineEdge), nullFloat(p.SpreadEdge), nullFloat(p.OUEdge),
		p.ID,
	)
	return err
}

func (db *DB) queryPicks(ctx context.Context, query string) ([]models.Pick, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var picks []models.Pick
	for rows.Next() {
		p, err := scanPick(rows)
		if err != nil {
			return nil, err
		}
		picks = append(picks, p)
	}
	return picks, rows.Err()
}

func scanPick(rows *sql.Rows) (models.Pick, error) {
	var p models.Pick
	var (
		spread, overUnder                        sql.NullFloat64
		homeScore, awayScore                     sql.NullInt64
		homeOdds, awayOdds                       sql.NullInt64
		spreadOdds, overOdds, underOdds          sql.NullInt64
		result, atsResult, ouResult              string
		homeWinProb, awayWinProb, coverProb      sql.NullFloat64
		overProb, underProb                      sql.NullFloat64
		predHome, predAway                       sql.NullFloat64
		moneylineEdge, spreadEdge, ouEdge        sql.NullFloat64
	)

	err := rows.Scan(
		&p.ID, &p.CreatedAt, &p.AwayTeam, &p.HomeTeam, &p.League, &p.GameDate, &p.Week,
		&p.Prediction, &p.Confidence, &p.Reasoning,
		&spread, &overUnder, &p.SpreadPrediction, &p.OUPrediction,
		&homeScore, &awayScore,
		&homeOdds, &awayOdds, &spreadOdds, &overOdds, &underOdds,
		&result, &atsResult, &ouResult,
		&homeWinProb, &awayWinProb, &coverProb,
		&overProb, &underProb,
		&predHome, &predAway,
		&moneylineEdge, &spreadEdge, &ouEdge,
	)
	if err != nil {
		return models.Pick{}, err
	}

	p.Result = models.Result(result)
	p.ATSResult = models.Result(atsResult)
	p.OUResult = models.Result(ouResult)

	p.Spread = floatPtr(spread)
	p.OverUnder = floatPtr(overUnder)
	p.HomeScore = intPtr(homeScore)
	p.AwayScore = intPtr(awayScore)
	p.HomeOdds = intPtr(homeOdds)
	p.AwayOdds = intPtr(awayOdds)
	p.SpreadOdds = intPtr(spreadOdds)
	p.OverOdds = intPtr(overOdds)
	p.UnderOdds = intPtr(underOdds)
	p.HomeWinProb = floatPtr(homeWinProb)
	p.AwayWinProb = floatPtr(awayWinProb)
	p.SpreadCoverProb = floatPtr(coverProb)
	p.TotalOverProb = floatPtr(overProb)
	p.TotalUnderProb = floatPtr(underProb)
	p.PredictedHomeScore = floatPtr(predHome)
	p.PredictedAwayScore = floatPtr(predAway)
	p.MoneylineEdge = floatPtr(moneylineEdge)
	p.SpreadEdge = floatPtr(spreadEdge)
	p.OUEdge = floatPtr(ouEdge)
	return p, nil
}

func orPending(r models.Result) models.Result {
	if r == "" {
		return models.ResultPending
	}
	return r
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

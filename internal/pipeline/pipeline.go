// Package pipeline orchestrates the ingest path: validate agent text, parse
// it into drafts, validate and de-duplicate each draft, and persist the
// survivors as picks.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pickline/internal/parser"
	"pickline/internal/sanitize"
	"pickline/internal/season"
	"pickline/models"
)

var (
	// ErrNoPredictions means the parser produced an empty draft list.
	ErrNoPredictions = errors.New("no predictions found in agent text")
	// ErrValidationFailed means every parsed draft was rejected by field
	// validation; the wrapped message lists every problem.
	ErrValidationFailed = errors.New("validation failed")
)

// Processor wires the parsing pipeline to a pick store.
type Processor struct {
	store    models.PickStore
	parser   *parser.Parser
	schedule season.Schedule
	league   string
	logger   zerolog.Logger
}

// New creates a processor for one season schedule and store.
func New(store models.PickStore, schedule season.Schedule) *Processor {
	return &Processor{
		store:    store,
		parser:   parser.New(schedule),
		schedule: schedule,
		league:   "NFL",
		logger:   log.With().Str("component", "pipeline").Logger(),
	}
}

// IngestSummary reports the outcome of processing one agent blob. Duplicate
// skips are per-item outcomes, not errors.
type IngestSummary struct {
	Saved      int
	Duplicates int
	Errors     []string
}

// ProcessText runs the full ingest pipeline over one blob of agent text.
// selectedWeek, when in [1,18], overrides week detection during parsing.
func (p *Processor) ProcessText(ctx context.Context, text string, selectedWeek int) (*IngestSummary, error) {
	clean, err := sanitize.ValidateAgentText(text)
	if err != nil {
		return nil, err
	}

	drafts := p.parser.Parse(clean, selectedWeek)
	if len(drafts) == 0 {
		return nil, ErrNoPredictions
	}

	existing, err := p.store.GetPicks(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading existing picks: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, pick := range existing {
		seen[dedupKey(pick.MatchupKey(), pick.Week)] = true
	}

	summary := &IngestSummary{}
	window := p.schedule.Window()
	invalid := 0

	for _, draft := range drafts {
		v := sanitize.ValidatePickData(sanitize.PickData{
			AwayTeam:   draft.AwayTeam,
			HomeTeam:   draft.HomeTeam,
			Prediction: draft.Prediction,
			Reasoning:  draft.Reasoning,
			Confidence: draft.Confidence,
			Week:       draft.Week,
			GameDate:   draft.GameDate.Format("2006-01-02"),
		}, window)
		if !v.IsValid {
			msg := fmt.Sprintf("%s: %s", draft.MatchupKey(), strings.Join(v.Errors, "; "))
			summary.Errors = append(summary.Errors, msg)
			invalid++
			p.logger.Warn().Str("matchup", draft.MatchupKey()).Strs("errors", v.Errors).Msg("draft rejected")
			continue
		}

		key := dedupKey(v.Sanitized.AwayTeam+" @ "+v.Sanitized.HomeTeam, v.Sanitized.Week)
		if seen[key] {
			summary.Duplicates++
			continue
		}

		pick := buildPick(v.Sanitized, p.league)
		created, err := p.store.CreatePick(ctx, pick)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: save failed: %v", draft.MatchupKey(), err))
			continue
		}
		if !created {
			// The store's unique constraint caught a concurrent insert.
			summary.Duplicates++
			continue
		}
		seen[key] = true
		summary.Saved++
	}

	p.logger.Info().
		Int("saved", summary.Saved).
		Int("duplicates", summary.Duplicates).
		Int("errors", len(summary.Errors)).
		Msg("ingest complete")

	if invalid == len(drafts) {
		return summary, fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(summary.Errors, "; "))
	}
	if summary.Saved == 0 && summary.Duplicates == 0 && len(summary.Errors) > 0 {
		return summary, fmt.Errorf("ingest saved nothing: %s", strings.Join(summary.Errors, "; "))
	}
	return summary, nil
}

func buildPick(data sanitize.PickData, league string) *models.Pick {
	gameDate, _ := time.Parse("2006-01-02", data.GameDate)
	return &models.Pick{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		AwayTeam:   data.AwayTeam,
		HomeTeam:   data.HomeTeam,
		League:     league,
		GameDate:   gameDate,
		Week:       data.Week,
		Prediction: data.Prediction,
		Confidence: data.Confidence,
		Reasoning:  data.Reasoning,
		Result:     models.ResultPending,
		ATSResult:  models.ResultPending,
		OUResult:   models.ResultPending,
	}
}

func dedupKey(matchup string, week int) string {
	return fmt.Sprintf("%s|week-%d", strings.ToLower(matchup), week)
}

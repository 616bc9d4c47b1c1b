// Package parser converts one blob of agent text into zero or more
// normalized prediction drafts. Two strategies are attempted in order: an
// embedded structured payload, then a heuristic line scan.
package parser

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pickline/internal/sanitize"
	"pickline/internal/season"
	"pickline/models"
)

// Parser turns agent text into prediction drafts. It is stateless across
// calls; all parsing state lives on the stack of Parse.
type Parser struct {
	schedule season.Schedule
	logger   zerolog.Logger
	now      func() time.Time
}

// New creates a parser bound to one season schedule.
func New(schedule season.Schedule) *Parser {
	return &Parser{
		schedule: schedule,
		logger:   log.With().Str("component", "parser").Logger(),
		now:      time.Now,
	}
}

// Parse extracts prediction drafts from agent text. selectedWeek, when in
// [1,18], overrides week detection. Malformed input never raises: it simply
// yields fewer (possibly zero) drafts.
func (p *Parser) Parse(text string, selectedWeek int) []models.PredictionDraft {
	clean := sanitize.Text(text)

	if drafts, ok := p.parseStructured(clean, selectedWeek); ok {
		p.logger.Debug().Int("drafts", len(drafts)).Msg("structured payload parsed")
		return drafts
	}

	drafts := p.parseHeuristic(clean, selectedWeek)
	p.logger.Debug().Int("drafts", len(drafts)).Msg("heuristic parse complete")
	return drafts
}

// defaultWeek resolves the starting week for a parse run.
func defaultWeek(selectedWeek int) int {
	if selectedWeek >= season.FirstWeek && selectedWeek <= season.LastWeek {
		return selectedWeek
	}
	return season.FirstWeek
}

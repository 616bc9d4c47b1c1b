package parser

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"pickline/models"
)

// StructuredMarker separates free-form commentary from the structured
// payload the agent is asked to append.
const StructuredMarker = "=== STRUCTURED PICKS ==="

type structuredPayload struct {
	GeneratedAt string           `json:"generated_at"`
	Games       []structuredGame `json:"games"`
}

type structuredGame struct {
	AwayTeam   string                      `json:"away_team"`
	HomeTeam   string                      `json:"home_team"`
	Markets    map[string]structuredMarket `json:"markets"`
	KeyFactors []string                    `json:"key_factors"`
}

type structuredMarket struct {
	Line       string `json:"line"`
	Pick       string `json:"pick"`
	Confidence string `json:"confidence"`
}

// Markets in tie-breaking precedence order.
var marketPrecedence = []string{"spread", "total", "moneyline"}

var (
	codeFenceRe = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*\n?|\n?```\\s*$")
	tzSuffixRe  = regexp.MustCompile(`(Z|[+-]\d{2}:?\d{2})$`)
)

// parseStructured attempts the structured extraction strategy. It reports
// false when the marker is absent or the payload is malformed, letting the
// caller fall through to the heuristic scan.
func (p *Parser) parseStructured(text string, selectedWeek int) ([]models.PredictionDraft, bool) {
	_, payload, found := strings.Cut(text, StructuredMarker)
	if !found {
		return nil, false
	}

	raw := strings.TrimSpace(codeFenceRe.ReplaceAllString(strings.TrimSpace(payload), ""))

	var parsed structuredPayload
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		p.logger.Debug().Err(err).Msg("structured payload unmarshal failed, falling back")
		return nil, false
	}
	if len(parsed.Games) == 0 {
		return nil, false
	}

	gameDate := p.parseGeneratedAt(parsed.GeneratedAt)

	week := selectedWeek
	if week < 1 || week > 18 {
		week = p.schedule.EstimateWeek(gameDate)
	}

	drafts := make([]models.PredictionDraft, 0, len(parsed.Games))
	for _, g := range parsed.Games {
		pick, confidence, ok := primaryPrediction(g.Markets)
		if !ok {
			continue
		}
		drafts = append(drafts, models.PredictionDraft{
			AwayTeam:   strings.TrimSpace(g.AwayTeam),
			HomeTeam:   strings.TrimSpace(g.HomeTeam),
			Prediction: pick,
			Confidence: confidence,
			Reasoning:  strings.Join(g.KeyFactors, "; "),
			GameDate:   gameDate,
			Week:       week,
		})
	}
	if len(drafts) == 0 {
		return nil, false
	}
	return drafts, true
}

// primaryPrediction selects the market carrying the highest mapped
// confidence. Precedence order breaks ties: spread > total > moneyline.
func primaryPrediction(markets map[string]structuredMarket) (string, int, bool) {
	best := ""
	bestConfidence := -1
	for _, name := range marketPrecedence {
		m, present := markets[name]
		if !present || strings.TrimSpace(m.Pick) == "" {
			continue
		}
		if c := mapConfidence(m.Confidence); c > bestConfidence {
			best = strings.TrimSpace(m.Pick)
			bestConfidence = c
		}
	}
	if bestConfidence < 0 {
		return "", 0, false
	}
	return best, bestConfidence, true
}

// mapConfidence converts the agent's qualitative tag to a numeric value.
func mapConfidence(tag string) int {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "high":
		return 80
	case "medium":
		return 60
	case "low":
		return 40
	default:
		return 50
	}
}

// parseGeneratedAt parses the payload timestamp with any timezone suffix
// stripped. An unparseable timestamp falls back to the current date.
func (p *Parser) parseGeneratedAt(raw string) time.Time {
	s := tzSuffixRe.ReplaceAllString(strings.TrimSpace(raw), "")
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return p.now()
}

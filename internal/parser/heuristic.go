package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"pickline/models"
)

var (
	weekHeaderRe = regexp.MustCompile(`(?i)^#*\s*week\s+(\d{1,2})\b`)
	dateLineRe   = regexp.MustCompile(`(?i)^#*\s*(?:game\s+)?date:\s*(.+)$`)
	gameHeaderRe = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9 .'&-]*?)\s*@\s*([A-Za-z][A-Za-z0-9 .'&-]*?)$`)
	// Explicit win probability is the most reliable prediction signal; once
	// seen it suppresses the generic prediction pattern for the game block.
	winProbRe    = regexp.MustCompile(`(?i)([A-Za-z][A-Za-z0-9 .'&-]*?)\s+win\s+probability:?\s*(\d{1,3}(?:\.\d+)?)\s*%`)
	predictionRe = regexp.MustCompile(`(?i)^(?:model\s+)?(?:prediction|pick|recommended\s+bet|recommendation):\s*(.+)$`)
	confidenceRe = regexp.MustCompile(`(?i)^confidence:?\s*(\d{1,3})\s*%?`)
	keyFactorsRe = regexp.MustCompile(`(?i)^key\s+factors?:?\s*$`)
	terminatorRe = regexp.MustCompile(`(?i)^(?:(summary|analysis|notes?|disclaimer):|-{3,}$)`)
	bulletRe     = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s+(.+)$`)
)

var heuristicDateLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/2006",
	"Monday, January 2, 2006",
}

// gameState is the per-step state record threaded through the line fold.
type gameState struct {
	awayTeam   string
	homeTeam   string
	prediction string
	confidence int
	reasoning  []string
	gameDate   time.Time
	week       int

	collectingFactors bool
	winProbSeen       bool
}

// draft materializes the current game, or nil when the state lacks both
// teams or a prediction.
func (st gameState) draft() *models.PredictionDraft {
	if st.awayTeam == "" || st.homeTeam == "" || st.prediction == "" {
		return nil
	}
	return &models.PredictionDraft{
		AwayTeam:   st.awayTeam,
		HomeTeam:   st.homeTeam,
		Prediction: st.prediction,
		Confidence: st.confidence,
		Reasoning:  strings.Join(st.reasoning, ". "),
		GameDate:   st.gameDate,
		Week:       st.week,
	}
}

// reset clears per-game fields while keeping the document-level week and
// date context.
func (st gameState) reset() gameState {
	return gameState{
		confidence: 50,
		gameDate:   st.gameDate,
		week:       st.week,
	}
}

// parseHeuristic is the fallback strategy: a sequential fold over trimmed
// non-empty lines. It never raises on malformed content; unrecognized lines
// leave the state unchanged.
func (p *Parser) parseHeuristic(text string, selectedWeek int) []models.PredictionDraft {
	st := gameState{
		confidence: 50,
		gameDate:   p.now(),
		week:       defaultWeek(selectedWeek),
	}

	var drafts []models.PredictionDraft
	seen := make(map[string]bool)

	flush := func(s gameState) {
		d := s.draft()
		if d == nil || seen[d.MatchupKey()] {
			return
		}
		seen[d.MatchupKey()] = true
		drafts = append(drafts, *d)
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		next, flushed := p.foldLine(st, line)
		if flushed != nil {
			flush(*flushed)
		}
		st = next
	}
	flush(st)

	return drafts
}

// foldLine advances the parser state by one line. When the line opens a new
// game it returns the previous state for flushing.
func (p *Parser) foldLine(st gameState, line string) (gameState, *gameState) {
	// Week headers update the document-level week.
	if m := weekHeaderRe.FindStringSubmatch(line); m != nil {
		if week, err := strconv.Atoi(m[1]); err == nil && week >= 1 && week <= 18 {
			st.week = week
		}
		return st, nil
	}

	// Date indicator lines update the document-level game date.
	if m := dateLineRe.FindStringSubmatch(line); m != nil {
		if d, ok := parseHeuristicDate(m[1]); ok {
			st.gameDate = d
		}
		return st, nil
	}

	// A game header flushes the previous game and resets per-game state.
	if m := gameHeaderRe.FindStringSubmatch(stripDecoration(line)); m != nil {
		prev := st
		st = st.reset()
		st.awayTeam = strings.TrimSpace(m[1])
		st.homeTeam = strings.TrimSpace(m[2])
		return st, &prev
	}

	// Win probability beats any generic prediction line for this block.
	if m := winProbRe.FindStringSubmatch(line); m != nil {
		st.prediction = strings.TrimSpace(m[0])
		st.winProbSeen = true
		return st, nil
	}

	if m := predictionRe.FindStringSubmatch(line); m != nil && !st.winProbSeen {
		st.prediction = strings.TrimSpace(m[1])
		return st, nil
	}

	if m := confidenceRe.FindStringSubmatch(line); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			st.confidence = clampConfidence(v)
		}
		return st, nil
	}

	// A key-factors header begins collection and discards any reasoning
	// accumulated earlier in the block.
	if keyFactorsRe.MatchString(line) {
		st.collectingFactors = true
		st.reasoning = nil
		return st, nil
	}

	if terminatorRe.MatchString(line) {
		st.collectingFactors = false
		return st, nil
	}

	if st.collectingFactors {
		if m := bulletRe.FindStringSubmatch(line); m != nil {
			st.reasoning = append(st.reasoning, strings.TrimSpace(m[1]))
		}
		return st, nil
	}

	return st, nil
}

// stripDecoration removes markdown heading and emphasis markup around a
// candidate game-header line.
func stripDecoration(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "#")
	s = strings.Trim(s, "*_")
	return strings.TrimSpace(s)
}

func parseHeuristicDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	for _, layout := range heuristicDateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// clampConfidence rounds to the nearest multiple of 10 and clamps to [0,100].
func clampConfidence(v int) int {
	rounded := ((v + 5) / 10) * 10
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

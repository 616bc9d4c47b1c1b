package sanitize

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	maxTeamNameLen   = 50
	maxPredictionLen = 200
	maxReasoningLen  = 2000

	dateLayout = "2006-01-02"
)

// Result is the outcome of validating one text field.
type Result struct {
	IsValid   bool
	Error     string
	Sanitized string
}

// IntResult is the outcome of validating one numeric field.
type IntResult struct {
	IsValid   bool
	Error     string
	Sanitized int
}

// SeasonWindow is the expanded window a game date must fall into, plus the
// fallback date substituted for out-of-window dates. Supplied by the caller
// from the season schedule.
type SeasonWindow struct {
	Start       time.Time
	End         time.Time
	SeasonStart time.Time
}

var teamNameChars = regexp.MustCompile(`^[A-Za-z0-9 .'&-]+$`)

// Markers of prediction phrasing that indicate the parser mis-assigned a
// line to a team-name field.
var predictionMarkers = []string{"recommended", "simulation results"}

var dateFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// TeamName validates and sanitizes a team name.
func TeamName(input string) Result {
	s := Text(input)
	if s == "" {
		return Result{Error: "team name is empty", Sanitized: s}
	}
	if len(s) > maxTeamNameLen {
		return Result{Error: fmt.Sprintf("team name exceeds %d characters", maxTeamNameLen), Sanitized: s}
	}
	if strings.Contains(s, ":") {
		return Result{Error: "team name contains a colon", Sanitized: s}
	}
	lower := strings.ToLower(s)
	for _, marker := range predictionMarkers {
		if strings.Contains(lower, marker) {
			return Result{Error: "team name looks like prediction text", Sanitized: s}
		}
	}
	if !teamNameChars.MatchString(s) {
		return Result{Error: "team name contains invalid characters", Sanitized: s}
	}
	return Result{IsValid: true, Sanitized: s}
}

// Prediction validates and sanitizes the primary market call text.
func Prediction(input string) Result {
	s := Text(input)
	if s == "" {
		return Result{Error: "prediction is empty", Sanitized: s}
	}
	if len(s) > maxPredictionLen {
		return Result{Error: fmt.Sprintf("prediction exceeds %d characters", maxPredictionLen), Sanitized: s}
	}
	return Result{IsValid: true, Sanitized: s}
}

// Reasoning validates and sanitizes free-text reasoning. Empty reasoning is
// allowed.
func Reasoning(input string) Result {
	s := Text(input)
	if len(s) > maxReasoningLen {
		return Result{Error: fmt.Sprintf("reasoning exceeds %d characters", maxReasoningLen), Sanitized: s}
	}
	return Result{IsValid: true, Sanitized: s}
}

// Confidence validates a confidence value. The sanitized value is rounded to
// the nearest multiple of 10 and clamped to [0,100]; inputs outside [0,100]
// are invalid.
func Confidence(value int) IntResult {
	rounded := roundToTen(value)
	clamped := clamp(rounded, 0, 100)
	if value < 0 || value > 100 {
		return IntResult{Error: fmt.Sprintf("confidence %d outside [0,100]", value), Sanitized: clamped}
	}
	return IntResult{IsValid: true, Sanitized: clamped}
}

// Week validates a season week number. The sanitized value is clamped to
// [1,18]; inputs outside that range are invalid.
func Week(value int) IntResult {
	clamped := clamp(value, 1, 18)
	if value < 1 || value > 18 {
		return IntResult{Error: fmt.Sprintf("week %d outside [1,18]", value), Sanitized: clamped}
	}
	return IntResult{IsValid: true, Sanitized: clamped}
}

// GameDate validates a YYYY-MM-DD date against the expanded season window.
// Out-of-window or malformed dates are replaced with the season start and
// marked invalid.
func GameDate(input string, window SeasonWindow) Result {
	fallback := window.SeasonStart.Format(dateLayout)

	s := Text(input)
	if !dateFormat.MatchString(s) {
		return Result{Error: "game date must be YYYY-MM-DD", Sanitized: fallback}
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return Result{Error: "game date is not a valid calendar date", Sanitized: fallback}
	}
	if d.Before(window.Start) || d.After(window.End) {
		return Result{Error: "game date falls outside the season window", Sanitized: fallback}
	}
	return Result{IsValid: true, Sanitized: s}
}

// PickData carries the raw fields of one prediction draft through combined
// validation.
type PickData struct {
	AwayTeam   string
	HomeTeam   string
	Prediction string
	Reasoning  string
	Confidence int
	Week       int
	GameDate   string
}

// PickValidation is the aggregated result of validating every field of one
// draft. Errors are cumulative, not fail-fast.
type PickValidation struct {
	IsValid   bool
	Errors    []string
	Sanitized PickData
}

// ValidatePickData runs every field validator and aggregates the outcome.
func ValidatePickData(data PickData, window SeasonWindow) PickValidation {
	out := PickValidation{IsValid: true}

	away := TeamName(data.AwayTeam)
	if !away.IsValid {
		out.Errors = append(out.Errors, "away team: "+away.Error)
	}
	home := TeamName(data.HomeTeam)
	if !home.IsValid {
		out.Errors = append(out.Errors, "home team: "+home.Error)
	}
	pred := Prediction(data.Prediction)
	if !pred.IsValid {
		out.Errors = append(out.Errors, pred.Error)
	}
	reason := Reasoning(data.Reasoning)
	if !reason.IsValid {
		out.Errors = append(out.Errors, reason.Error)
	}
	conf := Confidence(data.Confidence)
	if !conf.IsValid {
		out.Errors = append(out.Errors, conf.Error)
	}
	week := Week(data.Week)
	if !week.IsValid {
		out.Errors = append(out.Errors, week.Error)
	}
	date := GameDate(data.GameDate, window)
	if !date.IsValid {
		out.Errors = append(out.Errors, date.Error)
	}

	out.IsValid = len(out.Errors) == 0
	out.Sanitized = PickData{
		AwayTeam:   away.Sanitized,
		HomeTeam:   home.Sanitized,
		Prediction: pred.Sanitized,
		Reasoning:  reason.Sanitized,
		Confidence: conf.Sanitized,
		Week:       week.Sanitized,
		GameDate:   date.Sanitized,
	}
	return out
}

func roundToTen(v int) int {
	if v >= 0 {
		return ((v + 5) / 10) * 10
	}
	return -(((-v + 5) / 10) * 10)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

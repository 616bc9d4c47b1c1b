// Package sanitize cleans and bounds-checks raw agent text before any of it
// enters the pick pipeline.
package sanitize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidInput is returned when agent text is too long, too short after
// cleaning, or lost too much content to sanitization.
var ErrInvalidInput = errors.New("invalid input")

const (
	// MaxAgentTextLen bounds one raw agent blob.
	MaxAgentTextLen = 50000
	// MinAgentTextLen is the minimum that must survive sanitization.
	MinAgentTextLen = 50
	// MaxStrippedFraction is the injection heuristic: fail when sanitization
	// removed more than this share of the input.
	MaxStrippedFraction = 0.30
)

// Denylist of dangerous substrings and patterns. Script blocks are removed
// with their contents; stray tags, protocol handlers, event-handler
// attributes, global-object references and eval calls are removed bare.
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`),
	regexp.MustCompile(`(?i)<script\b[^>]*>`),
	regexp.MustCompile(`(?i)</script>`),
	regexp.MustCompile(`(?i)<(iframe|object|embed)\b[^>]*>`),
	regexp.MustCompile(`(?i)javascript\s*:`),
	regexp.MustCompile(`(?i)vbscript\s*:`),
	regexp.MustCompile(`(?i)data\s*:\s*text/html`),
	regexp.MustCompile(`(?i)\bon[a-z]+\s*=`),
	regexp.MustCompile(`(?i)\b(document|window)\s*\.`),
	regexp.MustCompile(`(?i)\beval\s*\(`),
}

// Control characters except \t and \n.
var controlChars = regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]")

var blankLineRuns = regexp.MustCompile(`\n[ \t]*\n([ \t]*\n)+`)

var punctuationReplacer = strings.NewReplacer(
	"‘", "'", "’", "'", "‚", "'", "‛", "'",
	"“", `"`, "”", `"`, "„", `"`,
	"–", "-", "—", "-", "−", "-",
	" ", " ", " ", " ", " ", " ", "　", " ",
	" ", " ", " ", " ", " ", " ", " ", " ",
	" ", " ", " ", " ", " ", " ", " ", " ",
	" ", " ", " ", " ", "​", "",
	"…", "...",
)

// Text strips the denylist, removes control characters, normalizes Unicode
// punctuation and whitespace, collapses runs of blank lines to at most one
// blank line, and trims.
func Text(input string) string {
	out := input
	for _, re := range dangerousPatterns {
		out = re.ReplaceAllString(out, "")
	}
	out = controlChars.ReplaceAllString(out, "")
	out = strings.ReplaceAll(out, "\r\n", "\n")
	out = strings.ReplaceAll(out, "\r", "\n")
	out = punctuationReplacer.Replace(out)
	out = blankLineRuns.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// ValidateAgentText sanitizes one agent blob and enforces the size and
// stripped-fraction bounds. It returns the sanitized text on success.
func ValidateAgentText(text string) (string, error) {
	if len(text) > MaxAgentTextLen {
		return "", fmt.Errorf("%w: text exceeds %d characters", ErrInvalidInput, MaxAgentTextLen)
	}

	cleaned := Text(text)

	if len(text) > 0 {
		removed := float64(len(text)-len(cleaned)) / float64(len(text))
		if removed > MaxStrippedFraction {
			return "", fmt.Errorf("%w: sanitization removed %.0f%% of input", ErrInvalidInput, removed*100)
		}
	}

	if len(cleaned) < MinAgentTextLen {
		return "", fmt.Errorf("%w: only %d characters remain after sanitization (minimum %d)", ErrInvalidInput, len(cleaned), MinAgentTextLen)
	}

	return cleaned, nil
}

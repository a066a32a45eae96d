// Package textnorm cleans raw extracted document text before field
// extraction: it joins lines the text decoder broke mid-sentence,
// collapses whitespace, and keeps "Label: value" pairs adjacent so the
// downstream regexes see them on one line.
package textnorm

import (
	"regexp"
	"strings"
)

// Line is one logical line with its original byte offsets kept for
// debugging; offsets are not used by extraction itself.
type Line struct {
	Text  string
	Start int
	End   int
}

// Result is the outcome of normalizing one document.
type Result struct {
	// Text is the normalized document: logical lines joined by \n.
	Text string
	// Lines holds per-line offsets when requested via NormalizeWithLines.
	Lines []Line
	// RawLength is the input length before normalization.
	RawLength int
}

var (
	reLabelValue   = regexp.MustCompile(`^\s*[A-Za-z][A-Za-z0-9\s\-.]*?\s*[:=]\s*`)
	reSentenceEnd  = regexp.MustCompile(`[.?!]\s*$`)
	reNewLabel     = regexp.MustCompile(`^[A-Z][a-z]+\s*[:=]`)
	reRowStart     = regexp.MustCompile(`^\d+[\s,.]`)
	reInnerSpace   = regexp.MustCompile(`\s+`)
	reMultiNewline = regexp.MustCompile(`\n{2,}`)
)

// isLikelyContinuation reports whether line belongs to the previous
// physical line. The rules are heuristic and deliberately conservative;
// they can still misjoin wrapped paragraph text that sits next to a
// table, which the tests pin rather than fix.
func isLikelyContinuation(line, prevLine string) bool {
	t := strings.TrimSpace(line)
	prev := strings.TrimSpace(prevLine)
	if t == "" {
		return true // blank lines merge away
	}
	// "Label: value" starting fresh after a non-label line opens a block.
	if reLabelValue.MatchString(t) && prev != "" && !reLabelValue.MatchString(prev) {
		return false
	}
	// Previous line finished a sentence, or was a label whose value follows.
	if reSentenceEnd.MatchString(prev) || (strings.HasSuffix(prev, ":") && len(t) > 2) {
		return false
	}
	if reNewLabel.MatchString(t) {
		return false
	}
	// A leading number usually starts a table row.
	if reRowStart.MatchString(t) {
		return false
	}
	return true
}

// Normalize returns the normalized text only.
func Normalize(raw string) string {
	return NormalizeWithLines(raw, false).Text
}

// NormalizeWithLines normalizes raw text; when keepLines is set the
// result also carries the merged logical lines with original offsets.
func NormalizeWithLines(raw string, keepLines bool) Result {
	if raw == "" {
		return Result{}
	}

	rawLines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	positions := make([]int, len(rawLines))
	pos := 0
	for i, l := range rawLines {
		positions[i] = pos
		pos += len(l) + 1
	}
	for i := range rawLines {
		rawLines[i] = strings.TrimRight(rawLines[i], " \t")
	}

	var merged []Line
	i := 0
	for i < len(rawLines) {
		logical := rawLines[i]
		start := positions[i]
		end := start + len(logical)
		i++
		for i < len(rawLines) && isLikelyContinuation(rawLines[i], logical) {
			next := rawLines[i]
			logical = logical + " " + strings.TrimSpace(next)
			end = positions[i] + len(next)
			i++
		}
		merged = append(merged, Line{Text: strings.TrimSpace(logical), Start: start, End: end})
	}

	parts := make([]string, 0, len(merged))
	for _, l := range merged {
		t := strings.TrimSpace(reInnerSpace.ReplaceAllString(l.Text, " "))
		if t != "" {
			parts = append(parts, t)
		}
	}
	text := strings.TrimSpace(reMultiNewline.ReplaceAllString(strings.Join(parts, "\n"), "\n"))

	res := Result{Text: text, RawLength: len(raw)}
	if keepLines {
		res.Lines = merged
	}
	return res
}

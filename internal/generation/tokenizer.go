package generation

import (
	"encoding/json"
	"regexp"
	"strings"
)

// The generated text carries a small set of line-prefixed markers. Tokenizing
// splits a segment into ordered (kind, content) tokens plus a residual body,
// so field extraction never depends on string-replace ordering.

type markerKind int

const (
	markerTitle markerKind = iota
	markerThemesJSON
	markerThemesPlain
	markerDay
)

type token struct {
	kind    markerKind
	content string
}

type tokenized struct {
	tokens []token
	body   string
}

// Matched in order; the JSON themes marker must be tried before the plain one.
var markerPatterns = []struct {
	kind markerKind
	re   *regexp.Regexp
}{
	{markerTitle, regexp.MustCompile(`(?i)^\s*\*\*\s*Titre de l'Histoire\s*:?\s*\*\*\s*:?\s*(.*)$`)},
	{markerThemesJSON, regexp.MustCompile(`(?i)^\s*\*\*\s*Thèmes(?:\s+Associés)?\s*\(JSON\)\s*:?\s*\*\*\s*:?\s*(.*)$`)},
	{markerThemesPlain, regexp.MustCompile(`(?i)^\s*\*\*\s*Thèmes(?:\s+Associés)?\s*:?\s*\*\*\s*:?\s*(.*)$`)},
	{markerDay, regexp.MustCompile(`(?i)^\s*\*\*\s*Jour(?:\s+de la semaine)?\s*:?\s*\*\*\s*:?\s*(.*)$`)},
}

var titleMarkerRe = markerPatterns[0].re

func tokenize(segment string) tokenized {
	lines := strings.Split(segment, "\n")

	var out tokenized
	var residual []string
	for i := 0; i < len(lines); i++ {
		matched := false
		for _, mp := range markerPatterns {
			m := mp.re.FindStringSubmatch(lines[i])
			if m == nil {
				continue
			}
			content := strings.TrimSpace(m[1])
			if mp.kind == markerThemesJSON {
				content, i = collectJSONArray(content, lines, i)
			}
			out.tokens = append(out.tokens, token{kind: mp.kind, content: content})
			matched = true
			break
		}
		if !matched {
			residual = append(residual, lines[i])
		}
	}
	out.body = strings.Join(residual, "\n")
	return out
}

// collectJSONArray lets the themes array continue past the marker line: lines
// are consumed until the accumulated text is valid JSON. A block that never
// becomes valid consumes nothing beyond the marker line; the parser then falls
// back to the plain themes line.
func collectJSONArray(content string, lines []string, i int) (string, int) {
	if content != "" && json.Valid([]byte(content)) {
		return content, i
	}
	acc := content
	for j := i + 1; j < len(lines); j++ {
		acc = strings.TrimSpace(acc + "\n" + lines[j])
		if json.Valid([]byte(acc)) {
			return acc, j
		}
	}
	return content, i
}

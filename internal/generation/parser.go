package generation

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"storybook-app/internal/domain/stories"
)

// ThemeDescriptor is an unpersisted theme tuple extracted from generated
// text, pending resolution against the catalog.
type ThemeDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

// StoryRecord is one story extracted from the raw generated text.
type StoryRecord struct {
	Title            string
	Body             string
	ThemeDescriptors []ThemeDescriptor
	DayLabel         string
	// WeeklyThemeFallback is the batch theme name, set by the orchestrator;
	// it backs the synthetic descriptor when no theme could be extracted.
	WeeklyThemeFallback string
}

var illustrationRe = regexp.MustCompile(`(?is)\[\s*Illustration\s*:\s*(.*?)\]`)

// Parse splits rawText into story records.
//
// With daySelector "week" the text is split before each title-marker line and
// every segment must carry an explicit day marker; segments without one are
// dropped with a warning. Any other daySelector treats the whole text as one
// segment whose day label is the selector itself.
func Parse(raw string, daySelector string) []StoryRecord {
	weekly := strings.EqualFold(strings.TrimSpace(daySelector), stories.DaySelectorWeek)

	segments := []string{raw}
	if weekly {
		segments = splitSegments(raw)
	}

	var records []StoryRecord
	for _, seg := range segments {
		rec := parseSegment(seg)
		if weekly {
			if rec.DayLabel == "" {
				log.Warn("dropping generated segment without a day-of-week marker", "title", rec.Title)
				continue
			}
		} else {
			rec.DayLabel = daySelector
		}
		records = append(records, rec)
	}
	return records
}

// splitSegments starts a new segment before every title-marker line and
// discards empty segments.
func splitSegments(raw string) []string {
	var segments []string
	var cur []string
	flush := func() {
		seg := strings.TrimSpace(strings.Join(cur, "\n"))
		if seg != "" {
			segments = append(segments, seg)
		}
		cur = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		if titleMarkerRe.MatchString(line) && len(cur) > 0 {
			flush()
		}
		cur = append(cur, line)
	}
	flush()
	return segments
}

func parseSegment(seg string) StoryRecord {
	tk := tokenize(seg)

	var rec StoryRecord
	var themesJSON, themesPlain string
	var hasJSON, hasPlain bool
	for _, tok := range tk.tokens {
		switch tok.kind {
		case markerTitle:
			if rec.Title == "" {
				rec.Title = tok.content
			}
		case markerThemesJSON:
			if !hasJSON {
				themesJSON, hasJSON = tok.content, true
			}
		case markerThemesPlain:
			if !hasPlain {
				themesPlain, hasPlain = tok.content, true
			}
		case markerDay:
			if rec.DayLabel == "" {
				rec.DayLabel = tok.content
			}
		}
	}

	if hasJSON {
		ds, err := parseThemesJSON(themesJSON)
		if err != nil {
			log.Warn("malformed themes JSON, falling back to plain themes line", "error", err)
		} else {
			rec.ThemeDescriptors = ds
		}
	}
	if len(rec.ThemeDescriptors) == 0 && hasPlain {
		rec.ThemeDescriptors = parseThemesPlain(themesPlain)
	}

	rec.Body = buildBody(tk.body)
	return rec
}

// buildBody strips the single illustration bracket from the residual text and
// re-appends its caption as a quoted note.
func buildBody(residual string) string {
	m := illustrationRe.FindStringSubmatchIndex(residual)
	if m == nil {
		return strings.TrimSpace(residual)
	}
	caption := strings.TrimSpace(residual[m[2]:m[3]])
	body := strings.TrimSpace(residual[:m[0]] + residual[m[1]:])
	if caption == "" {
		return body
	}
	return body + "\n\n> Illustration: " + caption
}

func parseThemesJSON(content string) ([]ThemeDescriptor, error) {
	start := strings.Index(content, "[")
	if start >= 0 {
		content = content[start:]
	}
	var ds []ThemeDescriptor
	if err := json.Unmarshal([]byte(content), &ds); err != nil {
		return nil, err
	}
	out := ds[:0]
	for _, d := range ds {
		if strings.TrimSpace(d.Name) != "" {
			d.Name = strings.TrimSpace(d.Name)
			out = append(out, d)
		}
	}
	return out, nil
}

func parseThemesPlain(content string) []ThemeDescriptor {
	var ds []ThemeDescriptor
	for _, part := range strings.Split(content, ",") {
		name := strings.TrimSpace(strings.Trim(strings.TrimSpace(part), "*"))
		if name != "" {
			ds = append(ds, ThemeDescriptor{Name: name})
		}
	}
	return ds
}

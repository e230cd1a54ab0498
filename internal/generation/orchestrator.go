package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// Selection is one generation batch: which age ranges to cover, the weekly
// theme, and either a single weekday label or "week".
type Selection struct {
	AgeRanges      []string
	Theme          string
	Day            string
	WeekNumber     int
	NumCharacters  int
	CharacterNames []string
	SeriesName     string
}

// Generator is satisfied by *Client; tests substitute stubs.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Orchestrator drives the pipeline strictly sequentially: the external
// service is rate limited, so age ranges are never generated in parallel and
// iterations are spaced by a fixed delay.
type Orchestrator struct {
	gen       Generator
	resolver  *ThemeResolver
	persister *StoryPersister
	delay     time.Duration
}

func NewOrchestrator(gen Generator, resolver *ThemeResolver, persister *StoryPersister) *Orchestrator {
	return &Orchestrator{
		gen:       gen,
		resolver:  resolver,
		persister: persister,
		delay:     2 * time.Second,
	}
}

// Run generates and persists stories for every selected age range, in order.
// It returns the human-readable progress log and, on failure, the first fatal
// error; stories persisted before the failure are not undone. Cancelling ctx
// stops the run at the next suspension point.
func (o *Orchestrator) Run(ctx context.Context, sel Selection) ([]string, error) {
	var progress []string
	step := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		log.Info(msg)
		progress = append(progress, msg)
	}

	// Burst 1 with a fixed refill: no wait before the first iteration, a
	// full delay between iterations, none after the last.
	limiter := rate.NewLimiter(rate.Every(o.delay), 1)

	for _, age := range sel.AgeRanges {
		if err := limiter.Wait(ctx); err != nil {
			return progress, err
		}

		step("Generating stories for ages %s (week %d, theme %q)...", age, sel.WeekNumber, sel.Theme)

		raw, err := o.gen.Generate(ctx, BuildPrompt(sel, age))
		if err != nil {
			return progress, fmt.Errorf("generation for age range %s: %w", age, err)
		}

		for _, rec := range Parse(raw, sel.Day) {
			rec.WeeklyThemeFallback = sel.Theme

			resolved, err := o.resolver.ResolveAll(rec)
			if err != nil {
				return progress, fmt.Errorf("resolving themes for %q: %w", rec.Title, err)
			}

			refs := make([]ThemeRef, 0, len(resolved))
			for i, t := range resolved {
				refs = append(refs, ThemeRef{ID: t.ID, IsPrimary: i == 0})
			}

			story, err := o.persister.Create(StoryInput{
				Title:      rec.Title,
				Content:    rec.Body,
				AgeRange:   age,
				DayLabel:   rec.DayLabel,
				WeekNumber: sel.WeekNumber,
				Themes:     refs,
				SeriesName: sel.SeriesName,
			})
			if err != nil {
				return progress, fmt.Errorf("saving story %q: %w", rec.Title, err)
			}

			step("Saved story %q (ages %s, day %d)", story.Title, age, story.DayOrder)
		}
	}

	step("Generation finished: %d age range(s) processed", len(sel.AgeRanges))
	return progress, nil
}

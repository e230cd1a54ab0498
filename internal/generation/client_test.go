package generation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// stubGenerator replays a scripted sequence of results; the last entry
// repeats once the script runs out.
type stubGenerator struct {
	script []stubResult
	calls  int
}

type stubResult struct {
	text string
	err  error
}

func (s *stubGenerator) generateContent(ctx context.Context, prompt string) (string, error) {
	idx := s.calls
	if idx >= len(s.script) {
		idx = len(s.script) - 1
	}
	s.calls++
	r := s.script[idx]
	return r.text, r.err
}

func overloadErr() error {
	return genai.APIError{Code: 503, Message: "The model is overloaded"}
}

func TestGenerate_RetriesOverloadWithDoublingWaits(t *testing.T) {
	stub := &stubGenerator{script: []stubResult{{err: overloadErr()}}}

	var waits []time.Duration
	c := &Client{
		gen:       stub,
		baseDelay: 2 * time.Millisecond,
		onWait:    func(d time.Duration) { waits = append(waits, d) },
	}

	_, err := c.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOverloadExhausted)

	// one initial attempt plus exactly five retries
	assert.Equal(t, 6, stub.calls)
	require.Len(t, waits, 5)
	expected := []time.Duration{2, 4, 8, 16, 32}
	for i, w := range waits {
		assert.Equal(t, expected[i]*time.Millisecond, w)
	}
}

func TestGenerate_RecoversAfterTransientOverload(t *testing.T) {
	stub := &stubGenerator{script: []stubResult{
		{err: overloadErr()},
		{err: overloadErr()},
		{text: "Il était une fois..."},
	}}
	c := &Client{gen: stub, baseDelay: time.Millisecond}

	out, err := c.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Il était une fois...", out)
	assert.Equal(t, 3, stub.calls)
}

func TestGenerate_NonOverloadFailsImmediately(t *testing.T) {
	stub := &stubGenerator{script: []stubResult{
		{err: genai.APIError{Code: 400, Message: "invalid argument"}},
	}}
	c := &Client{gen: stub, baseDelay: time.Millisecond}

	_, err := c.Generate(context.Background(), "prompt")
	require.Error(t, err)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 400, te.Status)
	assert.Equal(t, "invalid argument", te.Message)
	assert.Equal(t, 1, stub.calls, "non-503 responses must not be retried")
}

func TestGenerate_EmptyTextPayload(t *testing.T) {
	stub := &stubGenerator{script: []stubResult{{text: "   \n"}}}
	c := &Client{gen: stub, baseDelay: time.Millisecond}

	_, err := c.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrEmptyGenerationResult)
	assert.Equal(t, 1, stub.calls)
}

func TestGenerate_ContextCancellationStopsRetrying(t *testing.T) {
	stub := &stubGenerator{script: []stubResult{{err: overloadErr()}}}
	c := &Client{gen: stub, baseDelay: 50 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Generate(ctx, "prompt")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrEmptyGenerationResult))
	assert.LessOrEqual(t, stub.calls, 2)
}

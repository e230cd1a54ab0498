package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"google.golang.org/genai"
)

const (
	overloadStatus     = 503
	overloadMaxRetries = 5
	overloadBaseDelay  = 2 * time.Second
	defaultGeminiModel = "gemini-2.5-flash"
)

// textGenerator is the single call the client layers retries on top of.
type textGenerator interface {
	generateContent(ctx context.Context, prompt string) (string, error)
}

type geminiGenerator struct {
	client *genai.Client
	model  string
}

func (g *geminiGenerator) generateContent(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

// Client issues one generation request per Generate call, retrying only on
// service overload. It keeps no state between calls.
type Client struct {
	gen       textGenerator
	baseDelay time.Duration
	onWait    func(time.Duration) // test hook observing backoff waits
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if model == "" {
		model = defaultGeminiModel
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &Client{
		gen:       &geminiGenerator{client: c, model: model},
		baseDelay: overloadBaseDelay,
	}, nil
}

// Generate sends the prompt and returns the raw generated text.
//
// A 503 from the service is retried up to 5 times with waits of 2s, 4s, 8s,
// 16s, 32s, then fails with ErrOverloadExhausted. Any other failure is a
// *TransportError and is not retried. A success with an empty text payload
// fails with ErrEmptyGenerationResult.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var text string
	op := func() error {
		out, err := c.gen.generateContent(ctx, prompt)
		if err != nil {
			status, msg := apiStatus(err)
			if status == overloadStatus {
				return err
			}
			return &TransportError{Status: status, Message: msg}
		}
		text = out
		return nil
	}

	policy := RetryPolicy{
		MaxRetries:  overloadMaxRetries,
		BaseDelay:   c.baseDelay,
		IsRetryable: isOverload,
	}
	onWait := func(wait time.Duration) {
		log.Warn("generation service overloaded, backing off", "wait", wait)
		if c.onWait != nil {
			c.onWait(wait)
		}
	}

	if err := retryWithBackoff(ctx, policy, op, onWait); err != nil {
		var te *TransportError
		if errors.As(err, &te) {
			return "", te
		}
		if isOverload(err) {
			return "", fmt.Errorf("%w: %v", ErrOverloadExhausted, err)
		}
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyGenerationResult
	}
	return text, nil
}

func isOverload(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return false
	}
	status, _ := apiStatus(err)
	return status == overloadStatus
}

func apiStatus(err error) (int, string) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.Message
	}
	return 0, err.Error()
}

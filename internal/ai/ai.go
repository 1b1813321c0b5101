package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrDisabled is returned when no API key is configured; callers treat AI
// enrichment as optional and carry on.
var ErrDisabled = errors.New("ai: no api key configured")

type Client struct {
	APIKey string
	Model  string
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (c *Client) Enabled() bool {
	return c.APIKey != ""
}

// SummarizeText produces a one-or-two sentence summary of slide text.
func (c *Client) SummarizeText(ctx context.Context, text string) (string, error) {
	return c.generate(ctx,
		"Summarize the following presentation slide text in one or two sentences. Reply with the summary only.\n\n"+text)
}

// SuggestSlideTitle proposes a short title for a slide from its text.
func (c *Client) SuggestSlideTitle(ctx context.Context, text string) (string, error) {
	return c.generate(ctx,
		"Suggest a short title (max 8 words) for a presentation slide with the following text. Reply with the title only.\n\n"+text)
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(c.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(c.Model)
	if m == nil {
		return "", fmt.Errorf("ai: model %q is nil", c.Model)
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("ai: empty response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.TrimSpace(b.String()), nil
}

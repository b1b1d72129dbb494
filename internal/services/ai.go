package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ErrDrafterDisabled is returned when no OpenAI API key is configured.
var ErrDrafterDisabled = errors.New("description drafting is not configured")

// ProjectDrafter writes a first-draft project description from a name and
// free-form notes.
type ProjectDrafter struct {
	client *openai.Client
	model  string
}

// NewProjectDrafter returns a drafter backed by the OpenAI chat API. An empty
// apiKey yields a disabled drafter. baseURL is optional.
func NewProjectDrafter(apiKey, baseURL string) *ProjectDrafter {
	if apiKey == "" {
		return &ProjectDrafter{}
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &ProjectDrafter{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.GPT4oMini,
	}
}

// Enabled reports whether an API client is configured.
func (d *ProjectDrafter) Enabled() bool {
	return d != nil && d.client != nil
}

// DraftDescription asks the model for a short plain-text description.
func (d *ProjectDrafter) DraftDescription(ctx context.Context, name, notes string) (string, error) {
	if !d.Enabled() {
		return "", ErrDrafterDisabled
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrProjectNameMissing
	}

	prompt := fmt.Sprintf(`Write a concise description (at most three sentences) for a team project.

Project name: %s

Notes from the project owner:
%s

Return only the description as plain text, without a heading or quotes.`, name, strings.TrimSpace(notes))

	resp, err := d.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: d.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

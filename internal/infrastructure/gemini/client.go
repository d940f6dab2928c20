package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const maxBios = 3

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(apiKey, model string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	m := client.GenerativeModel(model)
	m.SetTemperature(0.7)

	return &GeminiClient{
		client: client,
		model:  m,
	}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// GenerateBios asks the model for short first-person bios for a business card.
func (c *GeminiClient) GenerateBios(ctx context.Context, name, title string, skills []string) ([]string, error) {
	prompt := fmt.Sprintf(`
		Write %d distinct short professional bios for a digital business card.
		Name: %s
		Job title: %s
		Skills: %s

		Each bio must be one or two sentences, first person, no hashtags or emoji.
		Output: JSON array of strings. Example: ["I design...", "I help..."]
	`, maxBios, name, title, strings.Join(skills, ", "))

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	return parseSuggestions(sb.String())
}

// parseSuggestions accepts a JSON array of strings, optionally fenced as a
// markdown code block, and falls back to one suggestion per line.
func parseSuggestions(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var suggestions []string
	if err := json.Unmarshal([]byte(text), &suggestions); err != nil {
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimLeft(line, "-*0123456789. ")
			if line != "" && !strings.HasPrefix(line, "[") && !strings.HasSuffix(line, "]") {
				suggestions = append(suggestions, line)
			}
		}
		if len(suggestions) == 0 {
			return nil, fmt.Errorf("failed to parse bio suggestions: %w", err)
		}
	}

	if len(suggestions) > maxBios {
		suggestions = suggestions[:maxBios]
	}
	return suggestions, nil
}

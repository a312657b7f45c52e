/*
Package ai provides functionality to interact with the Gemini AI API and provide
short commentary on the morning's top movers.
*/
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/shanehull/movers/internal/types"
)

type Commentary struct {
	Summary []string `json:"summary"`
}

// Commentator asks Gemini for a few bullet points describing a ranked report.
type Commentator struct {
	APIKey    string
	ModelName string
}

func NewCommentator(apiKey, modelName string) *Commentator {
	return &Commentator{APIKey: apiKey, ModelName: modelName}
}

// Enabled reports whether an API key is configured.
func (c *Commentator) Enabled() bool {
	return c != nil && c.APIKey != ""
}

func (c *Commentator) Comment(ctx context.Context, report types.RankedReport) (*Commentary, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if report.Empty() {
		return nil, fmt.Errorf("nothing to comment on: report is empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	systemContent := &genai.Content{
		Parts: []*genai.Part{
			{Text: systemInstruction},
		},
		Role: "system",
	}

	userContent := &genai.Content{
		Parts: []*genai.Part{
			{Text: BuildPrompt(report)},
		},
		Role: "user",
	}

	tools := []*genai.Tool{
		{GoogleSearch: &genai.GoogleSearch{}},
	}

	resp, err := client.Models.GenerateContent(ctx, c.ModelName, []*genai.Content{systemContent, userContent}, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   getResponseSchema(),
		Tools:            tools,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}

	return parseCommentary(resp.Text())
}

func parseCommentary(respText string) (*Commentary, error) {
	respText = strings.TrimSpace(respText)
	respText = strings.TrimPrefix(respText, "```json")
	respText = strings.TrimSuffix(strings.TrimPrefix(respText, "```"), "```")

	var commentary Commentary
	if err := json.Unmarshal([]byte(respText), &commentary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gemini JSON response: %w. Raw text: %s", err, respText)
	}

	cleaned := commentary.Summary[:0]
	for _, s := range commentary.Summary {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	commentary.Summary = cleaned

	return &commentary, nil
}

func getResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "A list of 2-4 concise bullet points about the listed moves.",
			},
		},
		Required: []string{"summary"},
	}
}

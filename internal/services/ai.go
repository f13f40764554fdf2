package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

// DocumentSummary is the structured abstract produced for a document
type DocumentSummary struct {
	Abstract string   `json:"abstract"`
	Topics   []string `json:"topics"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// SummarizeDocument produces a short abstract of a document's body text
func (s *AIService) SummarizeDocument(ctx context.Context, subject, body string) (*DocumentSummary, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You summarize administrative correspondence for a document-tracking system.

Subject: %s

Body:
%s

Return a JSON object in exactly this shape:
{
  "abstract": "two or three sentences summarizing what the document requests or communicates",
  "topics": ["short topic keywords, at most five"]
}

Return only the JSON, with no surrounding explanation.`, subject, body)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
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
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var summary DocumentSummary
	if err := json.Unmarshal([]byte(content), &summary); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return &summary, nil
}

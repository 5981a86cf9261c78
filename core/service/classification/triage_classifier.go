package classification

import (
	"context"

	"triage_server/core/domain"
	"triage_server/core/port/out"
	"triage_server/pkg/logger"
)

// Classifier labels an email with the fixed taxonomy. Model failures and
// contract violations degrade to the keyword fallback, so Classify always
// produces a result.
type Classifier struct {
	llm out.CompletionClient
}

func NewClassifier(llm out.CompletionClient) *Classifier {
	return &Classifier{llm: llm}
}

func (c *Classifier) Classify(ctx context.Context, content string) *domain.Classification {
	raw, err := c.llm.CompleteJSON(ctx, out.CompletionRequest{
		System:      ClassifySystem,
		User:        BuildClassifyUser(content),
		Temperature: ClassifyTemperature,
		MaxTokens:   ClassifyMaxTokens,
	})
	if err != nil {
		logger.WithContext(ctx).WithError(err).Warn("classification model call failed, using keyword fallback")
		return Fallback(content)
	}

	result, err := Normalize(raw)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Warn("classification output was not valid JSON, using keyword fallback")
		return Fallback(content)
	}
	return result
}

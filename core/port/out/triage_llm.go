package out

import "context"

// CompletionRequest is a single chat completion call requesting strict JSON
// output from the model.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// CompletionClient abstracts the language-model endpoint. Implementations
// must return the raw JSON text of the first choice.
type CompletionClient interface {
	CompleteJSON(ctx context.Context, req CompletionRequest) (string, error)
}

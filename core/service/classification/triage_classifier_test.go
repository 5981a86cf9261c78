package classification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"triage_server/core/domain"
	"triage_server/core/port/out"
)

type stubCompletion struct {
	response string
	err      error
	lastReq  out.CompletionRequest
}

func (s *stubCompletion) CompleteJSON(ctx context.Context, req out.CompletionRequest) (string, error) {
	s.lastReq = req
	return s.response, s.err
}

func TestClassifyUsesModelOutput(t *testing.T) {
	stub := &stubCompletion{
		response: `{"classificacao":"Produtivo","intent":"cobranca","evidencias":["boleto"],"conf":0.88,"rationale":"Pede segunda via."}`,
	}
	c := NewClassifier(stub)

	got := c.Classify(context.Background(), "preciso da segunda via do boleto")
	if got.Label != domain.LabelProductive {
		t.Errorf("Label = %q, want Produtivo", got.Label)
	}
	if got.Intent != domain.IntentBilling {
		t.Errorf("Intent = %q, want cobranca", got.Intent)
	}
	if got.Confidence != 0.88 {
		t.Errorf("Confidence = %v, want 0.88", got.Confidence)
	}

	if stub.lastReq.MaxTokens != ClassifyMaxTokens {
		t.Errorf("MaxTokens = %d, want %d", stub.lastReq.MaxTokens, ClassifyMaxTokens)
	}
	if !strings.Contains(stub.lastReq.User, "preciso da segunda via do boleto") {
		t.Error("user message should carry the email content")
	}
}

func TestClassifyFallsBackOnModelError(t *testing.T) {
	stub := &stubCompletion{err: errors.New("upstream down")}
	c := NewClassifier(stub)

	got := c.Classify(context.Background(), "qual o status do protocolo?")
	if got.Label != domain.LabelProductive || got.Intent != domain.IntentStatus {
		t.Errorf("fallback result = %q/%q, want Produtivo/status", got.Label, got.Intent)
	}
	if got.Rationale != "Fallback parsing." {
		t.Errorf("Rationale = %q, want fallback marker", got.Rationale)
	}
}

func TestClassifyFallsBackOnBrokenJSON(t *testing.T) {
	stub := &stubCompletion{response: "desculpe, não consegui classificar"}
	c := NewClassifier(stub)

	got := c.Classify(context.Background(), "Feliz aniversário!")
	if got.Label != domain.LabelUnproductive || got.Intent != domain.IntentCourtesy {
		t.Errorf("fallback result = %q/%q, want Improdutivo/felicitacao_agradecimento", got.Label, got.Intent)
	}
}

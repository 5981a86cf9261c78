package reply

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

func productive(intent domain.Intent) *domain.Classification {
	return &domain.Classification{
		Label:      domain.LabelProductive,
		Intent:     intent,
		Evidences:  []string{},
		Confidence: 0.9,
	}
}

func TestComposeHappyPath(t *testing.T) {
	stub := &stubCompletion{
		response: `{"assunto":"Status da sua solicitação","corpo":"Olá,\n\nRecebemos seu pedido de status.\n\nAtenciosamente,\nGabriel\nAutoU Invest"}`,
	}
	c := NewComposer(stub, 24, 350)

	got := c.Compose(context.Background(), "qual o status?", productive(domain.IntentStatus))
	if got.Subject != "Status da sua solicitação" {
		t.Errorf("Subject = %q", got.Subject)
	}
	if !strings.HasSuffix(got.Body, "Atenciosamente,\nGabriel\nAutoU Invest") {
		t.Errorf("Body should end with the signature, got %q", got.Body)
	}

	if !strings.Contains(stub.lastReq.System, "24 horas úteis") {
		t.Error("system prompt should carry the SLA hours")
	}
	if !strings.Contains(stub.lastReq.User, "dados_a_pedir: número do protocolo OU CPF/CNPJ") {
		t.Errorf("user prompt should list required fields, got %q", stub.lastReq.User)
	}
}

func TestComposeEmptyDataListForDocumentSend(t *testing.T) {
	stub := &stubCompletion{
		response: `{"assunto":"Documentos recebidos","corpo":"Confirmamos o recebimento."}`,
	}
	c := NewComposer(stub, 24, 350)

	c.Compose(context.Background(), "segue anexo", productive(domain.IntentDocumentSend))
	if !strings.Contains(stub.lastReq.User, "dados_a_pedir: nenhum") {
		t.Errorf("document send must not request data, got %q", stub.lastReq.User)
	}
}

func TestComposeTruncatesLongOutput(t *testing.T) {
	longBody := strings.TrimSpace(strings.Repeat("palavra ", 250))
	longSubject := strings.TrimSpace(strings.Repeat("tema ", 20))
	stub := &stubCompletion{
		response: `{"assunto":"` + longSubject + `","corpo":"` + longBody + `"}`,
	}
	c := NewComposer(stub, 24, 350)

	got := c.Compose(context.Background(), "texto", productive(domain.IntentStatus))
	if n := len(strings.Fields(got.Subject)); n != 14 {
		t.Errorf("subject word count = %d, want 14", n)
	}
	if n := len(strings.Fields(got.Body)); n != 170 {
		t.Errorf("body word count = %d, want 170", n)
	}
}

func TestComposeCannedSubjectWhenMissing(t *testing.T) {
	stub := &stubCompletion{response: `{"assunto":"","corpo":"Olá."}`}
	c := NewComposer(stub, 24, 350)

	got := c.Compose(context.Background(), "texto", productive(domain.IntentStatus))
	if got.Subject != "Retorno AutoU Invest — seu atendimento" {
		t.Errorf("Subject = %q, want canned productive subject", got.Subject)
	}

	unproductive := &domain.Classification{Label: domain.LabelUnproductive, Intent: domain.IntentCourtesy}
	got = c.Compose(context.Background(), "obrigado", unproductive)
	if got.Subject != "Agradecimento — AutoU Invest" {
		t.Errorf("Subject = %q, want canned unproductive subject", got.Subject)
	}
}

func TestComposeCannedReplyOnModelError(t *testing.T) {
	stub := &stubCompletion{err: errors.New("timeout")}
	c := NewComposer(stub, 24, 350)

	got := c.Compose(context.Background(), "qual o status?", productive(domain.IntentStatus))
	if got.Subject != "Retorno AutoU Invest — seu atendimento" {
		t.Errorf("Subject = %q", got.Subject)
	}
	if !strings.HasSuffix(got.Body, "Atenciosamente,\nGabriel\nAutoU Invest") {
		t.Errorf("canned body must end with the signature, got %q", got.Body)
	}
}

func TestComposeCannedBodyWhenEmpty(t *testing.T) {
	stub := &stubCompletion{response: `{"assunto":"Retorno","corpo":""}`}
	c := NewComposer(stub, 24, 350)

	got := c.Compose(context.Background(), "texto", productive(domain.IntentStatus))
	if !strings.Contains(got.Body, "Nossa equipe dará continuidade manualmente.") {
		t.Errorf("Body = %q, want canned continuation notice", got.Body)
	}
}

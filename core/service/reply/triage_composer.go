// Package reply composes the customer-facing answer for a classified email.
package reply

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"triage_server/core/domain"
	"triage_server/core/port/out"
	"triage_server/core/service/classification"
	"triage_server/pkg/logger"
)

const (
	ReplyTemperature = 0.2

	maxSubjectWords = 14
	maxBodyWords    = 170

	signature = "Atenciosamente,\nGabriel\nAutoU Invest"
)

const replySystemTemplate = `Você é Gabriel, atendimento da AutoU Invest (gestora fundada em 2010, sede em São Paulo, filiais em BH e Porto Alegre; foco em renda fixa, multimercados e estruturados).
Escreva em PT-BR, tom profissional e cordial, 2–3 parágrafos curtos (80–140 palavras), sem jargões.

REGRAS:
- Se categoria = IMPRODUTIVO: agradeça e encerre sem criar tarefas e sem pedir dados pessoais.
- Se categoria = PRODUTIVO: reconheça o pedido, informe próximos passos e mencione o prazo de resposta de até {{SLA_HORAS}} horas úteis.
- Solicite APENAS os dados indicados em "dados_a_pedir". Se a lista estiver vazia, NÃO peça CPF/CNPJ.
- Se houver anexos declarados no texto (“segue”, “anexo…”), confirme recebimento e encaminhamento.
- Jamais invente informações de conta/contrato ou compartilhe dados sensíveis.
-- Gere a saída EXCLUSIVAMENTE em JSON, com as chaves:
  {
    "assunto": string,   // linha de assunto curta, clara, sem colchetes, sem emojis, 4–10 palavras
    "corpo": string      // corpo da mensagem final; encerre com:
                         // "Atenciosamente,\nGabriel\nAutoU Invest"
  }

Estilo:
- Evite parágrafos longos (2–3 curtos).
- Não invente informações de conta/contrato.
- Não compartilhe dados sensíveis.`

// Composer generates replies via the model with canned fallbacks. Compose
// always returns a usable reply.
type Composer struct {
	llm       out.CompletionClient
	slaHours  int
	maxTokens int
}

func NewComposer(llm out.CompletionClient, slaHours, maxTokens int) *Composer {
	if slaHours <= 0 {
		slaHours = 24
	}
	if maxTokens <= 0 {
		maxTokens = 350
	}
	return &Composer{llm: llm, slaHours: slaHours, maxTokens: maxTokens}
}

// Compose builds the reply for a classified email.
func (c *Composer) Compose(ctx context.Context, content string, cls *domain.Classification) *domain.Reply {
	system := strings.ReplaceAll(replySystemTemplate, "{{SLA_HORAS}}", fmt.Sprintf("%d", c.slaHours))
	user := buildReplyUser(content, cls)

	raw, err := c.llm.CompleteJSON(ctx, out.CompletionRequest{
		System:      system,
		User:        user,
		Temperature: ReplyTemperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		logger.WithContext(ctx).WithError(err).Warn("reply model call failed, using canned reply")
		return cannedReply(cls.Label)
	}

	var parsed domain.Reply
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &parsed); err != nil {
		logger.WithContext(ctx).WithError(err).Warn("reply output was not valid JSON, using canned reply")
		return cannedReply(cls.Label)
	}

	return validate(&parsed, cls.Label)
}

func buildReplyUser(content string, cls *domain.Classification) string {
	fields := classification.RequiredFields(cls.Intent)
	data := "nenhum"
	if len(fields) > 0 {
		data = strings.Join(fields, ", ")
	}
	return fmt.Sprintf(
		"Contexto do e-mail recebido:\n"+
			"- Categoria: %s\n"+
			"- Intent: %s\n"+
			"- dados_a_pedir: %s\n"+
			"Texto do e-mail:\n---\n%s\n---\n\n"+
			"Construa a resposta final ao cliente seguindo as REGRAS.",
		cls.Label, cls.Intent, data, content)
}

// validate repairs the model reply: canned subject when empty, subject capped
// at 14 words, canned body when empty, body capped at 170 words.
func validate(r *domain.Reply, label domain.Label) *domain.Reply {
	subject := strings.TrimSpace(r.Subject)
	body := strings.TrimSpace(r.Body)

	if subject == "" {
		subject = cannedSubject(label)
	}
	if words := strings.Fields(subject); len(words) > maxSubjectWords {
		subject = strings.Join(words[:maxSubjectWords], " ")
	}

	if body == "" {
		body = "Não foi possível gerar a resposta completa agora. " +
			"Nossa equipe dará continuidade manualmente.\n\n" + signature
	}
	if words := strings.Fields(body); len(words) > maxBodyWords {
		body = strings.Join(words[:maxBodyWords], " ")
	}

	return &domain.Reply{Subject: subject, Body: body}
}

func cannedSubject(label domain.Label) string {
	if label == domain.LabelProductive {
		return "Retorno AutoU Invest — seu atendimento"
	}
	return "Agradecimento — AutoU Invest"
}

func cannedReply(label domain.Label) *domain.Reply {
	return &domain.Reply{
		Subject: cannedSubject(label),
		Body: "Olá,\n\nRecebemos sua mensagem e vamos dar sequência internamente. " +
			"Retornaremos em breve.\n\n" + signature,
	}
}

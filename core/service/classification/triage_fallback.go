package classification

import (
	"strings"

	"triage_server/core/domain"
)

// Keyword signals for the heuristic fallback. Matching is done on the
// lowercased email text.
var (
	courtesySignals   = []string{"feliz", "parabéns", "obrigado", "agradeço", "boas festas"}
	actionableSignals = []string{"status", "protocolo", "como", "anexo", "segue", "boleto", "fatura", "login", "senha"}
)

// Fallback classifies with conservative keyword heuristics. It is used when
// the model call fails or returns unparseable output, and it never fails
// itself.
func Fallback(content string) *domain.Classification {
	txt := strings.ToLower(content)

	for _, s := range courtesySignals {
		if strings.Contains(txt, s) {
			return &domain.Classification{
				Label:      domain.LabelUnproductive,
				Intent:     domain.IntentCourtesy,
				Evidences:  []string{},
				Confidence: 0.55,
				Rationale:  "Expressão de cortesia sem pedido.",
			}
		}
	}

	label := domain.LabelUnproductive
	for _, s := range actionableSignals {
		if strings.Contains(txt, s) {
			label = domain.LabelProductive
			break
		}
	}

	intent := domain.IntentOther
	switch {
	case strings.Contains(txt, "status") || strings.Contains(txt, "protocolo"):
		intent = domain.IntentStatus
	case strings.Contains(txt, "anexo") || strings.Contains(txt, "segue"):
		intent = domain.IntentDocumentSend
	}

	return &domain.Classification{
		Label:      label,
		Intent:     intent,
		Evidences:  []string{},
		Confidence: 0.5,
		Rationale:  "Fallback parsing.",
	}
}

// RequiredFields maps an intent to the data points the reply should request
// from the sender.
func RequiredFields(intent domain.Intent) []string {
	switch intent {
	case domain.IntentStatus:
		return []string{"número do protocolo OU CPF/CNPJ"}
	case domain.IntentBilling:
		return []string{"CPF/CNPJ"}
	case domain.IntentRegistration:
		return []string{"CPF/CNPJ"}
	case domain.IntentAccessSupport:
		return []string{"e-mail cadastrado"}
	case domain.IntentProductDoubt:
		return []string{"se é PF ou PJ", "faixa de investimento desejada"}
	case domain.IntentInstitutional:
		return []string{"se é PF ou PJ", "assunto de interesse"}
	case domain.IntentDispute:
		return []string{"número do protocolo OU CPF/CNPJ"}
	default:
		return nil
	}
}

// Package classification decides whether an email is productive and what the
// sender wants, using a fixed intent taxonomy with a deterministic fallback.
package classification

import "fmt"

// Model call parameters for the fixed-taxonomy classifier.
const (
	ClassifyTemperature = 0.0
	ClassifyMaxTokens   = 200
)

// ClassifySystem is the system instruction for the fixed-taxonomy
// classifier. The output contract is a single JSON object.
const ClassifySystem = `Você é um classificador de e-mails corporativos de uma empresa financeira.
Rotule cada e-mail como "Produtivo" ou "Improdutivo" e identifique o INTENT do contato.

REGRAS (aplique em ordem):
A. IMPRODUTIVO quando:
   - Felicitações, votos, saudações, “obrigado(a)”, mensagens genéricas sem pedido.
   - Respostas automáticas (OOO) sem solicitação.
   - Marketing frio/propaganda não solicitada, spam, correntes.
   - Conteúdo vazio/ilegível.

B. PRODUTIVO quando há PEDIDO ESPECÍFICO, por ex.:
   - Status/andamento de solicitação/caso (status, protocolo, “acompanhar”).
   - Dúvidas sobre produtos/sistema (como investir, taxas, resgate).
   - Envio/solicitação de documentos (“segue comprovante”, “anexo RG”).
   - Suporte de acesso/erro no portal (login, senha, 2FA).
   - Cobrança/financeiro (boletos, faturas, parcelas).
   - Cadastro/atualização de dados.
   - Contestação/reclamação com pedido explícito de ação.

C. Casos MISTOS (felicitação + pedido objetivo) => PRODUTIVO.

INTENTS possíveis (escolha a mais específica):
  ["status", "duvida_produto", "envio_documento", "suporte_acesso", "cobranca",
   "cadastro", "contestacao", "informacao_institucional", "felicitacao_agradecimento",
   "marketing_spam", "outros"]

OUTPUT (JSON apenas):
{
  "classificacao": "Produtivo" | "Improdutivo",
  "intent": string,             // uma das opções acima
  "evidencias": string[],       // palavras/trechos que fundamentam a decisão
  "conf": number,               // 0.00–1.00
  "rationale": string           // 1 frase curta
}
Não inclua nenhum texto fora do JSON.`

// BuildClassifyUser wraps the cleaned email text into the user message.
func BuildClassifyUser(content string) string {
	return fmt.Sprintf("E-mail (texto bruto):\n---\n%s\n---", content)
}

package classification

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"triage_server/core/domain"
)

// Model call parameters for the dynamic-taxonomy call.
const (
	DynamicTemperature = 0.1
	DynamicMaxTokens   = 700
)

const dynamicPromptTemplate = `
Você é um assistente especializado em leitura e resposta de e-mails corporativos.
Seu objetivo é:
1) Gerar **uma resposta adequada** para o e-mail recebido.
2) **Classificar esse e-mail em exatamente UMA categoria** existente no sistema.

O sistema do usuário já possui categorias pré-definidas e exemplos reais de e-mails e respostas.
Você NUNCA deve inventar nova categoria ou novo ID. Use apenas as categorias fornecidas abaixo.

=========================
CATEGORIAS DISPONÍVEIS
=========================
Cada categoria tem:
- Um ID (usado internamente pelo sistema).
- Um nome (compreensível para humanos).
- Uma descrição.

Lista de categorias (ID, Nome, Descrição):
%s

IMPORTANTE:
- Sempre escolha UMA ÚNICA categoria.
- Se nenhuma categoria fizer sentido razoávelmente,
  escolha a categoria cujo nome seja 'Outros' (ou equivalente de categoria genérica).

=========================
EXEMPLOS POR CATEGORIA
=========================
Os exemplos abaixo mostram e-mails reais e respostas consideradas ideais
para cada categoria. Use esses exemplos como referência de tom, estrutura
e tipo de problema tratado.

%s

=========================
TAREFA SOBRE CADA E-MAIL
=========================

Ao receber o conteúdo de um e-mail, você deve:

1) Ler e entender o contexto.
2) Gerar uma resposta educada, clara e objetiva, em **português do Brasil**,
   adequada ao remetente e ao contexto do e-mail.
3) Escolher qual categoria (ID) melhor descreve o tipo de assunto do e-mail.
4) NÃO perguntar nada ao usuário do sistema (aplicação); sua saída será lida por um backend.
5) Não inventar informações que não estejam no e-mail do remetente.
   Se algo não estiver claro, faça perguntas de esclarecimento na própria resposta ao remetente.

=========================
REGRAS DE SEGURANÇA E QUALIDADE
=========================
- Não invente categorias. Use apenas os IDs fornecidos.
- Não invente políticas da empresa; se necessário, use respostas neutras, do tipo:
  "conforme as políticas internas da empresa" sem detalhar algo que não foi dito.
- Nunca produza informações confidenciais ou dados pessoais que não estejam no e-mail.
- Seja profissional, cordial e direto.
- Responda sempre em **português do Brasil**.
- Se não houver categoria claramente adequada, use a categoria de nome 'Outros'.
- **NUNCA** devolva nada além de um JSON válido, sem comentários, sem texto adicional.

=========================
FORMATO DE RESPOSTA (OBRIGATÓRIO)
=========================

Você deve responder SEMPRE com um único JSON válido, no formato:

{
  "assunto": "linha de assunto sugerida para a resposta",
  "resposta": "texto completo da resposta, em português do Brasil",
  "categoria_id": "ID da categoria escolhida (string)",
  "justificativa_categoria": "explicação curta (1–3 frases) do porquê essa categoria foi escolhida"
}

- O campo "categoria_id" **DEVE** ser um dos IDs fornecidos na lista de categorias.
- Não inclua campos extras.
- Não escreva nada fora do JSON (sem markdown, sem explicações).
`

// BuildDynamicSystem assembles the system prompt for the dynamic taxonomy:
// the user's category list plus per-category example pairs.
func BuildDynamicSystem(categories []*domain.Category, examples []*domain.Example) string {
	var catLines []string
	for _, cat := range categories {
		desc := ""
		if cat.Description != nil {
			desc = *cat.Description
		}
		catLines = append(catLines, fmt.Sprintf("- ID: %d | Nome: %s | Descrição: %s", cat.ID, cat.Name, desc))
	}
	categoriesBlock := "Nenhuma categoria."
	if len(catLines) > 0 {
		categoriesBlock = strings.Join(catLines, "\n")
	}

	examplesByCategory := make(map[int64][]*domain.Example)
	for _, ex := range examples {
		if ex.CategoryID == nil {
			continue
		}
		examplesByCategory[*ex.CategoryID] = append(examplesByCategory[*ex.CategoryID], ex)
	}

	var exampleBlocks []string
	for _, cat := range categories {
		exs := examplesByCategory[cat.ID]
		if len(exs) == 0 {
			continue
		}
		exampleBlocks = append(exampleBlocks, fmt.Sprintf("Categoria: %s (ID: %d)", cat.Name, cat.ID))
		for _, ex := range exs {
			reply := ""
			if ex.Reply != nil {
				reply = *ex.Reply
			}
			exampleBlocks = append(exampleBlocks, fmt.Sprintf(
				"  - E-mail exemplo:\n    %s\n    Resposta ideal:\n    %s\n", ex.Content, reply))
		}
	}
	examplesBlock := "Ainda não há exemplos cadastrados."
	if len(exampleBlocks) > 0 {
		examplesBlock = strings.Join(exampleBlocks, "\n")
	}

	return fmt.Sprintf(dynamicPromptTemplate, categoriesBlock, examplesBlock)
}

// BuildDynamicUser wraps the email content into the user message.
func BuildDynamicUser(content string) string {
	return fmt.Sprintf("Conteúdo do e-mail recebido (texto integral, sem edição):\n\n%s", content)
}

// NormalizeDynamic parses and validates the dynamic-taxonomy model output.
// All three of assunto, resposta and categoria_id must be non-empty strings.
func NormalizeDynamic(raw string) (*domain.DynamicResult, error) {
	var result domain.DynamicResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &result); err != nil {
		return nil, fmt.Errorf("model did not return valid JSON: %w", err)
	}
	if result.Subject == "" {
		return nil, fmt.Errorf("missing required field: assunto")
	}
	if result.Reply == "" {
		return nil, fmt.Errorf("missing required field: resposta")
	}
	if result.CategoryID == "" {
		return nil, fmt.Errorf("missing required field: categoria_id")
	}
	return &result, nil
}

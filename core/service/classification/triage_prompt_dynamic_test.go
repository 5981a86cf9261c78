package classification

import (
	"strings"
	"testing"

	"triage_server/core/domain"
)

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func TestBuildDynamicSystemListsEveryCategory(t *testing.T) {
	categories := []*domain.Category{
		{ID: 1, Name: "Suporte", Description: strPtr("Problemas de acesso")},
		{ID: 2, Name: "Cobrança"},
		{ID: 3, Name: "Outros"},
	}
	examples := []*domain.Example{
		{ID: 10, Content: "Não consigo acessar minha conta.", Reply: strPtr("Olá, vamos ajudar."), CategoryID: int64Ptr(1)},
		{ID: 11, Content: "Exemplo sem categoria."},
	}

	prompt := BuildDynamicSystem(categories, examples)

	for _, want := range []string{
		"ID: 1 | Nome: Suporte | Descrição: Problemas de acesso",
		"ID: 2 | Nome: Cobrança",
		"ID: 3 | Nome: Outros",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing category line %q", want)
		}
	}

	if !strings.Contains(prompt, "Categoria: Suporte (ID: 1)") {
		t.Error("prompt missing example block for category 1")
	}
	if !strings.Contains(prompt, "Não consigo acessar minha conta.") {
		t.Error("prompt missing example content")
	}
	if strings.Contains(prompt, "Exemplo sem categoria.") {
		t.Error("uncategorized example should not appear in the prompt")
	}
}

func TestBuildDynamicSystemEmptySets(t *testing.T) {
	prompt := BuildDynamicSystem(nil, nil)

	if !strings.Contains(prompt, "Nenhuma categoria.") {
		t.Error("expected empty-categories placeholder")
	}
	if !strings.Contains(prompt, "Ainda não há exemplos cadastrados.") {
		t.Error("expected empty-examples placeholder")
	}
}

func TestNormalizeDynamic(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		wantID  string
	}{
		{
			name:   "valid output",
			raw:    `{"assunto":"Re: acesso","resposta":"Olá, segue orientação.","categoria_id":"1","justificativa_categoria":"pedido de suporte"}`,
			wantID: "1",
		},
		{
			name:    "not json",
			raw:     "claro, aqui está a resposta",
			wantErr: true,
		},
		{
			name:    "missing categoria_id",
			raw:     `{"assunto":"Re: acesso","resposta":"Olá."}`,
			wantErr: true,
		},
		{
			name:    "empty resposta",
			raw:     `{"assunto":"Re: acesso","resposta":"","categoria_id":"1"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NormalizeDynamic(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.CategoryID != tt.wantID {
				t.Errorf("CategoryID = %q, want %q", result.CategoryID, tt.wantID)
			}
		})
	}
}

package classification

import (
	"testing"

	"triage_server/core/domain"
)

func TestFallback(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCls  domain.Label
		wantInt  domain.Intent
		wantConf float64
	}{
		{
			name:     "holiday greeting is courtesy",
			content:  "Feliz Natal a toda a equipe!",
			wantCls:  domain.LabelUnproductive,
			wantInt:  domain.IntentCourtesy,
			wantConf: 0.55,
		},
		{
			name:     "thanks is courtesy",
			content:  "Muito obrigado pelo atendimento",
			wantCls:  domain.LabelUnproductive,
			wantInt:  domain.IntentCourtesy,
			wantConf: 0.55,
		},
		{
			name:     "attachment is document send",
			content:  "Segue em anexo o boleto do mês",
			wantCls:  domain.LabelProductive,
			wantInt:  domain.IntentDocumentSend,
			wantConf: 0.5,
		},
		{
			name:     "protocol mention is status",
			content:  "Qual o andamento do protocolo 99812?",
			wantCls:  domain.LabelProductive,
			wantInt:  domain.IntentStatus,
			wantConf: 0.5,
		},
		{
			name:     "status outranks attachment",
			content:  "Segue anexo, qual o status?",
			wantCls:  domain.LabelProductive,
			wantInt:  domain.IntentStatus,
			wantConf: 0.5,
		},
		{
			name:     "no signals at all",
			content:  "mensagem qualquer",
			wantCls:  domain.LabelUnproductive,
			wantInt:  domain.IntentOther,
			wantConf: 0.5,
		},
		{
			name:     "login trouble is productive but generic intent",
			content:  "não consigo fazer login no portal",
			wantCls:  domain.LabelProductive,
			wantInt:  domain.IntentOther,
			wantConf: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fallback(tt.content)
			if got.Label != tt.wantCls {
				t.Errorf("Label = %q, want %q", got.Label, tt.wantCls)
			}
			if got.Intent != tt.wantInt {
				t.Errorf("Intent = %q, want %q", got.Intent, tt.wantInt)
			}
			if got.Confidence != tt.wantConf {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConf)
			}
			if got.Evidences == nil {
				t.Error("Evidences should be an empty slice, not nil")
			}
		})
	}
}

func TestRequiredFields(t *testing.T) {
	tests := []struct {
		intent domain.Intent
		want   int
	}{
		{domain.IntentStatus, 1},
		{domain.IntentBilling, 1},
		{domain.IntentAccessSupport, 1},
		{domain.IntentProductDoubt, 2},
		{domain.IntentInstitutional, 2},
		{domain.IntentDocumentSend, 0},
		{domain.IntentCourtesy, 0},
		{domain.IntentOther, 0},
	}
	for _, tt := range tests {
		if got := RequiredFields(tt.intent); len(got) != tt.want {
			t.Errorf("RequiredFields(%q) returned %d fields, want %d", tt.intent, len(got), tt.want)
		}
	}
}

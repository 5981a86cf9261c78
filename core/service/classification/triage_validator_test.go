package classification

import (
	"strings"
	"testing"

	"triage_server/core/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantCls  domain.Label
		wantInt  domain.Intent
		wantEv   int
		wantConf float64
	}{
		{
			name:     "well formed productive",
			raw:      `{"classificacao":"Produtivo","intent":"status","evidencias":["protocolo"],"conf":0.92,"rationale":"Pede status."}`,
			wantCls:  domain.LabelProductive,
			wantInt:  domain.IntentStatus,
			wantEv:   1,
			wantConf: 0.92,
		},
		{
			name:     "uppercase label and string conf above range",
			raw:      `{"classificacao":"PRODUTIVO","intent":"status","evidencias":"x","conf":"1.5","rationale":"r"}`,
			wantCls:  domain.LabelProductive,
			wantInt:  domain.IntentStatus,
			wantEv:   1,
			wantConf: 1.0,
		},
		{
			name:     "unknown label becomes unproductive",
			raw:      `{"classificacao":"talvez","intent":"outros","evidencias":[],"conf":0.4,"rationale":""}`,
			wantCls:  domain.LabelUnproductive,
			wantInt:  domain.IntentOther,
			wantEv:   0,
			wantConf: 0.4,
		},
		{
			name:     "unknown intent becomes outros",
			raw:      `{"classificacao":"Produtivo","intent":"pedido_pizza","evidencias":[],"conf":0.7,"rationale":""}`,
			wantCls:  domain.LabelProductive,
			wantInt:  domain.IntentOther,
			wantEv:   0,
			wantConf: 0.7,
		},
		{
			name:     "unparseable conf defaults",
			raw:      `{"classificacao":"Improdutivo","intent":"outros","evidencias":[],"conf":"alta","rationale":""}`,
			wantCls:  domain.LabelUnproductive,
			wantInt:  domain.IntentOther,
			wantEv:   0,
			wantConf: 0.6,
		},
		{
			name:     "negative conf clamps to zero",
			raw:      `{"classificacao":"Improdutivo","intent":"outros","evidencias":[],"conf":-0.3,"rationale":""}`,
			wantCls:  domain.LabelUnproductive,
			wantInt:  domain.IntentOther,
			wantEv:   0,
			wantConf: 0.0,
		},
		{
			name:     "evidences capped at five",
			raw:      `{"classificacao":"Produtivo","intent":"status","evidencias":["a","b","c","d","e","f","g"],"conf":0.8,"rationale":""}`,
			wantCls:  domain.LabelProductive,
			wantInt:  domain.IntentStatus,
			wantEv:   5,
			wantConf: 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if err != nil {
				t.Fatalf("Normalize returned error: %v", err)
			}
			if got.Label != tt.wantCls {
				t.Errorf("Label = %q, want %q", got.Label, tt.wantCls)
			}
			if got.Intent != tt.wantInt {
				t.Errorf("Intent = %q, want %q", got.Intent, tt.wantInt)
			}
			if len(got.Evidences) != tt.wantEv {
				t.Errorf("len(Evidences) = %d, want %d", len(got.Evidences), tt.wantEv)
			}
			if got.Confidence != tt.wantConf {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConf)
			}
		})
	}
}

func TestNormalizeInvalidJSON(t *testing.T) {
	if _, err := Normalize("not json at all"); err == nil {
		t.Fatal("expected error for non-JSON input")
	}
}

func TestNormalizeRationaleTruncated(t *testing.T) {
	long := strings.Repeat("é", 300)
	got, err := Normalize(`{"classificacao":"Produtivo","intent":"status","evidencias":[],"conf":0.9,"rationale":"` + long + `"}`)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if n := len([]rune(got.Rationale)); n != 200 {
		t.Errorf("rationale rune length = %d, want 200", n)
	}
}

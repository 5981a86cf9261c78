package textutil

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trims surrounding whitespace",
			input: "  olá, preciso do status  \n",
			want:  "olá, preciso do status",
		},
		{
			name:  "strips trailing spaces before newlines",
			input: "linha um   \nlinha dois",
			want:  "linha um\nlinha dois",
		},
		{
			name:  "removes iphone footer",
			input: "Segue o boleto em anexo.\nEnviado do meu iPhone",
			want:  "Segue o boleto em anexo.",
		},
		{
			name:  "removes android footer case insensitively",
			input: "Qual o protocolo?\nenviado do meu android",
			want:  "Qual o protocolo?",
		},
		{
			name:  "collapses three or more newlines",
			input: "primeiro\n\n\n\nsegundo",
			want:  "primeiro\n\nsegundo",
		},
		{
			name:  "keeps single blank line",
			input: "primeiro\n\nsegundo",
			want:  "primeiro\n\nsegundo",
		},
		{
			name:  "empty input",
			input: "   \n\t ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.input)
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"  olá  \n\n\n\ntudo bem? \nEnviado do meu iPhone\n",
		"status do protocolo 12345",
		"a\n\nb\n\n\nc   \n",
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

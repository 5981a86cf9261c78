package extract

import "testing"

func TestSupports(t *testing.T) {
	e := NewExtractor()
	tests := []struct {
		filename string
		want     bool
	}{
		{"mail.pdf", true},
		{"mail.PDF", true},
		{"mail.txt", true},
		{"mail.TXT", true},
		{"mail.docx", false},
		{"mail", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := e.Supports(tt.filename); got != tt.want {
			t.Errorf("Supports(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestExtractTXT(t *testing.T) {
	e := NewExtractor()

	got, err := e.Extract("mail.txt", []byte("  Olá, preciso de ajuda.  \n"))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if got != "Olá, preciso de ajuda." {
		t.Errorf("Extract = %q", got)
	}
}

func TestExtractTXTDropsInvalidUTF8(t *testing.T) {
	e := NewExtractor()

	got, err := e.Extract("mail.txt", []byte{'o', 'i', 0xff, '!'})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if got != "oi!" {
		t.Errorf("Extract = %q, want invalid byte dropped", got)
	}
}

func TestExtractUnsupported(t *testing.T) {
	e := NewExtractor()
	if _, err := e.Extract("mail.docx", []byte("x")); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

package palette

import "testing"

func TestPickFirstUnused(t *testing.T) {
	tests := []struct {
		name string
		used []string
		want string
	}{
		{
			name: "empty used list returns first color",
			used: nil,
			want: "#6D28D9",
		},
		{
			name: "skips taken colors",
			used: []string{"#6D28D9", "#D946EF"},
			want: "#059669",
		},
		{
			name: "comparison is case insensitive",
			used: []string{"#6d28d9"},
			want: "#D946EF",
		},
		{
			name: "blank entries are ignored",
			used: []string{"", "#6D28D9"},
			want: "#D946EF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pick(tt.used)
			if got != tt.want {
				t.Errorf("Pick(%v) = %q, want %q", tt.used, got, tt.want)
			}
		})
	}
}

func TestPickExhaustedPaletteReturnsPaletteColor(t *testing.T) {
	got := Pick(Colors)
	found := false
	for _, c := range Colors {
		if c == got {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Pick with exhausted palette returned %q, not a palette color", got)
	}
}

package names

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		lang string
		want string
	}{
		{"trim and ball", "Bail ", "eng", "Ball"},
		{"inside name", "  Beach Bail\t", "eng", "Beach Ball"},
		{"lowercase bail kept", "Bail bail", "eng", "Ball bail"},
		{"ao dai", "Ao dai robe", "eng", "Áo dài robe"},
		{"fullwidth", "Ｗａｒｄｒｏｂｅ", "jpn", "Wardrobe"},
		{"russian nook", "Моок пс.", "rus", "Nook Inc."},
		{"russian tc", "Моок тс.", "rus", "Nook Inc."},
		{"russian only", "Моок пс.", "eng", "Моок пс."},
		{"empty", "   ", "eng", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in, tt.lang); got != tt.want {
				t.Errorf("Clean(%q, %q) = %q, want %q", tt.in, tt.lang, got, tt.want)
			}
		})
	}
}

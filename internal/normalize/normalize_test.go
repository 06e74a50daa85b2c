package normalize

import "testing"

func TestText_Canonicalizes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t\n ", ""},
		{"lowercases", "MADE IN India", "made in india"},
		{"keeps hyphen dot comma", "Non-GMO, 99.9% pure!", "non-gmo, 99.9 pure"},
		{"strips symbols", "₹499 (incl. taxes)", "499 incl. taxes"},
		{"collapses runs", "acme   \t personal\n\ncare", "acme personal care"},
		{"fullwidth folds", "Ｂｒａｎｄ", "brand"},
		{"keeps devanagari", "Brand: निरमा", "brand निरमा"},
		{"keeps accented latin", "Café Olé ™", "café olé tm"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Text(tc.in)
			if got != tc.want {
				t.Fatalf("Text(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestText_Idempotent(t *testing.T) {
	inputs := []string{"Brand: Acme | Country of Origin: India", "  A  B  ", "uppercase MIX 200ml"}
	for _, in := range inputs {
		once := Text(in)
		if twice := Text(once); twice != once {
			t.Fatalf("Text not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

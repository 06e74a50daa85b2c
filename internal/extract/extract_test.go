package extract

import "testing"

func TestFields_TypicalBlob(t *testing.T) {
	blob := "Brand: Acme | Country of Origin: India | Usage: Skin Application | Ingredients: Water, Glycerin | Best Before: 24 months"
	got := Fields(blob)

	want := map[string]string{
		FieldBrand:         "acme",
		FieldOriginCountry: "india",
		FieldUsage:         "skin application",
		FieldIngredients:   "water, glycerin",
		FieldExpiry:        "24 months",
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("field %q = %q, want %q", k, got[k], v)
		}
	}
	if _, ok := got[FieldManufacturer]; ok {
		t.Fatalf("manufacturer should be absent, got %q", got[FieldManufacturer])
	}
}

func TestFields_EmptyInput(t *testing.T) {
	for _, blob := range []string{"", "   ", "\n\t"} {
		if got := Fields(blob); len(got) != 0 {
			t.Fatalf("Fields(%q) = %v, want empty", blob, got)
		}
	}
}

func TestFields_OriginAlternatives(t *testing.T) {
	got := Fields("Country as Labeled: Made in China | Net Quantity: 1")
	if got[FieldOriginCountry] != "made in china" {
		t.Fatalf("origin = %q, want %q", got[FieldOriginCountry], "made in china")
	}
	// First alternative wins when both labels appear.
	got = Fields("Country of Origin: India | Country as Labeled: China")
	if got[FieldOriginCountry] != "india" {
		t.Fatalf("origin = %q, want %q", got[FieldOriginCountry], "india")
	}
}

func TestFields_ContactAndImporter(t *testing.T) {
	blob := "Customer Care: 1800-123-456 support@acme.in | Importer Contact Information: Acme Imports Pvt Ltd, Mumbai | Packer Contact Information: Acme Packers, Pune"
	got := Fields(blob)
	if got[FieldCustomerCareContact] == "" {
		t.Fatal("expected customer care contact to be extracted")
	}
	if got[FieldImporter] != "acme imports pvt ltd, mumbai" {
		t.Fatalf("importer = %q", got[FieldImporter])
	}
	if got[FieldPacker] != "acme packers, pune" {
		t.Fatalf("packer = %q", got[FieldPacker])
	}
}

// Re-running extraction on its own normalized output must not change values:
// the patterns are label-anchored, so a bare value no longer matches and the
// field is either reproduced identically or absent.
func TestFields_IdempotentOnOwnOutput(t *testing.T) {
	blob := "Brand: Acme | Manufacturer: Acme Industries | Expiry: 12 months"
	first := Fields(blob)
	for name, value := range first {
		again := Fields(value)
		if v, ok := again[name]; ok && v != value {
			t.Fatalf("field %q drifted on re-extraction: %q -> %q", name, value, v)
		}
	}
}

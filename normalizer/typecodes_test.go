package normalizer

import "testing"

func TestMapTypeCode(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"TOWER":   "T",
		"GROUND":  "G",
		"A/G":     "Y",
		"GCA":     "Y",
		"A/A":     "AA",
		"ARTC":    "RT",
		" ATIS ":  "I",
		"XYZ":     "XYZ",
		"tower":   "tower",
		" misc x": "misc x",
		"":        "",
		"   ":     "",
	}
	for in, want := range tests {
		if got := MapTypeCode(in); got != want {
			t.Errorf("MapTypeCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTypeCodes_IsCopy(t *testing.T) {
	t.Parallel()

	if n := TypeCodeCount(); n != 34 {
		t.Fatalf("TypeCodeCount() = %d, want 34", n)
	}

	table := TypeCodes()
	table["TOWER"] = "changed"
	delete(table, "GROUND")

	if got := MapTypeCode("TOWER"); got != "T" {
		t.Fatalf("MapTypeCode(TOWER) after mutating copy = %q, want T", got)
	}
	if got := MapTypeCode("GROUND"); got != "G" {
		t.Fatalf("MapTypeCode(GROUND) after mutating copy = %q, want G", got)
	}
}

func TestTypeCodes_AreShort(t *testing.T) {
	t.Parallel()

	for label, code := range TypeCodes() {
		if len(code) < 1 || len(code) > 2 {
			t.Errorf("code for %q is %q, want 1-2 characters", label, code)
		}
	}
}

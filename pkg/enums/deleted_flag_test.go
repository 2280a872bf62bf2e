package enums

import "testing"

func TestParseDeletedFlagNormalizesCasing(t *testing.T) {
	tests := []struct {
		raw  string
		want DeletedFlag
	}{
		{"Yes", DeletedYes},
		{"YES", DeletedYes},
		{"yes", DeletedYes},
		{"No", DeletedNo},
		{"no", DeletedNo},
		{"", DeletedNo},
	}
	for _, tt := range tests {
		got, err := ParseDeletedFlag(tt.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("parse %q: got %s want %s", tt.raw, got, tt.want)
		}
	}

	if _, err := ParseDeletedFlag("maybe"); err == nil {
		t.Fatal("expected error for unknown flag value")
	}
}

func TestDeletedFlagScanAndValue(t *testing.T) {
	var flag DeletedFlag
	if err := flag.Scan([]byte("YES")); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !flag.Bool() {
		t.Fatal("expected deleted flag to be set")
	}

	v, err := flag.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != "Yes" {
		t.Fatalf("expected canonical casing, got %v", v)
	}

	if err := flag.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if flag.Bool() {
		t.Fatal("nil should scan as not deleted")
	}
}

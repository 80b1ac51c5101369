package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsStableAndNamespaced(t *testing.T) {
	if UUID("  ") != uuid.Nil {
		t.Fatal("expected nil uuid for blank key")
	}
	a := SiteUUID("sites/acme.yaml")
	b := SiteUUID(" SITES/ACME.yaml ")
	if a == uuid.Nil || a != b {
		t.Fatalf("expected stable site uuid, got %s and %s", a, b)
	}
	if PageUUID(a.String(), "about") == ProductUUID(a.String(), "about") {
		t.Fatal("expected page and product ids to differ for the same key")
	}
	if SectionUUID("s", "HERO", 0) == SectionUUID("s", "HERO", 1) {
		t.Fatal("expected section ids to depend on order")
	}
}

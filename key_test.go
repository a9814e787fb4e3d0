package bucache

import (
	"errors"
	"regexp"
	"testing"
)

var keyShape = regexp.MustCompile(`^bulib:[a-z]+:[0-9a-f]{8}$`)

func TestDeriveKeyShape(t *testing.T) {
	k, err := DeriveKey("bulib", "rooms", Filters{"date": "2025-09-01"})
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	if !keyShape.MatchString(k) {
		t.Fatalf("key %q does not match <prefix>:<namespace>:<hash8>", k)
	}
}

func TestDeriveKeyOrderInsensitive(t *testing.T) {
	a := Filters{"date": "2025-09-01", "capacity_min": 4, "building": "mug"}
	b := Filters{"building": "mug", "capacity_min": 4, "date": "2025-09-01"}

	ka, err := DeriveKey("bulib", "rooms", a)
	if err != nil {
		t.Fatalf("DeriveKey a: %v", err)
	}
	kb, err := DeriveKey("bulib", "rooms", b)
	if err != nil {
		t.Fatalf("DeriveKey b: %v", err)
	}
	if ka != kb {
		t.Fatalf("equal filter mappings derived different keys: %q vs %q", ka, kb)
	}
}

func TestDeriveKeyDiscriminates(t *testing.T) {
	base := Filters{"date": "2025-09-01"}

	k1, _ := DeriveKey("bulib", "rooms", base)
	k2, _ := DeriveKey("bulib", "rooms", Filters{"date": "2025-09-02"})
	if k1 == k2 {
		t.Fatalf("different filter values derived the same key %q", k1)
	}

	k3, _ := DeriveKey("bulib", "bookings", base)
	if k1 == k3 {
		t.Fatalf("different namespaces derived the same key %q", k1)
	}
}

func TestDeriveKeyNilEqualsEmpty(t *testing.T) {
	kn, err := DeriveKey("bulib", "buildings", nil)
	if err != nil {
		t.Fatalf("DeriveKey nil: %v", err)
	}
	ke, err := DeriveKey("bulib", "buildings", Filters{})
	if err != nil {
		t.Fatalf("DeriveKey empty: %v", err)
	}
	if kn != ke {
		t.Fatalf("nil and empty filters derived different keys: %q vs %q", kn, ke)
	}
}

func TestDeriveKeyRequiresNamespace(t *testing.T) {
	if _, err := DeriveKey("bulib", "", nil); err == nil {
		t.Fatalf("expected error for empty namespace")
	}
}

func TestDeriveKeyUnserializableFilters(t *testing.T) {
	_, err := DeriveKey("bulib", "rooms", Filters{"cb": func() {}})
	if err == nil {
		t.Fatalf("expected error for unserializable filter value")
	}
	var uv *UnsupportedValueError
	if !errors.As(err, &uv) {
		t.Fatalf("expected UnsupportedValueError, got %T: %v", err, err)
	}
}

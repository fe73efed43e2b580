package validate

import "testing"

func TestRequired(t *testing.T) {
	if !Required("x") {
		t.Fatalf("non-empty value rejected")
	}
	if Required("   ") {
		t.Fatalf("whitespace-only value accepted")
	}
}

func TestEmail(t *testing.T) {
	valid := []string{"a@b.com", "user+tag@example.org", "x@y"}
	for _, v := range valid {
		if !Email(v) {
			t.Fatalf("%q rejected", v)
		}
	}

	invalid := []string{"", "@b.com", "a@", "no-at-sign", "a b@c.com"}
	for _, v := range invalid {
		if Email(v) {
			t.Fatalf("%q accepted", v)
		}
	}
}

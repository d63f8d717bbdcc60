package domain

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"tech@coolvent.io", "a.b+tag@example.co", "x_y@sub.domain.org"}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("expected %q to be valid: %v", email, err)
		}
	}

	invalid := []string{"", "plainaddress", "@missing.local", "user@", "user@domain", "user @space.com"}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectError bool
	}{
		{"valid", "StrongPass1", false},
		{"too short", "Ab1", true},
		{"no uppercase", "weakpass1", true},
		{"no lowercase", "WEAKPASS1", true},
		{"no digit", "WeakPassword", true},
		{"too long", strings.Repeat("Aa1", 50), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.expectError && err == nil {
				t.Fatal("expected error")
			}
			if !tt.expectError && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateSKU(t *testing.T) {
	for _, sku := range []string{"CAP-440V", "FILTER-20X25", "R410A"} {
		if err := ValidateSKU(sku); err != nil {
			t.Errorf("expected %q to be valid: %v", sku, err)
		}
	}

	for _, sku := range []string{"", "x", "lowercase-1", "HAS SPACE", "-LEADING"} {
		if err := ValidateSKU(sku); err == nil {
			t.Errorf("expected %q to be invalid", sku)
		}
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("Ada Martinez"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateName("  "); err == nil {
		t.Fatal("expected error for blank name")
	}
	if err := ValidateName(strings.Repeat("x", 300)); err == nil {
		t.Fatal("expected error for oversized name")
	}
}

func TestValidatePagination(t *testing.T) {
	limit, offset, err := ValidatePagination(0, -5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limit != 20 || offset != 0 {
		t.Fatalf("got limit=%d offset=%d, want defaults 20/0", limit, offset)
	}

	limit, _, _ = ValidatePagination(5000, 10)
	if limit != 100 {
		t.Fatalf("limit = %d, want clamped to 100", limit)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package citizenid

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "too short", id: "12345", wantErr: true},
		{name: "too long", id: "12345678901234", wantErr: true},
		{name: "empty", id: "", wantErr: true},
		{name: "non-digit", id: "12345abc90123", wantErr: true},
		{name: "bad checksum", id: "1234567890123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr && err == nil {
				t.Errorf("Validate(%q) = nil, want error", tt.id)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate(%q) = %v, want nil", tt.id, err)
			}
		})
	}
}

func TestValidateKnownGood(t *testing.T) {
	// All-zero body: sum = 0, check = (11 - 0%11) % 10 = 1
	if err := Validate("0000000000001"); err != nil {
		t.Errorf("Validate(all-zero body) = %v, want nil", err)
	}

	// Body 100000000000: sum = 1*13 = 13, 13%11=2, check=(11-2)%10=9
	if err := Validate("1000000000009"); err != nil {
		t.Errorf("Validate(known vector) = %v, want nil", err)
	}

	// Same body, wrong check digit
	if err := Validate("1000000000008"); err == nil {
		t.Error("Validate with wrong check digit = nil, want error")
	}
}

func TestGenerateRoundTrip(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		id, err := Generate()
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if len(id) != Length {
			t.Fatalf("Generate returned %d digits, want %d", len(id), Length)
		}
		if err := Validate(id); err != nil {
			t.Errorf("Generated id %q failed validation: %v", id, err)
		}
		seen[id] = true
	}

	// Random ids should essentially never collide in 100 draws
	if len(seen) < 95 {
		t.Errorf("Expected near-unique ids, got %d unique of 100", len(seen))
	}
}

//go:build goexperiment.simd && amd64

package bytescan

import (
	"errors"
	"testing"
)

func TestNewPatternInvalidReasons(t *testing.T) {
	tests := []struct {
		name       string
		mask       []byte
		match      []byte
		wantReason PatternInvalidReason
	}{
		{"empty", nil, nil, ReasonEmpty},
		{"length_mismatch", []byte{0xFF, 0xFF}, []byte{0x01}, ReasonLengthMismatch},
		{"leading_null_mask", []byte{0x00, 0xFF}, []byte{0x00, 0x01}, ReasonLeadingNullMask},
		{"trailing_null_mask", []byte{0xFF, 0x00}, []byte{0x01, 0x00}, ReasonTrailingNullMask},
		{"non_subset_match", []byte{0xFF, 0x0F, 0xFF}, []byte{0x01, 0xF0, 0x01}, ReasonNonSubsetMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPattern(tt.mask, tt.match)
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			var pi *PatternInvalid
			if !errors.As(err, &pi) {
				t.Fatalf("expected *PatternInvalid, got %T", err)
			}
			if pi.Reason != tt.wantReason {
				t.Fatalf("reason = %v, want %v", pi.Reason, tt.wantReason)
			}
		})
	}
}

func TestNewPatternValid(t *testing.T) {
	p, err := NewPattern([]byte{0xFF, 0x00, 0xFF}, []byte{0x42, 0x00, 0x13})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", p.Len())
	}
	mask, match := p.Mask(), p.Match()
	// NewPattern copies the caller's input slices, but Mask() returns the
	// pattern's own storage rather than a copy, so a write through it is
	// visible in the pattern.
	mask[0] = 0x00
	if p.Mask()[0] != 0x00 {
		t.Fatal("Mask() did not return the live backing slice as documented")
	}
	_ = match
}

func TestParseIDAPattern(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantMask  []byte
		wantMatch []byte
		wantErr   bool
	}{
		{"fixed_bytes", "E8 48 8B", []byte{0xFF, 0xFF, 0xFF}, []byte{0xE8, 0x48, 0x8B}, false},
		{"single_char_wildcard", "E8 ? ? 8B", []byte{0xFF, 0x00, 0x00, 0xFF}, []byte{0xE8, 0x00, 0x00, 0x8B}, false},
		{"double_char_wildcard", "E8 ?? 8B", []byte{0xFF, 0x00, 0xFF}, []byte{0xE8, 0x00, 0x8B}, false},
		{"lowercase_hex", "e8 4a", []byte{0xFF, 0xFF}, []byte{0xE8, 0x4A}, false},
		{"empty", "", nil, nil, true},
		{"whitespace_only", "   ", nil, nil, true},
		{"leading_wildcard", "? 8B", nil, nil, true},
		{"trailing_wildcard", "8B ?", nil, nil, true},
		{"bad_token_too_long", "E8 12345", nil, nil, true},
		{"bad_token_non_hex", "E8 ZZ", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseIDAPattern(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(p.Mask()) != string(tt.wantMask) || string(p.Match()) != string(tt.wantMatch) {
				t.Fatalf("mask=%x match=%x, want mask=%x match=%x", p.Mask(), p.Match(), tt.wantMask, tt.wantMatch)
			}
		})
	}
}

func TestParseMaskMatchText(t *testing.T) {
	tests := []struct {
		name      string
		match     string
		mask      string
		wantErr   bool
		wantMask  []byte
		wantMatch []byte
	}{
		{"simple", "E8 48 8B", "FF FF FF", false, []byte{0xFF, 0xFF, 0xFF}, []byte{0xE8, 0x48, 0x8B}},
		{"partial_mask", "E8 40 8B", "FF F0 FF", false, []byte{0xFF, 0xF0, 0xFF}, []byte{0xE8, 0x40, 0x8B}},
		{"token_count_mismatch", "E8 48", "FF FF FF", true, nil, nil},
		{"empty", "", "", true, nil, nil},
		{"non_subset", "E8 4F", "FF F0", true, nil, nil},
		{"leading_wildcard_mask", "00 8B", "00 FF", true, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseMaskMatchText(tt.match, tt.mask)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(p.Mask()) != string(tt.wantMask) || string(p.Match()) != string(tt.wantMatch) {
				t.Fatalf("mask=%x match=%x, want mask=%x match=%x", p.Mask(), p.Match(), tt.wantMask, tt.wantMatch)
			}
		})
	}
}

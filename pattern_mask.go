//go:build goexperiment.simd && amd64

package bytescan

import "strings"

// ParseMaskMatchText compiles two space-separated hex-byte sequences of
// identical token count into a Pattern: matchText supplies match[j],
// maskText supplies mask[j]. Each pair must satisfy mask[j]&match[j] ==
// match[j]; this, and the leading/trailing wildcard checks, are enforced by
// NewPattern.
func ParseMaskMatchText(matchText, maskText string) (*Pattern, error) {
	matchToks := strings.Fields(matchText)
	maskToks := strings.Fields(maskText)
	if len(matchToks) == 0 || len(maskToks) == 0 {
		return nil, &PatternTextError{Reason: "empty pattern"}
	}
	if len(matchToks) != len(maskToks) {
		return nil, &PatternTextError{Reason: "match/mask token count mismatch"}
	}

	match := make([]byte, len(matchToks))
	mask := make([]byte, len(maskToks))
	for i, tok := range matchToks {
		b, err := parseHexByte(tok)
		if err != nil {
			return nil, &PatternTextError{Text: tok, Reason: err.Error()}
		}
		match[i] = b
	}
	for i, tok := range maskToks {
		b, err := parseHexByte(tok)
		if err != nil {
			return nil, &PatternTextError{Text: tok, Reason: err.Error()}
		}
		mask[i] = b
	}

	p, err := NewPattern(mask, match)
	if err != nil {
		if pi, ok := err.(*PatternInvalid); ok {
			return nil, &PatternTextError{Reason: "semantic violation: " + pi.Reason.String(), err: pi}
		}
		return nil, err
	}
	return p, nil
}

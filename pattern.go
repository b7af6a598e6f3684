//go:build goexperiment.simd && amd64

// Package bytescan is a high-throughput byte-pattern scanner. It locates the
// first occurrence of a fixed-length pattern — a per-byte (mask, match) pair
// — inside a byte buffer of arbitrary length and alignment, using a
// SIMD-accelerated first-byte predicate as a filter ahead of a verification
// pass.
package bytescan

// Pattern is an immutable pair of equal-length byte sequences (mask, match)
// of common length N, encoding per-byte match constraints: a candidate
// buffer byte b at pattern position j satisfies the pattern iff
// (b & mask[j]) == match[j]. mask[j] == 0 marks position j as a wildcard.
//
// Construction enforces mask[j]&match[j] == match[j] for every j, and
// mask[0] != 0, mask[N-1] != 0 (a pattern with a wildcard first or last
// byte is a usage error; the caller is expected to trim such ends).
type Pattern struct {
	mask  []byte
	match []byte
}

// Len returns the pattern's length N.
func (p *Pattern) Len() int {
	return len(p.mask)
}

// Mask returns the pattern's mask bytes. The slice is the pattern's own
// storage, not a copy, and must not be mutated.
func (p *Pattern) Mask() []byte {
	return p.mask
}

// Match returns the pattern's match bytes. The slice must not be mutated.
func (p *Pattern) Match() []byte {
	return p.match
}

// NewPattern constructs a Pattern from explicit mask and match byte slices.
// It copies both slices so the returned Pattern is independent of the
// caller's backing arrays. Returns *PatternInvalid when a construction
// invariant is violated.
func NewPattern(mask, match []byte) (*Pattern, error) {
	if len(mask) == 0 || len(match) == 0 {
		return nil, &PatternInvalid{Reason: ReasonEmpty}
	}
	if len(mask) != len(match) {
		return nil, &PatternInvalid{Reason: ReasonLengthMismatch}
	}
	for j := range mask {
		if mask[j]&match[j] != match[j] {
			return nil, &PatternInvalid{Reason: ReasonNonSubsetMatch}
		}
	}
	if mask[0] == 0 {
		return nil, &PatternInvalid{Reason: ReasonLeadingNullMask}
	}
	if mask[len(mask)-1] == 0 {
		return nil, &PatternInvalid{Reason: ReasonTrailingNullMask}
	}

	m := make([]byte, len(mask))
	copy(m, mask)
	x := make([]byte, len(match))
	copy(x, match)
	return &Pattern{mask: m, match: x}, nil
}

// widenWithZeroPrefix returns a new Pattern of length d+N whose first d
// positions are wildcards (mask=match=0) and whose remaining positions are
// p's own bytes. This deliberately bypasses NewPattern's "no leading
// wildcard" invariant: it exists solely for the unaligned adapter, which
// restricts the resulting pattern to a single-lane, only-first scan and
// therefore cannot manufacture a false positive from the fabricated prefix.
// Callers outside the adapter must not use this constructor.
func (p *Pattern) widenWithZeroPrefix(d int) *Pattern {
	if d == 0 {
		return p
	}
	mask := make([]byte, d+len(p.mask))
	match := make([]byte, d+len(p.match))
	copy(mask[d:], p.mask)
	copy(match[d:], p.match)
	return &Pattern{mask: mask, match: match}
}

// padded returns mask/match extended to a multiple of w with zero bytes:
// N' = ceil(N/w)*w. The extension is invisible to callers; it exists so the
// aligned scanner can always load whole lanes.
func (p *Pattern) padded(w int) (mask, match []byte, nPrime int) {
	n := len(p.mask)
	nPrime = ((n + w - 1) / w) * w
	if nPrime == n {
		return p.mask, p.match, n
	}
	mask = make([]byte, nPrime)
	match = make([]byte, nPrime)
	copy(mask, p.mask)
	copy(match, p.match)
	return mask, match, nPrime
}

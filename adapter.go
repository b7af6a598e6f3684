//go:build goexperiment.simd && amd64

package bytescan

import "unsafe"

// baseAlignment returns base_address(b) mod w. It reaches for
// unsafe.Pointer only to read an address, never to read or write through
// a pointer outside b's own backing array.
func baseAlignment(b []byte, w int) int {
	if len(b) == 0 {
		return 0
	}
	addr := uintptr(unsafe.Pointer(&b[0]))
	return int(addr % uintptr(w))
}

// ScanUnaligned searches buf for the first occurrence of p regardless of
// buf's base alignment. It reduces to one or two ScanAligned calls.
//
// Reading backward from buf's base to the preceding lane-aligned address
// is unsound in Go: a slice carries no guarantee about the bytes before
// its backing array. Instead, the widened pattern's leading d positions
// are wildcards by construction (mask=match=0), so their backing byte
// values can never affect the match outcome — fabricating d zero bytes
// for that prefix is exact, not an approximation.
func ScanUnaligned(buf []byte, p *Pattern) (int, bool) {
	d := baseAlignment(buf, LaneWidth)
	if d == 0 {
		return ScanAligned(buf, p, false)
	}

	widened := p.widenWithZeroPrefix(d)
	// The widened buffer is the d fabricated zero bytes followed by the
	// *entire* remaining buf, not just a single lane's worth: onlyFirst
	// restricts ScanAligned to trying only the starting lane (i=0), but
	// once that lane yields a candidate, verifyFrom must still be able to
	// read as far into the real data as the pattern requires. A
	// fixed-size LaneWidth-byte lane would truncate that read and miss
	// any match whose tail falls past LaneWidth-d bytes in.
	widenedBuf := make([]byte, d+len(buf))
	copy(widenedBuf[d:], buf)
	if k, ok := ScanAligned(widenedBuf, widened, true); ok {
		// k is widenedBuf's own match start, i.e. the offset of the
		// widened pattern's leading wildcard byte. Those d wildcard
		// bytes occupy exactly the fabricated prefix, so the real
		// pattern's first byte lands at widenedBuf[k+d], which is
		// buf[k+d-d] = buf[k]: the backward shift of the fabricated
		// prefix and the forward shift of the wildcard prefix cancel.
		return k, true
	}

	rem := LaneWidth - d
	if rem >= len(buf) {
		return 0, false
	}
	// buf[rem:]'s base address is (base(buf)+rem) mod LaneWidth == 0,
	// since base(buf) mod LaneWidth == d and d+rem == LaneWidth.
	if k, ok := ScanAligned(buf[rem:], p, false); ok {
		return rem + k, true
	}
	return 0, false
}

// ScanIDAUnaligned compiles patternText as an IDA pattern and scans buf with
// ScanUnaligned.
func ScanIDAUnaligned(buf []byte, patternText string) (int, bool, error) {
	p, err := ParseIDAPattern(patternText)
	if err != nil {
		return 0, false, err
	}
	off, ok := ScanUnaligned(buf, p)
	return off, ok, nil
}

// ScanMaskMatchUnaligned compiles matchText/maskText and scans buf with
// ScanUnaligned.
func ScanMaskMatchUnaligned(buf []byte, matchText, maskText string) (int, bool, error) {
	p, err := ParseMaskMatchText(matchText, maskText)
	if err != nil {
		return 0, false, err
	}
	off, ok := ScanUnaligned(buf, p)
	return off, ok, nil
}

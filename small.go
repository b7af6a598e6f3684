//go:build goexperiment.simd && amd64

package bytescan

// ScanAlignedSmall searches buf for the first occurrence of p using the
// byte-at-a-time scanner instead of the SIMD lane path, trading throughput
// for a smaller compiled footprint. It reports the identical offset
// ScanAligned would.
func ScanAlignedSmall(buf []byte, p *Pattern) (int, bool) {
	return ScanScalar(buf, p)
}

// ScanUnalignedSmall is ScanUnaligned's small-code-size counterpart: rather
// than probing a fabricated SIMD prefix lane, it scalar-scans the region
// that could contain a match straddling buf's lane-alignment boundary, then
// hands the lane-aligned remainder to ScanAligned.
func ScanUnalignedSmall(buf []byte, p *Pattern) (int, bool) {
	d := baseAlignment(buf, LaneWidth)
	if d == 0 {
		return ScanAligned(buf, p, false)
	}

	n := p.Len()
	rem := LaneWidth - d
	prefixLen := rem + n - 1
	if prefixLen > len(buf) {
		prefixLen = len(buf)
	}
	if off, ok := ScanScalar(buf[:prefixLen], p); ok {
		return off, true
	}

	if rem >= len(buf) {
		return 0, false
	}
	if off, ok := ScanAligned(buf[rem:], p, false); ok {
		return rem + off, true
	}
	return 0, false
}

// ScanIDASmall compiles patternText as an IDA pattern and scans buf with
// ScanAlignedSmall.
func ScanIDASmall(buf []byte, patternText string) (int, bool, error) {
	p, err := ParseIDAPattern(patternText)
	if err != nil {
		return 0, false, err
	}
	off, ok := ScanAlignedSmall(buf, p)
	return off, ok, nil
}

// ScanMaskMatchSmall compiles matchText/maskText and scans buf with
// ScanAlignedSmall.
func ScanMaskMatchSmall(buf []byte, matchText, maskText string) (int, bool, error) {
	p, err := ParseMaskMatchText(matchText, maskText)
	if err != nil {
		return 0, false, err
	}
	off, ok := ScanAlignedSmall(buf, p)
	return off, ok, nil
}

// ScanIDAUnalignedSmall compiles patternText as an IDA pattern and scans buf
// with ScanUnalignedSmall.
func ScanIDAUnalignedSmall(buf []byte, patternText string) (int, bool, error) {
	p, err := ParseIDAPattern(patternText)
	if err != nil {
		return 0, false, err
	}
	off, ok := ScanUnalignedSmall(buf, p)
	return off, ok, nil
}

// ScanMaskMatchUnalignedSmall compiles matchText/maskText and scans buf with
// ScanUnalignedSmall.
func ScanMaskMatchUnalignedSmall(buf []byte, matchText, maskText string) (int, bool, error) {
	p, err := ParseMaskMatchText(matchText, maskText)
	if err != nil {
		return 0, false, err
	}
	off, ok := ScanUnalignedSmall(buf, p)
	return off, ok, nil
}

//go:build goexperiment.simd && amd64

package bytescan

import "testing"

func TestCompiledPatternMatchesUncompiled(t *testing.T) {
	p := mustIDA(t, "12 34 56 ?? AA")
	c := Compile(p)

	buf := []byte{0x13, 0x37, 0x13, 0x00, 0x12, 0x34, 0x56, 0x78, 0xAA}

	wantOff, wantOK := ScanAligned(buf, p, false)
	gotOff, gotOK := c.ScanAligned(buf, false)
	if gotOff != wantOff || gotOK != wantOK {
		t.Fatalf("CompiledPattern.ScanAligned = (%d,%v), want (%d,%v)", gotOff, gotOK, wantOff, wantOK)
	}

	wantOff, wantOK = ScanUnaligned(buf, p)
	gotOff, gotOK = c.ScanUnaligned(buf)
	if gotOff != wantOff || gotOK != wantOK {
		t.Fatalf("CompiledPattern.ScanUnaligned = (%d,%v), want (%d,%v)", gotOff, gotOK, wantOff, wantOK)
	}

	wantOff, wantOK = ScanScalar(buf, p)
	gotOff, gotOK = c.ScanScalar(buf)
	if gotOff != wantOff || gotOK != wantOK {
		t.Fatalf("CompiledPattern.ScanScalar = (%d,%v), want (%d,%v)", gotOff, gotOK, wantOff, wantOK)
	}
}

//go:build goexperiment.simd && amd64

package bytescan

// ScanAligned searches buf for the leftmost occurrence of p. buf's base
// address should be LaneWidth-aligned for callers relying on single-lane
// throughput, but that precondition is advisory rather than safety-critical
// here: loadLanePadded never reads past buf's end regardless of alignment.
//
// When onlyFirst is true, only the single lane at offset 0 is inspected —
// the mode the unaligned adapter uses to probe its fabricated prefix lane.
// Otherwise the whole buffer is scanned. In either mode, should the inner
// algorithm produce a candidate whose pattern extends past len(buf), that
// candidate is discarded and (0, false) is returned: scanning proceeds
// strictly left to right, so no earlier candidate remains unexamined.
func ScanAligned(buf []byte, p *Pattern, onlyFirst bool) (int, bool) {
	n := p.Len()
	if n > len(buf) {
		return 0, false
	}

	maskArr, matchArr, nPrime := p.padded(LaneWidth)

	limit := len(buf)
	if onlyFirst {
		limit = LaneWidth
		if limit > len(buf) {
			limit = len(buf)
		}
	}

	for i := 0; i < limit; i += LaneWidth {
		end := i + LaneWidth
		if end > len(buf) {
			end = len(buf)
		}
		lane, validBits := loadLanePadded(buf[i:end])

		offs, ok := scanLane(&lane, validBits, maskArr, matchArr, n, nPrime, buf, i)
		if !ok {
			continue
		}

		candidate := i + offs
		if candidate+n > len(buf) {
			// A phantom match reaching into the zero-padded tail
			// is invalid; no earlier candidate remains unexamined.
			return 0, false
		}
		return candidate, true
	}

	return 0, false
}

// scanLane runs the first-byte predicate, early-reject filter, and
// verification pass over a single LaneWidth-byte lane starting at absolute
// offset laneStart in buf. maskArr/matchArr are the padded pattern arrays
// (length nPrime); n is the true pattern length. Returns the in-lane offset
// of the leftmost verified match, if any.
func scanLane(lane *[LaneWidth]byte, validBits int, maskArr, matchArr []byte, n, nPrime int, buf []byte, laneStart int) (int, bool) {
	firstMaskByte, firstMatchByte := maskArr[0], matchArr[0]
	firstPred := eqMaskAfterAnd(lane, firstMaskByte, firstMatchByte)
	if validBits < LaneWidth {
		firstPred &= (uint64(1) << validBits) - 1
	}
	if firstPred == 0 {
		return 0, false
	}

	// Early-reject filter. Each checked offs can only raise the floor
	// below which a start position is provably impossible; it is a
	// throughput optimization, never required for correctness (the
	// verification pass below is the correctness authority).
	lowestPossibleStart := 0
	upper := n
	if upper > LaneWidth-1 {
		upper = LaneWidth - 1
	}
	for offs := 1; offs < upper; offs++ {
		if maskArr[offs] == 0 {
			continue
		}
		predOffs := eqMaskAfterAnd(lane, maskArr[offs], matchArr[offs])
		highMask := ^uint64(0) << uint(offs)
		if predOffs&highMask == 0 {
			floor := LaneWidth - offs
			if floor > lowestPossibleStart {
				lowestPossibleStart = floor
			}
		}
	}

	// Verification pass, low to high so the leftmost in-lane match wins.
	for offsK := lowestPossibleStart; offsK < LaneWidth; offsK++ {
		if offsK >= validBits {
			break
		}
		if firstPred&(uint64(1)<<uint(offsK)) == 0 {
			continue
		}
		if verifyFrom(lane, maskArr, matchArr, n, nPrime, offsK, buf, laneStart) {
			return offsK, true
		}
	}
	return 0, false
}

// verifyFrom checks whether the full pattern matches starting at in-lane
// offset offsK of the lane beginning at laneStart, shifting the pattern's
// first window by offsK and then walking subsequent LaneWidth-aligned
// windows of the remaining pattern bytes.
func verifyFrom(lane *[LaneWidth]byte, maskArr, matchArr []byte, n, nPrime, offsK int, buf []byte, laneStart int) bool {
	var shiftedMask, shiftedMatch [LaneWidth]byte
	shiftRightInto(&shiftedMask, maskArr[:LaneWidth], offsK)
	shiftRightInto(&shiftedMatch, matchArr[:LaneWidth], offsK)

	firstWindowValid := LaneWidth - offsK
	if !reduceAllEqWindow(lane, &shiftedMask, &shiftedMatch, offsK+min(firstWindowValid, n)) {
		return false
	}
	matched := firstWindowValid
	if matched >= n {
		return true
	}

	// Subsequent windows start on LaneWidth boundaries of buf (laneStart +
	// LaneWidth, laneStart + 2*LaneWidth, ...), and each is compared with
	// the next LaneWidth bytes of the padded pattern starting at pattern
	// index LaneWidth-offsK, so no further shifting is required.
	matchStart := laneStart + offsK
	for matched < n {
		windowStart := matched
		windowEnd := windowStart + LaneWidth
		if windowEnd > nPrime {
			windowEnd = nPrime
		}

		bufStart := matchStart + matched
		bufEnd := bufStart + LaneWidth
		if bufEnd > len(buf) {
			bufEnd = len(buf)
		}
		if bufStart >= len(buf) {
			return false
		}
		nextLane, validBits := loadLanePadded(buf[bufStart:bufEnd])

		var windowMask, windowMatch [LaneWidth]byte
		copy(windowMask[:], maskArr[windowStart:windowEnd])
		copy(windowMatch[:], matchArr[windowStart:windowEnd])

		remaining := n - matched
		want := remaining
		if want > LaneWidth {
			want = LaneWidth
		}
		if want > validBits {
			// pattern extends past buf's real data; only wildcard
			// (zero-mask) padding can satisfy it, which the caller's
			// i+N<=L post-check will reject anyway.
			return false
		}
		if !reduceAllEqWindow(&nextLane, &windowMask, &windowMatch, want) {
			return false
		}
		matched += want
	}
	return true
}

// shiftRightInto fills dst with src shifted toward higher indices by k
// elements, zero-filling the low k elements.
func shiftRightInto(dst *[LaneWidth]byte, src []byte, k int) {
	for i := range dst {
		dst[i] = 0
	}
	if k >= len(dst) {
		return
	}
	n := len(src)
	if n > len(dst)-k {
		n = len(dst) - k
	}
	copy(dst[k:k+n], src[:n])
}

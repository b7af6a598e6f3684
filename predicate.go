//go:build goexperiment.simd && amd64

package bytescan

import (
	"simd/archsimd"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// =============================================================================
// AVX-512 CPU Detection and Fallback
// =============================================================================
//
// NOTE: simd/archsimd (Go 1.26, GOEXPERIMENT=simd) is AMD64-specific and
// experimental; a portable SIMD package is tracked at
// https://github.com/golang/go/issues/73787. archsimd.Int8x32.Equal().ToBits()
// lowers to VPMOVB2M, which requires AVX-512BW and SIGILLs on CPUs without
// it (including most CI runners), hence the runtime feature gate below
// rather than a build-tag-only dispatch.
//
// TODO: drop golang.org/x/sys/cpu for feature detection once archsimd grows
// its own HasAVX512()-style API (see the issue above).

// useAVX512 is set once at init time from runtime CPU feature detection and
// used to dispatch every predicate below between the AVX-512 and scalar
// implementations.
var useAVX512 bool

// LaneWidth is the number of bytes the aligned scanner inspects per stride:
// two concatenated 32-byte AVX-512/AVX2 vector loads.
const LaneWidth = 64

const laneHalf = LaneWidth / 2

func init() {
	useAVX512 = cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW && cpu.X86.HasAVX512VL
}

// loadLanePadded copies the first LaneWidth bytes of buf (all of buf when it
// is shorter) into a LaneWidth-byte array, zero-filling any bytes beyond
// len(buf). Go slices carry no notion of a safely-readable
// page tail, so the padding is simulated explicitly rather than read from
// real memory past the slice. The zero fill can never produce a spurious
// *accepted* match, because the aligned scanner's final i+N<=L bounds check
// discards any candidate that extends into it.
func loadLanePadded(buf []byte) (lane [LaneWidth]byte, validBits int) {
	n := len(buf)
	if n > LaneWidth {
		n = LaneWidth
	}
	copy(lane[:], buf[:n])
	return lane, n
}

// eqMaskAfterAnd computes, for a LaneWidth-byte lane, the bitmask where bit k
// is set iff (lane[k] & maskByte) == matchByte: broadcast + AND + compare,
// specialized to a single pattern byte, which is the aligned scanner's
// per-position predicate.
func eqMaskAfterAnd(lane *[LaneWidth]byte, maskByte, matchByte byte) uint64 {
	if useAVX512 {
		return eqMaskAfterAndAVX512(lane, maskByte, matchByte)
	}
	return eqMaskAfterAndScalar(lane, maskByte, matchByte)
}

func eqMaskAfterAndAVX512(lane *[LaneWidth]byte, maskByte, matchByte byte) uint64 {
	maskV := archsimd.BroadcastInt8x32(int8(maskByte))
	matchV := archsimd.BroadcastInt8x32(int8(matchByte))

	low := archsimd.LoadInt8x32((*[laneHalf]int8)(unsafe.Pointer(&lane[0])))
	lowEq := low.And(maskV).Equal(matchV).ToBits()

	high := archsimd.LoadInt8x32((*[laneHalf]int8)(unsafe.Pointer(&lane[laneHalf])))
	highEq := high.And(maskV).Equal(matchV).ToBits()

	return uint64(lowEq) | (uint64(highEq) << laneHalf)
}

func eqMaskAfterAndScalar(lane *[LaneWidth]byte, maskByte, matchByte byte) uint64 {
	var out uint64
	for i := 0; i < LaneWidth; i++ {
		if lane[i]&maskByte == matchByte {
			out |= uint64(1) << i
		}
	}
	return out
}

// andEqualMask computes, for a LaneWidth-byte lane and LaneWidth-byte
// per-position maskArr/matchArr windows, the bitmask where bit k is set iff
// (lane[k] & maskArr[k]) == matchArr[k]. Unlike eqMaskAfterAnd this compares
// against a full per-element window rather than a single broadcast byte,
// which is what the verification pass needs.
func andEqualMask(lane, maskArr, matchArr *[LaneWidth]byte) uint64 {
	if useAVX512 {
		return andEqualMaskAVX512(lane, maskArr, matchArr)
	}
	return andEqualMaskScalar(lane, maskArr, matchArr)
}

func andEqualMaskAVX512(lane, maskArr, matchArr *[LaneWidth]byte) uint64 {
	lowWord := archsimd.LoadInt8x32((*[laneHalf]int8)(unsafe.Pointer(&lane[0])))
	lowMask := archsimd.LoadInt8x32((*[laneHalf]int8)(unsafe.Pointer(&maskArr[0])))
	lowMatch := archsimd.LoadInt8x32((*[laneHalf]int8)(unsafe.Pointer(&matchArr[0])))
	lowEq := lowWord.And(lowMask).Equal(lowMatch).ToBits()

	highWord := archsimd.LoadInt8x32((*[laneHalf]int8)(unsafe.Pointer(&lane[laneHalf])))
	highMask := archsimd.LoadInt8x32((*[laneHalf]int8)(unsafe.Pointer(&maskArr[laneHalf])))
	highMatch := archsimd.LoadInt8x32((*[laneHalf]int8)(unsafe.Pointer(&matchArr[laneHalf])))
	highEq := highWord.And(highMask).Equal(highMatch).ToBits()

	return uint64(lowEq) | (uint64(highEq) << laneHalf)
}

func andEqualMaskScalar(lane, maskArr, matchArr *[LaneWidth]byte) uint64 {
	var out uint64
	for i := 0; i < LaneWidth; i++ {
		if lane[i]&maskArr[i] == matchArr[i] {
			out |= uint64(1) << i
		}
	}
	return out
}

// reduceAllEqWindow reports whether every one of the first validBits bytes
// of lane equals the corresponding byte of matchArr after ANDing with
// maskArr, restricted to the bytes that are actually in play for this
// window.
func reduceAllEqWindow(lane, maskArr, matchArr *[LaneWidth]byte, validBits int) bool {
	got := andEqualMask(lane, maskArr, matchArr)
	if validBits >= LaneWidth {
		return got == ^uint64(0)
	}
	want := (uint64(1) << validBits) - 1
	return got&want == want
}

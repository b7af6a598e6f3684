//go:build goexperiment.simd && amd64

// Command bytescan locates the first occurrence of a byte pattern in a file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/nnnkkk7/bytescan"
)

func main() {
	flags := pflag.NewFlagSet("bytescan", pflag.ExitOnError)
	idaPattern := flags.StringP("ida", "i", "", `IDA-style pattern, e.g. "E8 ? ? ? ? 48 8B"`)
	matchHex := flags.String("match", "", "space-separated match bytes in hex, paired with --mask")
	maskHex := flags.String("mask", "", "space-separated mask bytes in hex, paired with --match")
	small := flags.Bool("small", false, "use the code-size-optimized scanner (scalar scan of the unaligned prefix, SIMD for the rest)")
	flags.Parse(os.Args[1:])

	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: bytescan [--ida PATTERN | --match BYTES --mask BYTES] [--small] FILE")
		os.Exit(2)
	}
	path := flags.Arg(0)

	buf, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bytescan:", err)
		os.Exit(1)
	}

	off, found, err := scan(buf, *idaPattern, *matchHex, *maskHex, *small)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bytescan:", err)
		os.Exit(1)
	}
	if !found {
		fmt.Println("not found")
		os.Exit(1)
	}
	fmt.Println(off)
}

func scan(buf []byte, idaPattern, matchHex, maskHex string, small bool) (int, bool, error) {
	switch {
	case idaPattern != "":
		if small {
			return bytescan.ScanIDAUnalignedSmall(buf, idaPattern)
		}
		return bytescan.ScanIDAUnaligned(buf, idaPattern)
	case matchHex != "" || maskHex != "":
		if small {
			return bytescan.ScanMaskMatchUnalignedSmall(buf, matchHex, maskHex)
		}
		return bytescan.ScanMaskMatchUnaligned(buf, matchHex, maskHex)
	default:
		return 0, false, fmt.Errorf("no pattern given: pass --ida or --match/--mask")
	}
}

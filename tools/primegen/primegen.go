// Command primegen generates the deterministic (n, factors) workload used
// by examples/primes' concurrent interning benchmark, outside `go test`.
// It emits one line per n in 1..=limit: the number followed by its prime
// factorization (empty if prime), so the exact dataset a benchmark run
// used can be captured and diffed across regressions.
//
// Usage:
//
//	go run tools/primegen/primegen.go -n 2000 -out primes.txt
//
// Flags:
//
//	-n    upper bound of the range to factorize, inclusive (default 2000)
//	-out  output file (default stdout)
//
// © 2025 hashcons authors. MIT License.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Voskan/hashcons/examples/primes"
)

func main() {
	var (
		n       = flag.Int("n", 2000, "upper bound of the range to factorize (inclusive)")
		outPath = flag.String("out", "", "output file (default stdout)")
	)
	flag.Parse()

	if *n < 1 {
		fmt.Fprintln(os.Stderr, "n must be >= 1")
		os.Exit(1)
	}

	var out *os.File
	var err error
	if *outPath == "" {
		out = os.Stdout
	} else {
		out, err = os.Create(*outPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cannot create file:", err)
			os.Exit(1)
		}
		defer out.Close()
	}

	w := bufio.NewWriterSize(out, 1<<16)
	defer w.Flush()

	for i := uint64(1); i <= uint64(*n); i++ {
		factors := primes.PrimeFactorize(i)
		fmt.Fprintf(w, "%d\t%s\n", i, joinUint64(factors))
	}
}

func joinUint64(xs []uint64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatUint(x, 10)
	}
	return strings.Join(parts, ",")
}
